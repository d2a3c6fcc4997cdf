package app

import (
	"os"
	"path/filepath"
)

// Paths holds all resolved filesystem paths under the data directory.
type Paths struct {
	Root     string // <data>/
	DB       string // <data>/reports.db (unless overridden)
	RunDir   string // <data>/run/
	PortFile string // <data>/run/http.port
}

// NewPaths constructs all resolved paths from a data directory. A non-empty
// dbPath overrides the default database location.
func NewPaths(dataDir, dbPath string) *Paths {
	if dbPath == "" {
		dbPath = filepath.Join(dataDir, "reports.db")
	}
	return &Paths{
		Root:     dataDir,
		DB:       dbPath,
		RunDir:   filepath.Join(dataDir, "run"),
		PortFile: filepath.Join(dataDir, "run", "http.port"),
	}
}

// EnsureDirs creates the data directories and the database's parent. Idempotent.
func (p *Paths) EnsureDirs() error {
	for _, d := range []string{p.Root, p.RunDir, filepath.Dir(p.DB)} {
		if err := os.MkdirAll(d, 0755); err != nil {
			return err
		}
	}
	return nil
}

// CleanEphemeral removes runtime files (the port file).
// Called on clean server shutdown.
func (p *Paths) CleanEphemeral() {
	os.Remove(p.PortFile)
}

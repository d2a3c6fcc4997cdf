package cmd

import (
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/corey/medreport/internal/app"
)

// isDBLockError returns true if the error chain contains a bbolt lock timeout.
// bbolt returns the string "timeout" when it cannot acquire the file lock
// within the configured deadline.
func isDBLockError(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "timeout")
}

// serverAddr returns the address a running server recorded in its port file,
// or "" when no server answers there.
func serverAddr(p *app.Paths) string {
	data, err := os.ReadFile(p.PortFile)
	if err != nil {
		return ""
	}
	addr := strings.TrimSpace(string(data))
	client := http.Client{Timeout: time.Second}
	resp, err := client.Get("http://" + addr + "/api/health")
	if err != nil {
		return ""
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return ""
	}
	return addr
}

// diagnoseDBLock checks the server state and returns actionable guidance
// when a bbolt open fails due to lock contention. It distinguishes three
// scenarios: server running, stale port file, and unknown lock holder.
func diagnoseDBLock(p *app.Paths) string {
	if addr := serverAddr(p); addr != "" {
		return fmt.Sprintf("database is locked by the running server at http://%s\n"+
			"  → use the API instead:  curl http://%s/api/reports\n"+
			"  → or stop the server and retry your command", addr, addr)
	}

	if _, err := os.Stat(p.PortFile); err == nil {
		return fmt.Sprintf("database is locked — a port file exists but no server responds\n"+
			"  → a previous server may have crashed\n"+
			"  → find the process:  ps aux | grep 'medreport serve'\n"+
			"  → kill it:           kill <PID>\n"+
			"  → clean up:          rm %s", p.PortFile)
	}

	return "database is locked by another process\n" +
		"  → find the process:  ps aux | grep 'medreport'\n" +
		"  → kill it:           kill <PID>\n" +
		"  → then retry your command"
}

// openApp wires the full app (store included) for commands that touch reports.
func openApp() (*app.App, error) {
	a, err := app.New(cfg)
	if err != nil {
		if isDBLockError(err) {
			return nil, fmt.Errorf("%w\n%s", err, diagnoseDBLock(app.NewPaths(cfg.DataDir, cfg.DBPath)))
		}
		return nil, err
	}
	return a, nil
}

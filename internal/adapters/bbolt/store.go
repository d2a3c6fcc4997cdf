// Package bbolt implements the ports.ReportStore interface using bbolt (embedded B+ tree).
// Reports are stored as JSON in the "reports" bucket keyed by id. A second bucket,
// "created", indexes them by creation time so listings need no sort. Writes are
// transactional: a crash mid-write cannot corrupt previously committed data.
package bbolt

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/corey/medreport/internal/domain/report"
	"github.com/corey/medreport/internal/ports"
	bolt "go.etcd.io/bbolt"
)

// Bucket keys
var (
	bucketReports = []byte("reports")
	bucketCreated = []byte("created")
)

// Store implements ports.ReportStore backed by bbolt.
type Store struct {
	db *bolt.DB
}

var _ ports.ReportStore = (*Store)(nil)

// NewStore opens (or creates) a bbolt database at the given path.
func NewStore(path string) (*Store, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("bbolt open: %w", err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists(bucketReports); err != nil {
			return err
		}
		_, err := tx.CreateBucketIfNotExists(bucketCreated)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("bbolt init buckets: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying bbolt database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.db.Path()
}

// Save inserts or replaces a report.
func (s *Store) Save(r *report.Report) error {
	if r == nil {
		return fmt.Errorf("nil report")
	}
	if r.ID == "" {
		return fmt.Errorf("report has no id")
	}

	data, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		reports := tx.Bucket(bucketReports)
		created := tx.Bucket(bucketCreated)

		// Replacing a report may move it in the time index.
		if old := reports.Get([]byte(r.ID)); old != nil {
			var prev report.Report
			if err := json.Unmarshal(old, &prev); err != nil {
				return fmt.Errorf("unmarshal previous report %s: %w", r.ID, err)
			}
			if err := created.Delete(encodeTimeKey(prev.CreatedAt, prev.ID)); err != nil {
				return err
			}
		}

		if err := reports.Put([]byte(r.ID), data); err != nil {
			return err
		}
		return created.Put(encodeTimeKey(r.CreatedAt, r.ID), []byte(r.ID))
	})
}

// Get retrieves one report. Returns ports.ErrReportNotFound if absent.
func (s *Store) Get(id string) (*report.Report, error) {
	var data []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		// Copy bytes out of the transaction (bbolt slices are only valid within tx)
		if v := tx.Bucket(bucketReports).Get([]byte(id)); v != nil {
			data = make([]byte, len(v))
			copy(data, v)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, fmt.Errorf("%w: %s", ports.ErrReportNotFound, id)
	}

	var r report.Report
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("unmarshal report %s: %w", id, err)
	}
	return &r, nil
}

// List returns every saved report, newest first.
func (s *Store) List() ([]*report.Report, error) {
	out := []*report.Report{}
	err := s.db.View(func(tx *bolt.Tx) error {
		reports := tx.Bucket(bucketReports)
		c := tx.Bucket(bucketCreated).Cursor()
		for k, _ := c.Last(); k != nil; k, _ = c.Prev() {
			_, id, err := decodeTimeKey(k)
			if err != nil {
				return err
			}
			v := reports.Get([]byte(id))
			if v == nil {
				continue // index entry without a report; skipped
			}
			var r report.Report
			if err := json.Unmarshal(v, &r); err != nil {
				return fmt.Errorf("unmarshal report %s: %w", id, err)
			}
			out = append(out, &r)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Delete removes a report.
// Idempotent: deleting a nonexistent report is not an error.
func (s *Store) Delete(id string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		reports := tx.Bucket(bucketReports)
		v := reports.Get([]byte(id))
		if v == nil {
			return nil // idempotent
		}
		var r report.Report
		if err := json.Unmarshal(v, &r); err != nil {
			return fmt.Errorf("unmarshal report %s: %w", id, err)
		}
		if err := tx.Bucket(bucketCreated).Delete(encodeTimeKey(r.CreatedAt, r.ID)); err != nil {
			return err
		}
		return reports.Delete([]byte(id))
	})
}

// Count returns the number of saved reports.
func (s *Store) Count() (int, error) {
	n := 0
	err := s.db.View(func(tx *bolt.Tx) error {
		n = tx.Bucket(bucketReports).Stats().KeyN
		return nil
	})
	return n, err
}

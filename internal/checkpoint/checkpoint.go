// Package checkpoint implements a per-stage checkpoint store: each
// pipeline stage's output is saved as JSON in a Badger database inside a
// working directory, from which Load can read it back. Grounded on
// pkg/gedcom/query/hybrid_storage.go's initBadgerDB (DefaultOptions,
// directory creation, silenced logger) and its db.Update/db.View
// transaction shape.
package checkpoint

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dgraph-io/badger/v4"
)

// Store persists one JSON blob per pipeline stage, keyed by
// "<stage>/<runID>", so a later invocation can resume from (or re-read)
// any completed stage without rerunning the ones before it.
type Store struct {
	db *badger.DB
}

// Open creates dir if needed and opens the Badger database inside it.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("checkpoint: create dir %s: %w", dir, err)
	}
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("checkpoint: open badger at %s: %w", dir, err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func key(stage, runID string) []byte {
	return []byte(filepath.ToSlash(filepath.Join(stage, runID)))
}

// Save JSON-encodes v and writes it under (stage, runID).
func (s *Store) Save(stage, runID string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("checkpoint: marshal %s/%s: %w", stage, runID, err)
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key(stage, runID), data)
	})
}

// Load decodes the checkpoint for (stage, runID) into v. It returns
// ErrNotFound if no checkpoint was ever saved for that stage/run.
func (s *Store) Load(stage, runID string, v any) error {
	var data []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key(stage, runID))
		if err == badger.ErrKeyNotFound {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			data = append([]byte(nil), val...)
			return nil
		})
	})
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}

// Has reports whether a checkpoint exists for (stage, runID).
func (s *Store) Has(stage, runID string) bool {
	err := s.db.View(func(txn *badger.Txn) error {
		_, err := txn.Get(key(stage, runID))
		return err
	})
	return err == nil
}

// ErrNotFound is returned by Load when no checkpoint exists yet.
var ErrNotFound = fmt.Errorf("checkpoint: not found")

// Netsight - Network Visibility Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/netsight

package ingest

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"
)

// ledgerKeyPrefix namespaces file hashes in the badger keyspace.
const ledgerKeyPrefix = "import:file:"

// LedgerEntry records one file imported from the drop folder.
type LedgerEntry struct {
	Filename   string    `json:"filename"`
	CaptureID  int64     `json:"captureId"`
	ImportedAt time.Time `json:"importedAt"`
}

// Ledger remembers which file contents were already imported so a restart
// or a re-dropped copy does not create a duplicate capture.
type Ledger struct {
	db *badger.DB
}

// OpenLedger opens (or creates) a ledger in dir. An empty dir keeps the
// ledger in memory, which is what tests use.
func OpenLedger(dir string) (*Ledger, error) {
	opts := badger.DefaultOptions(dir).WithLogger(nil)
	if dir == "" {
		opts = opts.WithInMemory(true)
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open import ledger: %w", err)
	}
	return &Ledger{db: db}, nil
}

// Close releases the underlying badger database.
func (l *Ledger) Close() error {
	return l.db.Close()
}

// ContentHash returns the hex SHA-256 of a file's content, the ledger key.
func ContentHash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// Lookup returns the entry recorded for hash, or nil when the content has
// not been imported.
func (l *Ledger) Lookup(hash string) (*LedgerEntry, error) {
	var entry *LedgerEntry

	err := l.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(ledgerKeyPrefix + hash))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			entry = &LedgerEntry{}
			return json.Unmarshal(val, entry)
		})
	})
	if err != nil {
		return nil, fmt.Errorf("lookup ledger entry: %w", err)
	}
	return entry, nil
}

// Record stores entry under hash, replacing any previous entry.
func (l *Ledger) Record(hash string, entry LedgerEntry) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("marshal ledger entry: %w", err)
	}

	return l.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(ledgerKeyPrefix+hash), data)
	})
}

// Count returns the number of recorded files.
func (l *Ledger) Count() (int, error) {
	n := 0
	err := l.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = []byte(ledgerKeyPrefix)

		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			n++
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("count ledger entries: %w", err)
	}
	return n, nil
}

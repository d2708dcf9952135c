// Package store keeps the sent-announcement ledger in a BoltDB file so it can
// be inspected after a restart.
package store

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"
)

var bucketSent = []byte("sent_announcements")

// SentRecord is the announcement posted for one discussion chat.
type SentRecord struct {
	MessageID int       `json:"message_id"`
	SentAt    time.Time `json:"sent_at"`
}

// Ledger is a relay.Ledger backed by BoltDB.
type Ledger struct {
	db *bolt.DB
}

// Open opens (or creates) the ledger database at path.
func Open(path string) (*Ledger, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, err
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketSent)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Ledger{db: db}, nil
}

// Close releases the underlying DB handle.
func (l *Ledger) Close() error {
	if l == nil || l.db == nil {
		return nil
	}
	return l.db.Close()
}

// Record stores the announcement message ID for a discussion chat.
func (l *Ledger) Record(waitID string, messageID int) error {
	data, err := json.Marshal(SentRecord{MessageID: messageID, SentAt: time.Now().UTC()})
	if err != nil {
		return err
	}
	return l.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketSent).Put([]byte(waitID), data)
	})
}

// Lookup returns the announcement message ID for a discussion chat.
func (l *Ledger) Lookup(waitID string) (int, bool) {
	rec, ok, err := l.Get(waitID)
	if err != nil {
		slog.Warn("store: lookup failed", "wait_id", waitID, "err", err)
		return 0, false
	}
	return rec.MessageID, ok
}

// Get returns the full record for a discussion chat.
func (l *Ledger) Get(waitID string) (SentRecord, bool, error) {
	var rec SentRecord
	var found bool
	err := l.db.View(func(tx *bolt.Tx) error {
		data := tx.Bucket(bucketSent).Get([]byte(waitID))
		if data == nil {
			return nil
		}
		found = true
		return json.Unmarshal(data, &rec)
	})
	return rec, found, err
}

// Len returns the number of recorded chats.
func (l *Ledger) Len() int {
	n := 0
	err := l.db.View(func(tx *bolt.Tx) error {
		n = tx.Bucket(bucketSent).Stats().KeyN
		return nil
	})
	if err != nil {
		slog.Warn("store: count failed", "err", err)
		return 0
	}
	return n
}

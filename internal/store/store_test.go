package store

import (
	"path/filepath"
	"testing"
	"time"
)

func openTemp(t *testing.T) (*Ledger, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "nested", "ledger.db")
	l, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	return l, path
}

func TestLedger_RecordLookup(t *testing.T) {
	l, _ := openTemp(t)
	defer l.Close()

	if _, ok := l.Lookup("222"); ok {
		t.Fatal("expected empty ledger")
	}
	if err := l.Record("222", 1001); err != nil {
		t.Fatalf("record: %v", err)
	}
	id, ok := l.Lookup("222")
	if !ok || id != 1001 {
		t.Errorf("expected 1001, got %d %v", id, ok)
	}
	if l.Len() != 1 {
		t.Errorf("expected 1 entry, got %d", l.Len())
	}

	rec, found, err := l.Get("222")
	if err != nil || !found {
		t.Fatalf("get: %v %v", found, err)
	}
	if time.Since(rec.SentAt) > time.Minute {
		t.Errorf("unexpected sent_at %v", rec.SentAt)
	}
}

func TestLedger_SurvivesReopen(t *testing.T) {
	l, path := openTemp(t)
	if err := l.Record("-100500", 7); err != nil {
		t.Fatalf("record: %v", err)
	}
	if err := l.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	reopened, err := Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()
	if id, ok := reopened.Lookup("-100500"); !ok || id != 7 {
		t.Errorf("expected 7 after reopen, got %d %v", id, ok)
	}
}

func TestLedger_CloseNil(t *testing.T) {
	var l *Ledger
	if err := l.Close(); err != nil {
		t.Errorf("expected nil close on nil ledger, got %v", err)
	}
}

func TestLedger_ClosedDatabase(t *testing.T) {
	l, _ := openTemp(t)
	if err := l.Record("222", 1001); err != nil {
		t.Fatalf("record: %v", err)
	}
	if err := l.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	if n := l.Len(); n != 0 {
		t.Errorf("expected 0 from a closed ledger, got %d", n)
	}
	if _, ok := l.Lookup("222"); ok {
		t.Error("expected lookup on a closed ledger to miss")
	}
}

package relay

import "sync"

// Ledger records the announcement message posted for each discussion chat.
// It only annotates logs; reply behaviour never depends on it.
type Ledger interface {
	Record(waitID string, messageID int) error
	Lookup(waitID string) (int, bool)
	Len() int
}

// MemoryLedger is an in-process Ledger. It lives for the process lifetime.
type MemoryLedger struct {
	mu   sync.RWMutex
	sent map[string]int
}

func NewMemoryLedger() *MemoryLedger {
	return &MemoryLedger{sent: make(map[string]int)}
}

func (l *MemoryLedger) Record(waitID string, messageID int) error {
	l.mu.Lock()
	l.sent[waitID] = messageID
	l.mu.Unlock()
	return nil
}

func (l *MemoryLedger) Lookup(waitID string) (int, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	id, ok := l.sent[waitID]
	return id, ok
}

func (l *MemoryLedger) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.sent)
}

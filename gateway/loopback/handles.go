package loopback

import (
	stderrors "errors"
	"sync"
)

var errTableClosed = stderrors.New("handle table closed")

// handle identifies an open connection. Handle 0 is reserved and always invalid.
type handle uint32

// handleTable stores open sessions with free list reuse of released handles.
type handleTable struct {
	entries  []slot
	freeList []handle
	mu       sync.RWMutex
	closed   bool
}

type slot struct {
	session *Session
	valid   bool
}

func newHandleTable() *handleTable {
	return &handleTable{
		entries:  make([]slot, 0, 16),
		freeList: make([]handle, 0, 4),
	}
}

func (t *handleTable) create(s *Session) (handle, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		return 0, errTableClosed
	}

	e := slot{session: s, valid: true}
	if len(t.freeList) > 0 {
		h := t.freeList[len(t.freeList)-1]
		t.freeList = t.freeList[:len(t.freeList)-1]
		t.entries[h-1] = e
		return h, nil
	}

	t.entries = append(t.entries, e)
	return handle(len(t.entries)), nil
}

func (t *handleTable) get(h handle) (*Session, bool) {
	if h == 0 {
		return nil, false
	}

	t.mu.RLock()
	defer t.mu.RUnlock()

	idx := h - 1
	if int(idx) >= len(t.entries) {
		return nil, false
	}
	e := t.entries[idx]
	if !e.valid {
		return nil, false
	}
	return e.session, true
}

// drop releases h if it still holds s, reporting false otherwise
func (t *handleTable) drop(h handle, s *Session) bool {
	if h == 0 {
		return false
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	idx := h - 1
	if int(idx) >= len(t.entries) {
		return false
	}
	e := &t.entries[idx]
	if !e.valid || e.session != s {
		return false
	}
	e.valid = false
	e.session = nil
	t.freeList = append(t.freeList, h)
	return true
}

func (t *handleTable) len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.entries) - len(t.freeList)
}

func (t *handleTable) close() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		return
	}
	t.closed = true
	t.entries = nil
	t.freeList = nil
}

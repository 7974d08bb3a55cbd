package ui

import (
	"sync"
	"time"
)

type ActivityEntry struct {
	When   time.Time
	User   string // empty when auth is off
	Action string
	Detail string
}

// ActivityLog keeps the most recent mutations for the page footer.
type ActivityLog struct {
	mu  sync.Mutex
	buf []ActivityEntry
	max int
	now func() time.Time
}

func NewActivityLog(max int) *ActivityLog {
	if max <= 0 {
		max = 200
	}
	return &ActivityLog{max: max, now: time.Now}
}

func (l *ActivityLog) SetMax(max int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if max <= 0 {
		return
	}
	l.max = max
	l.trim()
}

func (l *ActivityLog) Append(user, action, detail string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.buf = append(l.buf, ActivityEntry{When: l.now(), User: user, Action: action, Detail: detail})
	l.trim()
}

// drop oldest; caller holds mu
func (l *ActivityLog) trim() {
	if len(l.buf) > l.max {
		l.buf = append([]ActivityEntry(nil), l.buf[len(l.buf)-l.max:]...)
	}
}

// List returns up to n entries, newest first. n <= 0 means all.
func (l *ActivityLog) List(n int) []ActivityEntry {
	l.mu.Lock()
	defer l.mu.Unlock()
	if n <= 0 || n > len(l.buf) {
		n = len(l.buf)
	}
	out := make([]ActivityEntry, 0, n)
	for i := len(l.buf) - 1; i >= len(l.buf)-n; i-- {
		out = append(out, l.buf[i])
	}
	return out
}

func (l *ActivityLog) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.buf)
}

package limiter

import (
	"context"
	"sync"
	"time"
)

type entry struct {
	fails        int
	lastFail     time.Time
	blockedUntil time.Time
}

// Memory is a process-local limiter used with the in-memory store.
type Memory struct {
	mu      sync.Mutex
	cfg     Settings
	now     func() time.Time
	entries map[string]*entry
}

// NewMemory constructs an in-memory limiter.
func NewMemory(cfg Settings) *Memory {
	return &Memory{cfg: cfg, now: time.Now, entries: make(map[string]*entry)}
}

func key(email string, ipHash []byte) string { return email + "\x00" + string(ipHash) }

// Allow reports whether login is currently allowed and a retry-after duration.
func (m *Memory) Allow(_ context.Context, email string, ipHash []byte) (bool, time.Duration, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[key(email, ipHash)]
	if !ok {
		return true, 0, nil
	}
	if wait := e.blockedUntil.Sub(m.now()); wait > 0 {
		return false, wait, nil
	}
	return true, 0, nil
}

// Success forgets the pair.
func (m *Memory) Success(_ context.Context, email string, ipHash []byte) error {
	m.mu.Lock()
	delete(m.entries, key(email, ipHash))
	m.mu.Unlock()
	return nil
}

// Failure records a failed attempt and blocks the pair once MaxFails is reached.
func (m *Memory) Failure(_ context.Context, email string, ipHash []byte) (bool, time.Duration, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	k := key(email, ipHash)
	e, ok := m.entries[k]
	if !ok {
		e = &entry{}
		m.entries[k] = e
	}
	if now.Sub(e.lastFail) > m.cfg.Window {
		e.fails = 0
	}
	e.fails++
	e.lastFail = now

	if e.fails < m.cfg.MaxFails {
		return false, 0, nil
	}
	e.blockedUntil = now.Add(m.cfg.BlockFor)
	return true, m.cfg.BlockFor, nil
}

package kv

import (
	"errors"
	"sync"
	"time"
)

var _ KeyValueStore = (*Memory)(nil)

// ErrKeyNotFound is returned by Memory when a key is absent or expired.
var ErrKeyNotFound = errors.New("key not found")

type entry struct {
	value     string
	expiresAt time.Time
}

// Memory is a map-backed KeyValueStore used by the tests.
type Memory struct {
	mu      sync.Mutex
	entries map[string]entry
}

func NewMemory() *Memory {
	return &Memory{entries: make(map[string]entry)}
}

func (m *Memory) Set(key, value string, exp time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	e := entry{value: value}
	if exp > 0 {
		e.expiresAt = time.Now().Add(exp)
	}
	m.entries[key] = e
	return nil
}

func (m *Memory) Get(key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[key]
	if !ok {
		return "", ErrKeyNotFound
	}
	if !e.expiresAt.IsZero() && time.Now().After(e.expiresAt) {
		delete(m.entries, key)
		return "", ErrKeyNotFound
	}
	return e.value, nil
}

func (m *Memory) Del(key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.entries[key]; !ok {
		return "", ErrKeyNotFound
	}
	delete(m.entries, key)
	return key, nil
}

func (m *Memory) Ping() error { return nil }

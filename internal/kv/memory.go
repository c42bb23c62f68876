package kv

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
)

// ErrInjected is returned by Memory when a failure has been switched on.
var ErrInjected = errors.New("kv: injected failure")

// Memory is an in-process Store used by tests.
type Memory struct {
	mu     sync.Mutex
	data   map[string]string
	closed bool

	// FailWrites makes Set and Delete return ErrInjected.
	FailWrites bool
	// FailReads makes Get and Keys return ErrInjected.
	FailReads bool
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{data: make(map[string]string)}
}

func (m *Memory) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return "", false, ErrClosed
	}
	if m.FailReads {
		return "", false, ErrInjected
	}
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *Memory) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClosed
	}
	if m.FailWrites {
		return ErrInjected
	}
	m.data[key] = value
	return nil
}

func (m *Memory) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClosed
	}
	if m.FailWrites {
		return ErrInjected
	}
	delete(m.data, key)
	return nil
}

func (m *Memory) Keys(_ context.Context, prefix string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return nil, ErrClosed
	}
	if m.FailReads {
		return nil, ErrInjected
	}
	var keys []string
	for k := range m.data {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys, nil
}

func (m *Memory) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

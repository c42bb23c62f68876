// Package store provides the append-only wellness record stores on top of a
// key-value backend.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"

	"github.com/rcliao/wellness/internal/kv"
	"github.com/rcliao/wellness/internal/model"
)

// Storage keys.
const (
	KeyTrackerEntries      = "tracker_entries"
	KeyLastEntry           = "last_entry"
	KeyAntianxietySessions = "antianxiety_sessions"
	KeyMeditationSessions  = "meditation_sessions"
	KeyProgramProgress     = "program_progress"
	ProgramFieldPrefix     = "program_day_"
)

// Store groups the record stores sharing one key-value backend.
type Store struct {
	kv    kv.Store
	log   *zap.Logger
	now   func() time.Time
	locks keyLocks

	idMu    sync.Mutex
	entropy *rand.Rand

	Tracker     *Tracker
	Antianxiety *Records[model.AntianxietySession]
	Meditations *Records[model.MeditationSession]
	Program     *Program
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for fail-closed reads and best-effort writes.
func WithLogger(l *zap.Logger) Option {
	return func(s *Store) { s.log = l }
}

// WithClock overrides time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// New wires the record stores over backend.
func New(backend kv.Store, opts ...Option) *Store {
	s := &Store{
		kv:      backend,
		log:     zap.NewNop(),
		now:     time.Now,
		entropy: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, o := range opts {
		o(s)
	}

	s.Tracker = &Tracker{Records: &Records[model.TrackerEntry]{
		s:      s,
		key:    KeyTrackerEntries,
		prefix: "entry",
		id:     func(e model.TrackerEntry) string { return e.ID },
		setID:  func(e *model.TrackerEntry, id string) { e.ID = id },
		at:     func(e model.TrackerEntry) time.Time { return e.Date },
		check:  validEntry,
	}}
	s.Antianxiety = &Records[model.AntianxietySession]{
		s:      s,
		key:    KeyAntianxietySessions,
		prefix: "antianxiety",
		id:     func(a model.AntianxietySession) string { return a.ID },
		setID:  func(a *model.AntianxietySession, id string) { a.ID = id },
		at:     func(a model.AntianxietySession) time.Time { return a.CompletedAt },
		check:  validExercise,
	}
	s.Meditations = &Records[model.MeditationSession]{
		s:      s,
		key:    KeyMeditationSessions,
		prefix: "meditation",
		id:     func(m model.MeditationSession) string { return m.ID },
		setID:  func(m *model.MeditationSession, id string) { m.ID = id },
		at:     func(m model.MeditationSession) time.Time { return m.CompletedAt },
		check:  validMeditation,
	}
	s.Program = &Program{s: s}
	return s
}

// Logger returns the store's logger.
func (s *Store) Logger() *zap.Logger {
	return s.log
}

// Now returns the store clock's current time.
func (s *Store) Now() time.Time {
	return s.now()
}

// Close closes the backend.
func (s *Store) Close() error {
	return s.kv.Close()
}

// NewID returns "<prefix>_<ULID>": time-ordered with a random suffix.
func (s *Store) NewID(prefix string) string {
	s.idMu.Lock()
	defer s.idMu.Unlock()
	return prefix + "_" + ulid.MustNew(ulid.Timestamp(s.now()), s.entropy).String()
}

// Get reads a raw value.
func (s *Store) Get(ctx context.Context, key string) (string, bool, error) {
	v, ok, err := s.kv.Get(ctx, key)
	if err != nil {
		return "", false, &StorageError{Op: "get", Key: key, Err: err}
	}
	return v, ok, nil
}

// Set writes a raw value.
func (s *Store) Set(ctx context.Context, key, value string) error {
	if err := s.kv.Set(ctx, key, value); err != nil {
		return &StorageError{Op: "set", Key: key, Err: err}
	}
	return nil
}

// Delete removes a key.
func (s *Store) Delete(ctx context.Context, key string) error {
	if err := s.kv.Delete(ctx, key); err != nil {
		return &StorageError{Op: "delete", Key: key, Err: err}
	}
	return nil
}

// Keys lists keys under prefix.
func (s *Store) Keys(ctx context.Context, prefix string) ([]string, error) {
	keys, err := s.kv.Keys(ctx, prefix)
	if err != nil {
		return nil, &StorageError{Op: "keys", Key: prefix, Err: err}
	}
	return keys, nil
}

// Update runs a read-modify-write of key while holding the key's write lock, so
// concurrent writers to the same key in this process cannot lose each other's
// changes. fn receives the current raw value and returns the value to store.
func (s *Store) Update(ctx context.Context, key string, fn func(raw string, ok bool) (string, error)) error {
	unlock := s.locks.lock(key)
	defer unlock()

	raw, ok, err := s.Get(ctx, key)
	if err != nil {
		return err
	}
	next, err := fn(raw, ok)
	if err != nil {
		return err
	}
	return s.Set(ctx, key, next)
}

// decodeList decodes a JSON list. Malformed data is logged and read as empty.
func decodeList[T any](log *zap.Logger, key, raw string) []T {
	if raw == "" {
		return []T{}
	}
	list, err := parseList[T](raw)
	if err != nil {
		log.Warn("malformed stored list, reading as empty",
			zap.String("key", key), zap.Error(err))
		return []T{}
	}
	return list
}

func parseList[T any](raw string) ([]T, error) {
	list := []T{}
	if err := json.Unmarshal([]byte(raw), &list); err != nil {
		return nil, err
	}
	return list, nil
}

func encode(v any) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("encode: %w", err)
	}
	return string(b), nil
}

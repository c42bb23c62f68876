package store

import (
	"context"
	"sort"
	"time"

	"go.uber.org/zap"
)

// Records is an append-only, newest-first list of T stored as JSON under one key.
// Every append rewrites the whole list.
type Records[T any] struct {
	s      *Store
	key    string
	prefix string
	id     func(T) string
	setID  func(*T, string)
	at     func(T) time.Time
	// check validates records arriving from outside Append, i.e. on import.
	check func(T) error
}

// Key returns the storage key backing the list.
func (r *Records[T]) Key() string {
	return r.key
}

// Append assigns a fresh id to rec, prepends it and writes the list back.
func (r *Records[T]) Append(ctx context.Context, rec T) (T, error) {
	r.setID(&rec, r.s.NewID(r.prefix))

	err := r.s.Update(ctx, r.key, func(raw string, ok bool) (string, error) {
		list := decodeList[T](r.s.log, r.key, raw)
		list = append([]T{rec}, list...)
		return encode(list)
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return rec, nil
}

// ReadAll returns the full list, newest first. An absent key reads as empty.
func (r *Records[T]) ReadAll(ctx context.Context) ([]T, error) {
	raw, _, err := r.s.Get(ctx, r.key)
	if err != nil {
		return nil, err
	}
	return decodeList[T](r.s.log, r.key, raw), nil
}

// First returns the newest record, or nil when the list is empty.
func (r *Records[T]) First(ctx context.Context) (*T, error) {
	list, err := r.ReadAll(ctx)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, nil
	}
	return &list[0], nil
}

// merge adds records whose ids are not already stored, keeping the list
// ordered newest first. Records failing the store's check are skipped.
// Returns how many were added and how many were rejected.
func (r *Records[T]) merge(ctx context.Context, recs []T) (added, skipped int, err error) {
	err = r.s.Update(ctx, r.key, func(raw string, ok bool) (string, error) {
		list := decodeList[T](r.s.log, r.key, raw)
		seen := make(map[string]bool, len(list))
		for _, rec := range list {
			seen[r.id(rec)] = true
		}
		added, skipped = 0, 0
		for _, rec := range recs {
			if r.check != nil {
				if err := r.check(rec); err != nil {
					r.s.log.Warn("skipping invalid imported record",
						zap.String("key", r.key), zap.String("id", r.id(rec)), zap.Error(err))
					skipped++
					continue
				}
			}
			id := r.id(rec)
			if id == "" {
				r.setID(&rec, r.s.NewID(r.prefix))
				id = r.id(rec)
			}
			if seen[id] {
				continue
			}
			seen[id] = true
			list = append(list, rec)
			added++
		}
		sort.SliceStable(list, func(i, j int) bool {
			return r.at(list[i]).After(r.at(list[j]))
		})
		return encode(list)
	})
	if err != nil {
		return 0, 0, err
	}
	return added, skipped, nil
}

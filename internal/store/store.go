// Package store provides a small key-value store with optional expiry. It
// backs the interest rate cache and any saved property inputs.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// Named expiry durations. Never keeps an entry until it is deleted.
const (
	Never         time.Duration = 0
	FiveMinutes                 = 5 * time.Minute
	ThirtyMinutes               = 30 * time.Minute
	OneHour                     = time.Hour
	OneDay                      = 24 * time.Hour
	OneWeek                     = 7 * OneDay
	OneMonth                    = 30 * OneDay
)

// NoExpiry is returned by TTL for entries stored with Never.
const NoExpiry time.Duration = -1

// ErrNotFound is returned for missing or expired keys.
var ErrNotFound = errors.New("key not found")

// Store is a string key-value store. A ttl of Never stores the value
// without expiry.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	// TTL reports the remaining lifetime of key, or NoExpiry.
	TTL(ctx context.Context, key string) (time.Duration, error)
}

// GetJSON decodes the JSON value stored at key into v.
func GetJSON(ctx context.Context, s Store, key string, v interface{}) error {
	raw, err := s.Get(ctx, key)
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		return fmt.Errorf("failed to decode %s: %w", key, err)
	}
	return nil
}

// SetJSON stores v at key as JSON.
func SetJSON(ctx context.Context, s Store, key string, v interface{}, ttl time.Duration) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	return s.Set(ctx, key, string(data), ttl)
}

// Valid reports whether key holds an unexpired value.
func Valid(ctx context.Context, s Store, key string) bool {
	_, err := s.Get(ctx, key)
	return err == nil
}

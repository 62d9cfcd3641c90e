package store

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
)

// ErrNotFound is returned when a key has no value.
var ErrNotFound = errors.New("store: key not found")

// Well-known keys. Collections live under a single key each; per-user values
// append the user id (see UserKey).
const (
	KeyProducts     = "products"
	KeyCategories   = "categories"
	KeyOrders       = "orders"
	KeyUsers        = "users"
	KeyReviews      = "reviews"
	KeyPayments     = "payments"
	KeyThemePfx     = "theme"
	KeyCardsPfx     = "cards"
	KeyFavoritesPfx = "favorites"
	KeyAddressesPfx = "addresses"
)

// UserKey builds a per-user key such as "theme:u-123".
func UserKey(prefix, userID string) string {
	return prefix + ":" + userID
}

// Store is a small typed key-value facade. Values are JSON documents; callers
// decode into their own types. Implementations must be safe for concurrent
// use.
type Store interface {
	Get(ctx context.Context, key string, dest any) error
	Set(ctx context.Context, key string, value any) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}

// Memory is the in-process implementation used in tests and local runs.
type Memory struct {
	mu   sync.RWMutex
	data map[string][]byte
}

func NewMemory() *Memory {
	return &Memory{data: make(map[string][]byte)}
}

func (m *Memory) Get(_ context.Context, key string, dest any) error {
	m.mu.RLock()
	raw, ok := m.data[key]
	m.mu.RUnlock()
	if !ok {
		return ErrNotFound
	}
	return json.Unmarshal(raw, dest)
}

func (m *Memory) Set(_ context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.data[key] = raw
	m.mu.Unlock()
	return nil
}

func (m *Memory) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	delete(m.data, key)
	m.mu.Unlock()
	return nil
}

func (m *Memory) Clear(_ context.Context) error {
	m.mu.Lock()
	m.data = make(map[string][]byte)
	m.mu.Unlock()
	return nil
}

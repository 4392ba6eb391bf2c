package usecase

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"sports-booking/internal/data/entity"
	"sports-booking/pkg/utils"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) PublishJSON(ctx context.Context, key string, v any) error {
	args := m.Called(ctx, key, v)
	return args.Error(0)
}

// memCache is a Cache kept in process. beforeSet runs once, ahead of the
// next write, with no lock held.
type memCache struct {
	mu         sync.Mutex
	entries    map[string][]byte
	versions   map[string]int64
	sets       int
	versionErr error
	beforeSet  func()
}

func newMemCache() *memCache {
	return &memCache{entries: map[string][]byte{}, versions: map[string]int64{}}
}

func (c *memCache) Get(_ context.Context, key string, dest any) (bool, error) {
	c.mu.Lock()
	raw, ok := c.entries[key]
	c.mu.Unlock()
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, dest)
}

func (c *memCache) Set(_ context.Context, key string, value any) error {
	c.mu.Lock()
	hook := c.beforeSet
	c.beforeSet = nil
	c.mu.Unlock()
	if hook != nil {
		hook()
	}

	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = raw
	c.sets++
	return nil
}

func (c *memCache) Delete(_ context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, key := range keys {
		delete(c.entries, key)
	}
	return nil
}

func (c *memCache) Version(_ context.Context, key string) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.versionErr != nil {
		return 0, c.versionErr
	}
	return c.versions[key], nil
}

func (c *memCache) Bump(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.versions[key]++
	return nil
}

type outcomeRecorder struct {
	mu       sync.Mutex
	outcomes map[string]int
}

func (r *outcomeRecorder) RecordBooking(operation, outcome string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.outcomes == nil {
		r.outcomes = map[string]int{}
	}
	r.outcomes[operation+":"+outcome]++
}

func (r *outcomeRecorder) count(key string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.outcomes[key]
}

// now is 2024-06-01 09:30 UTC in every service test
var testNow = time.Date(2024, 6, 1, 9, 30, 0, 0, time.UTC)

func testInfra(store *memStore) Infra {
	return Infra{
		Tx:       store,
		Location: time.UTC,
		Now:      func() time.Time { return testNow },
	}.withDefaults()
}

func sessionOf(u entity.User) utils.Session {
	return utils.Session{UserID: u.ID, Email: u.Email, Name: u.Name, Role: string(u.Role)}
}

func ptr[T any](v T) *T {
	return &v
}

func decimalOf(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

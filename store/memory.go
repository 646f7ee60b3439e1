package store

import (
	"context"
	"sync"
	"time"

	"github.com/rushteam/craftrec/core"
)

// MemoryStore 是内存实现的 Store，用于测试/开发/原型，进程重启后数据丢失。
type MemoryStore struct {
	mu     sync.RWMutex
	users  map[string]time.Time
	clicks map[string][]core.ClickRecord
	prefs  map[string]*core.UserPreference
	now    func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:  make(map[string]time.Time),
		clicks: make(map[string][]core.ClickRecord),
		prefs:  make(map[string]*core.UserPreference),
		now:    time.Now,
	}
}

func (m *MemoryStore) Name() string { return "memory" }

func (m *MemoryStore) AppendClick(_ context.Context, userID string, productID int64) error {
	if err := checkUser(userID); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	ts := m.now()
	if _, ok := m.users[userID]; !ok {
		m.users[userID] = ts
	}
	m.clicks[userID] = append(m.clicks[userID], core.ClickRecord{UserID: userID, ProductID: productID, Timestamp: ts})
	return nil
}

func (m *MemoryStore) RecentClicks(_ context.Context, userID string, limit int) ([]int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	log := m.clicks[userID]
	if limit <= 0 || limit > len(log) {
		limit = len(log)
	}
	out := make([]int64, 0, limit)
	for i := len(log) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, log[i].ProductID)
	}
	return out, nil
}

func (m *MemoryStore) GetPreference(_ context.Context, userID string) (*core.UserPreference, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return clonePreference(m.prefs[userID]), nil
}

func (m *MemoryStore) UpsertPreference(_ context.Context, pref *core.UserPreference) error {
	if pref == nil {
		return core.ErrStoreUserRequired
	}
	if err := checkUser(pref.UserID); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	cp := clonePreference(pref)
	cp.UpdatedAt = m.now()
	m.prefs[pref.UserID] = cp
	return nil
}

// HasUser 报告用户是否已登记（至少点击过一次）。
func (m *MemoryStore) HasUser(userID string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.users[userID]
	return ok
}

func (m *MemoryStore) Close() error { return nil }

var _ core.Store = (*MemoryStore)(nil)

package store

import (
	"context"
	"fmt"

	"github.com/rushteam/craftrec/core"
)

// 注意：此包只包含实现，接口定义在 core 包（core.ClickStore / core.PreferenceStore / core.Store）。

// Config 选择并配置点击/偏好存储后端。
type Config struct {
	// Backend: memory / sqlite / redis
	Backend string `koanf:"backend" validate:"oneof=memory sqlite redis"`

	SQLitePath string `koanf:"sqlite_path"`

	RedisAddr      string `koanf:"redis_addr"`
	RedisDB        int    `koanf:"redis_db" validate:"gte=0"`
	RedisKeyPrefix string `koanf:"redis_key_prefix"`
}

// New 按配置创建存储后端。
func New(ctx context.Context, cfg Config) (core.Store, error) {
	switch cfg.Backend {
	case "", "memory":
		return NewMemoryStore(), nil
	case "sqlite":
		return NewSQLiteStore(ctx, cfg.SQLitePath)
	case "redis":
		return NewRedisStore(ctx, cfg.RedisAddr, cfg.RedisDB, cfg.RedisKeyPrefix)
	default:
		return nil, fmt.Errorf("store: unknown backend %q", cfg.Backend)
	}
}

func checkUser(userID string) error {
	if userID == "" {
		return core.ErrStoreUserRequired
	}
	return nil
}

// clonePreference 复制一条偏好，调用方之间不共享 Tags 底层数组。
func clonePreference(p *core.UserPreference) *core.UserPreference {
	if p == nil {
		return nil
	}
	cp := *p
	cp.Tags = append([]string(nil), p.Tags...)
	return &cp
}

package core

import "context"

// ClickStore 是点击日志的领域接口，只追加。
//
// 实现：
//   - store.MemoryStore（测试/开发）
//   - store.SQLiteStore
//   - store.RedisStore
type ClickStore interface {
	// AppendClick 追加一次点击，同时登记用户
	AppendClick(ctx context.Context, userID string, productID int64) error

	// RecentClicks 返回最近 limit 次点击的商品 ID，最近的在前
	RecentClicks(ctx context.Context, userID string, limit int) ([]int64, error)
}

// PreferenceStore 是用户偏好的领域接口。
type PreferenceStore interface {
	// GetPreference 读取用户偏好；不存在时返回 (nil, nil)
	GetPreference(ctx context.Context, userID string) (*UserPreference, error)

	// UpsertPreference 整条替换用户偏好
	UpsertPreference(ctx context.Context, pref *UserPreference) error
}

// Store 是存储后端的完整接口。
type Store interface {
	ClickStore
	PreferenceStore

	// Name 返回存储后端名称（用于日志/监控）
	Name() string

	// Close 关闭连接/释放资源
	Close() error
}

var (
	// ErrStoreUserRequired 表示缺少 user_id
	ErrStoreUserRequired = NewDomainError(ModuleStore, ErrorCodeInvalidInput, "store: user id is required")
)

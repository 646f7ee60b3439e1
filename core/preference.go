package core

import "time"

// UserPreference 是用户保存的偏好，按 UserID 唯一；写入时整条替换，不做合并。
type UserPreference struct {
	UserID    string    `json:"user_id"`
	City      string    `json:"city,omitempty"`
	State     string    `json:"state,omitempty"`
	Tags      []string  `json:"tags,omitempty"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ClickRecord 是一次点击，只追加，不更新不删除。
type ClickRecord struct {
	UserID    string    `json:"user_id"`
	ProductID int64     `json:"product_id"`
	Timestamp time.Time `json:"ts"`
}

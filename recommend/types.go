package recommend

import (
	"time"

	"github.com/rushteam/craftrec/core"
)

// Request 是一次推荐请求，所有字段均可选。
type Request struct {
	UserID    string `json:"user_id,omitempty" validate:"omitempty,max=128"`
	City      string `json:"city,omitempty" validate:"omitempty,max=128"`
	State     string `json:"state,omitempty" validate:"omitempty,max=128"`
	Query     string `json:"q,omitempty" validate:"omitempty,max=256"`
	SimilarTo *int64 `json:"similar_to,omitempty"`
}

// Response 是推荐结果。Source 为作答策略名；matched_* 只在 location 作答时出现；
// Error 只在降级为 fallback 时出现。
type Response struct {
	RequestID    string         `json:"request_id"`
	Source       string         `json:"source"`
	MatchedCity  string         `json:"matched_city,omitempty"`
	MatchedState string         `json:"matched_state,omitempty"`
	Products     []core.Product `json:"products"`
	Error        string         `json:"error,omitempty"`
}

// Health 是服务健康信息。
type Health struct {
	Status            string    `json:"status"`
	ProductsCount     int       `json:"products_count"`
	SnapshotVersion   uint64    `json:"snapshot_version"`
	SnapshotBuiltAt   time.Time `json:"snapshot_built_at"`
	VectorizerEnabled bool      `json:"vectorizer_enabled"`
	SimilarityEnabled bool      `json:"similarity_enabled"`
	Store             string    `json:"store"`
}

// Options 是推荐参数，零值字段使用 core 中的默认值。
type Options struct {
	TopK        int
	SimilarTopK int
	ClickWindow int
	FuzzyCutoff float64
	Weights     core.Weights
}

// DefaultListLimit 是 ListProducts 的默认条数。
const DefaultListLimit = 50

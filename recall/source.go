package recall

import (
	"context"

	"github.com/rushteam/craftrec/core"
)

// Source 表示推荐链上的一个策略单元（相似/个性化/地点/搜索/热门）。
// 返回空结果表示"本策略不适用"，链会继续尝试下一个。
type Source interface {
	Name() string
	Recall(ctx context.Context, rctx *core.RecommendContext) ([]*core.Item, error)
}

// Terminal 由"一旦适用就终止链"的策略实现：即使结果为空，只要 Claims 返回 true，
// 链也以该策略作答，不再继续。Claims 在 Recall 之后调用。
type Terminal interface {
	Claims(rctx *core.RecommendContext) bool
}

// 请求级 Label key
const (
	LabelMatchedCity  = "matched_city"
	LabelMatchedState = "matched_state"
	LabelRecallSource = "recall_source"
)

// 策略名称，同时作为响应的 source 字段
const (
	SourceSimilar      = "similar"
	SourcePersonalized = "personalized"
	SourceLocation     = "location"
	SourceGlobalSearch = "global_search"
	SourceGlobal       = "global"
	SourceFallback     = "fallback"
)

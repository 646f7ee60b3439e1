package core

import "github.com/rushteam/craftrec/pkg/utils"

// RecommendContext 承载一次推荐请求的输入信号，贯穿整个召回链透传。
// 所有字段均可为空：空字段表示该信号不可用，对应的策略会被跳过。
type RecommendContext struct {
	RequestID string
	UserID    string

	// City/State 是用户给出的原始地点文本，模糊匹配前不做任何处理
	City  string
	State string

	// Query 是自由文本搜索词
	Query string

	// SimilarTo 是"相似商品"的目标商品 ID；nil 表示未指定
	SimilarTo *int64

	// Labels 是请求级标签，用于观测
	Labels map[string]utils.Label
}

// HasSimilarTo 是否指定了相似商品目标。
func (rctx *RecommendContext) HasSimilarTo() bool {
	return rctx != nil && rctx.SimilarTo != nil
}

// PutLabel 写入请求级 Label。
func (rctx *RecommendContext) PutLabel(key string, lbl utils.Label) {
	if rctx.Labels == nil {
		rctx.Labels = make(map[string]utils.Label)
	}
	if old, ok := rctx.Labels[key]; ok {
		rctx.Labels[key] = utils.MergeLabel(old, lbl)
		return
	}
	rctx.Labels[key] = lbl
}

// GetLabel 获取请求级 Label。
func (rctx *RecommendContext) GetLabel(key string) (utils.Label, bool) {
	if rctx.Labels == nil {
		return utils.Label{}, false
	}
	lbl, ok := rctx.Labels[key]
	return lbl, ok
}

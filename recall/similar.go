package recall

import (
	"context"

	"github.com/rushteam/craftrec/core"
	"github.com/rushteam/craftrec/filter"
	"github.com/rushteam/craftrec/pipeline"
	"github.com/rushteam/craftrec/rank"
	"github.com/rushteam/craftrec/rerank"
)

// Similar 是"相似商品"策略：按与目标商品的特征相似度降序，排除目标本身，取 SimilarTopK。
// 未指定目标、目标不在目录中或相似度矩阵不可用时返回空。
type Similar struct {
	Env *Env
}

func (r *Similar) Name() string { return SourceSimilar }

func (r *Similar) Recall(ctx context.Context, rctx *core.RecommendContext) ([]*core.Item, error) {
	if !rctx.HasSimilarTo() {
		return nil, nil
	}
	snap := r.Env.Snapshot
	target, ok := snap.IndexOf(*rctx.SimilarTo)
	if !ok {
		return nil, nil
	}
	if _, err := snap.Similarity(); err != nil {
		return nil, nil
	}

	p := &pipeline.Pipeline{Nodes: []pipeline.Node{
		&filter.FilterNode{Filters: []filter.Filter{filter.NewBlacklistFilter(*rctx.SimilarTo)}},
		&rank.SimilarNode{Snapshot: snap, Target: target},
		&rerank.TopNNode{N: r.Env.similarTopK()},
	}}
	return p.Run(ctx, rctx, snap.Items())
}

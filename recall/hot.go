package recall

import (
	"context"

	"github.com/rushteam/craftrec/core"
	"github.com/rushteam/craftrec/pipeline"
	"github.com/rushteam/craftrec/rank"
	"github.com/rushteam/craftrec/rerank"
)

// Hot 是全局热门策略：按原始热度降序取 TopK，永远作答（目录为空时结果为空）。
// Hot 同时实现了 Source 和 Node 接口，也被编排层用作故障兜底。
type Hot struct {
	Env *Env
}

func (r *Hot) Name() string        { return SourceGlobal }
func (r *Hot) Kind() pipeline.Kind { return pipeline.KindRecall }

// Process 实现 Node 接口，直接调用 Recall
func (r *Hot) Process(
	ctx context.Context,
	rctx *core.RecommendContext,
	_ []*core.Item,
) ([]*core.Item, error) {
	return r.Recall(ctx, rctx)
}

func (r *Hot) Recall(ctx context.Context, rctx *core.RecommendContext) ([]*core.Item, error) {
	p := &pipeline.Pipeline{Nodes: []pipeline.Node{
		&rank.PopularityNode{},
		&rerank.TopNNode{N: r.Env.topK()},
	}}
	return p.Run(ctx, rctx, r.Env.Snapshot.Items())
}

func (r *Hot) Claims(*core.RecommendContext) bool { return true }

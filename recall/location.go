package recall

import (
	"context"
	"strings"

	"github.com/rushteam/craftrec/core"
	"github.com/rushteam/craftrec/filter"
	"github.com/rushteam/craftrec/pipeline"
	"github.com/rushteam/craftrec/pkg/utils"
	"github.com/rushteam/craftrec/rank"
	"github.com/rushteam/craftrec/rerank"
)

// Location 是地点策略：模糊匹配请求的城市/省份，任一命中即以该策略作答。
// 候选为命中的城市桶（两者都命中时优先城市），否则为省份桶；有查询词时先做子串过滤。
// 命中的键写入请求级 Label matched_city / matched_state。
type Location struct {
	Env *Env
}

func (r *Location) Name() string { return SourceLocation }

func (r *Location) Recall(ctx context.Context, rctx *core.RecommendContext) ([]*core.Item, error) {
	snap := r.Env.Snapshot
	cityKey, cityOK := r.Env.Matcher.Match(rctx.City, snap.Cities())
	stateKey, stateOK := r.Env.Matcher.Match(rctx.State, snap.States())
	if !cityOK && !stateOK {
		return nil, nil
	}

	var bucket []int
	if cityOK {
		rctx.PutLabel(LabelMatchedCity, utils.Label{Value: cityKey, Source: "location"})
		bucket, _ = snap.Cities().Lookup(cityKey)
	}
	if stateOK {
		rctx.PutLabel(LabelMatchedState, utils.Label{Value: stateKey, Source: "location"})
		if !cityOK {
			bucket, _ = snap.States().Lookup(stateKey)
		}
	}

	if bucket == nil {
		bucket = []int{}
	}
	return runQueryPipeline(ctx, rctx, r.Env, snap.ItemsAt(bucket), cityKey, stateKey)
}

// Claims 在任一地点键命中后返回 true。
func (r *Location) Claims(rctx *core.RecommendContext) bool {
	_, city := rctx.GetLabel(LabelMatchedCity)
	_, state := rctx.GetLabel(LabelMatchedState)
	return city || state
}

// GlobalSearch 是全目录搜索策略：对整个目录做子串过滤后按查询相似度与热度排序。
// 有查询词且目录非空时以该策略作答。
type GlobalSearch struct {
	Env *Env
}

func (r *GlobalSearch) Name() string { return SourceGlobalSearch }

func (r *GlobalSearch) Recall(ctx context.Context, rctx *core.RecommendContext) ([]*core.Item, error) {
	if !r.Claims(rctx) {
		return nil, nil
	}
	return runQueryPipeline(ctx, rctx, r.Env, r.Env.Snapshot.Items(), "", "")
}

func (r *GlobalSearch) Claims(rctx *core.RecommendContext) bool {
	return strings.TrimSpace(rctx.Query) != "" && r.Env.Snapshot.Len() > 0
}

func runQueryPipeline(
	ctx context.Context,
	rctx *core.RecommendContext,
	env *Env,
	candidates []*core.Item,
	cityKey, stateKey string,
) ([]*core.Item, error) {
	nodes := make([]pipeline.Node, 0, 3)
	if qf := filter.NewQueryFilter(rctx.Query); qf != nil {
		nodes = append(nodes, &filter.FilterNode{Filters: []filter.Filter{qf}})
	}
	nodes = append(nodes,
		&rank.LocationNode{
			Snapshot: env.Snapshot,
			CityKey:  cityKey,
			StateKey: stateKey,
			Query:    rctx.Query,
			Weights:  env.Weights,
		},
		&rerank.TopNNode{N: env.topK()},
	)
	return (&pipeline.Pipeline{Nodes: nodes}).Run(ctx, rctx, candidates)
}

package rank

import (
	"context"

	"github.com/rushteam/craftrec/catalog"
	"github.com/rushteam/craftrec/core"
	"github.com/rushteam/craftrec/pipeline"
	"github.com/rushteam/craftrec/pkg/utils"
)

// SimilarNode 以预计算的特征相似度给候选打分：score = sim[target][i]。
// 相似度矩阵不可用时输出空结果。
type SimilarNode struct {
	Snapshot *catalog.Snapshot

	// Target 是目标商品在快照中的位置
	Target int
}

func (n *SimilarNode) Name() string        { return "rank.similar" }
func (n *SimilarNode) Kind() pipeline.Kind { return pipeline.KindRank }

func (n *SimilarNode) Process(
	_ context.Context,
	_ *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	sim, err := n.Snapshot.Similarity()
	if err != nil {
		return nil, nil
	}
	for _, it := range items {
		it.Score = sim.At(n.Target, it.Index)
		it.PutLabel("rank_model", utils.Label{Value: "similar", Source: "rank"})
	}
	sortByScore(items)
	return items, nil
}

package rank

import (
	"context"

	"github.com/rushteam/craftrec/core"
	"github.com/rushteam/craftrec/pipeline"
	"github.com/rushteam/craftrec/pkg/utils"
)

// PopularityNode 按原始热度降序排序，热度相同保持目录顺序。
type PopularityNode struct{}

func (n *PopularityNode) Name() string        { return "rank.popularity" }
func (n *PopularityNode) Kind() pipeline.Kind { return pipeline.KindRank }

func (n *PopularityNode) Process(
	_ context.Context,
	_ *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	for _, it := range items {
		it.Score = float64(it.Product.Popularity)
		it.PutLabel("rank_model", utils.Label{Value: "popularity", Source: "rank"})
	}
	sortByScore(items)
	return items, nil
}

package rank

import (
	"context"
	"strings"

	"github.com/rushteam/craftrec/catalog"
	"github.com/rushteam/craftrec/core"
	"github.com/rushteam/craftrec/feature"
	"github.com/rushteam/craftrec/pipeline"
	"github.com/rushteam/craftrec/pkg/utils"
)

// LocationNode 按地点与查询词给候选打分：
//
//	score = (城市命中 LocationCity | 省份命中 LocationState) + w_q·content(query, i) + w_pop·pop
//
// CityKey/StateKey 为空表示对应信号不可用；Query 为空时不计内容项。
// 向量器不可用时内容项为 0，其余项照常计算。
type LocationNode struct {
	Snapshot *catalog.Snapshot
	CityKey  string
	StateKey string
	Query    string
	Weights  core.Weights
}

func (n *LocationNode) Name() string        { return "rank.location" }
func (n *LocationNode) Kind() pipeline.Kind { return pipeline.KindRank }

func (n *LocationNode) Process(
	_ context.Context,
	_ *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	w := n.Weights

	var (
		content *feature.Vectorizer
		qvec    feature.SparseVector
	)
	if q := strings.TrimSpace(n.Query); q != "" {
		if v, err := n.Snapshot.Content(); err == nil {
			content = v
			qvec = v.Vectorize(q)
		}
	}

	for _, it := range items {
		var loc float64
		switch {
		case n.CityKey != "" && n.Snapshot.NormCity(it.Index) == n.CityKey:
			loc = w.LocationCity
		case n.StateKey != "" && n.Snapshot.NormState(it.Index) == n.StateKey:
			loc = w.LocationState
		}
		var queryScore float64
		if content != nil {
			queryScore = Dot(qvec, content, it.Index)
		}

		it.Score = loc + w.QueryContent*queryScore + w.LocationPopularity*popularity(it.Product)
		it.PutFeature("location_bonus", loc)
		it.PutFeature("query", queryScore)
		it.PutLabel("rank_model", utils.Label{Value: "location", Source: "rank"})
	}
	sortByScore(items)
	return items, nil
}

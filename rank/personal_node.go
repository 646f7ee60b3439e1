package rank

import (
	"context"

	"github.com/rushteam/craftrec/catalog"
	"github.com/rushteam/craftrec/core"
	"github.com/rushteam/craftrec/location"
	"github.com/rushteam/craftrec/pipeline"
	"github.com/rushteam/craftrec/pkg/utils"
)

// PersonalNode 按用户点击历史与保存的偏好给候选打分：
//
//	score = content + w_pop·pop + w_cat·jaccard(兴趣标签, 商品标签) + w_feat·mean(sim[clicked][i]) + 地点加分
//
// content 是点击商品内容向量均值与候选的相似度；地点加分为偏好城市命中 PersonalCity，
// 否则偏好省份命中 PersonalState。向量器不可用时输出空结果。
type PersonalNode struct {
	Snapshot *catalog.Snapshot

	// Clicked 是已解析的点击商品位置，最近的在前，可重复
	Clicked []int

	Preference *core.UserPreference
	Weights    core.Weights
}

func (n *PersonalNode) Name() string        { return "rank.personal" }
func (n *PersonalNode) Kind() pipeline.Kind { return pipeline.KindRank }

func (n *PersonalNode) Process(
	_ context.Context,
	_ *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	if len(n.Clicked) == 0 || len(items) == 0 {
		return nil, nil
	}
	content, err := n.Snapshot.Content()
	if err != nil {
		return nil, nil
	}
	sim, _ := n.Snapshot.Similarity()

	interests := make(map[string]struct{})
	for _, i := range n.Clicked {
		for _, t := range n.Snapshot.Product(i).Tags {
			interests[t] = struct{}{}
		}
	}
	var prefCity, prefState string
	if n.Preference != nil {
		for _, t := range n.Preference.Tags {
			interests[t] = struct{}{}
		}
		prefCity = location.Normalize(n.Preference.City)
		prefState = location.Normalize(n.Preference.State)
	}

	profile := content.Mean(n.Clicked)
	w := n.Weights
	for _, it := range items {
		p := it.Product

		contentScore := Dot(profile, content, it.Index)
		categoryScore := Jaccard(interests, p.Tags)

		var featureScore float64
		if sim != nil {
			for _, c := range n.Clicked {
				featureScore += sim.At(c, it.Index)
			}
			featureScore /= float64(len(n.Clicked))
		}

		var bonus float64
		switch {
		case prefCity != "" && n.Snapshot.NormCity(it.Index) == prefCity:
			bonus = w.PersonalCity
		case prefState != "" && n.Snapshot.NormState(it.Index) == prefState:
			bonus = w.PersonalState
		}

		it.Score = contentScore +
			w.PersonalPopularity*popularity(p) +
			w.PersonalCategory*categoryScore +
			w.PersonalFeature*featureScore +
			bonus
		it.PutFeature("content", contentScore)
		it.PutFeature("category", categoryScore)
		it.PutFeature("feature", featureScore)
		it.PutFeature("location_bonus", bonus)
		it.PutLabel("rank_model", utils.Label{Value: "personal", Source: "rank"})
	}

	sortByScore(items)
	return items, nil
}

// Jaccard 计算兴趣集合与标签列表（按集合处理）的 Jaccard 相似度；兴趣为空时为 0。
func Jaccard(interests map[string]struct{}, tags []string) float64 {
	if len(interests) == 0 {
		return 0
	}
	seen := make(map[string]struct{}, len(tags))
	inter := 0
	for _, t := range tags {
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		if _, ok := interests[t]; ok {
			inter++
		}
	}
	union := len(interests) + len(seen) - inter
	return float64(inter) / float64(union)
}

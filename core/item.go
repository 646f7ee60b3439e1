package core

import "github.com/rushteam/craftrec/pkg/utils"

// Item 是推荐链路中的统一承载结构：商品、分数、分项特征、标签。
// Labels 用于解释与观测；Score 用于排序决策。
type Item struct {
	ID int64

	// Index 是商品在目录快照中的位置，排序平局时按它保持目录顺序
	Index int

	Product  *Product
	Score    float64
	Features map[string]float64
	Labels   map[string]utils.Label
}

func NewItem(index int, p *Product) *Item {
	return &Item{
		ID:       p.ID,
		Index:    index,
		Product:  p,
		Features: make(map[string]float64),
		Labels:   make(map[string]utils.Label),
	}
}

// PutLabel 写入 Label；若已存在同名 key，则按默认 Merge 规则累积。
func (it *Item) PutLabel(key string, lbl utils.Label) {
	if it.Labels == nil {
		it.Labels = make(map[string]utils.Label)
	}
	if old, ok := it.Labels[key]; ok {
		it.Labels[key] = utils.MergeLabel(old, lbl)
		return
	}
	it.Labels[key] = lbl
}

// PutFeature 记录一个分项得分，便于 explain。
func (it *Item) PutFeature(key string, v float64) {
	if it.Features == nil {
		it.Features = make(map[string]float64)
	}
	it.Features[key] = v
}

// Products 把 items 展开为商品列表，保持顺序。
func Products(items []*Item) []Product {
	out := make([]Product, 0, len(items))
	for _, it := range items {
		if it == nil || it.Product == nil {
			continue
		}
		out = append(out, *it.Product)
	}
	return out
}

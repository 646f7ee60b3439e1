package rank

import (
	"sort"

	"github.com/rushteam/craftrec/core"
)

// sortByScore 按分数降序排序，分数相同按目录位置升序，保证结果可复现。
func sortByScore(items []*core.Item) {
	sort.SliceStable(items, func(i, j int) bool {
		if items[i] == nil {
			return false
		}
		if items[j] == nil {
			return true
		}
		if items[i].Score != items[j].Score {
			return items[i].Score > items[j].Score
		}
		return items[i].Index < items[j].Index
	})
}

func popularity(p *core.Product) float64 {
	return float64(p.Popularity) / 100
}

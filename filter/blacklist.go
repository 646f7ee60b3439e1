package filter

import (
	"context"

	"github.com/rushteam/craftrec/core"
)

// BlacklistFilter 过滤掉给定 ID 集合中的商品，
// 用于个性化排除已点击商品、相似推荐排除目标商品本身。
type BlacklistFilter struct {
	ItemIDs map[int64]struct{}
}

// NewBlacklistFilter 创建一个黑名单过滤器。
func NewBlacklistFilter(ids ...int64) *BlacklistFilter {
	set := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return &BlacklistFilter{ItemIDs: set}
}

func (f *BlacklistFilter) Name() string {
	return "filter.blacklist"
}

func (f *BlacklistFilter) ShouldFilter(
	_ context.Context,
	_ *core.RecommendContext,
	item *core.Item,
) (bool, error) {
	if item == nil {
		return true, nil
	}
	_, ok := f.ItemIDs[item.ID]
	return ok, nil
}

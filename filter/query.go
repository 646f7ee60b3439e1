package filter

import (
	"context"
	"strings"

	"github.com/rushteam/craftrec/core"
)

// QueryFilter 只保留名称、描述或任一标签包含查询词的商品。
// 大小写不敏感的字面子串匹配，不做分词也不做模糊。
type QueryFilter struct {
	query string
}

// NewQueryFilter 创建查询过滤器；q 全为空白时返回 nil。
// 非空查询原样小写后匹配，首尾空白也是查询的一部分。
func NewQueryFilter(q string) *QueryFilter {
	if strings.TrimSpace(q) == "" {
		return nil
	}
	return &QueryFilter{query: strings.ToLower(q)}
}

func (f *QueryFilter) Name() string {
	return "filter.query"
}

func (f *QueryFilter) ShouldFilter(
	_ context.Context,
	_ *core.RecommendContext,
	item *core.Item,
) (bool, error) {
	if item == nil || item.Product == nil {
		return true, nil
	}
	return !Matches(item.Product, f.query), nil
}

// Matches 判断商品是否包含已小写的查询词。
func Matches(p *core.Product, lowerQuery string) bool {
	if strings.Contains(strings.ToLower(p.Name), lowerQuery) ||
		strings.Contains(strings.ToLower(p.Description), lowerQuery) {
		return true
	}
	for _, t := range p.Tags {
		if strings.Contains(strings.ToLower(t), lowerQuery) {
			return true
		}
	}
	return false
}

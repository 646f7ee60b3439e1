package pipeline

import (
	"context"
	"fmt"

	"github.com/rushteam/craftrec/core"
)

// Pipeline 把一次打分拆成可组合的 Node 链：候选 → 过滤 → 打分排序 → 截断。
type Pipeline struct {
	Nodes []Node
}

// Run 依次执行每个 Node；任一 Node 出错即中止并返回带 Node 名称的错误。
func (p *Pipeline) Run(
	ctx context.Context,
	rctx *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	cur := items
	for _, node := range p.Nodes {
		next, err := node.Process(ctx, rctx, cur)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", node.Name(), err)
		}
		cur = next
		if len(cur) == 0 {
			return cur, nil
		}
	}
	return cur, nil
}

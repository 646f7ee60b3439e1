package recall

import (
	"context"
	"fmt"

	"github.com/rushteam/craftrec/core"
	"github.com/rushteam/craftrec/pkg/utils"
)

// Chain 按顺序执行策略，返回第一个非空结果；实现了 Terminal 且 Claims 为 true 的策略
// 即使结果为空也终止链。所有策略都不作答时返回 (nil, nil, nil)。
//
// 策略出错立即中止并返回错误，由编排层统一降级。
type Chain struct {
	Sources []Source
}

// NewDefaultChain 返回标准顺序：similar → personalized → location → global_search → global。
func NewDefaultChain(env *Env) *Chain {
	return &Chain{Sources: []Source{
		&Similar{Env: env},
		&Personal{Env: env},
		&Location{Env: env},
		&GlobalSearch{Env: env},
		&Hot{Env: env},
	}}
}

// Recall 返回作答的策略及其结果。
func (c *Chain) Recall(ctx context.Context, rctx *core.RecommendContext) (Source, []*core.Item, error) {
	for _, src := range c.Sources {
		items, err := src.Recall(ctx, rctx)
		if err != nil {
			return src, nil, fmt.Errorf("%s: %w", src.Name(), err)
		}
		answered := len(items) > 0
		if !answered {
			if t, ok := src.(Terminal); ok && t.Claims(rctx) {
				answered = true
			}
		}
		if !answered {
			continue
		}
		for _, it := range items {
			it.PutLabel(LabelRecallSource, utils.Label{Value: src.Name(), Source: "recall"})
		}
		return src, items, nil
	}
	return nil, nil, nil
}

package recall

import (
	"context"
	"fmt"

	"github.com/rushteam/craftrec/core"
	"github.com/rushteam/craftrec/filter"
	"github.com/rushteam/craftrec/pipeline"
	"github.com/rushteam/craftrec/rank"
	"github.com/rushteam/craftrec/rerank"
)

// Personal 是个性化策略：读取用户最近 ClickWindow 次点击与保存的偏好，
// 排除已点击商品后用 rank.PersonalNode 打分，取 TopK。
//
// 已不在目录中的点击被静默丢弃；没有任何点击可解析或向量器不可用时返回空。
type Personal struct {
	Env *Env
}

func (r *Personal) Name() string { return SourcePersonalized }

func (r *Personal) Recall(ctx context.Context, rctx *core.RecommendContext) ([]*core.Item, error) {
	if rctx.UserID == "" || r.Env.Clicks == nil {
		return nil, nil
	}
	snap := r.Env.Snapshot
	if _, err := snap.Content(); err != nil {
		return nil, nil
	}

	clicks, err := r.Env.Clicks.RecentClicks(ctx, rctx.UserID, r.Env.clickWindow())
	if err != nil {
		return nil, fmt.Errorf("recent clicks: %w", err)
	}
	resolved := make([]int, 0, len(clicks))
	for _, id := range clicks {
		if i, ok := snap.IndexOf(id); ok {
			resolved = append(resolved, i)
		}
	}
	if len(resolved) == 0 {
		return nil, nil
	}

	var pref *core.UserPreference
	if r.Env.Preferences != nil {
		pref, err = r.Env.Preferences.GetPreference(ctx, rctx.UserID)
		if err != nil {
			return nil, fmt.Errorf("get preference: %w", err)
		}
	}

	p := &pipeline.Pipeline{Nodes: []pipeline.Node{
		&filter.FilterNode{Filters: []filter.Filter{filter.NewBlacklistFilter(clicks...)}},
		&rank.PersonalNode{Snapshot: snap, Clicked: resolved, Preference: pref, Weights: r.Env.Weights},
		&rerank.TopNNode{N: r.Env.topK()},
	}}
	return p.Run(ctx, rctx, snap.Items())
}

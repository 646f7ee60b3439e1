// Package recommend 是推荐编排层：每个请求只读取一次目录快照，按固定顺序执行召回链，
// 任何错误或 panic 都降级为热门兜底（source=fallback）并附带错误信息，
// 调用方永远拿到一个可用的响应。
package recommend

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/rushteam/craftrec/catalog"
	"github.com/rushteam/craftrec/core"
	"github.com/rushteam/craftrec/filter"
	"github.com/rushteam/craftrec/location"
	"github.com/rushteam/craftrec/metrics"
	"github.com/rushteam/craftrec/pkg/logging"
	"github.com/rushteam/craftrec/pkg/utils"
	"github.com/rushteam/craftrec/recall"
)

// Recommender 组合目录快照、点击/偏好存储与召回链。并发安全。
type Recommender struct {
	holder *catalog.Holder
	store  core.Store
	opts   Options
	log    zerolog.Logger

	// newChain 默认 recall.NewDefaultChain，测试中替换以注入故障
	newChain func(env *recall.Env) *recall.Chain
}

// New 创建 Recommender。opts.Weights 为零值时使用 core.DefaultWeights()。
func New(holder *catalog.Holder, st core.Store, opts Options) *Recommender {
	if opts.Weights == (core.Weights{}) {
		opts.Weights = core.DefaultWeights()
	}
	return &Recommender{
		holder:   holder,
		store:    st,
		opts:     opts,
		log:      logging.Component("recommend"),
		newChain: recall.NewDefaultChain,
	}
}

// Holder 返回当前使用的快照持有者。
func (r *Recommender) Holder() *catalog.Holder { return r.holder }

// Recommend 执行一次推荐，永不返回错误。
func (r *Recommender) Recommend(ctx context.Context, req *Request) *Response {
	start := time.Now()
	if req == nil {
		req = &Request{}
	}
	rctx := &core.RecommendContext{
		RequestID: uuid.NewString(),
		UserID:    strings.TrimSpace(req.UserID),
		City:      req.City,
		State:     req.State,
		Query:     req.Query,
		SimilarTo: req.SimilarTo,
	}
	env := r.env(r.holder.Current())

	resp, err := r.run(ctx, env, rctx)
	if err != nil {
		resp = r.fallback(ctx, env, rctx, err)
	}
	took := time.Since(start)
	metrics.ObserveRecommend(resp.Source, took)
	r.log.Debug().
		Str("request_id", rctx.RequestID).
		Str("source", resp.Source).
		Int("products", len(resp.Products)).
		Uint64("snapshot", env.Snapshot.Version()).
		Fields(utils.LabelFields(rctx.Labels)).
		Dur("took", took).
		Msg("recommend answered")
	return resp
}

func (r *Recommender) env(snap *catalog.Snapshot) *recall.Env {
	return &recall.Env{
		Snapshot:    snap,
		Clicks:      r.store,
		Preferences: r.store,
		Matcher:     location.NewMatcher(r.opts.FuzzyCutoff),
		Weights:     r.opts.Weights,
		TopK:        r.opts.TopK,
		SimilarTopK: r.opts.SimilarTopK,
		ClickWindow: r.opts.ClickWindow,
	}
}

// panicError 包装召回过程中的 panic。
type panicError struct {
	value any
}

func (e *panicError) Error() string { return fmt.Sprintf("panic: %v", e.value) }

func (r *Recommender) run(ctx context.Context, env *recall.Env, rctx *core.RecommendContext) (resp *Response, err error) {
	defer func() {
		if p := recover(); p != nil {
			resp, err = nil, &panicError{value: p}
		}
	}()

	src, items, err := r.newChain(env).Recall(ctx, rctx)
	if err != nil {
		return nil, err
	}
	if src == nil {
		return nil, core.NewDomainError(core.ModuleRecommend, core.ErrorCodeInternalError, "recommend: no recall source answered")
	}

	resp = r.response(rctx, src.Name(), items)
	if src.Name() == recall.SourceLocation {
		if lbl, ok := rctx.GetLabel(recall.LabelMatchedCity); ok {
			resp.MatchedCity = lbl.Value
		}
		if lbl, ok := rctx.GetLabel(recall.LabelMatchedState); ok {
			resp.MatchedState = lbl.Value
		}
	}
	return resp, nil
}

// fallback 用同一个快照按热度返回 TopK。兜底本身失败时返回空列表。
func (r *Recommender) fallback(ctx context.Context, env *recall.Env, rctx *core.RecommendContext, cause error) *Response {
	reason := "error"
	var pe *panicError
	if errors.As(cause, &pe) {
		reason = "panic"
	}
	metrics.RecommendFallbacks.WithLabelValues(reason).Inc()
	r.log.Warn().
		Err(cause).
		Str("request_id", rctx.RequestID).
		Str("user_id", rctx.UserID).
		Str("reason", reason).
		Msg("recommend degraded to popularity fallback")

	items, err := (&recall.Hot{Env: env}).Recall(ctx, rctx)
	if err != nil {
		r.log.Error().Err(err).Str("request_id", rctx.RequestID).Msg("popularity fallback failed")
		items = nil
	}
	resp := r.response(rctx, recall.SourceFallback, items)
	resp.Error = cause.Error()
	return resp
}

func (r *Recommender) response(rctx *core.RecommendContext, source string, items []*core.Item) *Response {
	return &Response{
		RequestID: rctx.RequestID,
		Source:    source,
		Products:  core.Products(items),
	}
}

// Click 记录一次点击。不校验商品是否在目录中：目录可能稍后重新加载。
func (r *Recommender) Click(ctx context.Context, userID string, productID int64) error {
	if err := r.store.AppendClick(ctx, strings.TrimSpace(userID), productID); err != nil {
		metrics.StoreErrors.WithLabelValues("append_click").Inc()
		return fmt.Errorf("recommend: click: %w", err)
	}
	return nil
}

// SavePreferences 整条替换用户偏好。
func (r *Recommender) SavePreferences(ctx context.Context, pref *core.UserPreference) error {
	if pref == nil {
		return core.ErrStoreUserRequired
	}
	p := *pref
	p.UserID = strings.TrimSpace(p.UserID)
	p.UpdatedAt = time.Now().UTC()
	if err := r.store.UpsertPreference(ctx, &p); err != nil {
		metrics.StoreErrors.WithLabelValues("upsert_preference").Inc()
		return fmt.Errorf("recommend: save preferences: %w", err)
	}
	return nil
}

// GetPreferences 读取用户偏好；不存在时返回 (nil, nil)。
func (r *Recommender) GetPreferences(ctx context.Context, userID string) (*core.UserPreference, error) {
	pref, err := r.store.GetPreference(ctx, strings.TrimSpace(userID))
	if err != nil {
		metrics.StoreErrors.WithLabelValues("get_preference").Inc()
		return nil, fmt.Errorf("recommend: get preferences: %w", err)
	}
	return pref, nil
}

// ListProducts 按目录顺序列出商品；q 非空时做大小写不敏感的子串过滤。
// limit <= 0 时使用 DefaultListLimit。
func (r *Recommender) ListProducts(q string, limit int) []core.Product {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	snap := r.holder.Current()
	lq := strings.ToLower(q)
	if strings.TrimSpace(q) == "" {
		lq = ""
	}

	out := make([]core.Product, 0, min(limit, snap.Len()))
	for i := 0; i < snap.Len() && len(out) < limit; i++ {
		p := snap.Product(i)
		if lq != "" && !filter.Matches(p, lq) {
			continue
		}
		out = append(out, *p)
	}
	return out
}

// Health 返回当前快照状态。
func (r *Recommender) Health() Health {
	snap := r.holder.Current()
	_, contentErr := snap.Content()
	_, simErr := snap.Similarity()
	h := Health{
		Status:            "ok",
		ProductsCount:     snap.Len(),
		SnapshotVersion:   snap.Version(),
		SnapshotBuiltAt:   snap.BuiltAt(),
		VectorizerEnabled: contentErr == nil,
		SimilarityEnabled: simErr == nil,
	}
	if r.store != nil {
		h.Store = r.store.Name()
	}
	return h
}

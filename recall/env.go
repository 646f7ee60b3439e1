package recall

import (
	"github.com/rushteam/craftrec/catalog"
	"github.com/rushteam/craftrec/core"
	"github.com/rushteam/craftrec/location"
)

// Env 是一次请求内所有策略共享的只读依赖。
// Snapshot 在请求开始时从 Holder 取一次，整条链都使用同一个快照。
type Env struct {
	Snapshot *catalog.Snapshot

	Clicks      core.ClickStore
	Preferences core.PreferenceStore
	Matcher     *location.Matcher
	Weights     core.Weights

	TopK        int // 默认 core.DefaultTopK
	SimilarTopK int // 默认 core.DefaultSimilarTopK
	ClickWindow int // 默认 core.DefaultClickWindow
}

func (e *Env) topK() int {
	if e.TopK > 0 {
		return e.TopK
	}
	return core.DefaultTopK
}

func (e *Env) similarTopK() int {
	if e.SimilarTopK > 0 {
		return e.SimilarTopK
	}
	return core.DefaultSimilarTopK
}

func (e *Env) clickWindow() int {
	if e.ClickWindow > 0 {
		return e.ClickWindow
	}
	return core.DefaultClickWindow
}

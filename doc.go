// Package craftrec 是一个面向手工艺品目录的混合推荐引擎。
//
// 设计要点：
// - Snapshot-first: 目录加载后构建不可变快照（地点索引、内容向量、特征相似度），整体原子替换
// - Pipeline: 每个策略都是 Filter → Rank → ReRank 的 Node 串联
// - Chain: similar → personalized → location → global_search → global，第一个作答的策略胜出
// - 任何故障都降级为热门兜底，调用方永远拿到可用结果
package craftrec

import (
	"context"

	"github.com/rushteam/craftrec/catalog"
	"github.com/rushteam/craftrec/core"
	"github.com/rushteam/craftrec/pipeline"
	"github.com/rushteam/craftrec/recommend"
	"github.com/rushteam/craftrec/store"
)

// 轻量 facade：便于嵌入方直接 import "craftrec" 使用核心抽象。
type (
	Product     = core.Product
	Request     = recommend.Request
	Response    = recommend.Response
	Recommender = recommend.Recommender
	Node        = pipeline.Node
	Kind        = pipeline.Kind
)

// NewInMemory 用给定商品与内存存储构建推荐器，适合嵌入和测试。
func NewInMemory(ctx context.Context, products []Product, opts recommend.Options) (*Recommender, error) {
	snap, err := catalog.Build(ctx, products, catalog.Options{})
	if err != nil {
		return nil, err
	}
	return recommend.New(catalog.NewHolder(snap), store.NewMemoryStore(), opts), nil
}

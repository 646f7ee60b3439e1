package catalog

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/rushteam/craftrec/core"
	"github.com/rushteam/craftrec/feature"
	"github.com/rushteam/craftrec/location"
	"github.com/rushteam/craftrec/pkg/logging"
)

var buildSeq atomic.Uint64

// Options 控制快照构建。
type Options struct {
	// MaxFeatures 是内容词表上限，<=0 时使用 core.MaxVocabulary
	MaxFeatures int

	// Workers 是相似度矩阵的并发度，<=0 时使用 GOMAXPROCS
	Workers int
}

// Snapshot 是一次目录加载的全部只读结构：商品列表、城市/省份索引、
// 内容向量器与特征相似度矩阵。构建完成后不再修改，可被任意多个请求并发读取。
// 目录变化时构建新的 Snapshot 并整体替换，见 Holder。
type Snapshot struct {
	version uint64
	builtAt time.Time

	products   []core.Product
	byID       map[int64]int
	normCities []string
	normStates []string

	cities *location.Index
	states *location.Index

	content    *feature.Vectorizer
	similarity *feature.SimilarityMatrix

	tags     []string
	maxPrice float64
}

// Build 从商品列表构建快照。内容向量器与相似度矩阵在两个 goroutine 中并行构建。
// 商品 ID 重复时返回 INVALID_INPUT 错误。
func Build(ctx context.Context, products []core.Product, opts Options) (*Snapshot, error) {
	start := time.Now()
	if opts.MaxFeatures <= 0 {
		opts.MaxFeatures = core.MaxVocabulary
	}

	s := &Snapshot{
		products:   make([]core.Product, len(products)),
		byID:       make(map[int64]int, len(products)),
		normCities: make([]string, len(products)),
		normStates: make([]string, len(products)),
	}
	copy(s.products, products)
	for i := range s.products {
		p := &s.products[i]
		p.Tags = append([]string(nil), p.Tags...)
		if _, dup := s.byID[p.ID]; dup {
			return nil, core.NewDomainError(core.ModuleCatalog, core.ErrorCodeInvalidInput,
				fmt.Sprintf("catalog: duplicate product id %d", p.ID))
		}
		s.byID[p.ID] = i
		s.normCities[i] = location.Normalize(p.City)
		s.normStates[i] = location.Normalize(p.State)
		if p.Price > s.maxPrice {
			s.maxPrice = p.Price
		}
	}
	s.cities = location.NewIndex(len(s.products), func(i int) string { return s.normCities[i] })
	s.states = location.NewIndex(len(s.products), func(i int) string { return s.normStates[i] })

	eg, gctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		s.content = feature.NewVectorizer(s.corpus(), opts.MaxFeatures)
		return nil
	})
	eg.Go(func() error {
		if len(s.products) == 0 {
			return nil
		}
		rows, encoder := s.featureRows()
		s.tags = encoder.Categories
		m, err := feature.NewSimilarityMatrix(gctx, rows, opts.Workers)
		if err != nil {
			return fmt.Errorf("similarity matrix: %w", err)
		}
		s.similarity = m
		return nil
	})
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	s.version = buildSeq.Add(1)
	s.builtAt = time.Now()

	log := logging.Component("catalog")
	log.Info().
		Uint64("version", s.version).
		Int("products", len(s.products)).
		Int("vocabulary", s.content.VocabularySize()).
		Int("tags", len(s.tags)).
		Dur("took", time.Since(start)).
		Msg("snapshot built")
	return s, nil
}

// corpus 拼接每个商品的 tags ⧺ name ⧺ description。
func (s *Snapshot) corpus() []string {
	docs := make([]string, len(s.products))
	for i := range s.products {
		p := &s.products[i]
		docs[i] = strings.Join(p.Tags, " ") + " " + p.Name + " " + p.Description
	}
	return docs
}

// featureRows 生成 [popularity/100, price/max_price] ⧺ one-hot(tags) 并按列归一化。
func (s *Snapshot) featureRows() ([][]float64, *feature.OneHotEncoder) {
	tagSets := make([][]string, len(s.products))
	for i := range s.products {
		tagSets[i] = s.products[i].Tags
	}
	encoder := feature.NewOneHotEncoder(tagSets)

	rows := make([][]float64, len(s.products))
	for i := range s.products {
		p := &s.products[i]
		row := make([]float64, 0, 2+encoder.Dim())
		row = append(row, float64(p.Popularity)/100)
		if s.maxPrice > 0 {
			row = append(row, p.Price/s.maxPrice)
		} else {
			row = append(row, 0)
		}
		rows[i] = encoder.AppendEncoded(row, p.Tags)
	}
	feature.MinMaxScale(rows)
	return rows, encoder
}

// Empty 返回一个空快照，未加载目录时使用。
func Empty() *Snapshot {
	s, _ := Build(context.Background(), nil, Options{})
	return s
}

// Version 是进程内单调递增的构建序号。
func (s *Snapshot) Version() uint64 { return s.version }

// BuiltAt 返回构建完成时间。
func (s *Snapshot) BuiltAt() time.Time { return s.builtAt }

// Len 返回商品数。
func (s *Snapshot) Len() int { return len(s.products) }

// Product 返回第 i 个商品。调用方不得修改。
func (s *Snapshot) Product(i int) *core.Product { return &s.products[i] }

// Products 返回商品列表（目录顺序）。调用方不得修改。
func (s *Snapshot) Products() []core.Product { return s.products }

// IndexOf 按 ID 查找商品位置。
func (s *Snapshot) IndexOf(id int64) (int, bool) {
	i, ok := s.byID[id]
	return i, ok
}

// NormCity 返回第 i 个商品归一化后的城市。
func (s *Snapshot) NormCity(i int) string { return s.normCities[i] }

// NormState 返回第 i 个商品归一化后的省份。
func (s *Snapshot) NormState(i int) string { return s.normStates[i] }

// Cities 返回城市索引。
func (s *Snapshot) Cities() *location.Index { return s.cities }

// States 返回省份索引。
func (s *Snapshot) States() *location.Index { return s.states }

// Content 返回内容向量器；不可用时返回 core.ErrVectorizerDisabled。
func (s *Snapshot) Content() (*feature.Vectorizer, error) {
	if !s.content.Enabled() {
		return nil, core.ErrVectorizerDisabled
	}
	return s.content, nil
}

// Similarity 返回特征相似度矩阵；目录为空时返回 core.ErrSimilarityDisabled。
func (s *Snapshot) Similarity() (*feature.SimilarityMatrix, error) {
	if s.similarity == nil {
		return nil, core.ErrSimilarityDisabled
	}
	return s.similarity, nil
}

// TagUniverse 返回字典序的标签全集。
func (s *Snapshot) TagUniverse() []string { return s.tags }

// MaxPrice 返回目录最高价。
func (s *Snapshot) MaxPrice() float64 { return s.maxPrice }

// Items 按目录顺序为每个商品生成新的候选 Item。
func (s *Snapshot) Items() []*core.Item {
	return s.ItemsAt(nil)
}

// ItemsAt 为给定位置生成候选 Item；positions 为 nil 时生成全部。
func (s *Snapshot) ItemsAt(positions []int) []*core.Item {
	if positions == nil {
		out := make([]*core.Item, len(s.products))
		for i := range s.products {
			out[i] = core.NewItem(i, &s.products[i])
		}
		return out
	}
	out := make([]*core.Item, len(positions))
	for k, i := range positions {
		out[k] = core.NewItem(i, &s.products[i])
	}
	return out
}

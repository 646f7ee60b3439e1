package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/rushteam/craftrec/catalog"
	"github.com/rushteam/craftrec/config"
	"github.com/rushteam/craftrec/core"
	"github.com/rushteam/craftrec/metrics"
	"github.com/rushteam/craftrec/pkg/logging"
	"github.com/rushteam/craftrec/recommend"
	"github.com/rushteam/craftrec/store"
)

// app 是装配好的运行时组件。
type app struct {
	cfg      *config.Config
	store    core.Store
	holder   *catalog.Holder
	reloader *catalog.Reloader
	rec      *recommend.Recommender
}

// newApp 加载配置并装配存储、目录与推荐器。
// 目录文件不存在时以空目录启动，其他加载错误直接返回。
func newApp(ctx context.Context, configPath string) (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	logging.Init(cfg.Log)
	log := logging.Component("main")

	src, err := catalog.NewFileSource(cfg.Catalog.Path, cfg.Catalog.ExcludeExpr)
	if err != nil {
		return nil, err
	}

	st, err := store.New(ctx, cfg.Store)
	if err != nil {
		return nil, err
	}

	holder := catalog.NewHolder(nil)
	reloader := &catalog.Reloader{
		Source: src,
		Holder: holder,
		Options: catalog.Options{
			MaxFeatures: cfg.Catalog.MaxFeatures,
			Workers:     cfg.Catalog.Workers,
		},
		OnSwap: func(s *catalog.Snapshot, took time.Duration) {
			metrics.ObserveSnapshot(s.Len(), s.Version(), took)
		},
	}
	if _, err := reloader.Reload(ctx); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			_ = st.Close()
			return nil, fmt.Errorf("initial catalog load: %w", err)
		}
		log.Warn().Str("path", cfg.Catalog.Path).Msg("catalog file not found, starting with an empty catalog")
	}

	rec := recommend.New(holder, st, recommend.Options{
		TopK:        cfg.Recommend.TopK,
		SimilarTopK: cfg.Recommend.SimilarTopK,
		ClickWindow: cfg.Recommend.ClickWindow,
		FuzzyCutoff: cfg.Recommend.FuzzyCutoff,
		Weights:     cfg.Recommend.Weights,
	})

	log.Info().
		Str("store", st.Name()).
		Int("products", holder.Current().Len()).
		Msg("craftrec ready")

	return &app{
		cfg:      cfg,
		store:    st,
		holder:   holder,
		reloader: reloader,
		rec:      rec,
	}, nil
}

func (a *app) Close() error {
	return a.store.Close()
}

// Package metrics 定义推荐服务的 Prometheus 指标，进程内全局注册一次。
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RecommendRequests 按作答策略统计推荐请求数。
	// Labels:
	//   - source: similar / personalized / location / global_search / global / fallback
	RecommendRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "craftrec_recommend_requests_total",
			Help: "Total number of recommend requests by answering source",
		},
		[]string{"source"},
	)

	// RecommendDuration 推荐请求耗时。
	RecommendDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "craftrec_recommend_duration_seconds",
			Help:    "Duration of recommend requests in seconds",
			Buckets: []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		},
		[]string{"source"},
	)

	// RecommendFallbacks 统计降级为热门兜底的次数。
	// Labels:
	//   - reason: error / panic
	RecommendFallbacks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "craftrec_recommend_fallbacks_total",
			Help: "Total number of recommend requests degraded to the popularity fallback",
		},
		[]string{"reason"},
	)

	// SnapshotProducts 当前目录快照的商品数。
	SnapshotProducts = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "craftrec_snapshot_products",
		Help: "Number of products in the current catalog snapshot",
	})

	// SnapshotVersion 当前目录快照版本号。
	SnapshotVersion = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "craftrec_snapshot_version",
		Help: "Version of the current catalog snapshot",
	})

	// SnapshotBuildDuration 目录快照构建耗时（加载 + 向量器 + 相似度矩阵）。
	SnapshotBuildDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "craftrec_snapshot_build_duration_seconds",
		Help:    "Duration of catalog snapshot builds in seconds",
		Buckets: prometheus.ExponentialBuckets(0.001, 4, 8),
	})

	// StoreErrors 统计存储操作失败次数。
	StoreErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "craftrec_store_errors_total",
			Help: "Total number of failed store operations",
		},
		[]string{"op"},
	)
)

// ObserveRecommend 记录一次推荐请求。
func ObserveRecommend(source string, took time.Duration) {
	RecommendRequests.WithLabelValues(source).Inc()
	RecommendDuration.WithLabelValues(source).Observe(took.Seconds())
}

// ObserveSnapshot 记录一次快照发布。
func ObserveSnapshot(products int, version uint64, took time.Duration) {
	SnapshotProducts.Set(float64(products))
	SnapshotVersion.Set(float64(version))
	SnapshotBuildDuration.Observe(took.Seconds())
}

// internal/pkg/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// 订单流水线的核心指标。注册到默认 Registry，由 /metrics 暴露。
var (
	OrdersProcessed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "forno_orders_processed_total",
		Help: "Number of processed orders, partitioned by outcome.",
	}, []string{"status"})

	PromotionsApplied = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "forno_promotions_applied_total",
		Help: "Number of promotions applied, partitioned by strategy kind.",
	}, []string{"kind"})

	OrderTotalPrice = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "forno_order_total_price",
		Help:    "Distribution of order totals before promotion, in the smallest currency unit.",
		Buckets: prometheus.ExponentialBuckets(10, 2, 12),
	})

	// DepletionFailures 记录订单已落库但库存扣减失败的次数。
	// 这个指标不为零时需要人工介入，见 inventory 服务的说明。
	DepletionFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "forno_inventory_depletion_failures_total",
		Help: "Orders persisted whose inventory depletion failed afterwards.",
	})
)

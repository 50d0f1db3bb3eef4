// Package metrics 提供基于Prometheus的指标收集
//
// 可观测性三支柱之一（Tracing、Metrics、Logging）：
// - **Metrics（指标）**: 回答"有多少？多快？"（本模块）
// - **Logging（日志）**: 回答"发生了什么？"（日志中间件）
//
// 核心概念：
// 1. Counter（计数器）：只增不减的累计值（请求总数、订单总数）
// 2. Gauge（仪表盘）：可增可减的瞬时值（正在处理的请求数）
// 3. Histogram（直方图）：观测值的分布（请求耗时、订单金额）
//
// Prometheus Server每隔固定周期抓取/metrics端点，存储时序数据，
// Grafana连接Prometheus做可视化与告警。
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// initialized 标记是否已初始化（防止重复注册）
	initialized bool

	// HTTP请求相关指标

	// HTTPRequestsTotal HTTP请求总数（Counter）
	// 标签：method（GET/POST）、path（/api/v1/purchase）、status（200/500）
	HTTPRequestsTotal *prometheus.CounterVec

	// HTTPRequestDuration HTTP请求耗时（Histogram）
	HTTPRequestDuration *prometheus.HistogramVec

	// HTTPRequestsInProgress 正在处理的HTTP请求数（Gauge）
	HTTPRequestsInProgress prometheus.Gauge

	// 业务指标

	// PurchasesTotal 购书请求总数（Counter）
	// 标签：result（success/customer_not_found/book_not_found/
	//       insufficient_stock/insufficient_balance/tx_failure）
	PurchasesTotal *prometheus.CounterVec

	// PurchaseDuration 购书事务耗时（Histogram）
	PurchaseDuration prometheus.Histogram

	// PurchaseAmount 订单金额分布（Histogram，单位：分）
	PurchaseAmount prometheus.Histogram
)

// InitMetrics 初始化所有Prometheus指标
//
// 必须在程序启动时调用一次，用于注册所有指标到全局Registry
//
// 设计要点：
// 1. 使用promauto.New*自动注册到默认Registry
// 2. Counter使用*Vec支持标签（多维度统计）
// 3. Histogram的Buckets根据业务场景定制
func InitMetrics() {
	// 防止重复初始化
	if initialized {
		return
	}
	initialized = true

	// HTTP请求指标
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "HTTP请求总数",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "http_request_duration_seconds",
			Help: "HTTP请求耗时（秒）",
			// 桶设置：1ms、10ms、100ms、500ms、1s、5s、10s
			Buckets: []float64{0.001, 0.01, 0.1, 0.5, 1, 5, 10},
		},
		[]string{"method", "path"},
	)

	HTTPRequestsInProgress = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_requests_in_progress",
			Help: "正在处理的HTTP请求数",
		},
	)

	// 购书业务指标
	PurchasesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "purchases_total",
			Help: "购书请求总数",
		},
		[]string{"result"},
	)

	PurchaseDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "purchase_duration_seconds",
			Help:    "购书事务耗时（秒）",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5},
		},
	)

	PurchaseAmount = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name: "purchase_amount_fen",
			Help: "订单金额分布（分）",
			// 10元、50元、100元、500元、1000元、5000元
			Buckets: []float64{1000, 5000, 10000, 50000, 100000, 500000},
		},
	)
}

// GinMiddleware HTTP指标采集中间件
// 采集：请求总数、耗时、并发数
// 注意：path使用路由模板（c.FullPath）而非原始URL，防止标签基数爆炸
func GinMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		HTTPRequestsInProgress.Inc()

		c.Next()

		HTTPRequestsInProgress.Dec()

		path := c.FullPath()
		if path == "" {
			path = "unmatched" // 404等未命中路由的请求
		}

		HTTPRequestsTotal.WithLabelValues(
			c.Request.Method,
			path,
			strconv.Itoa(c.Writer.Status()),
		).Inc()

		HTTPRequestDuration.WithLabelValues(
			c.Request.Method,
			path,
		).Observe(time.Since(start).Seconds())
	}
}

// ObservePurchase 记录一次购书请求的结果与耗时
// result取值与错误分类一一对应，totalFen仅在成功时记录
func ObservePurchase(result string, totalFen int64, elapsed time.Duration) {
	PurchasesTotal.WithLabelValues(result).Inc()
	PurchaseDuration.Observe(elapsed.Seconds())
	if result == "success" {
		PurchaseAmount.Observe(float64(totalFen))
	}
}

// Package metrics 提供 Prometheus 指标注册与暴露
package metrics

import (
	"context"
	"fmt"
	"net/http"

	"github.com/agrigrow/storefront/pkg/logger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics 指标集合
type Metrics struct {
	// HTTP 请求计数（按方法、路径、状态码）
	HTTPRequestsTotal *prometheus.CounterVec
	// HTTP 请求耗时
	HTTPRequestDuration *prometheus.HistogramVec

	// 购物车变更计数（按操作）
	CartMutationsTotal *prometheus.CounterVec
	// 购物车持久化降级计数
	CartPersistenceFailures prometheus.Counter

	// 结算计数（按结果）
	CheckoutsTotal *prometheus.CounterVec
	// 订单创建计数
	OrdersTotal prometheus.Counter
}

// New 创建并注册指标实例
func New(serviceName string) *Metrics {
	m := &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "agrigrow",
			Subsystem: serviceName,
			Name:      "http_requests_total",
			Help:      "Total HTTP requests",
		}, []string{"method", "path", "status"}),
		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "agrigrow",
			Subsystem: serviceName,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "path"}),
		CartMutationsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "agrigrow",
			Subsystem: serviceName,
			Name:      "cart_mutations_total",
			Help:      "Total cart mutations",
		}, []string{"op"}),
		CartPersistenceFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "agrigrow",
			Subsystem: serviceName,
			Name:      "cart_persistence_failures_total",
			Help:      "Cart saves that fell back to memory-only operation",
		}),
		CheckoutsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "agrigrow",
			Subsystem: serviceName,
			Name:      "checkouts_total",
			Help:      "Total checkout attempts",
		}, []string{"result"}),
		OrdersTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "agrigrow",
			Subsystem: serviceName,
			Name:      "orders_total",
			Help:      "Total orders created",
		}),
	}

	prometheus.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.CartMutationsTotal,
		m.CartPersistenceFailures,
		m.CheckoutsTotal,
		m.OrdersTotal,
	)
	return m
}

// Serve 启动独立的 Prometheus 指标 HTTP 服务
func Serve(port int, path string) {
	mux := http.NewServeMux()
	mux.Handle(path, promhttp.Handler())
	addr := fmt.Sprintf(":%d", port)

	go func() {
		logger.Info(context.Background(), "metrics server listening", "addr", addr, "path", path)
		if err := http.ListenAndServe(addr, mux); err != nil && err != http.ErrServerClosed {
			logger.Error(context.Background(), "metrics server stopped", "error", err)
		}
	}()
}

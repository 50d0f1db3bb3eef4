package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

// TestInitMetrics 测试指标初始化
func TestInitMetrics(t *testing.T) {
	InitMetrics()

	if HTTPRequestsTotal == nil {
		t.Error("HTTPRequestsTotal未初始化")
	}
	if HTTPRequestDuration == nil {
		t.Error("HTTPRequestDuration未初始化")
	}
	if HTTPRequestsInProgress == nil {
		t.Error("HTTPRequestsInProgress未初始化")
	}
	if PurchasesTotal == nil {
		t.Error("PurchasesTotal未初始化")
	}
}

// TestInitMetrics_Idempotent 测试重复初始化不会panic（重复注册会panic）
func TestInitMetrics_Idempotent(t *testing.T) {
	InitMetrics()
	InitMetrics() // 第二次调用应该直接返回
}

// TestObservePurchase 测试购书指标采集
func TestObservePurchase(t *testing.T) {
	InitMetrics()

	before := testutil.ToFloat64(PurchasesTotal.WithLabelValues("success"))

	ObservePurchase("success", 6000, 50*time.Millisecond)
	ObservePurchase("success", 4000, 30*time.Millisecond)
	ObservePurchase("insufficient_stock", 0, 10*time.Millisecond)

	if got := testutil.ToFloat64(PurchasesTotal.WithLabelValues("success")); got != before+2 {
		t.Errorf("success计数期望%f，实际%f", before+2, got)
	}
	if got := testutil.ToFloat64(PurchasesTotal.WithLabelValues("insufficient_stock")); got < 1 {
		t.Errorf("insufficient_stock计数期望>=1，实际%f", got)
	}
}

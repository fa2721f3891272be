package monitoring

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMonitor_GetMetrics(t *testing.T) {
	m := NewMonitor()
	m.RecordMetric("store_backend", "memory")

	metrics := m.GetMetrics()

	value, exists := metrics["store_backend"]
	if !exists {
		t.Fatalf("Expected 'store_backend' to be present in metrics, but it was not")
	}
	if value != "memory" {
		t.Errorf("Expected 'store_backend' to be \"memory\", but got %v", value)
	}

	if _, exists = metrics["uptime_seconds"]; !exists {
		t.Errorf("Expected 'uptime_seconds' to be present in metrics, but it was not")
	}
}

func TestMonitor_StatusHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)

	m := NewMonitor()
	m.RecordMetric("store_backend", "memory")

	router := gin.New()
	router.GET("/status", m.StatusHandler())

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/status", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("GET /status code = %d, want 200", w.Code)
	}

	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON body: %v", err)
	}
	if body["store_backend"] != "memory" {
		t.Errorf("store_backend = %v, want \"memory\"", body["store_backend"])
	}
	if _, exists := body["uptime_seconds"]; !exists {
		t.Errorf("Expected 'uptime_seconds' to be present in status body, but it was not")
	}
}

func TestMonitor_Counters(t *testing.T) {
	m := NewMonitor()
	reg := prometheus.NewRegistry()
	m.Register(reg)

	m.RecordCharges(3)
	m.RecordChat(false)
	m.RecordChat(true)

	if got := testutil.ToFloat64(m.charges); got != 3 {
		t.Errorf("charges counter = %v, want 3", got)
	}
	if got := testutil.ToFloat64(m.chatReqs); got != 2 {
		t.Errorf("chat requests counter = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.chatErrs); got != 1 {
		t.Errorf("chat failures counter = %v, want 1", got)
	}
}

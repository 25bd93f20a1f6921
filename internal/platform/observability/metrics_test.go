package observability

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitMetrics_ServesRecordedCounters(t *testing.T) {
	provider, handler, err := InitMetrics(MetricsConfig{ServiceName: "credit-service"})
	require.NoError(t, err)
	require.NotNil(t, handler)

	meter := provider.Meter("credit-service-test")
	counter, err := meter.Int64Counter("analyses_started_total")
	require.NoError(t, err)
	counter.Add(context.Background(), 3)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	require.Equal(t, 200, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "analyses_started_total")
	assert.Contains(t, body, "credit-service")
	assert.Contains(t, body, "go_goroutines")
}

func TestInitMetrics_StampsServiceNameOnTargetInfo(t *testing.T) {
	_, handler, err := InitMetrics(MetricsConfig{ServiceName: "underwriting-worker"})
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body := rec.Body.String()
	assert.Contains(t, body, "target_info")
	assert.Contains(t, body, "underwriting-worker")
}

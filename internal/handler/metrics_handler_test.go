package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pingerFunc func(ctx context.Context) error

func (f pingerFunc) Ping(ctx context.Context) error { return f(ctx) }

func TestMetricsHandlerReady(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ok := pingerFunc(func(context.Context) error { return nil })
	down := pingerFunc(func(context.Context) error { return errors.New("connection refused") })

	tests := []struct {
		name   string
		deps   map[string]Pinger
		status int
	}{
		{name: "no dependencies", deps: nil, status: http.StatusOK},
		{name: "all healthy", deps: map[string]Pinger{"redis": ok}, status: http.StatusOK},
		{name: "one down", deps: map[string]Pinger{"redis": ok, "postgres": down}, status: http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewMetricsHandler(nil, tt.deps)
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/ready", nil)

			h.Ready(c)

			require.Equal(t, tt.status, w.Code)
			if tt.status == http.StatusServiceUnavailable {
				env := decodeEnvelope(t, w)
				require.NotNil(t, env.Error)
				checks, ok := env.Meta["checks"].(map[string]interface{})
				require.True(t, ok)
				assert.Equal(t, "connection refused", checks["postgres"])
				assert.Equal(t, "ok", checks["redis"])
			}
		})
	}
}

func TestMetricsHandlerPrometheusWithoutMetrics(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewMetricsHandler(nil, nil)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/metrics", nil)

	h.Prometheus(c)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

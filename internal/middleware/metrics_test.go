// AngelaMos | 2026
// metrics_test.go

package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"

	"github.com/prombirzha/marketplace/internal/metrics"
)

func TestMetricsLabelsByRoutePattern(t *testing.T) {
	m := metrics.New("mw")

	r := chi.NewRouter()
	r.Use(Metrics(m))
	r.Get("/orders/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	for _, path := range []string{"/orders/1", "/orders/2", "/nowhere"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body := rec.Body.String()

	assert.Contains(t, body, `mw_http_requests_total{method="GET",route="/orders/{id}",status="418"} 2`)
	assert.False(t, strings.Contains(body, `route="/orders/1"`))
}

// AngelaMos | 2026
// handler_test.go

package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pingFunc func(ctx context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

var (
	healthy   = pingFunc(func(context.Context) error { return nil })
	unhealthy = pingFunc(func(context.Context) error { return errors.New("down") })
)

func readiness(t *testing.T, h *Handler) (int, ReadinessResponse) {
	t.Helper()

	rec := httptest.NewRecorder()
	h.Readiness(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))

	var body ReadinessResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return rec.Code, body
}

func TestReadinessAllHealthy(t *testing.T) {
	h := NewHandler(
		Dependency{Name: "database", Checker: healthy},
		Dependency{Name: "redis", Checker: healthy},
	)

	code, body := readiness(t, h)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "ok", body.Status)
	require.Len(t, body.Checks, 2)
	assert.Equal(t, "database", body.Checks[0].Name)
}

func TestReadinessRequiredFailure(t *testing.T) {
	h := NewHandler(
		Dependency{Name: "database", Checker: unhealthy},
		Dependency{Name: "redis", Checker: healthy},
	)

	code, body := readiness(t, h)
	assert.Equal(t, http.StatusServiceUnavailable, code)
	assert.Equal(t, "degraded", body.Status)
	assert.False(t, body.Checks[0].Healthy)
}

func TestReadinessOptionalFailure(t *testing.T) {
	h := NewHandler(
		Dependency{Name: "database", Checker: healthy},
		Dependency{Name: "kafka", Checker: unhealthy, Optional: true},
	)

	code, body := readiness(t, h)
	assert.Equal(t, http.StatusOK, code)
	assert.False(t, body.Checks[1].Healthy)
}

func TestLivenessDuringShutdown(t *testing.T) {
	h := NewHandler()
	h.SetShutdown(true)

	rec := httptest.NewRecorder()
	h.Liveness(rec, httptest.NewRequest(http.MethodGet, "/livez", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

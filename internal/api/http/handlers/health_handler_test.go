package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubPinger struct {
	enabled bool
	err     error
}

func (s stubPinger) Enabled() bool                { return s.enabled }
func (s stubPinger) Ping(_ context.Context) error { return s.err }

func TestHealthHandler_Ready(t *testing.T) {
	tests := []struct {
		name   string
		deps   map[string]Pinger
		status int
	}{
		{"no dependencies", nil, http.StatusOK},
		{"disabled dependency", map[string]Pinger{"postgres": stubPinger{}}, http.StatusOK},
		{"healthy dependency", map[string]Pinger{"redis": stubPinger{enabled: true}}, http.StatusOK},
		{"unreachable dependency", map[string]Pinger{
			"postgres": stubPinger{enabled: true},
			"redis":    stubPinger{enabled: true, err: errors.New("down")},
		}, http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			app.Get("/ready", NewHealthHandler("svc", "dev", tt.deps).Ready)

			resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/ready", nil))
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)
		})
	}
}

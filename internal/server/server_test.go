// AngelaMos | 2026
// server_test.go

package server_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/gym-membership/internal/config"
	"github.com/carterperez-dev/gym-membership/internal/server"
)

type drainer struct{ shutdown bool }

func (d *drainer) SetShutdown(v bool) { d.shutdown = v }

func TestShutdownMarksDraining(t *testing.T) {
	d := &drainer{}
	srv := server.New(server.Config{
		ServerConfig:  config.ServerConfig{Host: "127.0.0.1", Port: 0},
		HealthHandler: d,
	})

	require.NoError(t, srv.Shutdown(context.Background(), 0))
	assert.True(t, d.shutdown)
}

func TestShutdownRespectsContext(t *testing.T) {
	srv := server.New(server.Config{HealthHandler: &drainer{}})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := srv.Shutdown(ctx, time.Minute)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRouterServesRoutes(t *testing.T) {
	srv := server.New(server.Config{})
	srv.Router().Get("/ping", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

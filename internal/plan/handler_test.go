// AngelaMos | 2026
// handler_test.go

package plan_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/gym-membership/internal/plan"
)

func passthrough(next http.Handler) http.Handler { return next }

func deny(http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	})
}

func newRouter(adminOnly func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	plan.NewHandler(plan.NewService(seeded())).RegisterRoutes(r, passthrough, adminOnly)
	return r
}

func serve(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHandlerListActive(t *testing.T) {
	rec := serve(newRouter(passthrough), http.MethodGet, "/plans/active", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Data []plan.PlanResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Len(t, body.Data, 2)
}

func TestHandlerCreate(t *testing.T) {
	r := newRouter(passthrough)

	rec := serve(r, http.MethodPost, "/plans", `{"name":"Annual","price_cents":39999,"duration_in_days":365}`)
	assert.Equal(t, http.StatusCreated, rec.Code)

	rec = serve(r, http.MethodPost, "/plans", `{"name":"","duration_in_days":0}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = serve(r, http.MethodPost, "/plans", `{not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandlerWritesNeedAdmin(t *testing.T) {
	r := newRouter(deny)

	assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, "/plans/"+monthlyID, "").Code)
	assert.Equal(t, http.StatusForbidden, serve(r, http.MethodPost, "/plans/"+monthlyID+"/deactivate", "").Code)
	assert.Equal(t, http.StatusForbidden, serve(r, http.MethodDelete, "/plans/"+monthlyID, "").Code)
}

func TestHandlerGetMissing(t *testing.T) {
	rec := serve(newRouter(passthrough), http.MethodGet, "/plans/nope", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

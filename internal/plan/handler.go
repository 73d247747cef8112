// AngelaMos | 2026
// handler.go

package plan

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/carterperez-dev/gym-membership/internal/core"
)

type Handler struct {
	service   *Service
	validator *validator.Validate
}

func NewHandler(service *Service) *Handler {
	return &Handler{
		service:   service,
		validator: validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator, adminOnly func(http.Handler) http.Handler,
) {
	r.Route("/plans", func(r chi.Router) {
		r.Use(authenticator)

		r.Get("/", h.List)
		r.Get("/active", h.ListActive)
		r.Get("/{planID}", h.Get)

		r.Group(func(r chi.Router) {
			r.Use(adminOnly)
			r.Post("/", h.Create)
			r.Put("/{planID}", h.Update)
			r.Post("/{planID}/deactivate", h.Deactivate)
			r.Delete("/{planID}", h.Delete)
		})
	})
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	plans, err := h.service.List(r.Context(), false)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ToPlanResponseList(plans))
}

func (h *Handler) ListActive(w http.ResponseWriter, r *http.Request) {
	plans, err := h.service.List(r.Context(), true)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ToPlanResponseList(plans))
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := core.PathID(r, "planID", "plan")
	if err != nil {
		core.HandleError(w, err, "plan")
		return
	}

	plan, err := h.service.Get(r.Context(), id)
	if err != nil {
		core.HandleError(w, err, "plan")
		return
	}

	core.OK(w, ToPlanResponse(plan))
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreatePlanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	plan, err := h.service.Create(r.Context(), req)
	if err != nil {
		core.HandleError(w, err, "plan")
		return
	}

	core.Created(w, ToPlanResponse(plan))
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var req UpdatePlanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	id, err := core.PathID(r, "planID", "plan")
	if err != nil {
		core.HandleError(w, err, "plan")
		return
	}

	plan, err := h.service.Update(r.Context(), id, req)
	if err != nil {
		core.HandleError(w, err, "plan")
		return
	}

	core.OK(w, ToPlanResponse(plan))
}

func (h *Handler) Deactivate(w http.ResponseWriter, r *http.Request) {
	id, err := core.PathID(r, "planID", "plan")
	if err != nil {
		core.HandleError(w, err, "plan")
		return
	}

	plan, err := h.service.Deactivate(r.Context(), id)
	if err != nil {
		core.HandleError(w, err, "plan")
		return
	}

	core.OK(w, ToPlanResponse(plan))
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := core.PathID(r, "planID", "plan")
	if err != nil {
		core.HandleError(w, err, "plan")
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		core.HandleError(w, err, "plan")
		return
	}

	core.NoContent(w)
}

// AngelaMos | 2026
// handler.go

package payment

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
	r.Route("/payments", func(r chi.Router) {
		r.Use(authenticator)

		r.Get("/", h.List)
		r.Post("/", h.Create)
		r.Get("/pending", h.Pending)
		r.Get("/prefill", h.Prefill)

		r.Route("/{paymentID}", func(r chi.Router) {
			r.Get("/", h.Get)
			r.Put("/", h.Edit)
			r.With(adminOnly).Delete("/", h.Delete)
		})
	})
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	loc := h.service.Clock().Location()

	from, err := core.QueryDate(r, "from", loc)
	if err != nil {
		core.HandleError(w, err, "payment")
		return
	}
	to, err := core.QueryDate(r, "to", loc)
	if err != nil {
		core.HandleError(w, err, "payment")
		return
	}

	memberID, err := core.QueryUUID(r, "member_id")
	if err != nil {
		core.HandleError(w, err, "payment")
		return
	}

	params := ListPaymentsParams{
		Page:     core.QueryInt(r, "page", 1),
		PageSize: core.QueryInt(r, "page_size", 50),
		From:     from,
		To:       to,
		MemberID: memberID,
		Status:   Status(r.URL.Query().Get("status")),
	}
	params.Normalize()

	result, err := h.service.List(r.Context(), params)
	if err != nil {
		core.HandleError(w, err, "payment")
		return
	}

	core.Paginated(w, ListResponse{
		Payments:            ToPaymentResponseList(result.Payments),
		TotalCompletedCents: result.TotalCompletedCents,
	}, params.Page, params.PageSize, result.Total)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreatePaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	p, err := h.service.Create(r.Context(), req)
	if err != nil {
		core.HandleError(w, err, "payment")
		return
	}

	core.Created(w, ToPaymentResponse(p))
}

func (h *Handler) Pending(w http.ResponseWriter, r *http.Request) {
	payments, err := h.service.Pending(r.Context())
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ToPaymentResponseList(payments))
}

func (h *Handler) Prefill(w http.ResponseWriter, r *http.Request) {
	memberID, err := core.QueryUUID(r, "member_id")
	if err != nil {
		core.HandleError(w, err, "member")
		return
	}
	if memberID == "" {
		core.BadRequest(w, "member_id is required")
		return
	}

	prefill, err := h.service.Prefill(r.Context(), memberID)
	if err != nil {
		core.HandleError(w, err, "member")
		return
	}

	core.OK(w, prefill)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := core.PathID(r, "paymentID", "payment")
	if err != nil {
		core.HandleError(w, err, "payment")
		return
	}

	p, err := h.service.Get(r.Context(), id)
	if err != nil {
		core.HandleError(w, err, "payment")
		return
	}

	core.OK(w, ToPaymentResponse(p))
}

func (h *Handler) Edit(w http.ResponseWriter, r *http.Request) {
	var req EditPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	id, err := core.PathID(r, "paymentID", "payment")
	if err != nil {
		core.HandleError(w, err, "payment")
		return
	}

	p, err := h.service.Edit(r.Context(), id, req)
	if err != nil {
		core.HandleError(w, err, "payment")
		return
	}

	core.OK(w, ToPaymentResponse(p))
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := core.PathID(r, "paymentID", "payment")
	if err != nil {
		core.HandleError(w, err, "payment")
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		core.HandleError(w, err, "payment")
		return
	}

	core.NoContent(w)
}

// AngelaMos | 2026
// handler.go

package member

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
	r.Route("/members", func(r chi.Router) {
		r.Use(authenticator)

		r.Get("/", h.List)
		r.Post("/", h.Create)
		r.Get("/search", h.Search)
		r.Get("/due", h.Due)
		r.Get("/check-in-candidates", h.CheckInCandidates)

		r.Route("/{memberID}", func(r chi.Router) {
			r.Get("/", h.Get)
			r.Put("/", h.Edit)
			r.Get("/detail", h.Detail)
			r.Post("/renew", h.Renew)
			r.With(adminOnly).Delete("/", h.Delete)
		})
	})
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	status, ok := ParseStatus(r.URL.Query().Get("status"))
	if !ok {
		core.BadRequest(w, "status must be one of active, expired, inactive, payment_due")
		return
	}

	params := ListMembersParams{
		Page:     core.QueryInt(r, "page", 1),
		PageSize: core.QueryInt(r, "page_size", 20),
		Search:   r.URL.Query().Get("search"),
		Status:   status,
	}
	params.Normalize()

	members, total, err := h.service.List(r.Context(), params)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.Paginated(
		w,
		ToMemberResponseList(members, h.service.Clock().Today()),
		params.Page,
		params.PageSize,
		total,
	)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateMemberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	member, err := h.service.Create(r.Context(), req)
	if err != nil {
		core.HandleError(w, err, "member")
		return
	}

	core.Created(w, ToMemberResponse(member, h.service.Clock().Today()))
}

func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	members, err := h.service.Search(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		core.HandleError(w, err, "member")
		return
	}

	core.OK(w, SearchResponse{
		Members: ToSearchResults(members, h.service.Clock().Today()),
	})
}

func (h *Handler) Due(w http.ResponseWriter, r *http.Request) {
	members, err := h.service.DueMembers(r.Context())
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ToMemberResponseList(members, h.service.Clock().Today()))
}

func (h *Handler) CheckInCandidates(w http.ResponseWriter, r *http.Request) {
	members, err := h.service.CheckInCandidates(r.Context())
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ToMemberResponseList(members, h.service.Clock().Today()))
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := core.PathID(r, "memberID", "member")
	if err != nil {
		core.HandleError(w, err, "member")
		return
	}

	member, err := h.service.Get(r.Context(), id)
	if err != nil {
		core.HandleError(w, err, "member")
		return
	}

	core.OK(w, ToMemberResponse(member, h.service.Clock().Today()))
}

func (h *Handler) Detail(w http.ResponseWriter, r *http.Request) {
	id, err := core.PathID(r, "memberID", "member")
	if err != nil {
		core.HandleError(w, err, "member")
		return
	}

	detail, err := h.service.Detail(r.Context(), id)
	if err != nil {
		core.HandleError(w, err, "member")
		return
	}

	core.OK(w, ToDetailResponse(detail, h.service.Clock().Today()))
}

func (h *Handler) Edit(w http.ResponseWriter, r *http.Request) {
	var req EditMemberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	id, err := core.PathID(r, "memberID", "member")
	if err != nil {
		core.HandleError(w, err, "member")
		return
	}

	member, err := h.service.Edit(r.Context(), id, req)
	if err != nil {
		core.HandleError(w, err, "member")
		return
	}

	core.OK(w, ToMemberResponse(member, h.service.Clock().Today()))
}

func (h *Handler) Renew(w http.ResponseWriter, r *http.Request) {
	var req RenewMembershipRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	id, err := core.PathID(r, "memberID", "member")
	if err != nil {
		core.HandleError(w, err, "member")
		return
	}

	member, err := h.service.Renew(r.Context(), id, req.MembershipPlanID)
	if err != nil {
		core.HandleError(w, err, "member")
		return
	}

	core.OK(w, ToMemberResponse(member, h.service.Clock().Today()))
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := core.PathID(r, "memberID", "member")
	if err != nil {
		core.HandleError(w, err, "member")
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		core.HandleError(w, err, "member")
		return
	}

	core.NoContent(w)
}

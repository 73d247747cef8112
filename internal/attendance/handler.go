// AngelaMos | 2026
// handler.go

package attendance

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/carterperez-dev/gym-membership/internal/core"
	"github.com/carterperez-dev/gym-membership/internal/member"
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
	r.Route("/attendance", func(r chi.Router) {
		r.Use(authenticator)

		r.Get("/", h.List)
		r.Get("/today", h.Today)
		r.Post("/check-in", h.CheckIn)
		r.Post("/quick-search", h.QuickSearch)
		r.Post("/quick-check-in", h.QuickCheckIn)

		r.Route("/{attendanceID}", func(r chi.Router) {
			r.Get("/", h.Get)
			r.Post("/check-out", h.CheckOut)
			r.With(adminOnly).Delete("/", h.Delete)
		})
	})
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	loc := h.service.Clock().Location()

	from, err := core.QueryDate(r, "from", loc)
	if err != nil {
		core.HandleError(w, err, "attendance")
		return
	}
	to, err := core.QueryDate(r, "to", loc)
	if err != nil {
		core.HandleError(w, err, "attendance")
		return
	}

	memberID, err := core.QueryUUID(r, "member_id")
	if err != nil {
		core.HandleError(w, err, "attendance")
		return
	}

	params := ListAttendanceParams{
		Page:     core.QueryInt(r, "page", 1),
		PageSize: core.QueryInt(r, "page_size", 50),
		From:     from,
		To:       to,
		MemberID: memberID,
	}
	params.Normalize()

	rows, total, err := h.service.List(r.Context(), params)
	if err != nil {
		core.HandleError(w, err, "attendance")
		return
	}

	core.Paginated(w, ToAttendanceResponseList(rows), params.Page, params.PageSize, total)
}

func (h *Handler) Today(w http.ResponseWriter, r *http.Request) {
	params := ListAttendanceParams{
		Page:     core.QueryInt(r, "page", 1),
		PageSize: core.QueryInt(r, "page_size", 50),
	}
	params.Normalize()

	rows, total, err := h.service.Today(r.Context(), params.Page, params.PageSize)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.Paginated(w, ToAttendanceResponseList(rows), params.Page, params.PageSize, total)
}

func (h *Handler) CheckIn(w http.ResponseWriter, r *http.Request) {
	var req CheckInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	result, err := h.service.CheckIn(r.Context(), req)
	if err != nil {
		core.HandleError(w, err, "attendance")
		return
	}

	core.Created(w, CheckInResponse{
		Attendance: ToAttendanceResponse(result.Attendance),
		Message:    result.Message,
	})
}

func (h *Handler) QuickSearch(w http.ResponseWriter, r *http.Request) {
	var req QuickSearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	result, err := h.service.QuickSearch(r.Context(), req.SearchTerm)
	if err != nil {
		core.HandleError(w, err, "member")
		return
	}

	core.OK(w, QuickSearchResponse{
		Success: result.Success,
		Message: result.Message,
		Members: member.ToSearchResults(result.Members, h.service.Clock().Today()),
	})
}

func (h *Handler) QuickCheckIn(w http.ResponseWriter, r *http.Request) {
	var req QuickCheckInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	result, err := h.service.QuickCheckIn(r.Context(), req.MemberID)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, result)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := core.PathID(r, "attendanceID", "attendance")
	if err != nil {
		core.HandleError(w, err, "attendance")
		return
	}

	a, err := h.service.Get(r.Context(), id)
	if err != nil {
		core.HandleError(w, err, "attendance")
		return
	}

	core.OK(w, ToAttendanceResponse(a))
}

func (h *Handler) CheckOut(w http.ResponseWriter, r *http.Request) {
	id, err := core.PathID(r, "attendanceID", "attendance")
	if err != nil {
		core.HandleError(w, err, "attendance")
		return
	}

	a, err := h.service.CheckOut(r.Context(), id)
	if err != nil {
		core.HandleError(w, err, "attendance")
		return
	}

	core.OK(w, ToAttendanceResponse(a))
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := core.PathID(r, "attendanceID", "attendance")
	if err != nil {
		core.HandleError(w, err, "attendance")
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		core.HandleError(w, err, "attendance")
		return
	}

	core.NoContent(w)
}

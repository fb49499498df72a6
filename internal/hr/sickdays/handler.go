package sickdays

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/meridian-erp/meridian-erp/internal/platform/httpx"
	internalShared "github.com/meridian-erp/meridian-erp/internal/shared"
)

// Handler exposes sick day endpoints.
type Handler struct {
	logger   *slog.Logger
	service  *Service
	validate *validator.Validate
}

// NewHandler constructs the handler.
func NewHandler(logger *slog.Logger, service *Service, validate *validator.Validate) *Handler {
	return &Handler{logger: logger, service: service, validate: validate}
}

// MountRoutes attaches sick day routes. Mounted under /sickDays.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Get("/{id}", h.Get)
	r.Put("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	companyID := internalShared.CompanyID(r.Context())
	page := internalShared.ParsePageParams(r)

	filter := ListFilter{Limit: page.Limit, Offset: page.Offset()}
	if raw := r.URL.Query().Get("employeeId"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			httpx.Fail(w, http.StatusBadRequest, "invalid employeeId")
			return
		}
		filter.EmployeeID = &id
	}
	if raw := r.URL.Query().Get("status"); raw != "" {
		st := Status(raw)
		filter.Status = &st
	}

	records, total, err := h.service.List(r.Context(), companyID, filter)
	if err != nil {
		h.logger.Error("list sick days", slog.Any("error", err))
		httpx.Fail(w, http.StatusInternalServerError, "internal error")
		return
	}
	if records == nil {
		records = []SickDay{}
	}
	httpx.Paginated(w, records, httpx.NewPagination(page.Page, page.Limit, total))
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateSickDayRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Fail(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Fail(w, http.StatusBadRequest, err.Error())
		return
	}

	record, err := h.service.Create(r.Context(), internalShared.CompanyID(r.Context()), req)
	if err != nil {
		h.respondDomainError(w, "create sick day", err)
		return
	}
	httpx.Created(w, record)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	record, err := h.service.Get(r.Context(), internalShared.CompanyID(r.Context()), id)
	if err != nil {
		h.respondDomainError(w, "get sick day", err)
		return
	}
	httpx.OK(w, record)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	var req UpdateSickDayRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Fail(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Fail(w, http.StatusBadRequest, err.Error())
		return
	}

	record, err := h.service.Update(r.Context(), internalShared.CompanyID(r.Context()), id, req)
	if err != nil {
		h.respondDomainError(w, "update sick day", err)
		return
	}
	httpx.OK(w, record)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	if err := h.service.Delete(r.Context(), internalShared.CompanyID(r.Context()), id); err != nil {
		h.respondDomainError(w, "delete sick day", err)
		return
	}
	httpx.Message(w, http.StatusOK, "sick day record deleted")
}

func (h *Handler) pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Fail(w, http.StatusBadRequest, "invalid sick day id")
		return 0, false
	}
	return id, true
}

func (h *Handler) respondDomainError(w http.ResponseWriter, op string, err error) {
	if httpx.StatusOf(err) == http.StatusInternalServerError {
		h.logger.Error(op, slog.Any("error", err))
	}
	httpx.RespondError(w, err)
}

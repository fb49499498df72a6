package warehouse

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/meridian-erp/meridian-erp/internal/platform/httpx"
	internalShared "github.com/meridian-erp/meridian-erp/internal/shared"
)

// Handler exposes warehousing endpoints.
type Handler struct {
	logger   *slog.Logger
	service  *Service
	validate *validator.Validate
}

// NewHandler constructs the handler.
func NewHandler(logger *slog.Logger, service *Service, validate *validator.Validate) *Handler {
	return &Handler{logger: logger, service: service, validate: validate}
}

// MountRoutes attaches warehouse routes. Mounted under /warehouses.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Route("/{warehouseId}", func(r chi.Router) {
		r.Get("/", h.Get)
		r.Put("/", h.Update)
		r.Delete("/", h.Delete)
		r.Get("/capacity-check", h.CheckCapacity)
		r.Post("/recompute-utilization", h.Recompute)

		r.Route("/locations", func(r chi.Router) {
			r.Get("/", h.ListLocations)
			r.Post("/", h.CreateLocation)
			r.Get("/{locationId}", h.GetLocation)
			r.Put("/{locationId}", h.UpdateLocation)
			r.Delete("/{locationId}", h.DeleteLocation)
		})
		r.Route("/inventory", func(r chi.Router) {
			r.Get("/", h.ListInventory)
			r.Put("/", h.SetInventory)
		})
	})
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	companyID := internalShared.CompanyID(r.Context())
	page := internalShared.ParsePageParams(r)

	filter := ListFilter{Limit: page.Limit, Offset: page.Offset()}
	if active := r.URL.Query().Get("active"); active != "" {
		v := active == "true"
		filter.Active = &v
	}

	warehouses, total, err := h.service.List(r.Context(), companyID, filter)
	if err != nil {
		h.logger.Error("list warehouses", slog.Any("error", err))
		httpx.Fail(w, http.StatusInternalServerError, "internal error")
		return
	}
	if warehouses == nil {
		warehouses = []Warehouse{}
	}
	httpx.Paginated(w, warehouses, httpx.NewPagination(page.Page, page.Limit, total))
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateWarehouseRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Fail(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Fail(w, http.StatusBadRequest, err.Error())
		return
	}

	warehouse, err := h.service.Create(r.Context(), internalShared.CompanyID(r.Context()), req)
	if err != nil {
		h.respondDomainError(w, "create warehouse", err)
		return
	}
	httpx.Created(w, warehouse)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "warehouseId")
	if !ok {
		return
	}
	warehouse, err := h.service.Get(r.Context(), internalShared.CompanyID(r.Context()), id)
	if err != nil {
		h.respondDomainError(w, "get warehouse", err)
		return
	}
	httpx.OK(w, warehouse)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "warehouseId")
	if !ok {
		return
	}
	var req UpdateWarehouseRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Fail(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Fail(w, http.StatusBadRequest, err.Error())
		return
	}

	warehouse, err := h.service.Update(r.Context(), internalShared.CompanyID(r.Context()), id, req)
	if err != nil {
		h.respondDomainError(w, "update warehouse", err)
		return
	}
	httpx.OK(w, warehouse)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "warehouseId")
	if !ok {
		return
	}
	if err := h.service.Delete(r.Context(), internalShared.CompanyID(r.Context()), id); err != nil {
		h.respondDomainError(w, "delete warehouse", err)
		return
	}
	httpx.Message(w, http.StatusOK, "warehouse deleted")
}

func (h *Handler) CheckCapacity(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "warehouseId")
	if !ok {
		return
	}
	additional, err := strconv.ParseInt(r.URL.Query().Get("additional"), 10, 64)
	if err != nil {
		httpx.Fail(w, http.StatusBadRequest, "invalid additional quantity")
		return
	}
	check, err := h.service.CheckCapacity(r.Context(), internalShared.CompanyID(r.Context()), id, additional)
	if err != nil {
		h.respondDomainError(w, "capacity check", err)
		return
	}
	httpx.OK(w, check)
}

func (h *Handler) Recompute(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "warehouseId")
	if !ok {
		return
	}
	warehouse, err := h.service.RecomputeUtilization(r.Context(), internalShared.CompanyID(r.Context()), id)
	if err != nil {
		h.respondDomainError(w, "recompute utilization", err)
		return
	}
	httpx.OK(w, warehouse)
}

func (h *Handler) ListLocations(w http.ResponseWriter, r *http.Request) {
	warehouseID, ok := h.pathID(w, r, "warehouseId")
	if !ok {
		return
	}
	locations, err := h.service.ListLocations(r.Context(), internalShared.CompanyID(r.Context()), warehouseID)
	if err != nil {
		h.respondDomainError(w, "list locations", err)
		return
	}
	if locations == nil {
		locations = []Location{}
	}
	httpx.OK(w, locations)
}

func (h *Handler) CreateLocation(w http.ResponseWriter, r *http.Request) {
	warehouseID, ok := h.pathID(w, r, "warehouseId")
	if !ok {
		return
	}
	var req CreateLocationRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Fail(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Fail(w, http.StatusBadRequest, err.Error())
		return
	}

	location, err := h.service.CreateLocation(r.Context(), internalShared.CompanyID(r.Context()), warehouseID, req)
	if err != nil {
		h.respondDomainError(w, "create location", err)
		return
	}
	httpx.Created(w, location)
}

func (h *Handler) GetLocation(w http.ResponseWriter, r *http.Request) {
	warehouseID, ok := h.pathID(w, r, "warehouseId")
	if !ok {
		return
	}
	id, ok := h.pathID(w, r, "locationId")
	if !ok {
		return
	}
	location, err := h.service.GetLocation(r.Context(), internalShared.CompanyID(r.Context()), warehouseID, id)
	if err != nil {
		h.respondDomainError(w, "get location", err)
		return
	}
	httpx.OK(w, location)
}

func (h *Handler) UpdateLocation(w http.ResponseWriter, r *http.Request) {
	warehouseID, ok := h.pathID(w, r, "warehouseId")
	if !ok {
		return
	}
	id, ok := h.pathID(w, r, "locationId")
	if !ok {
		return
	}
	var req UpdateLocationRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Fail(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Fail(w, http.StatusBadRequest, err.Error())
		return
	}

	location, err := h.service.UpdateLocation(r.Context(), internalShared.CompanyID(r.Context()), warehouseID, id, req)
	if err != nil {
		h.respondDomainError(w, "update location", err)
		return
	}
	httpx.OK(w, location)
}

func (h *Handler) DeleteLocation(w http.ResponseWriter, r *http.Request) {
	warehouseID, ok := h.pathID(w, r, "warehouseId")
	if !ok {
		return
	}
	id, ok := h.pathID(w, r, "locationId")
	if !ok {
		return
	}
	if err := h.service.DeleteLocation(r.Context(), internalShared.CompanyID(r.Context()), warehouseID, id); err != nil {
		h.respondDomainError(w, "delete location", err)
		return
	}
	httpx.Message(w, http.StatusOK, "location deleted")
}

func (h *Handler) ListInventory(w http.ResponseWriter, r *http.Request) {
	warehouseID, ok := h.pathID(w, r, "warehouseId")
	if !ok {
		return
	}
	inventory, err := h.service.ListInventory(r.Context(), internalShared.CompanyID(r.Context()), warehouseID)
	if err != nil {
		h.respondDomainError(w, "list inventory", err)
		return
	}
	if inventory == nil {
		inventory = []InventoryRow{}
	}
	httpx.OK(w, inventory)
}

func (h *Handler) SetInventory(w http.ResponseWriter, r *http.Request) {
	warehouseID, ok := h.pathID(w, r, "warehouseId")
	if !ok {
		return
	}
	var req SetInventoryRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Fail(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Fail(w, http.StatusBadRequest, err.Error())
		return
	}

	row, err := h.service.SetInventory(r.Context(), internalShared.CompanyID(r.Context()), warehouseID, req)
	if err != nil {
		h.respondDomainError(w, "set inventory", err)
		return
	}
	httpx.OK(w, row)
}

func (h *Handler) pathID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil {
		httpx.Fail(w, http.StatusBadRequest, "invalid id")
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

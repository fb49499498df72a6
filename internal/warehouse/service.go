package warehouse

import (
	"context"
	"math"
)

// Service implements warehousing operations.
type Service struct {
	repo Repository
}

// NewService wires the service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create registers a warehouse with zero utilization.
func (s *Service) Create(ctx context.Context, companyID int64, req CreateWarehouseRequest) (Warehouse, error) {
	return s.repo.Create(ctx, Warehouse{
		CompanyID: companyID,
		Code:      req.Code,
		Name:      req.Name,
		Address:   req.Address,
		Capacity:  req.Capacity,
	})
}

// Get fetches one warehouse.
func (s *Service) Get(ctx context.Context, companyID, id int64) (Warehouse, error) {
	return s.repo.Get(ctx, companyID, id)
}

// List pages through the company's warehouses.
func (s *Service) List(ctx context.Context, companyID int64, filter ListFilter) ([]Warehouse, int, error) {
	return s.repo.List(ctx, companyID, filter)
}

// Update patches mutable warehouse fields. Code is immutable.
func (s *Service) Update(ctx context.Context, companyID, id int64, req UpdateWarehouseRequest) (Warehouse, error) {
	updates := map[string]any{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Address != nil {
		updates["address"] = *req.Address
	}
	if req.Capacity != nil {
		updates["capacity"] = *req.Capacity
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}
	if err := s.repo.Update(ctx, companyID, id, updates); err != nil {
		return Warehouse{}, err
	}
	if req.Capacity != nil {
		// capacity changes shift the percentage immediately
		if _, err := s.RecomputeUtilization(ctx, companyID, id); err != nil {
			return Warehouse{}, err
		}
	}
	return s.repo.Get(ctx, companyID, id)
}

// Delete removes an empty warehouse.
func (s *Service) Delete(ctx context.Context, companyID, id int64) error {
	if _, err := s.repo.Get(ctx, companyID, id); err != nil {
		return err
	}
	stocked, err := s.repo.HasInventory(ctx, id)
	if err != nil {
		return err
	}
	if stocked {
		return ErrWarehouseInUse
	}
	return s.repo.Delete(ctx, companyID, id)
}

// Utilization derives the stored utilization figure from a total quantity
// and a capacity. With capacity set it is a percentage capped at 100,
// otherwise the raw total.
func Utilization(total, capacity int64) int64 {
	if capacity <= 0 {
		return total
	}
	pct := int64(math.Round(100 * float64(total) / float64(capacity)))
	if pct > 100 {
		return 100
	}
	return pct
}

// RecomputeUtilization recalculates a warehouse's utilization from its
// inventory rows. Safe to run repeatedly.
func (s *Service) RecomputeUtilization(ctx context.Context, companyID, id int64) (Warehouse, error) {
	w, err := s.repo.Get(ctx, companyID, id)
	if err != nil {
		return Warehouse{}, err
	}
	total, err := s.repo.TotalQuantity(ctx, companyID, id)
	if err != nil {
		return Warehouse{}, err
	}
	utilization := Utilization(total, w.Capacity)
	if err := s.repo.SetUtilization(ctx, companyID, id, utilization); err != nil {
		return Warehouse{}, err
	}
	w.Utilization = utilization
	return w, nil
}

// RefreshAll recomputes utilization for every active warehouse across all
// tenants. Used by the scheduled job.
func (s *Service) RefreshAll(ctx context.Context) (int, error) {
	ids, err := s.repo.ActiveIDs(ctx)
	if err != nil {
		return 0, err
	}
	refreshed := 0
	for id, companyID := range ids {
		if _, err := s.RecomputeUtilization(ctx, companyID, id); err != nil {
			return refreshed, err
		}
		refreshed++
	}
	return refreshed, nil
}

// CheckCapacity reports whether additional units fit.
func (s *Service) CheckCapacity(ctx context.Context, companyID, id, additional int64) (CapacityCheck, error) {
	if additional < 0 {
		return CapacityCheck{}, ErrNegativeQuantity
	}
	w, err := s.repo.Get(ctx, companyID, id)
	if err != nil {
		return CapacityCheck{}, err
	}
	current, err := s.repo.TotalQuantity(ctx, companyID, id)
	if err != nil {
		return CapacityCheck{}, err
	}
	available := w.Capacity - current
	if available < 0 {
		available = 0
	}
	return CapacityCheck{
		CanFit:    current+additional <= w.Capacity,
		Available: available,
		Capacity:  w.Capacity,
		Current:   current,
	}, nil
}

// ListLocations returns the warehouse's locations.
func (s *Service) ListLocations(ctx context.Context, companyID, warehouseID int64) ([]Location, error) {
	if _, err := s.repo.Get(ctx, companyID, warehouseID); err != nil {
		return nil, err
	}
	return s.repo.ListLocations(ctx, companyID, warehouseID)
}

// GetLocation fetches one location.
func (s *Service) GetLocation(ctx context.Context, companyID, warehouseID, id int64) (Location, error) {
	return s.repo.GetLocation(ctx, companyID, warehouseID, id)
}

// CreateLocation adds a location inside the warehouse.
func (s *Service) CreateLocation(ctx context.Context, companyID, warehouseID int64, req CreateLocationRequest) (Location, error) {
	if _, err := s.repo.Get(ctx, companyID, warehouseID); err != nil {
		return Location{}, err
	}
	return s.repo.CreateLocation(ctx, Location{
		WarehouseID: warehouseID,
		CompanyID:   companyID,
		Name:        req.Name,
		Description: req.Description,
	})
}

// UpdateLocation patches a location.
func (s *Service) UpdateLocation(ctx context.Context, companyID, warehouseID, id int64, req UpdateLocationRequest) (Location, error) {
	updates := map[string]any{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if err := s.repo.UpdateLocation(ctx, companyID, warehouseID, id, updates); err != nil {
		return Location{}, err
	}
	return s.repo.GetLocation(ctx, companyID, warehouseID, id)
}

// DeleteLocation removes a location.
func (s *Service) DeleteLocation(ctx context.Context, companyID, warehouseID, id int64) error {
	return s.repo.DeleteLocation(ctx, companyID, warehouseID, id)
}

// ListInventory returns the warehouse's stock rows.
func (s *Service) ListInventory(ctx context.Context, companyID, warehouseID int64) ([]InventoryRow, error) {
	if _, err := s.repo.Get(ctx, companyID, warehouseID); err != nil {
		return nil, err
	}
	return s.repo.ListInventory(ctx, companyID, warehouseID)
}

// SetInventory upserts one SKU's quantity. Utilization is not touched
// here; it refreshes on demand or via the scheduled job.
func (s *Service) SetInventory(ctx context.Context, companyID, warehouseID int64, req SetInventoryRequest) (InventoryRow, error) {
	if req.Quantity < 0 {
		return InventoryRow{}, ErrNegativeQuantity
	}
	if _, err := s.repo.Get(ctx, companyID, warehouseID); err != nil {
		return InventoryRow{}, err
	}
	return s.repo.UpsertInventory(ctx, InventoryRow{
		WarehouseID: warehouseID,
		CompanyID:   companyID,
		SKU:         req.SKU,
		Quantity:    req.Quantity,
	})
}

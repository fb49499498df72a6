package warehouse

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

type memoryRepo struct {
	warehouses map[int64]Warehouse
	locations  map[int64]Location
	inventory  map[int64]map[string]int64
	nextID     int64
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{
		warehouses: make(map[int64]Warehouse),
		locations:  make(map[int64]Location),
		inventory:  make(map[int64]map[string]int64),
	}
}

func (r *memoryRepo) List(ctx context.Context, companyID int64, filter ListFilter) ([]Warehouse, int, error) {
	var out []Warehouse
	for _, w := range r.warehouses {
		if w.CompanyID == companyID {
			out = append(out, w)
		}
	}
	return out, len(out), nil
}

func (r *memoryRepo) Get(ctx context.Context, companyID, id int64) (Warehouse, error) {
	w, ok := r.warehouses[id]
	if !ok || w.CompanyID != companyID {
		return Warehouse{}, ErrWarehouseNotFound
	}
	return w, nil
}

func (r *memoryRepo) Create(ctx context.Context, warehouse Warehouse) (Warehouse, error) {
	for _, existing := range r.warehouses {
		if existing.CompanyID == warehouse.CompanyID && existing.Code == warehouse.Code {
			return Warehouse{}, ErrDuplicateCode
		}
	}
	r.nextID++
	warehouse.ID = r.nextID
	warehouse.IsActive = true
	r.warehouses[warehouse.ID] = warehouse
	return warehouse, nil
}

func (r *memoryRepo) Update(ctx context.Context, companyID, id int64, updates map[string]any) error {
	w, ok := r.warehouses[id]
	if !ok || w.CompanyID != companyID {
		return ErrWarehouseNotFound
	}
	if v, ok := updates["name"]; ok {
		w.Name = v.(string)
	}
	if v, ok := updates["address"]; ok {
		w.Address = v.(string)
	}
	if v, ok := updates["capacity"]; ok {
		w.Capacity = v.(int64)
	}
	if v, ok := updates["is_active"]; ok {
		w.IsActive = v.(bool)
	}
	r.warehouses[id] = w
	return nil
}

func (r *memoryRepo) Delete(ctx context.Context, companyID, id int64) error {
	w, ok := r.warehouses[id]
	if !ok || w.CompanyID != companyID {
		return ErrWarehouseNotFound
	}
	delete(r.warehouses, id)
	return nil
}

func (r *memoryRepo) SetUtilization(ctx context.Context, companyID, id, utilization int64) error {
	w, ok := r.warehouses[id]
	if !ok || w.CompanyID != companyID {
		return ErrWarehouseNotFound
	}
	w.Utilization = utilization
	r.warehouses[id] = w
	return nil
}

func (r *memoryRepo) ActiveIDs(ctx context.Context) (map[int64]int64, error) {
	ids := make(map[int64]int64)
	for id, w := range r.warehouses {
		if w.IsActive {
			ids[id] = w.CompanyID
		}
	}
	return ids, nil
}

func (r *memoryRepo) ListLocations(ctx context.Context, companyID, warehouseID int64) ([]Location, error) {
	var out []Location
	for _, l := range r.locations {
		if l.CompanyID == companyID && l.WarehouseID == warehouseID {
			out = append(out, l)
		}
	}
	return out, nil
}

func (r *memoryRepo) GetLocation(ctx context.Context, companyID, warehouseID, id int64) (Location, error) {
	l, ok := r.locations[id]
	if !ok || l.CompanyID != companyID || l.WarehouseID != warehouseID {
		return Location{}, ErrLocationNotFound
	}
	return l, nil
}

func (r *memoryRepo) CreateLocation(ctx context.Context, location Location) (Location, error) {
	for _, existing := range r.locations {
		if existing.WarehouseID == location.WarehouseID && existing.Name == location.Name {
			return Location{}, ErrDuplicateLocation
		}
	}
	r.nextID++
	location.ID = r.nextID
	r.locations[location.ID] = location
	return location, nil
}

func (r *memoryRepo) UpdateLocation(ctx context.Context, companyID, warehouseID, id int64, updates map[string]any) error {
	l, ok := r.locations[id]
	if !ok || l.CompanyID != companyID || l.WarehouseID != warehouseID {
		return ErrLocationNotFound
	}
	if v, ok := updates["name"]; ok {
		l.Name = v.(string)
	}
	if v, ok := updates["description"]; ok {
		l.Description = v.(string)
	}
	r.locations[id] = l
	return nil
}

func (r *memoryRepo) DeleteLocation(ctx context.Context, companyID, warehouseID, id int64) error {
	l, ok := r.locations[id]
	if !ok || l.CompanyID != companyID || l.WarehouseID != warehouseID {
		return ErrLocationNotFound
	}
	delete(r.locations, id)
	return nil
}

func (r *memoryRepo) ListInventory(ctx context.Context, companyID, warehouseID int64) ([]InventoryRow, error) {
	var out []InventoryRow
	for sku, qty := range r.inventory[warehouseID] {
		out = append(out, InventoryRow{WarehouseID: warehouseID, CompanyID: companyID, SKU: sku, Quantity: qty})
	}
	return out, nil
}

func (r *memoryRepo) UpsertInventory(ctx context.Context, row InventoryRow) (InventoryRow, error) {
	if r.inventory[row.WarehouseID] == nil {
		r.inventory[row.WarehouseID] = make(map[string]int64)
	}
	r.inventory[row.WarehouseID][row.SKU] = row.Quantity
	r.nextID++
	row.ID = r.nextID
	return row, nil
}

func (r *memoryRepo) TotalQuantity(ctx context.Context, companyID, warehouseID int64) (int64, error) {
	var total int64
	for _, qty := range r.inventory[warehouseID] {
		total += qty
	}
	return total, nil
}

func (r *memoryRepo) HasInventory(ctx context.Context, warehouseID int64) (bool, error) {
	for _, qty := range r.inventory[warehouseID] {
		if qty > 0 {
			return true, nil
		}
	}
	return false, nil
}

func setup(t *testing.T, capacity int64) (*Service, *memoryRepo, Warehouse) {
	t.Helper()
	repo := newMemoryRepo()
	svc := NewService(repo)
	w, err := svc.Create(context.Background(), 1, CreateWarehouseRequest{
		Code: "WH-1", Name: "Main", Capacity: capacity,
	})
	require.NoError(t, err)
	return svc, repo, w
}

func stock(t *testing.T, svc *Service, warehouseID int64, sku string, qty int64) {
	t.Helper()
	_, err := svc.SetInventory(context.Background(), 1, warehouseID, SetInventoryRequest{SKU: sku, Quantity: qty})
	require.NoError(t, err)
}

func TestCapacityCheckArithmetic(t *testing.T) {
	svc, _, w := setup(t, 100)
	stock(t, svc, w.ID, "SKU-A", 80)

	check, err := svc.CheckCapacity(context.Background(), 1, w.ID, 30)
	require.NoError(t, err)

	require.False(t, check.CanFit)
	require.Equal(t, int64(20), check.Available)
	require.Equal(t, int64(100), check.Capacity)
	require.Equal(t, int64(80), check.Current)
}

func TestCapacityCheckExactFit(t *testing.T) {
	svc, _, w := setup(t, 100)
	stock(t, svc, w.ID, "SKU-A", 80)

	check, err := svc.CheckCapacity(context.Background(), 1, w.ID, 20)
	require.NoError(t, err)
	require.True(t, check.CanFit)
}

func TestCapacityCheckOverfilledWarehouse(t *testing.T) {
	svc, _, w := setup(t, 100)
	stock(t, svc, w.ID, "SKU-A", 150)

	check, err := svc.CheckCapacity(context.Background(), 1, w.ID, 1)
	require.NoError(t, err)
	require.False(t, check.CanFit)
	require.Equal(t, int64(0), check.Available)
}

func TestUtilizationPercentageAndClamp(t *testing.T) {
	require.Equal(t, int64(0), Utilization(0, 100))
	require.Equal(t, int64(80), Utilization(80, 100))
	require.Equal(t, int64(33), Utilization(1, 3))
	require.Equal(t, int64(100), Utilization(150, 100))
	// no capacity: raw quantity
	require.Equal(t, int64(42), Utilization(42, 0))
}

func TestRecomputeUtilizationIdempotent(t *testing.T) {
	svc, repo, w := setup(t, 200)
	stock(t, svc, w.ID, "SKU-A", 50)
	stock(t, svc, w.ID, "SKU-B", 50)
	ctx := context.Background()

	first, err := svc.RecomputeUtilization(ctx, 1, w.ID)
	require.NoError(t, err)
	require.Equal(t, int64(50), first.Utilization)

	second, err := svc.RecomputeUtilization(ctx, 1, w.ID)
	require.NoError(t, err)
	require.Equal(t, first.Utilization, second.Utilization)
	require.Equal(t, int64(50), repo.warehouses[w.ID].Utilization)
}

func TestRefreshAllCoversActiveWarehouses(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo)
	ctx := context.Background()

	a, err := svc.Create(ctx, 1, CreateWarehouseRequest{Code: "A", Name: "A", Capacity: 100})
	require.NoError(t, err)
	b, err := svc.Create(ctx, 2, CreateWarehouseRequest{Code: "B", Name: "B", Capacity: 100})
	require.NoError(t, err)
	stock(t, svc, a.ID, "X", 10)
	repo.inventory[b.ID] = map[string]int64{"Y": 25}

	refreshed, err := svc.RefreshAll(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, refreshed)
	require.Equal(t, int64(10), repo.warehouses[a.ID].Utilization)
	require.Equal(t, int64(25), repo.warehouses[b.ID].Utilization)
}

func TestDeleteRefusedWhenStocked(t *testing.T) {
	svc, _, w := setup(t, 100)
	stock(t, svc, w.ID, "SKU-A", 5)
	ctx := context.Background()

	require.ErrorIs(t, svc.Delete(ctx, 1, w.ID), ErrWarehouseInUse)

	stock(t, svc, w.ID, "SKU-A", 0)
	require.NoError(t, svc.Delete(ctx, 1, w.ID))
}

func TestDuplicateWarehouseCodePerTenant(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo)
	ctx := context.Background()

	_, err := svc.Create(ctx, 1, CreateWarehouseRequest{Code: "WH-1", Name: "One"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, 1, CreateWarehouseRequest{Code: "WH-1", Name: "Two"})
	require.ErrorIs(t, err, ErrDuplicateCode)
	_, err = svc.Create(ctx, 2, CreateWarehouseRequest{Code: "WH-1", Name: "Theirs"})
	require.NoError(t, err)
}

func TestLocationNameUniquePerWarehouse(t *testing.T) {
	svc, _, w := setup(t, 100)
	ctx := context.Background()

	_, err := svc.CreateLocation(ctx, 1, w.ID, CreateLocationRequest{Name: "A-01"})
	require.NoError(t, err)
	_, err = svc.CreateLocation(ctx, 1, w.ID, CreateLocationRequest{Name: "A-01"})
	require.ErrorIs(t, err, ErrDuplicateLocation)

	other, err := svc.Create(ctx, 1, CreateWarehouseRequest{Code: "WH-2", Name: "Second"})
	require.NoError(t, err)
	_, err = svc.CreateLocation(ctx, 1, other.ID, CreateLocationRequest{Name: "A-01"})
	require.NoError(t, err)
}

func TestCapacityUpdateRefreshesUtilization(t *testing.T) {
	svc, _, w := setup(t, 100)
	stock(t, svc, w.ID, "SKU-A", 50)
	ctx := context.Background()

	_, err := svc.RecomputeUtilization(ctx, 1, w.ID)
	require.NoError(t, err)

	newCapacity := int64(50)
	updated, err := svc.Update(ctx, 1, w.ID, UpdateWarehouseRequest{Capacity: &newCapacity})
	require.NoError(t, err)
	require.Equal(t, int64(100), updated.Utilization)
}

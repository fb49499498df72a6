package warehouse

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/meridian-erp/meridian-erp/internal/platform/db"
)

// Repository encapsulates warehousing persistence.
type Repository interface {
	List(ctx context.Context, companyID int64, filter ListFilter) ([]Warehouse, int, error)
	Get(ctx context.Context, companyID, id int64) (Warehouse, error)
	Create(ctx context.Context, warehouse Warehouse) (Warehouse, error)
	Update(ctx context.Context, companyID, id int64, updates map[string]any) error
	Delete(ctx context.Context, companyID, id int64) error
	SetUtilization(ctx context.Context, companyID, id, utilization int64) error
	ActiveIDs(ctx context.Context) (map[int64]int64, error)

	ListLocations(ctx context.Context, companyID, warehouseID int64) ([]Location, error)
	GetLocation(ctx context.Context, companyID, warehouseID, id int64) (Location, error)
	CreateLocation(ctx context.Context, location Location) (Location, error)
	UpdateLocation(ctx context.Context, companyID, warehouseID, id int64, updates map[string]any) error
	DeleteLocation(ctx context.Context, companyID, warehouseID, id int64) error

	ListInventory(ctx context.Context, companyID, warehouseID int64) ([]InventoryRow, error)
	UpsertInventory(ctx context.Context, row InventoryRow) (InventoryRow, error)
	TotalQuantity(ctx context.Context, companyID, warehouseID int64) (int64, error)
	HasInventory(ctx context.Context, warehouseID int64) (bool, error)
}

type repository struct {
	pool *pgxpool.Pool
}

// NewRepository builds the pgx-backed repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

const warehouseColumns = `id, company_id, code, name, address, capacity, utilization, is_active, created_at, updated_at`

func scanWarehouse(row pgx.Row) (Warehouse, error) {
	var w Warehouse
	err := row.Scan(&w.ID, &w.CompanyID, &w.Code, &w.Name, &w.Address,
		&w.Capacity, &w.Utilization, &w.IsActive, &w.CreatedAt, &w.UpdatedAt)
	return w, err
}

func (r *repository) List(ctx context.Context, companyID int64, filter ListFilter) ([]Warehouse, int, error) {
	conditions := []string{"company_id = $1"}
	args := []any{companyID}
	argPos := 2

	if filter.Active != nil {
		conditions = append(conditions, fmt.Sprintf("is_active = $%d", argPos))
		args = append(args, *filter.Active)
		argPos++
	}
	where := "WHERE " + strings.Join(conditions, " AND ")

	var total int
	if err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM warehouses "+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := "SELECT " + warehouseColumns + " FROM warehouses " + where + " ORDER BY code"
	if filter.Limit > 0 {
		query += " LIMIT $" + strconv.Itoa(argPos) + " OFFSET $" + strconv.Itoa(argPos+1)
		args = append(args, filter.Limit, filter.Offset)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var warehouses []Warehouse
	for rows.Next() {
		w, err := scanWarehouse(rows)
		if err != nil {
			return nil, 0, err
		}
		warehouses = append(warehouses, w)
	}
	return warehouses, total, rows.Err()
}

func (r *repository) Get(ctx context.Context, companyID, id int64) (Warehouse, error) {
	w, err := scanWarehouse(r.pool.QueryRow(ctx,
		"SELECT "+warehouseColumns+" FROM warehouses WHERE company_id = $1 AND id = $2", companyID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Warehouse{}, ErrWarehouseNotFound
		}
		return Warehouse{}, err
	}
	return w, nil
}

func (r *repository) Create(ctx context.Context, warehouse Warehouse) (Warehouse, error) {
	row := r.pool.QueryRow(ctx,
		`INSERT INTO warehouses (company_id, code, name, address, capacity, utilization, is_active)
		 VALUES ($1, $2, $3, $4, $5, 0, TRUE)
		 RETURNING id, utilization, is_active, created_at, updated_at`,
		warehouse.CompanyID, warehouse.Code, warehouse.Name, warehouse.Address, warehouse.Capacity)
	inserted := warehouse
	if err := row.Scan(&inserted.ID, &inserted.Utilization, &inserted.IsActive, &inserted.CreatedAt, &inserted.UpdatedAt); err != nil {
		if db.IsUniqueViolation(err, "uq_warehouses_company_code") {
			return Warehouse{}, ErrDuplicateCode
		}
		return Warehouse{}, err
	}
	return inserted, nil
}

func (r *repository) Update(ctx context.Context, companyID, id int64, updates map[string]any) error {
	if len(updates) == 0 {
		return nil
	}
	set := make([]string, 0, len(updates)+1)
	args := []any{companyID, id}
	argPos := 3
	for column, value := range updates {
		set = append(set, fmt.Sprintf("%s = $%d", column, argPos))
		args = append(args, value)
		argPos++
	}
	set = append(set, "updated_at = NOW()")

	cmd, err := r.pool.Exec(ctx,
		"UPDATE warehouses SET "+strings.Join(set, ", ")+" WHERE company_id = $1 AND id = $2", args...)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrWarehouseNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, companyID, id int64) error {
	cmd, err := r.pool.Exec(ctx, "DELETE FROM warehouses WHERE company_id = $1 AND id = $2", companyID, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrWarehouseNotFound
	}
	return nil
}

func (r *repository) SetUtilization(ctx context.Context, companyID, id, utilization int64) error {
	cmd, err := r.pool.Exec(ctx,
		"UPDATE warehouses SET utilization = $3, updated_at = NOW() WHERE company_id = $1 AND id = $2",
		companyID, id, utilization)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrWarehouseNotFound
	}
	return nil
}

// ActiveIDs returns warehouse id -> company id for every active warehouse
// across all tenants, for the background refresh job.
func (r *repository) ActiveIDs(ctx context.Context) (map[int64]int64, error) {
	rows, err := r.pool.Query(ctx, "SELECT id, company_id FROM warehouses WHERE is_active")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := make(map[int64]int64)
	for rows.Next() {
		var id, companyID int64
		if err := rows.Scan(&id, &companyID); err != nil {
			return nil, err
		}
		ids[id] = companyID
	}
	return ids, rows.Err()
}

const locationColumns = `id, warehouse_id, company_id, name, description, created_at, updated_at`

func scanLocation(row pgx.Row) (Location, error) {
	var l Location
	err := row.Scan(&l.ID, &l.WarehouseID, &l.CompanyID, &l.Name, &l.Description, &l.CreatedAt, &l.UpdatedAt)
	return l, err
}

func (r *repository) ListLocations(ctx context.Context, companyID, warehouseID int64) ([]Location, error) {
	rows, err := r.pool.Query(ctx,
		"SELECT "+locationColumns+" FROM warehouse_locations WHERE company_id = $1 AND warehouse_id = $2 ORDER BY name",
		companyID, warehouseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var locations []Location
	for rows.Next() {
		l, err := scanLocation(rows)
		if err != nil {
			return nil, err
		}
		locations = append(locations, l)
	}
	return locations, rows.Err()
}

func (r *repository) GetLocation(ctx context.Context, companyID, warehouseID, id int64) (Location, error) {
	l, err := scanLocation(r.pool.QueryRow(ctx,
		"SELECT "+locationColumns+" FROM warehouse_locations WHERE company_id = $1 AND warehouse_id = $2 AND id = $3",
		companyID, warehouseID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Location{}, ErrLocationNotFound
		}
		return Location{}, err
	}
	return l, nil
}

func (r *repository) CreateLocation(ctx context.Context, location Location) (Location, error) {
	row := r.pool.QueryRow(ctx,
		`INSERT INTO warehouse_locations (warehouse_id, company_id, name, description)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at, updated_at`,
		location.WarehouseID, location.CompanyID, location.Name, location.Description)
	inserted := location
	if err := row.Scan(&inserted.ID, &inserted.CreatedAt, &inserted.UpdatedAt); err != nil {
		if db.IsUniqueViolation(err, "uq_locations_warehouse_name") {
			return Location{}, ErrDuplicateLocation
		}
		return Location{}, err
	}
	return inserted, nil
}

func (r *repository) UpdateLocation(ctx context.Context, companyID, warehouseID, id int64, updates map[string]any) error {
	if len(updates) == 0 {
		return nil
	}
	set := make([]string, 0, len(updates)+1)
	args := []any{companyID, warehouseID, id}
	argPos := 4
	for column, value := range updates {
		set = append(set, fmt.Sprintf("%s = $%d", column, argPos))
		args = append(args, value)
		argPos++
	}
	set = append(set, "updated_at = NOW()")

	cmd, err := r.pool.Exec(ctx,
		"UPDATE warehouse_locations SET "+strings.Join(set, ", ")+
			" WHERE company_id = $1 AND warehouse_id = $2 AND id = $3", args...)
	if err != nil {
		if db.IsUniqueViolation(err, "uq_locations_warehouse_name") {
			return ErrDuplicateLocation
		}
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrLocationNotFound
	}
	return nil
}

func (r *repository) DeleteLocation(ctx context.Context, companyID, warehouseID, id int64) error {
	cmd, err := r.pool.Exec(ctx,
		"DELETE FROM warehouse_locations WHERE company_id = $1 AND warehouse_id = $2 AND id = $3",
		companyID, warehouseID, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrLocationNotFound
	}
	return nil
}

func (r *repository) ListInventory(ctx context.Context, companyID, warehouseID int64) ([]InventoryRow, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, warehouse_id, company_id, sku, quantity, updated_at
		 FROM warehouse_inventory WHERE company_id = $1 AND warehouse_id = $2 ORDER BY sku`,
		companyID, warehouseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var inventory []InventoryRow
	for rows.Next() {
		var row InventoryRow
		if err := rows.Scan(&row.ID, &row.WarehouseID, &row.CompanyID, &row.SKU, &row.Quantity, &row.UpdatedAt); err != nil {
			return nil, err
		}
		inventory = append(inventory, row)
	}
	return inventory, rows.Err()
}

func (r *repository) UpsertInventory(ctx context.Context, row InventoryRow) (InventoryRow, error) {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO warehouse_inventory (warehouse_id, company_id, sku, quantity)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (warehouse_id, sku)
		 DO UPDATE SET quantity = EXCLUDED.quantity, updated_at = NOW()
		 RETURNING id, updated_at`,
		row.WarehouseID, row.CompanyID, row.SKU, row.Quantity).Scan(&row.ID, &row.UpdatedAt)
	if err != nil {
		return InventoryRow{}, err
	}
	return row, nil
}

func (r *repository) TotalQuantity(ctx context.Context, companyID, warehouseID int64) (int64, error) {
	var total int64
	err := r.pool.QueryRow(ctx,
		"SELECT COALESCE(SUM(quantity), 0) FROM warehouse_inventory WHERE company_id = $1 AND warehouse_id = $2",
		companyID, warehouseID).Scan(&total)
	return total, err
}

func (r *repository) HasInventory(ctx context.Context, warehouseID int64) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		"SELECT EXISTS (SELECT 1 FROM warehouse_inventory WHERE warehouse_id = $1 AND quantity > 0)",
		warehouseID).Scan(&exists)
	return exists, err
}

// Package warehouse manages warehouses, their locations and stock levels.
package warehouse

import "time"

// Warehouse is one storage site of a company. Utilization is a percentage
// of capacity when capacity is set, otherwise the raw stored quantity.
type Warehouse struct {
	ID          int64     `json:"id"`
	CompanyID   int64     `json:"companyId"`
	Code        string    `json:"code"`
	Name        string    `json:"name"`
	Address     string    `json:"address"`
	Capacity    int64     `json:"capacity"`
	Utilization int64     `json:"utilization"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Location is a named spot inside a warehouse.
type Location struct {
	ID          int64     `json:"id"`
	WarehouseID int64     `json:"warehouseId"`
	CompanyID   int64     `json:"companyId"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// InventoryRow is the stored quantity of one SKU in a warehouse.
type InventoryRow struct {
	ID          int64     `json:"id"`
	WarehouseID int64     `json:"warehouseId"`
	CompanyID   int64     `json:"companyId"`
	SKU         string    `json:"sku"`
	Quantity    int64     `json:"quantity"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// CapacityCheck answers whether additional units fit in a warehouse.
type CapacityCheck struct {
	CanFit    bool  `json:"canFit"`
	Available int64 `json:"available"`
	Capacity  int64 `json:"capacity"`
	Current   int64 `json:"current"`
}

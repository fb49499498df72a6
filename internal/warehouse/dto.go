package warehouse

// CreateWarehouseRequest registers a warehouse.
type CreateWarehouseRequest struct {
	Code     string `json:"code" validate:"required,max=32"`
	Name     string `json:"name" validate:"required,max=255"`
	Address  string `json:"address" validate:"max=500"`
	Capacity int64  `json:"capacity" validate:"gte=0"`
}

// UpdateWarehouseRequest patches mutable warehouse fields.
type UpdateWarehouseRequest struct {
	Name     *string `json:"name" validate:"omitempty,max=255"`
	Address  *string `json:"address" validate:"omitempty,max=500"`
	Capacity *int64  `json:"capacity" validate:"omitempty,gte=0"`
	IsActive *bool   `json:"isActive"`
}

// CreateLocationRequest adds a location inside a warehouse.
type CreateLocationRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description" validate:"max=500"`
}

// UpdateLocationRequest patches a location.
type UpdateLocationRequest struct {
	Name        *string `json:"name" validate:"omitempty,max=100"`
	Description *string `json:"description" validate:"omitempty,max=500"`
}

// SetInventoryRequest upserts the stored quantity of one SKU.
type SetInventoryRequest struct {
	SKU      string `json:"sku" validate:"required,max=64"`
	Quantity int64  `json:"quantity" validate:"gte=0"`
}

// ListFilter narrows warehouse listings.
type ListFilter struct {
	Active *bool
	Limit  int
	Offset int
}

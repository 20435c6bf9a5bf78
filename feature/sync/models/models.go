package models

import "time"

// Driver is a delivery driver first sighted in a dispatch-bearing row.
// DriverID is the partner's natural key. Drivers are created on first
// sighting and never updated or deleted by the pipeline; a later row with a
// changed name or vehicle does not overwrite the registered record.
// TODO: confirm with product whether first-writer-wins is intentional or
// stale driver metadata should be refreshed on sync.
type Driver struct {
	ID                uint      `gorm:"column:id;primaryKey"`
	DriverID          string    `gorm:"column:driver_id;uniqueIndex;size:64"`
	Name              string    `gorm:"column:name;size:255"`
	Vehicle           string    `gorm:"column:vehicle;size:128"`
	VehicleNormalized string    `gorm:"column:vehicle_normalized;size:128"`
	Active            bool      `gorm:"column:active"`
	CreatedAt         time.Time `gorm:"column:created_at"`
	UpdatedAt         time.Time `gorm:"column:updated_at"`
}

// TableName overrides the table name for Driver.
func (Driver) TableName() string {
	return "drivers"
}

// Order is one delivery order, keyed by the partner's immutable UUID.
// IsDelivered and IsFailed are derived from Status on every write and never
// drift from it.
type Order struct {
	ID             uint       `gorm:"column:id;primaryKey"`
	UUID           string     `gorm:"column:uuid;uniqueIndex;size:36"`
	OrderID        string     `gorm:"column:order_id;size:64"`
	OrderType      string     `gorm:"column:order_type;size:64"`
	Status         string     `gorm:"column:status;size:64"`
	SimpleStatus   string     `gorm:"column:simple_status;size:32"`
	PackageCount   int        `gorm:"column:package_count"`
	PackageBarcode string     `gorm:"column:package_barcode;size:128"`
	RetailerID     string     `gorm:"column:retailer_id;size:64"`
	RetailerName   string     `gorm:"column:retailer_name;size:255"`
	ClientName     string     `gorm:"column:client_name;size:255"`
	ClientAddress  string     `gorm:"column:client_address;size:512"`
	ClientPhone    string     `gorm:"column:client_phone;size:64"`
	DeliveryDate   *time.Time `gorm:"column:delivery_date"`
	DeliveredAt    *time.Time `gorm:"column:delivered_at"`
	Timeslot       string     `gorm:"column:timeslot;size:64"`
	IsDelivered    bool       `gorm:"column:is_delivered"`
	IsFailed       bool       `gorm:"column:is_failed"`
	CreatedAt      time.Time  `gorm:"column:created_at"`
	UpdatedAt      time.Time  `gorm:"column:updated_at"`
}

// TableName overrides the table name for Order.
func (Order) TableName() string {
	return "orders"
}

// Dispatch is the one-to-one dispatch record for an Order. DriverRef is
// nullable: a dispatch may arrive before its driver, or never get one.
// A Dispatch is never written before its Order exists in the same
// transaction.
type Dispatch struct {
	ID                 uint       `gorm:"column:id;primaryKey"`
	OrderRef           uint       `gorm:"column:order_id;uniqueIndex"`
	DriverRef          *uint      `gorm:"column:driver_id"`
	Fleet              string     `gorm:"column:fleet;size:128"`
	DistributionCenter string     `gorm:"column:distribution_center;size:128"`
	RouteStop          int        `gorm:"column:route_stop"`
	DispatchedAt       *time.Time `gorm:"column:dispatched_at"`
	Recovered          bool       `gorm:"column:recovered"`
	CreatedAt          time.Time  `gorm:"column:created_at"`
	UpdatedAt          time.Time  `gorm:"column:updated_at"`
}

// TableName overrides the table name for Dispatch.
func (Dispatch) TableName() string {
	return "dispatches"
}

// All returns every model the pipeline owns, in migration order.
func All() []any {
	return []any{&Driver{}, &Order{}, &Dispatch{}}
}

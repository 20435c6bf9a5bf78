package engine

// Column names the partner exposes on the delivery-orders dataset. The order
// UUID column is mandatory for the dataset as a whole; driver and dispatch
// columns are optional per row.
const (
	ColOrderUUID      = "ORDER_UUID"
	ColOrderID        = "ORDER_ID"
	ColOrderType      = "ORDER_TYPE"
	ColOrderStatus    = "ORDER_STATUS"
	ColPackageCount   = "PACKAGE_COUNT"
	ColPackageBarcode = "PACKAGE_BARCODE"
	ColRetailerID     = "RETAILER_ID"
	ColRetailerName   = "RETAILER_NAME"
	ColClientName     = "CLIENT_NAME"
	ColClientAddress  = "CLIENT_ADDRESS"
	ColClientPhone    = "CLIENT_PHONE"
	ColDeliveryDate   = "DELIVERY_DATE"
	ColDeliveredAt    = "DELIVERED_AT"
	ColTimeslot       = "DELIVERY_SLOT"

	ColDriverID      = "DISPATCH_DRIVER_ID"
	ColDriverName    = "DISPATCH_DRIVER_NAME"
	ColDriverVehicle = "DISPATCH_DRIVER_VEHICLE"
	ColFleet         = "DISPATCH_FLEET"
	ColDistCenter    = "DISPATCH_DC"
	ColRouteStop     = "DISPATCH_ROUTE_STOP"
	ColDispatchedAt  = "DISPATCH_TIME"
	ColRecovered     = "DISPATCH_RECOVERED"
)

package engine

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"delivery-sync/core/utils"
	"delivery-sync/feature/sync/models"
	"delivery-sync/feature/sync/tabular"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ErrMissingUUIDColumn indicates the dataset lacks the mandatory order UUID
// column. This is a dataset-level failure: the whole batch is rejected and
// the surrounding transaction rolls back.
var ErrMissingUUIDColumn = errors.New("engine: dataset is missing the " + ColOrderUUID + " column")

// Engine turns one raw dataset into persisted Driver, Order and Dispatch
// state, row by row, with each row's failure isolated from the rest.
type Engine struct {
	logger *zap.Logger
	loc    *time.Location
}

// New creates an engine. Naive timestamps in rows are interpreted in loc and
// stored normalized to UTC.
func New(logger *zap.Logger, loc *time.Location) *Engine {
	if loc == nil {
		loc = time.UTC
	}
	return &Engine{logger: logger, loc: loc}
}

// Reconcile runs one pass over the dataset inside the caller's transaction.
//
// Rows whose length does not match the column list are counted as malformed
// and never parsed. Each remaining row is processed independently: a failure
// (bad UUID, row-scoped storage error) is recorded as "row <index>: <message>"
// and the pass continues. Only dataset-level problems (missing UUID column)
// or storage errors escaping row scope return an error, which the caller must
// translate into a rollback.
//
// Re-running Reconcile on an unchanged dataset is a no-op upsert: zero new
// rows, identical persisted state.
func (e *Engine) Reconcile(tx *gorm.DB, ds *tabular.Dataset) (Stats, error) {
	stats := Stats{Errors: []string{}}

	if !ds.HasColumn(ColOrderUUID) {
		return stats, ErrMissingUUIDColumn
	}

	for i, row := range ds.Rows {
		if !ds.StructurallyValid(row) {
			stats.MalformedRows++
			continue
		}

		change, err := e.processRow(tx, ds, row)
		if err != nil {
			// Row numbers are 1-based in messages; operators count from 1.
			stats.recordError(fmt.Sprintf("row %d: %v", i+1, err))
			continue
		}
		stats.apply(change)
	}

	e.logger.Info("Reconciliation pass finished",
		zap.String("dataset", ds.Name),
		zap.Int("total_processed", stats.TotalProcessed),
		zap.Int("orders_created", stats.OrdersCreated),
		zap.Int("orders_updated", stats.OrdersUpdated),
		zap.Int("drivers_created", stats.DriversCreated),
		zap.Int("dispatches_created", stats.DispatchesCreated),
		zap.Int("malformed_rows", stats.MalformedRows),
		zap.Int("row_errors", len(stats.Errors)),
	)

	return stats, nil
}

// processRow upserts one row's entities in dependency order: driver resolved
// first (created if absent), then the order, then the dispatch referencing
// both. The dispatch is only written when the row carries a driver id, so it
// can never precede its order or driver.
func (e *Engine) processRow(tx *gorm.DB, ds *tabular.Dataset, row []any) (rowChange, error) {
	var change rowChange

	raw := ds.String(row, ColOrderUUID, "")
	if raw == "" {
		return change, errors.New("missing order uuid")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return change, fmt.Errorf("invalid order uuid %q", raw)
	}

	var drv *models.Driver
	if driverID := ds.String(row, ColDriverID, ""); driverID != "" {
		resolved, created, err := e.resolveDriver(tx, ds, row, driverID)
		if err != nil {
			return change, fmt.Errorf("resolving driver %s: %w", driverID, err)
		}
		drv = resolved
		change.driverCreated = created
	}

	ord, created, err := e.upsertOrder(tx, ds, row, id.String())
	if err != nil {
		return change, fmt.Errorf("upserting order: %w", err)
	}
	change.orderCreated = created

	if drv != nil {
		created, err := e.upsertDispatch(tx, ds, row, ord, drv)
		if err != nil {
			return change, fmt.Errorf("upserting dispatch: %w", err)
		}
		change.dispatchCreated = created
	}

	return change, nil
}

// resolveDriver finds the driver by natural key, creating it with the row's
// name and vehicle as defaults when absent. Creation never overwrites an
// existing driver's fields.
func (e *Engine) resolveDriver(tx *gorm.DB, ds *tabular.Dataset, row []any, driverID string) (*models.Driver, bool, error) {
	vehicle := ds.String(row, ColDriverVehicle, "")

	var drv models.Driver
	res := tx.Where(models.Driver{DriverID: driverID}).
		Attrs(models.Driver{
			Name:              ds.String(row, ColDriverName, ""),
			Vehicle:           vehicle,
			VehicleNormalized: normalizeVehicle(vehicle),
			Active:            true,
		}).
		FirstOrCreate(&drv)
	if res.Error != nil {
		return nil, false, res.Error
	}
	return &drv, res.RowsAffected > 0, nil
}

// upsertOrder creates or fully refreshes the order for the row's UUID. The
// derived delivery flags are recomputed from the row's status on every write.
func (e *Engine) upsertOrder(tx *gorm.DB, ds *tabular.Dataset, row []any, id string) (*models.Order, bool, error) {
	status := strings.ToLower(ds.String(row, ColOrderStatus, ""))

	ord := models.Order{
		UUID:           id,
		OrderID:        ds.String(row, ColOrderID, ""),
		OrderType:      ds.String(row, ColOrderType, ""),
		Status:         status,
		SimpleStatus:   simplifyStatus(status),
		PackageCount:   ds.Int(row, ColPackageCount, 0),
		PackageBarcode: ds.String(row, ColPackageBarcode, ""),
		RetailerID:     ds.String(row, ColRetailerID, ""),
		RetailerName:   ds.String(row, ColRetailerName, ""),
		ClientName:     ds.String(row, ColClientName, ""),
		ClientAddress:  ds.String(row, ColClientAddress, ""),
		ClientPhone:    ds.String(row, ColClientPhone, ""),
		DeliveryDate:   e.rowTime(ds, row, ColDeliveryDate),
		DeliveredAt:    e.rowTime(ds, row, ColDeliveredAt),
		Timeslot:       ds.String(row, ColTimeslot, ""),
		IsDelivered:    status == "delivered",
		IsFailed:       isFailedStatus(status),
	}

	var existing models.Order
	err := tx.Where("uuid = ?", id).First(&existing).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		if err := tx.Create(&ord).Error; err != nil {
			return nil, false, err
		}
		return &ord, true, nil
	case err != nil:
		return nil, false, err
	default:
		ord.ID = existing.ID
		ord.CreatedAt = existing.CreatedAt
		if err := tx.Save(&ord).Error; err != nil {
			return nil, false, err
		}
		return &ord, false, nil
	}
}

// upsertDispatch creates or refreshes the dispatch keyed on the order. The
// caller guarantees the order and driver already exist in this transaction.
func (e *Engine) upsertDispatch(tx *gorm.DB, ds *tabular.Dataset, row []any, ord *models.Order, drv *models.Driver) (bool, error) {
	dsp := models.Dispatch{
		OrderRef:           ord.ID,
		DriverRef:          &drv.ID,
		Fleet:              ds.String(row, ColFleet, ""),
		DistributionCenter: ds.String(row, ColDistCenter, ""),
		RouteStop:          ds.Int(row, ColRouteStop, 0),
		DispatchedAt:       e.rowTime(ds, row, ColDispatchedAt),
		Recovered:          ds.Bool(row, ColRecovered),
	}

	var existing models.Dispatch
	err := tx.Where("order_id = ?", ord.ID).First(&existing).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		if err := tx.Create(&dsp).Error; err != nil {
			return false, err
		}
		return true, nil
	case err != nil:
		return false, err
	default:
		dsp.ID = existing.ID
		dsp.CreatedAt = existing.CreatedAt
		if err := tx.Save(&dsp).Error; err != nil {
			return false, err
		}
		return false, nil
	}
}

// rowTime parses a timestamp cell against the known partner layouts and
// normalizes it to UTC. Unparseable values are logged with the raw string and
// left unset; missing-date must stay distinguishable from "now".
func (e *Engine) rowTime(ds *tabular.Dataset, row []any, column string) *time.Time {
	val, ok := ds.Value(row, column)
	if !ok {
		return nil
	}

	raw := utils.ToString(val)
	t, ok := tabular.ParseTime(raw, e.loc)
	if !ok {
		e.logger.Debug("Unparseable timestamp left unset",
			zap.String("column", column),
			zap.String("value", raw),
		)
		return nil
	}

	u := t.UTC()
	return &u
}

// isFailedStatus reports whether the status marks a terminally failed order.
func isFailedStatus(status string) bool {
	switch status {
	case "failed", "returned", "cancelled":
		return true
	default:
		return false
	}
}

// simplifyStatus collapses the partner's status vocabulary into the four
// buckets downstream dashboards group by.
func simplifyStatus(status string) string {
	switch {
	case status == "delivered":
		return "delivered"
	case isFailedStatus(status):
		return "failed"
	case status == "in_transit" || status == "out_for_delivery":
		return "in_transit"
	default:
		return "pending"
	}
}

// normalizeVehicle lowercases and collapses whitespace in a vehicle label so
// that "Van  " and "van" group together downstream.
func normalizeVehicle(vehicle string) string {
	return strings.Join(strings.Fields(strings.ToLower(vehicle)), " ")
}

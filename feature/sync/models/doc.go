// Package models defines the persisted entities the pipeline reconciles:
// Driver, Order and Dispatch. Each carries a unique natural-key index
// (driver_id, uuid, order_id) used for idempotent create-or-update, and each
// table is read by the wider application (dashboards, forecasting, alerting)
// outside this module.
package models

// Package sync is the external data synchronization and reconciliation
// pipeline: the system-of-record refresh mechanism every downstream feature
// (dashboards, analytics, alerting, invoicing) depends on.
//
// # Flow
//
// Orchestrator -> (snapshot cache | fetch client) -> raw dataset envelope ->
// reconciliation engine -> persisted Driver/Order/Dispatch state -> Result.
//
// The orchestrator consults the short-TTL snapshot cache unless forced,
// fetches a fresh snapshot from the partner API otherwise, runs the engine
// inside one atomic transaction, and only then refreshes the cache — a
// payload is never served from cache before it has been through a
// reconciliation pass. Fresh snapshots are additionally archived to object
// storage for audit.
//
// Subpackages: partner (fetch client), cache (snapshot store), tabular
// (value codec), models (entities), engine (row reconciliation).
package sync

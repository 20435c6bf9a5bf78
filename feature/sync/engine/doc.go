// Package engine is the row-oriented reconciliation engine.
//
// One pass consumes a single raw dataset and performs idempotent
// create-or-update of three related entities per row: the Driver (resolved by
// natural key, created on first sighting, never overwritten afterwards), the
// Order (upserted by UUID with its delivery flags recomputed from status),
// and the Dispatch (upserted one-to-one with its order).
//
// Failures are isolated at the row boundary and collected into Stats; one bad
// row never aborts the batch. The engine runs inside a transaction owned by
// the orchestrator, so a storage failure that escapes row scope rolls back
// the entire batch.
package engine

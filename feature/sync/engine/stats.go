package engine

// maxErrors caps the per-row error list. The list is a diagnostic sample, not
// an exhaustive audit log; pathological inputs must not grow it unbounded.
const maxErrors = 100

// Stats accumulates the outcome of one reconciliation pass. It is created at
// the start of a pass and returned by value at the end; the engine keeps no
// shared accumulator between invocations.
type Stats struct {
	// TotalProcessed counts rows whose writes completed.
	TotalProcessed int `json:"total_processed"`

	// OrdersCreated counts orders inserted for a previously unseen UUID.
	OrdersCreated int `json:"orders_created"`

	// OrdersUpdated counts orders refreshed for a known UUID.
	OrdersUpdated int `json:"orders_updated"`

	// DriversCreated counts drivers registered on first sighting.
	DriversCreated int `json:"drivers_created"`

	// DispatchesCreated counts dispatch records inserted.
	DispatchesCreated int `json:"dispatches_created"`

	// MalformedRows counts rows discarded before processing because their
	// length did not match the column list. Never reflected in Errors.
	MalformedRows int `json:"malformed_rows"`

	// Errors holds per-row failure messages, capped at maxErrors.
	Errors []string `json:"errors"`

	// ErrorsTruncated is true when more rows failed than Errors can hold.
	ErrorsTruncated bool `json:"errors_truncated,omitempty"`
}

// recordError appends a row failure, honoring the cap.
func (s *Stats) recordError(msg string) {
	if len(s.Errors) >= maxErrors {
		s.ErrorsTruncated = true
		return
	}
	s.Errors = append(s.Errors, msg)
}

// apply merges one successful row's changes into the counters.
func (s *Stats) apply(c rowChange) {
	s.TotalProcessed++
	if c.orderCreated {
		s.OrdersCreated++
	} else {
		s.OrdersUpdated++
	}
	if c.driverCreated {
		s.DriversCreated++
	}
	if c.dispatchCreated {
		s.DispatchesCreated++
	}
}

// rowChange is the typed outcome of one row's writes.
type rowChange struct {
	orderCreated    bool
	driverCreated   bool
	dispatchCreated bool
}

// Package partner implements the fetch client for the delivery partner's API.
//
// One POST with bearer token and session cookie returns a multi-dataset JSON
// envelope; each dataset payload is JSON-encoded text decoded independently,
// so a single malformed dataset is skipped (and logged) rather than failing
// the fetch. Fatal conditions (network, status, top-level decode) surface as
// ErrFetchFailed and carry no partial mapping.
//
// The Client interface exists so the orchestrator can be tested against the
// mock in partner/mocks without a live endpoint.
package partner

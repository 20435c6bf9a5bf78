package partner

import (
	"errors"
	"fmt"
	"time"
)

// Config holds configuration for the partner API fetch client.
type Config struct {
	// Endpoint is the partner API URL the snapshot request is posted to.
	Endpoint string `mapstructure:"endpoint" default:""`
	// Token is the opaque bearer token for the Authorization header.
	Token string `mapstructure:"token" default:""`
	// Cookie is the opaque session cookie string sent with every request.
	Cookie string `mapstructure:"cookie" default:""`
	// ClientID is the stable client identifier embedded in request payloads.
	ClientID string `mapstructure:"client_id" default:"delivery-sync"`
	// TimeoutSeconds bounds the whole fetch round trip.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
	// UTCOffsetHours is the partner's locale offset. It stamps outbound
	// request timestamps and interprets naive timestamps in responses.
	UTCOffsetHours int `mapstructure:"utc_offset_hours" default:"-3"`
}

// ErrMissingEndpoint indicates the fetch client was constructed without a URL.
var ErrMissingEndpoint = errors.New("partner: endpoint is required")

// Validate checks the config for required fields.
func (c Config) Validate() error {
	if c.Endpoint == "" {
		return ErrMissingEndpoint
	}
	return nil
}

// Location returns the fixed timezone derived from the configured offset.
func (c Config) Location() *time.Location {
	return time.FixedZone(fmt.Sprintf("UTC%+d", c.UTCOffsetHours), c.UTCOffsetHours*3600)
}

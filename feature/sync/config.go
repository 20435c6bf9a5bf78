package sync

import "time"

// Config holds configuration for the sync pipeline.
type Config struct {
	// Dataset is the name of the partner dataset carrying delivery orders.
	Dataset string `mapstructure:"dataset" default:"DeliveryOrders"`
	// CacheTTLSeconds is the snapshot cache time-to-live.
	CacheTTLSeconds int `mapstructure:"cache_ttl_seconds" default:"300"`
}

// CacheTTL returns the snapshot TTL as a duration.
func (c Config) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLSeconds) * time.Second
}

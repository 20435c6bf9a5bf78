package partner

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestConfig_Validate(t *testing.T) {
	assert.ErrorIs(t, Config{}.Validate(), ErrMissingEndpoint)
	assert.NoError(t, Config{Endpoint: "https://partner.example.com/export"}.Validate())
}

func TestConfig_Location(t *testing.T) {
	loc := Config{UTCOffsetHours: -3}.Location()

	// A naive partner timestamp interpreted in loc lands three hours later
	// in UTC.
	local := time.Date(2024, 3, 1, 10, 0, 0, 0, loc)
	assert.Equal(t, time.Date(2024, 3, 1, 13, 0, 0, 0, time.UTC), local.UTC())

	// Zero offset behaves like UTC.
	zero := time.Date(2024, 3, 1, 10, 0, 0, 0, Config{}.Location())
	assert.True(t, zero.Equal(time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)))
}

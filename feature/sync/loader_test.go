package sync

import (
	"testing"

	"delivery-sync/feature/sync/partner"
	partnermocks "delivery-sync/feature/sync/partner/mocks"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestLoader(t *testing.T) {
	client := new(partnermocks.Client)
	logger := zap.NewNop()
	// Pass nil db for this test as we don't access it unless we run a sync
	feature := NewFeature(nil, client, nil, "", Config{Dataset: "DeliveryOrders"},
		partner.Config{ClientID: "delivery-sync", UTCOffsetHours: -3}, logger)

	assert.Equal(t, "sync", feature.Name())
	assert.True(t, feature.IsEnabled())
	assert.NotNil(t, feature.Service())

	app := fiber.New()
	err := feature.Load(app)
	assert.NoError(t, err)
}

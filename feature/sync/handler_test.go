package sync

import (
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	partnermocks "delivery-sync/feature/sync/partner/mocks"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func testApp(t *testing.T, client *partnermocks.Client) (*fiber.App, *Service) {
	t.Helper()

	svc, _, _ := testService(t, client, nil)
	app := fiber.New()
	NewHandler(svc).RegisterRoutes(app)
	return app, svc
}

func TestHandleRun_Success(t *testing.T) {
	client := new(partnermocks.Client)
	client.On("FetchDatasets", mock.Anything, mock.Anything).
		Return(orderDatasets("11111111-1111-1111-1111-111111111111"), nil).Once()

	app, _ := testApp(t, client)

	resp, err := app.Test(httptest.NewRequest("POST", "/sync/run", nil))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var result Result
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	assert.True(t, result.Success)
	require.NotNil(t, result.Stats)
	assert.Equal(t, 1, result.Stats.OrdersCreated)
}

func TestHandleRun_ForceQueryBypassesCache(t *testing.T) {
	client := new(partnermocks.Client)
	client.On("FetchDatasets", mock.Anything, mock.Anything).
		Return(orderDatasets("11111111-1111-1111-1111-111111111111"), nil).Once()

	app, svc := testApp(t, client)
	svc.snapshots.Put(testPartner, orderDatasets("22222222-2222-2222-2222-222222222222"), time.Minute)

	resp, err := app.Test(httptest.NewRequest("POST", "/sync/run?force=true", nil))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	client.AssertExpectations(t)
}

func TestHandleRun_FetchFailureIsBadGateway(t *testing.T) {
	client := new(partnermocks.Client)
	client.On("FetchDatasets", mock.Anything, mock.Anything).
		Return(nil, assert.AnError).Once()

	app, _ := testApp(t, client)

	resp, err := app.Test(httptest.NewRequest("POST", "/sync/run", nil))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, fiber.StatusBadGateway, resp.StatusCode)

	var result Result
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	assert.False(t, result.Success)
	assert.NotEmpty(t, result.Error)
}

func TestHandleDatasets(t *testing.T) {
	app, svc := testApp(t, new(partnermocks.Client))

	resp, err := app.Test(httptest.NewRequest("GET", "/sync/datasets", nil))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var status CacheStatus
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&status))
	assert.False(t, status.Cached)

	svc.snapshots.Put(testPartner, orderDatasets("11111111-1111-1111-1111-111111111111"), time.Minute)

	resp, err = app.Test(httptest.NewRequest("GET", "/sync/datasets", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	require.NoError(t, json.NewDecoder(resp.Body).Decode(&status))
	assert.True(t, status.Cached)
	require.Len(t, status.Datasets, 1)
	assert.Equal(t, "DeliveryOrders", status.Datasets[0].Name)
}

func TestHandleSnapshots_ArchiveDisabled(t *testing.T) {
	app, _ := testApp(t, new(partnermocks.Client))

	resp, err := app.Test(httptest.NewRequest("GET", "/sync/snapshots", nil))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)
}

package partner

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testConfig(endpoint string) Config {
	return Config{
		Endpoint:       endpoint,
		Token:          "secret-token",
		Cookie:         "session=abc123",
		ClientID:       "delivery-sync",
		TimeoutSeconds: 5,
		UTCOffsetHours: -3,
	}
}

// envelope builds the partner's nested response: each dataset payload is
// JSON-encoded text inside the outer JSON envelope.
func envelope(t *testing.T, tables map[string]datasetPayload) []byte {
	t.Helper()

	var env fetchEnvelope
	for name, payload := range tables {
		inner, err := json.Marshal(payload)
		require.NoError(t, err)
		env.Tables = append(env.Tables, fetchTable{Name: name, DataSet: string(inner)})
	}

	raw, err := json.Marshal(env)
	require.NoError(t, err)
	return raw
}

func TestFetchDatasets_Success(t *testing.T) {
	var gotReq fetchRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Bearer secret-token", r.Header.Get("Authorization"))
		assert.Equal(t, "session=abc123", r.Header.Get("Cookie"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))

		w.Write(envelope(t, map[string]datasetPayload{
			"DeliveryOrders": {
				Columns: []string{"ORDER_UUID", "ORDER_STATUS"},
				Data:    [][]any{{"u1", "delivered"}, {"u2", "failed"}},
			},
		}))
	}))
	defer srv.Close()

	client, err := NewHTTPClient(testConfig(srv.URL), zap.NewNop())
	require.NoError(t, err)

	datasets, err := client.FetchDatasets(context.Background(), []string{"DeliveryOrders"})
	require.NoError(t, err)

	assert.Equal(t, "delivery-sync", gotReq.ClientID)
	assert.Equal(t, []string{"DeliveryOrders"}, gotReq.Datasets)
	assert.NotEmpty(t, gotReq.RequestedAt)

	ds, ok := datasets["DeliveryOrders"]
	require.True(t, ok)
	assert.Equal(t, []string{"ORDER_UUID", "ORDER_STATUS"}, ds.Columns)
	assert.Len(t, ds.Rows, 2)
}

func TestFetchDatasets_MalformedDatasetSkipped(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// One valid dataset, one with undecodable payload text.
		var env fetchEnvelope
		inner, _ := json.Marshal(datasetPayload{Columns: []string{"A"}, Data: [][]any{{"1"}}})
		env.Tables = []fetchTable{
			{Name: "Good", DataSet: string(inner)},
			{Name: "Broken", DataSet: "{not json"},
		}
		raw, _ := json.Marshal(env)
		w.Write(raw)
	}))
	defer srv.Close()

	client, err := NewHTTPClient(testConfig(srv.URL), zap.NewNop())
	require.NoError(t, err)

	datasets, err := client.FetchDatasets(context.Background(), []string{"Good", "Broken"})
	require.NoError(t, err)

	assert.Contains(t, datasets, "Good")
	assert.NotContains(t, datasets, "Broken")
}

func TestFetchDatasets_EmptyEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"Tables":[]}`))
	}))
	defer srv.Close()

	client, err := NewHTTPClient(testConfig(srv.URL), zap.NewNop())
	require.NoError(t, err)

	datasets, err := client.FetchDatasets(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, datasets)
}

func TestFetchDatasets_FetchFailed(t *testing.T) {
	t.Run("non-2xx status", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer srv.Close()

		client, err := NewHTTPClient(testConfig(srv.URL), zap.NewNop())
		require.NoError(t, err)

		datasets, err := client.FetchDatasets(context.Background(), []string{"DeliveryOrders"})
		assert.ErrorIs(t, err, ErrFetchFailed)
		assert.Nil(t, datasets)
	})

	t.Run("undecodable top-level envelope", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("not json at all"))
		}))
		defer srv.Close()

		client, err := NewHTTPClient(testConfig(srv.URL), zap.NewNop())
		require.NoError(t, err)

		datasets, err := client.FetchDatasets(context.Background(), []string{"DeliveryOrders"})
		assert.ErrorIs(t, err, ErrFetchFailed)
		assert.Nil(t, datasets)
	})

	t.Run("network failure", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		srv.Close() // refuse connections

		client, err := NewHTTPClient(testConfig(srv.URL), zap.NewNop())
		require.NoError(t, err)

		datasets, err := client.FetchDatasets(context.Background(), []string{"DeliveryOrders"})
		assert.ErrorIs(t, err, ErrFetchFailed)
		assert.Nil(t, datasets)
	})
}

func TestNewHTTPClient_RequiresEndpoint(t *testing.T) {
	_, err := NewHTTPClient(Config{}, zap.NewNop())
	assert.ErrorIs(t, err, ErrMissingEndpoint)
}

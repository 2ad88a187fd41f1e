package storefront

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kazimtwelvor/Jacket-Store-Localization-sub003/internal/config"
	domain "github.com/kazimtwelvor/Jacket-Store-Localization-sub003/internal/domain/order"
	"github.com/kazimtwelvor/Jacket-Store-Localization-sub003/pkg/logger"
)

func testConfig(baseURL string) config.StorefrontConfig {
	return config.StorefrontConfig{
		BaseURL:   baseURL,
		APIKey:    "test-api-key",
		StoreID:   "test-store",
		PageSize:  100,
		SleepMS:   10,
		TimeoutMS: 2000,
	}
}

func TestClient_FetchOrder_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/orders/ord-1", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id": "ord-1", "status": "processing", "total": "99.98"}`))
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL), logger.NewNop())

	raw, err := client.FetchOrder(context.Background(), "ord-1")

	require.NoError(t, err)
	assert.Equal(t, "ord-1", raw["id"])
	assert.Equal(t, "99.98", raw["total"])
}

func TestClient_FetchStoreOrder_Path(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/store-9/orders/ord-1", r.URL.Path)
		w.Write([]byte(`{"id": "ord-1"}`))
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL), logger.NewNop())

	raw, err := client.FetchStoreOrder(context.Background(), "store-9", "ord-1")

	require.NoError(t, err)
	assert.Equal(t, "ord-1", raw["id"])
}

func TestClient_FetchOrder_HTTPErrorCarriesStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL), logger.NewNop())

	raw, err := client.FetchOrder(context.Background(), "missing")

	assert.Nil(t, raw)
	var fe *domain.FetchError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, http.StatusNotFound, fe.Status)
	assert.True(t, domain.IsNotFound(err))
}

func TestClient_FetchOrder_NetworkError(t *testing.T) {
	// A closed server makes every dial fail.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client := NewClient(testConfig(server.URL), logger.NewNop())

	raw, err := client.FetchOrder(context.Background(), "ord-1")

	assert.Nil(t, raw)
	assert.ErrorIs(t, err, domain.ErrNetwork)
}

func TestClient_FetchOrder_MalformedBodyIsAbsorbed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`this is not json`))
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL), logger.NewNop())

	raw, err := client.FetchOrder(context.Background(), "ord-1")

	// Malformed bodies degrade to an empty record for the normalizer.
	require.NoError(t, err)
	assert.NotNil(t, raw)
	assert.Empty(t, raw)
}

func TestClient_FetchRecentOrders_RequiresCredentials(t *testing.T) {
	cfg := testConfig("https://api.example.com")
	cfg.APIKey = ""
	client := NewClient(cfg, logger.NewNop())

	orders, err := client.FetchRecentOrders(context.Background(), nil, nil)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "api_key or store_id is empty")
	assert.Nil(t, orders)
}

func TestClient_FetchRecentOrders_Paginates(t *testing.T) {
	pages := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		pages++
		assert.Equal(t, "/test-store/orders", r.URL.Path)
		assert.Equal(t, "test-api-key", r.URL.Query().Get("api_key"))

		response := map[string]interface{}{
			"data": []json.RawMessage{
				json.RawMessage(`{"id": "ord-1"}`),
			},
			"total_pages": 2,
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(response)
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL), logger.NewNop())

	start := time.Now().Add(-time.Hour)
	end := time.Now()
	orders, err := client.FetchRecentOrders(context.Background(), &start, &end)

	require.NoError(t, err)
	assert.Len(t, orders, 2)
	assert.Equal(t, 2, pages)
}

func TestClient_FetchRecentOrders_EmptyPageStops(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data": [], "total_pages": 5}`))
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL), logger.NewNop())

	orders, err := client.FetchRecentOrders(context.Background(), nil, nil)

	require.NoError(t, err)
	assert.Empty(t, orders)
}

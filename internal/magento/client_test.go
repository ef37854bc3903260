package magento_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sivajik34/aifastcommerce/internal/config"
	"github.com/sivajik34/aifastcommerce/internal/magento"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *magento.Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return magento.NewClient(config.MagentoConfig{
		BaseURL:     srv.URL,
		AccessToken: "token-123",
		StoreView:   "default",
		Timeout:     5 * time.Second,
		VerifyTLS:   true,
	})
}

func TestClientSend(t *testing.T) {
	t.Parallel()

	t.Run("builds path and auth header", func(t *testing.T) {
		t.Parallel()

		var gotPath, gotAuth string
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			gotAuth = r.Header.Get("Authorization")
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"sku":"WS12","price":34.5}`))
		})

		raw, err := c.Get(t.Context(), "products/WS12")
		require.NoError(t, err)

		assert.Equal(t, "/rest/default/V1/products/WS12", gotPath)
		assert.Equal(t, "Bearer token-123", gotAuth)
		assert.JSONEq(t, `{"sku":"WS12","price":34.5}`, string(raw))
	})

	t.Run("sends json body", func(t *testing.T) {
		t.Parallel()

		var gotBody map[string]any
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(`true`))
		})

		raw, err := c.Send(t.Context(), "POST", "products", map[string]any{
			"product": map[string]any{"sku": "NEW-1"},
		})
		require.NoError(t, err)
		assert.JSONEq(t, `true`, string(raw))
		assert.Equal(t, map[string]any{"product": map[string]any{"sku": "NEW-1"}}, gotBody)
	})

	t.Run("non-2xx surfaces server error body", func(t *testing.T) {
		t.Parallel()

		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"message":"The product that was requested doesn't exist."}`))
		})

		_, err := c.Get(t.Context(), "products/MISSING")
		require.Error(t, err)

		var apiErr *magento.APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
		assert.Contains(t, apiErr.Body, "doesn't exist")
		assert.Contains(t, apiErr.Error(), "status 404")
	})

	t.Run("non-json body wrapped as json string", func(t *testing.T) {
		t.Parallel()

		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/plain")
			_, _ = w.Write([]byte(`OK`))
		})

		raw, err := c.Get(t.Context(), "ping")
		require.NoError(t, err)
		assert.JSONEq(t, `"OK"`, string(raw))
	})

	t.Run("empty body returns null", func(t *testing.T) {
		t.Parallel()

		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		})

		raw, err := c.Send(t.Context(), "DELETE", "products/OLD-1", nil)
		require.NoError(t, err)
		assert.Equal(t, "null", string(raw))
	})
}

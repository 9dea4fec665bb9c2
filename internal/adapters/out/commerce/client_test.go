package commerce_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"trackorder/internal/adapters/out/commerce"
	"trackorder/internal/core/domain/model/kernel"
	"trackorder/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) (*httptest.Server, *commerce.Client) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := commerce.NewClient(server.URL, "test-api-key")
	require.NoError(t, err)
	return server, client
}

func TestCreateBalanceOrder(t *testing.T) {
	var captured map[string]any
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/wp-json/marketplace/v1/orders/balance", r.URL.Path)
		assert.Equal(t, "test-api-key", r.Header.Get("X-Api-Key"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))

		_ = json.NewEncoder(w).Encode(map[string]any{
			"order_id":    4212,
			"payment_url": "https://marketplace.test/checkout/4212",
		})
	})

	orderID, err := kernel.NewOrderID(4211)
	require.NoError(t, err)
	customer, err := kernel.NewUserID(42)
	require.NoError(t, err)
	amount, err := kernel.NewMoneyFromCents(8750)
	require.NoError(t, err)

	balanceOrder, err := client.CreateBalanceOrder(context.Background(), orderID, customer, amount)
	require.NoError(t, err)

	assert.Equal(t, int64(4212), balanceOrder.ID.Int64())
	assert.Equal(t, "https://marketplace.test/checkout/4212", balanceOrder.PaymentURL)
	assert.Equal(t, float64(4211), captured["original_order_id"])
	assert.Equal(t, float64(42), captured["customer_id"])
	assert.Equal(t, float64(8750), captured["amount_cents"])
}

func TestPostMessage_SystemAuthorOmitted(t *testing.T) {
	var captured map[string]any
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/wp-json/marketplace/v1/threads/99/messages", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		w.WriteHeader(http.StatusCreated)
	})

	err := client.PostMessage(context.Background(), 99, kernel.UserID{}, "Order received.")
	require.NoError(t, err)

	assert.Equal(t, "Order received.", captured["body"])
	assert.NotContains(t, captured, "author_id")
}

func TestUserEmail_And_IsProducer(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/wp-json/marketplace/v1/users/7", r.URL.Path)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"user_id":     7,
			"email":       "producer@example.com",
			"is_producer": true,
		})
	})

	producerID, err := kernel.NewUserID(7)
	require.NoError(t, err)

	email, err := client.UserEmail(context.Background(), producerID)
	require.NoError(t, err)
	assert.Equal(t, "producer@example.com", email)

	isProducer, err := client.IsProducer(context.Background(), producerID)
	require.NoError(t, err)
	assert.True(t, isProducer)
}

func TestGetUser_NotFound(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	missing, err := kernel.NewUserID(12345)
	require.NoError(t, err)

	_, err = client.UserEmail(context.Background(), missing)
	assert.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestCompleteOrder_ServerError(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "woocommerce exploded", http.StatusInternalServerError)
	})

	orderID, err := kernel.NewOrderID(4211)
	require.NoError(t, err)

	err = client.CompleteOrder(context.Background(), orderID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "500")
}

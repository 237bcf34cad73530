package razorpay

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testKeyID     = "rzp_test_key_id"
	testKeySecret = "rzp_test_key_secret"
)

func TestNewRequiresCredentials(t *testing.T) {
	cases := []struct {
		name      string
		keyID     string
		keySecret string
		wantErr   error
	}{
		{name: "both present", keyID: testKeyID, keySecret: testKeySecret},
		{name: "missing key id", keyID: "", keySecret: testKeySecret, wantErr: ErrMissingCredentials},
		{name: "missing key secret", keyID: testKeyID, keySecret: "", wantErr: ErrMissingCredentials},
		{name: "missing both", keyID: "", keySecret: "", wantErr: ErrMissingCredentials},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			client, err := New(tc.keyID, tc.keySecret)
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				assert.Nil(t, client)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, client)
		})
	}
}

func TestCreateOrder(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, RouteOrders, r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		// ключи уходят только базовой авторизацией, никогда в теле.
		keyID, keySecret, ok := r.BasicAuth()
		require.True(t, ok)
		assert.Equal(t, testKeyID, keyID)
		assert.Equal(t, testKeySecret, keySecret)

		var args CreateOrderArgs
		require.NoError(t, json.NewDecoder(r.Body).Decode(&args))
		assert.Equal(t, int64(1000), args.Amount)
		assert.Equal(t, "INR", args.Currency)
		assert.NotEmpty(t, args.Receipt)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(Order{
			ID:       "order_N8x2LqYpVQ4zhB",
			Amount:   args.Amount,
			Currency: args.Currency,
			Receipt:  args.Receipt,
			Status:   "created",
		})
	}))
	defer server.Close()

	client, clientErr := New(testKeyID, testKeySecret, WithBaseURL(server.URL))
	require.NoError(t, clientErr)

	order, err := client.CreateOrder(t.Context(), CreateOrderArgs{
		Amount:   1000,
		Currency: "INR",
		Receipt:  "order_1700000000000_user",
	})

	require.NoError(t, err)
	assert.Equal(t, "order_N8x2LqYpVQ4zhB", order.ID)
	assert.Equal(t, int64(1000), order.Amount)
	assert.Equal(t, "INR", order.Currency)
}

func TestCreateOrderUnexpectedStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		// тело ошибки шлюза клиент должен проигнорировать, вернув типизированную ошибку.
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"description":"receipt collision"}}`))
	}))
	defer server.Close()

	client, clientErr := New(testKeyID, testKeySecret, WithBaseURL(server.URL))
	require.NoError(t, clientErr)

	_, err := client.CreateOrder(t.Context(), CreateOrderArgs{Amount: 1000, Currency: "INR", Receipt: "r"})

	var statusErr *StatusCodeError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusBadRequest, statusErr.Code)
}

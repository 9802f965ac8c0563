package resend

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"GearGodAPI/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendOrderConfirmation(t *testing.T) {
	var got sendRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/emails", r.URL.Path)
		assert.Equal(t, "Bearer re_test", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	m, err := NewResendMailer("re_test", "GearGod <orders@geargod.dev>")
	require.NoError(t, err)
	m.baseURL = srv.URL

	o := &model.OrderDetail{
		Order: model.Order{OrderID: 12, FirstName: "<Ada>", TotalAmount: 180, ShippingAddress: "1 Analytical Way"},
		Items: []model.OrderItem{{ProductID: 1, ProductName: "Case", Quantity: 2, Subtotal: 200}},
	}
	require.NoError(t, m.SendOrderConfirmation(context.Background(), "ada@example.com", o))

	assert.Equal(t, []string{"ada@example.com"}, got.To)
	assert.Equal(t, "Your GearGod order #12", got.Subject)
	assert.Contains(t, got.HTML, "&lt;Ada&gt;")
	assert.Contains(t, got.HTML, "Total: 180.00")
}

func TestSendOrderConfirmationFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "domain not verified", http.StatusForbidden)
	}))
	defer srv.Close()

	m, _ := NewResendMailer("re_test", "from@example.com")
	m.baseURL = srv.URL

	err := m.SendOrderConfirmation(context.Background(), "a@example.com", &model.OrderDetail{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "domain not verified")
}

func TestNewResendMailerRequiresKey(t *testing.T) {
	_, err := NewResendMailer("", "from@example.com")
	assert.Error(t, err)
}

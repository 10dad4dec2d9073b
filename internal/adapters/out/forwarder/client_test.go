package forwarder_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"dropship/internal/adapters/out/forwarder"
	"dropship/internal/core/domain/model/buyer"
	"dropship/internal/core/domain/model/kernel"
	"dropship/internal/core/domain/model/order"
	"dropship/internal/core/domain/services"
	"dropship/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newShippableOrder restores an order that already carries a supplier order
// id, as it would after the supplier step.
func newShippableOrder(t *testing.T) (*order.Order, *buyer.BuyerInfo) {
	t.Helper()
	id := kernel.NewUUID()
	price, err := kernel.NewMoney(2500, "USD")
	require.NoError(t, err)
	supplierOrderID := "SUP-777"
	aggregate, err := order.RestoreOrder(id, "mercari", "M-12345", "prod-42", 2, price,
		order.BuyerInfoSet, order.Unknown, 0, &supplierOrderID, nil,
		map[string]string{}, time.Now().UTC(), time.Now().UTC())
	require.NoError(t, err)

	info, err := buyer.NewBuyerInfo(id, "Taro Yamada", "+81-90-0000-0000",
		"1-2-3 Chuo", "Apt 5", "100-0001", "JP", "CUST-123")
	require.NoError(t, err)
	return aggregate, info
}

func newClient(t *testing.T, baseURL string) *forwarder.Client {
	t.Helper()
	client, err := forwarder.NewClient(forwarder.Config{
		BaseURL: baseURL,
		APIKey:  "test-key",
		Timeout: 2 * time.Second,
	})
	require.NoError(t, err)
	return client
}

func TestNewClient_RequiresBaseURLAndTimeout(t *testing.T) {
	_, err := forwarder.NewClient(forwarder.Config{Timeout: time.Second})
	assert.Error(t, err)

	_, err = forwarder.NewClient(forwarder.Config{BaseURL: "http://forwarder.local"})
	assert.Error(t, err)
}

func TestClient_SubmitShipment_Success(t *testing.T) {
	aggregate, info := newShippableOrder(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/shipments", r.URL.Path)

		var payload struct {
			SupplierOrderID string `json:"supplier_order_id"`
			ProductID       string `json:"product_id"`
			Qty             int    `json:"qty"`
			Recipient       struct {
				Name      string `json:"name"`
				Country   string `json:"country"`
				CustomsID string `json:"customs_id"`
			} `json:"recipient"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "SUP-777", payload.SupplierOrderID)
		assert.Equal(t, "prod-42", payload.ProductID)
		assert.Equal(t, 2, payload.Qty)
		assert.Equal(t, "Taro Yamada", payload.Recipient.Name)
		assert.Equal(t, "JP", payload.Recipient.Country)
		assert.Equal(t, "CUST-123", payload.Recipient.CustomsID)

		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(map[string]string{"job_id": "FWD-555"})
	}))
	defer server.Close()

	jobID, err := newClient(t, server.URL).SubmitShipment(context.Background(), aggregate, info)

	require.NoError(t, err)
	assert.Equal(t, "FWD-555", jobID)
}

func TestClient_SubmitShipment_WithoutSupplierOrderID(t *testing.T) {
	id := kernel.NewUUID()
	price, err := kernel.NewMoney(2500, "USD")
	require.NoError(t, err)
	aggregate, err := order.NewOrder(id, "mercari", "M-12345", "prod-42", 2, price)
	require.NoError(t, err)
	info, err := buyer.NewBuyerInfo(id, "Taro Yamada", "+81-90-0000-0000",
		"1-2-3 Chuo", "", "100-0001", "JP", "")
	require.NoError(t, err)

	_, err = newClient(t, "http://forwarder.local").SubmitShipment(context.Background(), aggregate, info)

	assert.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestClient_SubmitShipment_ProviderRejectionCodePassesThrough(t *testing.T) {
	aggregate, info := newShippableOrder(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_ = json.NewEncoder(w).Encode(map[string]string{
			"code":    "CUSTOMS_DATA_REJECTED",
			"message": "customs id is invalid for destination JP",
		})
	}))
	defer server.Close()

	_, err := newClient(t, server.URL).SubmitShipment(context.Background(), aggregate, info)

	var callErr *services.ExternalCallError
	require.ErrorAs(t, err, &callErr)
	assert.Equal(t, "CUSTOMS_DATA_REJECTED", callErr.Code)
}

func TestClient_SubmitShipment_ServerError(t *testing.T) {
	aggregate, info := newShippableOrder(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	_, err := newClient(t, server.URL).SubmitShipment(context.Background(), aggregate, info)

	var callErr *services.ExternalCallError
	require.ErrorAs(t, err, &callErr)
	assert.Equal(t, services.CodeServerError, callErr.Code)
}

func TestClient_SubmitShipment_Timeout(t *testing.T) {
	aggregate, info := newShippableOrder(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client, err := forwarder.NewClient(forwarder.Config{
		BaseURL: server.URL,
		Timeout: 50 * time.Millisecond,
	})
	require.NoError(t, err)

	_, err = client.SubmitShipment(context.Background(), aggregate, info)

	var callErr *services.ExternalCallError
	require.ErrorAs(t, err, &callErr)
	assert.Equal(t, services.CodeTimeout, callErr.Code)
}

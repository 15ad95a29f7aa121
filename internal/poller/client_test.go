package poller

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"marketplace-dispatch/internal/apperr"
)

func TestClient_Pending(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "/api/delivery-notifications", r.URL.Path)
		require.Equal(t, "7", r.Header.Get(PartnerHeader))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id":1,"delivery_id":10,"order_id":100,"delivery_partner_id":null,
			"status":"pending","notification_data":"{\"orderId\":100}","created_at":"2025-01-02T03:04:05Z"}]`))
	}))
	t.Cleanup(srv.Close)

	got, err := NewClient(srv.URL+"/", 7, srv.Client()).Pending(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, int64(10), got[0].DeliveryID)
	require.Nil(t, got[0].PartnerID)
	require.JSONEq(t, `{"orderId":100}`, got[0].NotificationData)
}

func TestClient_AcceptSendsPartnerID(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/delivery-notifications/100/accept", r.URL.Path)
		var body map[string]int64
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, int64(7), body["deliveryPartnerId"])
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"id":10,"status":"assigned"}`))
	}))
	t.Cleanup(srv.Close)

	require.NoError(t, NewClient(srv.URL, 7, srv.Client()).Accept(context.Background(), 100))
}

func TestClient_MapsErrorStatuses(t *testing.T) {
	t.Parallel()

	cases := map[int]error{
		http.StatusBadRequest: apperr.ErrInvalid,
		http.StatusForbidden:  apperr.ErrForbidden,
		http.StatusNotFound:   apperr.ErrNotFound,
		http.StatusConflict:   apperr.ErrConflict,
	}
	for code, want := range cases {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(code)
			_, _ = w.Write([]byte(`{"error":"nope"}`))
		}))

		err := NewClient(srv.URL, 7, srv.Client()).Reject(context.Background(), 1)
		srv.Close()

		require.ErrorIs(t, err, want, "status %d", code)
		var apiErr *APIError
		require.ErrorAs(t, err, &apiErr)
		require.Equal(t, "nope", apiErr.Message)
	}
}

func TestClient_ServerErrorIsNotASentinel(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "upstream down", http.StatusBadGateway)
	}))
	t.Cleanup(srv.Close)

	_, err := NewClient(srv.URL, 7, srv.Client()).Pending(context.Background())
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, "upstream down", apiErr.Message)
	require.NotErrorIs(t, err, apperr.ErrConflict)
}

package kafka_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"marketplace-dispatch/internal/service/orders"
	"marketplace-dispatch/internal/transport/kafka"
)

func TestToDomain_TrimsAndCopiesFields(t *testing.T) {
	t.Parallel()

	ts := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)

	dto := kafka.EventDTO{
		OrderID:   "42",
		Status:    "  placed  ",
		Reason:    " ",
		CreatedAt: ts,
	}

	got, err := kafka.ToDomain(dto)
	require.NoError(t, err)
	require.Equal(t, orders.Event{
		OrderID:   42,
		Status:    "placed",
		CreatedAt: ts,
	}, got)
}

func TestToDomain_AcceptsNumberAndString(t *testing.T) {
	t.Parallel()

	for _, raw := range []string{`{"order_id":7,"status":"placed"}`, `{"order_id":"7","status":"placed"}`} {
		var dto kafka.EventDTO
		require.NoError(t, json.Unmarshal([]byte(raw), &dto), raw)
		ev, err := kafka.ToDomain(dto)
		require.NoError(t, err, raw)
		require.Equal(t, int64(7), ev.OrderID)
	}
}

func TestToDomain_RejectsMissingOrderID(t *testing.T) {
	t.Parallel()

	for _, id := range []json.Number{"", "0", "-3", "abc"} {
		_, err := kafka.ToDomain(kafka.EventDTO{OrderID: id, Status: "placed"})
		require.Error(t, err, string(id))
	}
}

package kafka

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"marketplace-dispatch/internal/service/orders"
)

// EventDTO is a data transfer object for orders.Event. order_id may arrive as
// a JSON number or a numeric string.
type EventDTO struct {
	OrderID   json.Number `json:"order_id"`
	Status    string      `json:"status"`
	Reason    string      `json:"reason,omitempty"`
	CreatedAt time.Time   `json:"created_at"`
}

// ToDomain converts EventDTO to orders.Event
func ToDomain(dto EventDTO) (orders.Event, error) {
	raw := strings.TrimSpace(dto.OrderID.String())
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return orders.Event{}, fmt.Errorf("invalid order_id %q", raw)
	}
	return orders.Event{
		OrderID:   id,
		Status:    strings.TrimSpace(dto.Status),
		Reason:    strings.TrimSpace(dto.Reason),
		CreatedAt: dto.CreatedAt,
	}, nil
}

package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"marketplace-dispatch/internal/domain"
)

// TrackingRepo reads delivery tracking state.
type TrackingRepo struct {
	db *pgxpool.Pool
}

// NewTrackingRepo creates a new TrackingRepo.
func NewTrackingRepo(db *pgxpool.Pool) *TrackingRepo {
	return &TrackingRepo{db: db}
}

// appendTrackingEvent inserts e with a created_at strictly after every earlier event
// of the same order, even when the wall clock goes backwards.
func appendTrackingEvent(ctx context.Context, q querier, e *domain.TrackingEvent) error {
	at := e.CreatedAt
	if at.IsZero() {
		at = time.Now().UTC()
	}
	var deliveryID *int64
	if e.DeliveryID > 0 {
		deliveryID = &e.DeliveryID
	}
	err := q.QueryRow(ctx, `
        INSERT INTO order_tracking (order_id, delivery_id, status, description, latitude, longitude, created_at)
        SELECT $1, $2, $3, $4, $5, $6,
               GREATEST($7::timestamptz, COALESCE(MAX(t.created_at) + interval '1 microsecond', $7::timestamptz))
        FROM order_tracking t
        WHERE t.order_id = $1
        RETURNING id, created_at
    `, e.OrderID, deliveryID, string(e.Status), e.Description, e.Latitude, e.Longitude, at,
	).Scan(&e.ID, &e.CreatedAt)
	if err != nil {
		return fmt.Errorf("append tracking event for order %d: %w", e.OrderID, err)
	}
	return nil
}

// Append - append a tracking event outside of a delivery transaction.
func (r *TrackingRepo) Append(ctx context.Context, e *domain.TrackingEvent) error {
	return appendTrackingEvent(ctx, r.db, e)
}

// ListByOrder - tracking history of an order, newest first.
func (r *TrackingRepo) ListByOrder(ctx context.Context, orderID int64) ([]domain.TrackingEvent, error) {
	rows, err := r.db.Query(ctx, `
        SELECT id, order_id, COALESCE(delivery_id, 0), status, description, latitude, longitude, created_at
        FROM order_tracking
        WHERE order_id = $1
        ORDER BY created_at DESC, id DESC
    `, orderID)
	if err != nil {
		return nil, fmt.Errorf("list tracking of order %d: %w", orderID, err)
	}
	defer rows.Close()

	out := make([]domain.TrackingEvent, 0)
	for rows.Next() {
		var e domain.TrackingEvent
		if err := rows.Scan(&e.ID, &e.OrderID, &e.DeliveryID, &e.Status, &e.Description,
			&e.Latitude, &e.Longitude, &e.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// Snapshot - current delivery state joined with its partner, or (nil, nil).
func (r *TrackingRepo) Snapshot(ctx context.Context, deliveryID int64) (*domain.TrackingSnapshot, error) {
	d, err := getDelivery(ctx, r.db, deliveryID)
	if err != nil || d == nil {
		return nil, err
	}
	snap := &domain.TrackingSnapshot{Delivery: *d}
	if d.PartnerID == nil {
		return snap, nil
	}

	p, err := getPartner(ctx, r.db, *d.PartnerID)
	if err != nil {
		return nil, err
	}
	snap.Partner = p
	return snap, nil
}

package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"marketplace-dispatch/internal/apperr"
	"marketplace-dispatch/internal/domain"
	"marketplace-dispatch/internal/ports/dispatchtx"
)

const deliveryColumns = `id, order_id, store_id, partner_id, status, pickup_address, delivery_address,
        estimated_distance, delivery_fee, current_latitude, current_longitude,
        assigned_at, delivered_at, created_at, updated_at`

// DeliveryRepo represents delivery repository.
type DeliveryRepo struct {
	db *pgxpool.Pool
}

// NewDeliveryRepo creates a new DeliveryRepo.
func NewDeliveryRepo(db *pgxpool.Pool) *DeliveryRepo {
	return &DeliveryRepo{db: db}
}

// WithTx opens a transaction and executes fn within it.
func (r *DeliveryRepo) WithTx(ctx context.Context, fn func(tx dispatchtx.Repository) error) error {
	return inTx(ctx, r.db, func(tx pgx.Tx) error {
		return fn(&TxRepo{q: tx})
	})
}

// TxRepo exposes delivery writes bound to one transaction.
type TxRepo struct {
	q querier
}

var _ dispatchtx.Repository = (*TxRepo)(nil)

func scanDelivery(row pgx.Row) (*domain.Delivery, error) {
	var d domain.Delivery
	err := row.Scan(
		&d.ID, &d.OrderID, &d.StoreID, &d.PartnerID, &d.Status, &d.PickupAddress, &d.DeliveryAddress,
		&d.EstimatedDistance, &d.DeliveryFee, &d.CurrentLatitude, &d.CurrentLongitude,
		&d.AssignedAt, &d.DeliveredAt, &d.CreatedAt, &d.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// scanOptionalDelivery maps "no rows" to (nil, nil).
func scanOptionalDelivery(row pgx.Row, op string) (*domain.Delivery, error) {
	d, err := scanDelivery(row)
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return d, nil
}

func collectDeliveries(rows pgx.Rows) ([]domain.Delivery, error) {
	defer rows.Close()
	out := make([]domain.Delivery, 0)
	for rows.Next() {
		d, err := scanDelivery(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *d)
	}
	return out, rows.Err()
}

// InsertDelivery - insert a new pending delivery. A second live delivery for the
// same order is reported as apperr.ErrConflict.
func (r *TxRepo) InsertDelivery(ctx context.Context, d *domain.Delivery) error {
	err := r.q.QueryRow(ctx, `
        INSERT INTO deliveries (order_id, store_id, partner_id, status, pickup_address, delivery_address,
                                estimated_distance, delivery_fee)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
        RETURNING id, created_at, updated_at
    `, d.OrderID, d.StoreID, d.PartnerID, string(d.Status), d.PickupAddress, d.DeliveryAddress,
		d.EstimatedDistance, d.DeliveryFee,
	).Scan(&d.ID, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		if IsDuplicate(err) {
			return apperr.ErrConflict
		}
		return fmt.Errorf("insert delivery for order %d: %w", d.OrderID, err)
	}
	return nil
}

// InsertNotification - insert a notification row.
func (r *TxRepo) InsertNotification(ctx context.Context, n *domain.Notification) error {
	err := r.q.QueryRow(ctx, `
        INSERT INTO notifications (user_id, delivery_id, type, payload)
        VALUES ($1, $2, $3, $4)
        RETURNING id, created_at
    `, n.UserID, n.DeliveryID, n.Type, n.Payload).Scan(&n.ID, &n.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert notification: %w", err)
	}
	return nil
}

// AppendTrackingEvent - append an event to the order history.
func (r *TxRepo) AppendTrackingEvent(ctx context.Context, e *domain.TrackingEvent) error {
	return appendTrackingEvent(ctx, r.q, e)
}

// Claim - atomically hand a pending delivery to partnerID. The row must still be
// pending and either unassigned or offered to the same partner. Returns (nil, nil)
// when the precondition does not hold.
func (r *TxRepo) Claim(ctx context.Context, deliveryID, partnerID int64, at time.Time) (*domain.Delivery, error) {
	row := r.q.QueryRow(ctx, `
        UPDATE deliveries
        SET partner_id  = $2,
            status      = 'assigned',
            assigned_at = $3,
            updated_at  = $3
        WHERE id = $1
          AND status = 'pending'
          AND (partner_id IS NULL OR partner_id = $2)
        RETURNING `+deliveryColumns,
		deliveryID, partnerID, at)
	return scanOptionalDelivery(row, fmt.Sprintf("claim delivery %d", deliveryID))
}

// TransitionStatus - move a delivery to "to" if its current status is one of from.
// When actor is set the delivery must also be held by that partner. Cancelling
// releases the partner. Returns (nil, nil) when no row matched.
func (r *TxRepo) TransitionStatus(
	ctx context.Context,
	deliveryID int64,
	to domain.DeliveryStatus,
	from []domain.DeliveryStatus,
	actor *int64,
	at time.Time,
) (*domain.Delivery, error) {
	fromArgs := make([]string, 0, len(from))
	for _, s := range from {
		fromArgs = append(fromArgs, string(s))
	}

	row := r.q.QueryRow(ctx, `
        UPDATE deliveries
        SET status       = $2::text,
            partner_id   = CASE WHEN $2::text = 'cancelled' THEN NULL ELSE partner_id END,
            delivered_at = CASE WHEN $2::text = 'delivered' THEN $5 ELSE delivered_at END,
            updated_at   = $5
        WHERE id = $1
          AND status = ANY($3::text[])
          AND ($4::bigint IS NULL OR partner_id = $4)
        RETURNING `+deliveryColumns,
		deliveryID, string(to), fromArgs, actor, at)
	return scanOptionalDelivery(row, fmt.Sprintf("transition delivery %d to %s", deliveryID, to))
}

// GetDelivery - read a delivery inside the transaction.
func (r *TxRepo) GetDelivery(ctx context.Context, id int64) (*domain.Delivery, error) {
	return getDelivery(ctx, r.q, id)
}

func getDelivery(ctx context.Context, q querier, id int64) (*domain.Delivery, error) {
	row := q.QueryRow(ctx, `SELECT `+deliveryColumns+` FROM deliveries WHERE id = $1`, id)
	return scanOptionalDelivery(row, fmt.Sprintf("get delivery %d", id))
}

// Get - returns delivery by its ID.
func (r *DeliveryRepo) Get(ctx context.Context, id int64) (*domain.Delivery, error) {
	return getDelivery(ctx, r.db, id)
}

// GetLiveByOrder - returns the non-cancelled delivery of an order.
func (r *DeliveryRepo) GetLiveByOrder(ctx context.Context, orderID int64) (*domain.Delivery, error) {
	row := r.db.QueryRow(ctx, `
        SELECT `+deliveryColumns+`
        FROM deliveries
        WHERE order_id = $1 AND status <> 'cancelled'
        ORDER BY id DESC
        LIMIT 1
    `, orderID)
	return scanOptionalDelivery(row, fmt.Sprintf("get live delivery by order %d", orderID))
}

// ListByOrder - every delivery ever created for an order, oldest first.
func (r *DeliveryRepo) ListByOrder(ctx context.Context, orderID int64) ([]domain.Delivery, error) {
	rows, err := r.db.Query(ctx, `SELECT `+deliveryColumns+` FROM deliveries WHERE order_id = $1 ORDER BY id`, orderID)
	if err != nil {
		return nil, fmt.Errorf("list deliveries by order %d: %w", orderID, err)
	}
	return collectDeliveries(rows)
}

// ListByPartner - deliveries held or completed by a partner, newest first.
func (r *DeliveryRepo) ListByPartner(ctx context.Context, partnerID int64) ([]domain.Delivery, error) {
	rows, err := r.db.Query(ctx, `
        SELECT `+deliveryColumns+`
        FROM deliveries
        WHERE partner_id = $1 AND status <> 'pending'
        ORDER BY created_at DESC, id DESC
    `, partnerID)
	if err != nil {
		return nil, fmt.Errorf("list deliveries by partner %d: %w", partnerID, err)
	}
	return collectDeliveries(rows)
}

// ListActive - deliveries in progress. A partner sees what it holds; a store sees
// every non-terminal delivery including unclaimed ones.
func (r *DeliveryRepo) ListActive(ctx context.Context, f domain.ActiveFilter) ([]domain.Delivery, error) {
	var (
		rows pgx.Rows
		err  error
	)
	switch {
	case f.PartnerID != nil:
		rows, err = r.db.Query(ctx, `
            SELECT `+deliveryColumns+`
            FROM deliveries
            WHERE partner_id = $1 AND status IN ('assigned', 'picked_up', 'in_transit')
            ORDER BY assigned_at, id
        `, *f.PartnerID)
	case f.StoreID != nil:
		rows, err = r.db.Query(ctx, `
            SELECT `+deliveryColumns+`
            FROM deliveries
            WHERE store_id = $1 AND status NOT IN ('delivered', 'cancelled')
            ORDER BY created_at DESC, id DESC
        `, *f.StoreID)
	default:
		rows, err = r.db.Query(ctx, `
            SELECT `+deliveryColumns+`
            FROM deliveries
            WHERE status NOT IN ('delivered', 'cancelled')
            ORDER BY created_at DESC, id DESC
        `)
	}
	if err != nil {
		return nil, fmt.Errorf("list active deliveries: %w", err)
	}
	return collectDeliveries(rows)
}

// ListPending - pending deliveries visible to partnerID: unassigned ones and those
// offered directly to it, with their notification payload and order summary.
func (r *DeliveryRepo) ListPending(ctx context.Context, partnerID int64) ([]domain.PendingDelivery, error) {
	rows, err := r.db.Query(ctx, `
        SELECT n.id, d.id, d.order_id, d.partner_id, d.status, n.payload, n.created_at,
               u.name, o.total_amount, o.shipping_address, s.name
        FROM deliveries d
        JOIN notifications n ON n.delivery_id = d.id AND n.type = $2
        JOIN orders o ON o.id = d.order_id
        JOIN users u ON u.id = o.customer_id
        JOIN stores s ON s.id = d.store_id
        WHERE d.status = 'pending'
          AND (d.partner_id IS NULL OR d.partner_id = $1)
        ORDER BY n.created_at DESC, n.id DESC
    `, partnerID, domain.NotificationTypeDelivery)
	if err != nil {
		return nil, fmt.Errorf("list pending deliveries for partner %d: %w", partnerID, err)
	}
	defer rows.Close()

	out := make([]domain.PendingDelivery, 0)
	for rows.Next() {
		var p domain.PendingDelivery
		if err := rows.Scan(
			&p.NotificationID, &p.DeliveryID, &p.OrderID, &p.PartnerID, &p.Status, &p.Payload, &p.CreatedAt,
			&p.CustomerName, &p.TotalAmount, &p.ShippingAddress, &p.StoreName,
		); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// Offer - direct a pending delivery at one partner. An earlier offer to another
// partner is replaced. Returns (nil, nil) when the delivery is not pending any
// more.
func (r *DeliveryRepo) Offer(ctx context.Context, deliveryID, partnerID int64) (*domain.Delivery, error) {
	row := r.db.QueryRow(ctx, `
        UPDATE deliveries
        SET partner_id = $2, updated_at = now()
        WHERE id = $1 AND status = 'pending'
        RETURNING `+deliveryColumns,
		deliveryID, partnerID)
	d, err := scanOptionalDelivery(row, fmt.Sprintf("offer delivery %d", deliveryID))
	if err != nil && IsForeignKeyViolation(err) {
		return nil, apperr.ErrNotFound
	}
	return d, err
}

// UpdateLocation - store the current position reported by the holding partner.
// Returns false when the delivery is not held by partnerID.
func (r *DeliveryRepo) UpdateLocation(ctx context.Context, deliveryID, partnerID int64, lat, lon float64) (bool, error) {
	ct, err := r.db.Exec(ctx, `
        UPDATE deliveries
        SET current_latitude = $3, current_longitude = $4, updated_at = now()
        WHERE id = $1
          AND partner_id = $2
          AND status IN ('assigned', 'picked_up', 'in_transit')
    `, deliveryID, partnerID, lat, lon)
	if err != nil {
		return false, fmt.Errorf("update location of delivery %d: %w", deliveryID, err)
	}
	return ct.RowsAffected() > 0, nil
}

package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"marketplace-dispatch/internal/apperr"
	"marketplace-dispatch/internal/domain"
)

const partnerColumns = `id, user_id, name, phone, vehicle_type, status, approved_by, approved_at,
        rejection_reason, created_at`

// PartnerRepo represents delivery partner repository.
type PartnerRepo struct{ db *pgxpool.Pool }

// NewPartnerRepo creates a new PartnerRepo.
func NewPartnerRepo(db *pgxpool.Pool) *PartnerRepo { return &PartnerRepo{db: db} }

func scanPartner(row pgx.Row) (*domain.DeliveryPartner, error) {
	var p domain.DeliveryPartner
	err := row.Scan(&p.ID, &p.UserID, &p.Name, &p.Phone, &p.VehicleType, &p.Status,
		&p.ApprovedBy, &p.ApprovedAt, &p.RejectionReason, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func getPartner(ctx context.Context, q querier, id int64) (*domain.DeliveryPartner, error) {
	p, err := scanPartner(q.QueryRow(ctx, `SELECT `+partnerColumns+` FROM delivery_partners WHERE id = $1`, id))
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get partner %d: %w", id, err)
	}
	return p, nil
}

// Get - returns partner by its ID.
func (r *PartnerRepo) Get(ctx context.Context, id int64) (*domain.DeliveryPartner, error) {
	return getPartner(ctx, r.db, id)
}

// List returns partners ordered by id, optionally filtered by status.
func (r *PartnerRepo) List(ctx context.Context, status *domain.PartnerStatus) ([]domain.DeliveryPartner, error) {
	q := `SELECT ` + partnerColumns + ` FROM delivery_partners`
	args := make([]any, 0, 1)
	if status != nil {
		q += fmt.Sprintf(" WHERE status = $%d", len(args)+1)
		args = append(args, string(*status))
	}
	q += " ORDER BY id"

	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list partners: %w", err)
	}
	defer rows.Close()

	out := make([]domain.DeliveryPartner, 0)
	for rows.Next() {
		p, err := scanPartner(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}

// Create - registers a partner in pending state.
func (r *PartnerRepo) Create(ctx context.Context, p *domain.DeliveryPartner) (int64, error) {
	err := r.db.QueryRow(ctx, `
        INSERT INTO delivery_partners (user_id, name, phone, vehicle_type, status)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id, created_at
    `, p.UserID, p.Name, p.Phone, p.VehicleType, string(p.Status)).Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		switch {
		case IsDuplicate(err):
			return 0, apperr.ErrConflict
		case IsForeignKeyViolation(err):
			return 0, apperr.ErrNotFound
		}
		return 0, fmt.Errorf("create partner: %w", err)
	}
	return p.ID, nil
}

// Decide - records an admin decision on a pending partner. Returns (nil, nil) if the
// partner is missing or already decided.
func (r *PartnerRepo) Decide(ctx context.Context, d domain.PartnerDecision) (*domain.DeliveryPartner, error) {
	row := r.db.QueryRow(ctx, `
        UPDATE delivery_partners
        SET status           = $2,
            approved_by      = $3,
            approved_at      = $4,
            rejection_reason = $5
        WHERE id = $1 AND status = 'pending'
        RETURNING `+partnerColumns,
		d.PartnerID, string(d.Status), d.AdminID, d.At, d.Reason)
	p, err := scanPartner(row)
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		if IsForeignKeyViolation(err) {
			return nil, apperr.ErrInvalid
		}
		return nil, fmt.Errorf("decide partner %d: %w", d.PartnerID, err)
	}
	return p, nil
}

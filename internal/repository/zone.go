package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"marketplace-dispatch/internal/domain"
)

// ZoneRepo represents delivery zone repository.
type ZoneRepo struct{ db *pgxpool.Pool }

// NewZoneRepo creates a new ZoneRepo.
func NewZoneRepo(db *pgxpool.Pool) *ZoneRepo { return &ZoneRepo{db: db} }

// List - zones ordered by ascending minimum distance.
func (r *ZoneRepo) List(ctx context.Context) ([]domain.DeliveryZone, error) {
	rows, err := r.db.Query(ctx, `
        SELECT id, min_distance, max_distance, delivery_fee, created_at
        FROM delivery_zones
        ORDER BY min_distance, id
    `)
	if err != nil {
		return nil, fmt.Errorf("list zones: %w", err)
	}
	defer rows.Close()

	out := make([]domain.DeliveryZone, 0)
	for rows.Next() {
		var z domain.DeliveryZone
		if err := rows.Scan(&z.ID, &z.MinDistance, &z.MaxDistance, &z.DeliveryFee, &z.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, z)
	}
	return out, rows.Err()
}

// Get - returns zone by its ID.
func (r *ZoneRepo) Get(ctx context.Context, id int64) (*domain.DeliveryZone, error) {
	var z domain.DeliveryZone
	err := r.db.QueryRow(ctx, `
        SELECT id, min_distance, max_distance, delivery_fee, created_at
        FROM delivery_zones WHERE id = $1
    `, id).Scan(&z.ID, &z.MinDistance, &z.MaxDistance, &z.DeliveryFee, &z.CreatedAt)
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get zone %d: %w", id, err)
	}
	return &z, nil
}

// Create - creates a new zone.
func (r *ZoneRepo) Create(ctx context.Context, z *domain.DeliveryZone) (int64, error) {
	err := r.db.QueryRow(ctx, `
        INSERT INTO delivery_zones (min_distance, max_distance, delivery_fee)
        VALUES ($1, $2, $3)
        RETURNING id, created_at
    `, z.MinDistance, z.MaxDistance, z.DeliveryFee).Scan(&z.ID, &z.CreatedAt)
	if err != nil {
		return 0, fmt.Errorf("create zone: %w", err)
	}
	return z.ID, nil
}

// Update - replaces bracket and fee; returns true if a row was affected.
func (r *ZoneRepo) Update(ctx context.Context, z domain.DeliveryZone) (bool, error) {
	ct, err := r.db.Exec(ctx, `
        UPDATE delivery_zones
        SET min_distance = $2, max_distance = $3, delivery_fee = $4
        WHERE id = $1
    `, z.ID, z.MinDistance, z.MaxDistance, z.DeliveryFee)
	if err != nil {
		return false, fmt.Errorf("update zone %d: %w", z.ID, err)
	}
	return ct.RowsAffected() > 0, nil
}

// Delete - removes a zone; returns true if a row was affected.
func (r *ZoneRepo) Delete(ctx context.Context, id int64) (bool, error) {
	ct, err := r.db.Exec(ctx, `DELETE FROM delivery_zones WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete zone %d: %w", id, err)
	}
	return ct.RowsAffected() > 0, nil
}

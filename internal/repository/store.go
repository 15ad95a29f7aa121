package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"marketplace-dispatch/internal/domain"
)

// StoreRepo reads store locations.
type StoreRepo struct{ db *pgxpool.Pool }

// NewStoreRepo creates a new StoreRepo.
func NewStoreRepo(db *pgxpool.Pool) *StoreRepo { return &StoreRepo{db: db} }

// Get - returns store by its ID.
func (r *StoreRepo) Get(ctx context.Context, id int64) (*domain.Store, error) {
	var s domain.Store
	err := r.db.QueryRow(ctx, `
        SELECT id, name, phone, address, store_type, latitude, longitude
        FROM stores WHERE id = $1
    `, id).Scan(&s.ID, &s.Name, &s.Phone, &s.Address, &s.Type, &s.Latitude, &s.Longitude)
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get store %d: %w", id, err)
	}
	return &s, nil
}

// List - every store, ordered by id.
func (r *StoreRepo) List(ctx context.Context) ([]domain.Store, error) {
	rows, err := r.db.Query(ctx, `
        SELECT id, name, phone, address, store_type, latitude, longitude
        FROM stores ORDER BY id
    `)
	if err != nil {
		return nil, fmt.Errorf("list stores: %w", err)
	}
	defer rows.Close()

	out := make([]domain.Store, 0)
	for rows.Next() {
		var s domain.Store
		if err := rows.Scan(&s.ID, &s.Name, &s.Phone, &s.Address, &s.Type, &s.Latitude, &s.Longitude); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

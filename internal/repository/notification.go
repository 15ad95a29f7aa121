package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// NotificationRepo manages the read state of user notifications.
type NotificationRepo struct {
	db *pgxpool.Pool
}

// NewNotificationRepo creates a new NotificationRepo.
func NewNotificationRepo(db *pgxpool.Pool) *NotificationRepo {
	return &NotificationRepo{db: db}
}

// MarkRead - marks one notification as read. Returns false if it does not exist.
func (r *NotificationRepo) MarkRead(ctx context.Context, id int64) (bool, error) {
	ct, err := r.db.Exec(ctx, `UPDATE notifications SET is_read = TRUE WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("mark notification %d read: %w", id, err)
	}
	return ct.RowsAffected() > 0, nil
}

// MarkAllRead - marks every unread notification of a user as read.
func (r *NotificationRepo) MarkAllRead(ctx context.Context, userID int64) (int64, error) {
	ct, err := r.db.Exec(ctx, `
        UPDATE notifications SET is_read = TRUE
        WHERE user_id = $1 AND is_read = FALSE
    `, userID)
	if err != nil {
		return 0, fmt.Errorf("mark notifications of user %d read: %w", userID, err)
	}
	return ct.RowsAffected(), nil
}

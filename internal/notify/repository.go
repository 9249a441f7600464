package notify

import (
	"context"

	"github.com/jmoiron/sqlx"
)

type Repository interface {
	Insert(ctx context.Context, userID int, ntype, title, message string) (*Notification, error)
	ListForUser(ctx context.Context, userID int, limit int) ([]Notification, error)
	MarkRead(ctx context.Context, id, userID int) error
}

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Insert(ctx context.Context, userID int, ntype, title, message string) (*Notification, error) {
	created := &Notification{}
	err := r.db.QueryRowxContext(ctx, `
		INSERT INTO notifications (user_id, type, title, message)
		VALUES ($1, $2, $3, $4)
		RETURNING id, user_id, type, title, message, read, created_at
	`, userID, ntype, title, message).StructScan(created)
	if err != nil {
		return nil, err
	}

	return created, nil
}

func (r *repository) ListForUser(ctx context.Context, userID int, limit int) ([]Notification, error) {
	if limit <= 0 {
		limit = 50
	}

	var notifications []Notification
	err := r.db.SelectContext(ctx, &notifications, `
		SELECT id, user_id, type, title, message, read, created_at
		FROM notifications
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`, userID, limit)
	return notifications, err
}

func (r *repository) MarkRead(ctx context.Context, id, userID int) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE notifications
		SET read = TRUE
		WHERE id = $1 AND user_id = $2
	`, id, userID)
	return err
}

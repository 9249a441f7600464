package request

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
)

var (
	ErrRequestNotFound       = errors.New("request not found")
	ErrRequestAlreadyDecided = errors.New("request already decided")
)

type Repository interface {
	Create(ctx context.Context, userID int, memberName, plan, message string, maxSessions *int) (*Request, error)
	GetByID(ctx context.Context, id int) (*Request, error)
	ListAll(ctx context.Context) ([]Request, error)
	ListPendingAfter(ctx context.Context, afterID int) ([]Request, error)
	Decide(ctx context.Context, id int, status string, deciderID int) (*Request, error)
}

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

const requestColumns = `id, user_id, member_name, plan, status, message, max_sessions, decided_by, decided_at, created_at`

func (r *repository) Create(ctx context.Context, userID int, memberName, plan, message string, maxSessions *int) (*Request, error) {
	created := &Request{}
	err := r.db.QueryRowxContext(ctx, `
		INSERT INTO subscription_requests (user_id, member_name, plan, status, message, max_sessions)
		VALUES ($1, $2, $3, 'pending', $4, $5)
		RETURNING `+requestColumns+`
	`, userID, memberName, plan, message, maxSessions).StructScan(created)
	if err != nil {
		return nil, err
	}

	return created, nil
}

func (r *repository) GetByID(ctx context.Context, id int) (*Request, error) {
	var req Request
	err := r.db.GetContext(ctx, &req, `
		SELECT `+requestColumns+`
		FROM subscription_requests
		WHERE id = $1
	`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRequestNotFound
		}
		return nil, err
	}

	return &req, nil
}

func (r *repository) ListAll(ctx context.Context) ([]Request, error) {
	var requests []Request
	err := r.db.SelectContext(ctx, &requests, `
		SELECT `+requestColumns+`
		FROM subscription_requests
		ORDER BY created_at DESC
	`)
	return requests, err
}

func (r *repository) ListPendingAfter(ctx context.Context, afterID int) ([]Request, error) {
	var requests []Request
	err := r.db.SelectContext(ctx, &requests, `
		SELECT `+requestColumns+`
		FROM subscription_requests
		WHERE status = 'pending' AND id > $1
		ORDER BY id ASC
	`, afterID)
	return requests, err
}

// Decide records the outcome; the pending predicate makes a second decision
// on the same request fail instead of silently overwriting the first.
func (r *repository) Decide(ctx context.Context, id int, status string, deciderID int) (*Request, error) {
	decided := &Request{}
	err := r.db.QueryRowxContext(ctx, `
		UPDATE subscription_requests
		SET status = $1, decided_by = $2, decided_at = NOW()
		WHERE id = $3 AND status = 'pending'
		RETURNING `+requestColumns+`
	`, status, deciderID, id).StructScan(decided)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRequestAlreadyDecided
		}
		return nil, err
	}

	return decided, nil
}

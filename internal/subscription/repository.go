package subscription

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
)

var ErrSubscriptionNotFound = errors.New("subscription not found")

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

const subscriptionColumns = `id, user_id, plan, status, start_date, end_date, display_name, custom_member_id, used_sessions, max_sessions, created_at, updated_at`

func planWindow(plan string, from time.Time) time.Time {
	switch plan {
	case PlanQuarterly:
		return from.AddDate(0, 3, 0)
	case PlanAnnual:
		return from.AddDate(1, 0, 0)
	default:
		return from.AddDate(0, 1, 0)
	}
}

// CreateSubscription inserts the subscription and wires the owner's
// denormalized pointers in the same transaction. A previously active
// subscription becomes the user's last_subscription_id.
func (r *repository) CreateSubscription(ctx context.Context, sub *Subscription) (*Subscription, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	now := time.Now()
	if sub.StartDate.IsZero() {
		sub.StartDate = now
	}
	if sub.EndDate.IsZero() {
		sub.EndDate = planWindow(sub.Plan, sub.StartDate)
	}

	created := &Subscription{}
	err = tx.QueryRowxContext(ctx, `
		INSERT INTO subscriptions (user_id, plan, status, start_date, end_date, display_name, custom_member_id, used_sessions, max_sessions)
		VALUES ($1, $2, 'active', $3, $4, $5, $6, 0, $7)
		RETURNING `+subscriptionColumns+`
	`, sub.UserID, sub.Plan, sub.StartDate, sub.EndDate, sub.DisplayName, sub.CustomMemberID, sub.MaxSessions).StructScan(created)
	if err != nil {
		return nil, err
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE users
		SET subscription_status = 'active',
		    last_subscription_id = active_subscription_id,
		    active_subscription_id = $1
		WHERE id = $2
	`, created.ID, created.UserID)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return created, nil
}

func (r *repository) GetByID(ctx context.Context, id int) (*Subscription, error) {
	var sub Subscription
	err := r.db.GetContext(ctx, &sub, `
		SELECT `+subscriptionColumns+`
		FROM subscriptions
		WHERE id = $1
	`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSubscriptionNotFound
		}
		return nil, err
	}

	return &sub, nil
}

func (r *repository) ListAll(ctx context.Context) ([]Subscription, error) {
	var subs []Subscription
	err := r.db.SelectContext(ctx, &subs, `
		SELECT `+subscriptionColumns+`
		FROM subscriptions
		ORDER BY created_at DESC
	`)
	return subs, err
}

func (r *repository) ListForUser(ctx context.Context, userID int) ([]Subscription, error) {
	var subs []Subscription
	err := r.db.SelectContext(ctx, &subs, `
		SELECT `+subscriptionColumns+`
		FROM subscriptions
		WHERE user_id = $1
		ORDER BY created_at DESC
	`, userID)
	return subs, err
}

func (r *repository) GetActiveForUser(ctx context.Context, userID int) (*Subscription, error) {
	var sub Subscription
	err := r.db.GetContext(ctx, &sub, `
		SELECT `+subscriptionColumns+`
		FROM subscriptions
		WHERE user_id = $1
		  AND status = 'active'
		  AND start_date <= NOW()
		  AND end_date >= NOW()
		ORDER BY created_at DESC
		LIMIT 1
	`, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSubscriptionNotFound
		}
		return nil, err
	}

	return &sub, nil
}

// MarkExpired flips the subscription and rewrites the owner's pointers:
// subscription_status=expired, last_subscription_id=sub, active cleared.
// The status predicate keeps the write idempotent.
func (r *repository) MarkExpired(ctx context.Context, subID, userID int) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, `
		UPDATE subscriptions
		SET status = 'expired', updated_at = NOW()
		WHERE id = $1 AND status != 'expired'
	`, subID)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return tx.Commit()
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE users
		SET subscription_status = 'expired',
		    last_subscription_id = $1,
		    active_subscription_id = NULL
		WHERE id = $2
	`, subID, userID)
	if err != nil {
		return err
	}

	return tx.Commit()
}

// EnsureActivePointer self-heals the denormalized active_subscription_id on
// the owner when it drifted from the still-active subscription.
func (r *repository) EnsureActivePointer(ctx context.Context, subID, userID int) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE users
		SET active_subscription_id = $1
		WHERE id = $2 AND active_subscription_id IS DISTINCT FROM $1
	`, subID, userID)
	return err
}

func (r *repository) UpdateStatus(ctx context.Context, subID int, status Status) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE subscriptions
		SET status = $1, updated_at = NOW()
		WHERE id = $2
	`, status, subID)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrSubscriptionNotFound
	}

	return nil
}

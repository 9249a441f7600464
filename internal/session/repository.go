package session

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
)

var (
	ErrSlotFull                 = errors.New("time slot is full")
	ErrSessionNotFound          = errors.New("session not found")
	ErrSessionAlreadyCompleted  = errors.New("session already completed")
	ErrDateAlreadyBlocked       = errors.New("date is already blocked")
	ErrBlockedDateNotFound      = errors.New("blocked date not found")
	ErrSessionNotRescheduleable = errors.New("only scheduled sessions can be rescheduled")
)

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

const sessionColumns = `id, subscription_id, user_id, scheduled_date, time_slot, status, workout_type, title, descriptions, type, created_at`

// lockSlotCounter ensures a counter row exists for the pair and locks it for
// the remainder of the transaction. Concurrent bookings for the same pair
// serialize here, which is what makes the capacity check exact.
func lockSlotCounter(ctx context.Context, tx *sqlx.Tx, day time.Time, slot string) (int, error) {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO slot_counters (slot_date, time_slot, scheduled_count)
		VALUES ($1, $2, 0)
		ON CONFLICT (slot_date, time_slot) DO NOTHING
	`, day, slot)
	if err != nil {
		return 0, err
	}

	var count int
	err = tx.QueryRowxContext(ctx, `
		SELECT scheduled_count
		FROM slot_counters
		WHERE slot_date = $1 AND time_slot = $2
		FOR UPDATE
	`, day, slot).Scan(&count)
	if err != nil {
		return 0, err
	}

	return count, nil
}

func bumpSlotCounter(ctx context.Context, tx *sqlx.Tx, day time.Time, slot string, delta int) error {
	_, err := tx.ExecContext(ctx, `
		UPDATE slot_counters
		SET scheduled_count = scheduled_count + $1
		WHERE slot_date = $2 AND time_slot = $3
	`, delta, day, slot)
	return err
}

func (r *repository) CreateSession(ctx context.Context, s *Session) (*Session, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	day, _ := DayBounds(s.ScheduledDate)

	count, err := lockSlotCounter(ctx, tx, day, s.TimeSlot)
	if err != nil {
		return nil, err
	}

	if count >= SlotCapacity {
		return nil, ErrSlotFull
	}

	if err := bumpSlotCounter(ctx, tx, day, s.TimeSlot, 1); err != nil {
		return nil, err
	}

	created := &Session{}
	err = tx.QueryRowxContext(ctx, `
		INSERT INTO sessions (subscription_id, user_id, scheduled_date, time_slot, status, workout_type, title, descriptions, type)
		VALUES ($1, $2, $3, $4, 'scheduled', $5, $6, $7, $8)
		RETURNING `+sessionColumns+`
	`, s.SubscriptionID, s.UserID, s.ScheduledDate, s.TimeSlot, s.WorkoutType, s.Title, s.Descriptions, s.Type).StructScan(created)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return created, nil
}

func (r *repository) GetSessionByID(ctx context.Context, id int) (*Session, error) {
	var s Session
	err := r.db.GetContext(ctx, &s, `
		SELECT `+sessionColumns+`
		FROM sessions
		WHERE id = $1
	`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}

	return &s, nil
}

func (r *repository) ListSessions(ctx context.Context) ([]Session, error) {
	var sessions []Session
	err := r.db.SelectContext(ctx, &sessions, `
		SELECT `+sessionColumns+`
		FROM sessions
		ORDER BY scheduled_date DESC
	`)
	return sessions, err
}

func (r *repository) ListSessionsForUser(ctx context.Context, userID int) ([]Session, error) {
	var sessions []Session
	err := r.db.SelectContext(ctx, &sessions, `
		SELECT `+sessionColumns+`
		FROM sessions
		WHERE user_id = $1
		ORDER BY scheduled_date DESC
	`, userID)
	return sessions, err
}

func (r *repository) ListSessionsForDay(ctx context.Context, date time.Time) ([]Session, error) {
	start, end := DayBounds(date)

	var sessions []Session
	err := r.db.SelectContext(ctx, &sessions, `
		SELECT `+sessionColumns+`
		FROM sessions
		WHERE scheduled_date BETWEEN $1 AND $2
		ORDER BY scheduled_date ASC
	`, start, end)
	return sessions, err
}

func (r *repository) CountScheduledForSlot(ctx context.Context, date time.Time, slot string) (int, error) {
	start, end := DayBounds(date)

	var count int
	err := r.db.GetContext(ctx, &count, `
		SELECT COUNT(*)
		FROM sessions
		WHERE time_slot = $1 AND status = 'scheduled' AND scheduled_date BETWEEN $2 AND $3
	`, slot, start, end)
	if err != nil {
		return 0, err
	}

	return count, nil
}

// CompleteSession flips scheduled -> completed, releases the slot seat and
// burns a visit on session-limited plans. The status predicate on the UPDATE
// keeps the transition one-way.
func (r *repository) CompleteSession(ctx context.Context, id int) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	completed := &Session{}
	err = tx.QueryRowxContext(ctx, `
		UPDATE sessions
		SET status = 'completed'
		WHERE id = $1 AND status = 'scheduled'
		RETURNING `+sessionColumns+`
	`, id).StructScan(completed)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrSessionAlreadyCompleted
		}
		return err
	}

	day, _ := DayBounds(completed.ScheduledDate)
	if err := bumpSlotCounter(ctx, tx, day, completed.TimeSlot, -1); err != nil {
		return err
	}

	if completed.SubscriptionID != nil {
		_, err = tx.ExecContext(ctx, `
			UPDATE subscriptions
			SET used_sessions = used_sessions + 1, updated_at = NOW()
			WHERE id = $1 AND max_sessions IS NOT NULL
		`, *completed.SubscriptionID)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *repository) RescheduleSession(ctx context.Context, id int, newDate time.Time, newSlot, workoutType string) (*Session, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	current := &Session{}
	err = tx.QueryRowxContext(ctx, `
		SELECT `+sessionColumns+`
		FROM sessions
		WHERE id = $1
		FOR UPDATE
	`, id).StructScan(current)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}

	if current.Status != StatusScheduled {
		return nil, ErrSessionNotRescheduleable
	}

	oldDay, _ := DayBounds(current.ScheduledDate)
	newDay, _ := DayBounds(newDate)

	// Lock counters in a fixed order so two opposing reschedules cannot
	// deadlock against each other.
	first, firstSlot, second, secondSlot := oldDay, current.TimeSlot, newDay, newSlot
	if newDay.Before(oldDay) || (newDay.Equal(oldDay) && newSlot < current.TimeSlot) {
		first, firstSlot, second, secondSlot = newDay, newSlot, oldDay, current.TimeSlot
	}

	if _, err := lockSlotCounter(ctx, tx, first, firstSlot); err != nil {
		return nil, err
	}
	if !(first.Equal(second) && firstSlot == secondSlot) {
		if _, err := lockSlotCounter(ctx, tx, second, secondSlot); err != nil {
			return nil, err
		}
	}

	var newCount int
	err = tx.GetContext(ctx, &newCount, `
		SELECT scheduled_count FROM slot_counters WHERE slot_date = $1 AND time_slot = $2
	`, newDay, newSlot)
	if err != nil {
		return nil, err
	}

	sameSlot := oldDay.Equal(newDay) && current.TimeSlot == newSlot
	if !sameSlot && newCount >= SlotCapacity {
		return nil, ErrSlotFull
	}

	if !sameSlot {
		if err := bumpSlotCounter(ctx, tx, oldDay, current.TimeSlot, -1); err != nil {
			return nil, err
		}
		if err := bumpSlotCounter(ctx, tx, newDay, newSlot, 1); err != nil {
			return nil, err
		}
	}

	updated := &Session{}
	err = tx.QueryRowxContext(ctx, `
		UPDATE sessions
		SET scheduled_date = $1, time_slot = $2, workout_type = $3
		WHERE id = $4
		RETURNING `+sessionColumns+`
	`, newDate, newSlot, workoutType, id).StructScan(updated)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return updated, nil
}

func (r *repository) DeleteSession(ctx context.Context, id int) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	deleted := &Session{}
	err = tx.QueryRowxContext(ctx, `
		DELETE FROM sessions
		WHERE id = $1
		RETURNING `+sessionColumns+`
	`, id).StructScan(deleted)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrSessionNotFound
		}
		return err
	}

	if deleted.Status == StatusScheduled {
		day, _ := DayBounds(deleted.ScheduledDate)
		if err := bumpSlotCounter(ctx, tx, day, deleted.TimeSlot, -1); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *repository) BlockDate(ctx context.Context, date time.Time) (*BlockedDate, error) {
	day, _ := DayBounds(date)

	blocked := &BlockedDate{}
	err := r.db.QueryRowxContext(ctx, `
		INSERT INTO blocked_dates (blocked_date)
		VALUES ($1)
		ON CONFLICT (blocked_date) DO NOTHING
		RETURNING id, blocked_date, created_at
	`, day).StructScan(blocked)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrDateAlreadyBlocked
		}
		return nil, err
	}

	return blocked, nil
}

func (r *repository) UnblockDate(ctx context.Context, date time.Time) error {
	day, _ := DayBounds(date)

	result, err := r.db.ExecContext(ctx, `
		DELETE FROM blocked_dates
		WHERE blocked_date = $1
	`, day)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrBlockedDateNotFound
	}

	return nil
}

func (r *repository) IsDateBlocked(ctx context.Context, date time.Time) (bool, error) {
	day, _ := DayBounds(date)

	var exists bool
	err := r.db.GetContext(ctx, &exists, `
		SELECT EXISTS(
			SELECT 1 FROM blocked_dates
			WHERE blocked_date = $1
		)
	`, day)
	if err != nil {
		return false, err
	}

	return exists, nil
}

func (r *repository) ListBlockedDates(ctx context.Context) ([]BlockedDate, error) {
	var dates []BlockedDate
	err := r.db.SelectContext(ctx, &dates, `
		SELECT id, blocked_date, created_at
		FROM blocked_dates
		ORDER BY blocked_date ASC
	`)
	return dates, err
}

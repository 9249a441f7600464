package attendance

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
)

var ErrNoOpenAttendance = errors.New("no open attendance record")

type Repository interface {
	GetOpenForUserOnDay(ctx context.Context, userID int, day time.Time) (*Attendance, error)
	CreateCheckIn(ctx context.Context, userID int, at time.Time) (*Attendance, error)
	CloseCheckOut(ctx context.Context, id int, at time.Time, durationMinutes int) (*Attendance, error)
	ListForDay(ctx context.Context, day time.Time) ([]Attendance, error)
	ListForUser(ctx context.Context, userID int) ([]Attendance, error)
}

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

const attendanceColumns = `id, user_id, check_in_time, check_out_time, duration_minutes, created_at`

func dayBounds(t time.Time) (time.Time, time.Time) {
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return start, start.Add(24*time.Hour - time.Millisecond)
}

func (r *repository) GetOpenForUserOnDay(ctx context.Context, userID int, day time.Time) (*Attendance, error) {
	start, end := dayBounds(day)

	var a Attendance
	err := r.db.GetContext(ctx, &a, `
		SELECT `+attendanceColumns+`
		FROM attendance
		WHERE user_id = $1
		  AND check_in_time BETWEEN $2 AND $3
		  AND check_out_time IS NULL
		ORDER BY check_in_time DESC
		LIMIT 1
	`, userID, start, end)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNoOpenAttendance
		}
		return nil, err
	}

	return &a, nil
}

func (r *repository) CreateCheckIn(ctx context.Context, userID int, at time.Time) (*Attendance, error) {
	created := &Attendance{}
	err := r.db.QueryRowxContext(ctx, `
		INSERT INTO attendance (user_id, check_in_time)
		VALUES ($1, $2)
		RETURNING `+attendanceColumns+`
	`, userID, at).StructScan(created)
	if err != nil {
		return nil, err
	}

	return created, nil
}

func (r *repository) CloseCheckOut(ctx context.Context, id int, at time.Time, durationMinutes int) (*Attendance, error) {
	updated := &Attendance{}
	err := r.db.QueryRowxContext(ctx, `
		UPDATE attendance
		SET check_out_time = $1, duration_minutes = $2
		WHERE id = $3 AND check_out_time IS NULL
		RETURNING `+attendanceColumns+`
	`, at, durationMinutes, id).StructScan(updated)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNoOpenAttendance
		}
		return nil, err
	}

	return updated, nil
}

func (r *repository) ListForDay(ctx context.Context, day time.Time) ([]Attendance, error) {
	start, end := dayBounds(day)

	var records []Attendance
	err := r.db.SelectContext(ctx, &records, `
		SELECT `+attendanceColumns+`
		FROM attendance
		WHERE check_in_time BETWEEN $1 AND $2
		ORDER BY check_in_time DESC
	`, start, end)
	return records, err
}

func (r *repository) ListForUser(ctx context.Context, userID int) ([]Attendance, error) {
	var records []Attendance
	err := r.db.SelectContext(ctx, &records, `
		SELECT `+attendanceColumns+`
		FROM attendance
		WHERE user_id = $1
		ORDER BY check_in_time DESC
	`, userID)
	return records, err
}

package session

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
)

func setupMock(t *testing.T) (Repository, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	repo := NewRepository(sqlxDB)

	closer := func() {
		sqlxDB.Close()
	}

	return repo, mock, closer
}

func sessionRows(s *Session) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "subscription_id", "user_id", "scheduled_date", "time_slot",
		"status", "workout_type", "title", "descriptions", "type", "created_at",
	}).AddRow(
		s.ID, s.SubscriptionID, s.UserID, s.ScheduledDate, s.TimeSlot,
		s.Status, s.WorkoutType, s.Title, s.Descriptions, s.Type, s.CreatedAt,
	)
}

func TestCreateSession_AdmitsBelowCapacity(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	scheduledAt := time.Date(2025, 6, 16, 9, 0, 0, 0, time.UTC)
	day, _ := DayBounds(scheduledAt)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO slot_counters")).
		WithArgs(day, "9:00 AM - 10:00 AM").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT scheduled_count[\\s\\S]*FOR UPDATE").
		WithArgs(day, "9:00 AM - 10:00 AM").
		WillReturnRows(sqlmock.NewRows([]string{"scheduled_count"}).AddRow(4))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE slot_counters")).
		WithArgs(1, day, "9:00 AM - 10:00 AM").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO sessions")).
		WillReturnRows(sessionRows(&Session{
			ID:            11,
			UserID:        7,
			ScheduledDate: scheduledAt,
			TimeSlot:      "9:00 AM - 10:00 AM",
			Status:        StatusScheduled,
			WorkoutType:   "Chest",
			Type:          TypeSolo,
			CreatedAt:     time.Now(),
		}))
	mock.ExpectCommit()

	created, err := repo.CreateSession(context.Background(), &Session{
		UserID:        7,
		ScheduledDate: scheduledAt,
		TimeSlot:      "9:00 AM - 10:00 AM",
		WorkoutType:   "Chest",
		Type:          TypeSolo,
	})

	require.NoError(t, err)
	require.Equal(t, 11, created.ID)
	require.Equal(t, scheduledAt, created.ScheduledDate)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateSession_RejectsWhenFull(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	scheduledAt := time.Date(2025, 6, 16, 9, 0, 0, 0, time.UTC)
	day, _ := DayBounds(scheduledAt)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO slot_counters")).
		WithArgs(day, "9:00 AM - 10:00 AM").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT scheduled_count[\\s\\S]*FOR UPDATE").
		WithArgs(day, "9:00 AM - 10:00 AM").
		WillReturnRows(sqlmock.NewRows([]string{"scheduled_count"}).AddRow(SlotCapacity))
	mock.ExpectRollback()

	created, err := repo.CreateSession(context.Background(), &Session{
		UserID:        7,
		ScheduledDate: scheduledAt,
		TimeSlot:      "9:00 AM - 10:00 AM",
	})

	require.ErrorIs(t, err, ErrSlotFull)
	require.Nil(t, created)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCompleteSession_ReleasesSeatAndBurnsVisit(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	subID := 3
	scheduledAt := time.Date(2025, 6, 16, 9, 0, 0, 0, time.UTC)
	day, _ := DayBounds(scheduledAt)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("UPDATE sessions")).
		WithArgs(11).
		WillReturnRows(sessionRows(&Session{
			ID:             11,
			SubscriptionID: &subID,
			UserID:         7,
			ScheduledDate:  scheduledAt,
			TimeSlot:       "9:00 AM - 10:00 AM",
			Status:         StatusCompleted,
			WorkoutType:    "Chest",
			Type:           TypeSolo,
			CreatedAt:      time.Now(),
		}))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE slot_counters")).
		WithArgs(-1, day, "9:00 AM - 10:00 AM").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE subscriptions")).
		WithArgs(subID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.CompleteSession(context.Background(), 11)
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCompleteSession_AlreadyCompleted(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("UPDATE sessions")).
		WithArgs(11).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectRollback()

	err := repo.CompleteSession(context.Background(), 11)
	require.ErrorIs(t, err, ErrSessionAlreadyCompleted)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteSession_CompletedRowKeepsCounter(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	scheduledAt := time.Date(2025, 6, 16, 9, 0, 0, 0, time.UTC)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("DELETE FROM sessions")).
		WithArgs(11).
		WillReturnRows(sessionRows(&Session{
			ID:            11,
			UserID:        7,
			ScheduledDate: scheduledAt,
			TimeSlot:      "9:00 AM - 10:00 AM",
			Status:        StatusCompleted,
			CreatedAt:     time.Now(),
		}))
	mock.ExpectCommit()

	err := repo.DeleteSession(context.Background(), 11)
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestBlockDate_Conflict(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	day := time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO blocked_dates")).
		WithArgs(day).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	blocked, err := repo.BlockDate(context.Background(), day)
	require.ErrorIs(t, err, ErrDateAlreadyBlocked)
	require.Nil(t, blocked)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUnblockDate_NotFound(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	day := time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM blocked_dates")).
		WithArgs(day).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UnblockDate(context.Background(), day)
	require.ErrorIs(t, err, ErrBlockedDateNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

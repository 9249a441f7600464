package session

import (
	"context"
	"time"
)

type Repository interface {
	CreateSession(ctx context.Context, s *Session) (*Session, error)
	GetSessionByID(ctx context.Context, id int) (*Session, error)
	ListSessions(ctx context.Context) ([]Session, error)
	ListSessionsForUser(ctx context.Context, userID int) ([]Session, error)
	ListSessionsForDay(ctx context.Context, date time.Time) ([]Session, error)
	CountScheduledForSlot(ctx context.Context, date time.Time, slot string) (int, error)
	CompleteSession(ctx context.Context, id int) error
	RescheduleSession(ctx context.Context, id int, newDate time.Time, newSlot, workoutType string) (*Session, error)
	DeleteSession(ctx context.Context, id int) error

	BlockDate(ctx context.Context, date time.Time) (*BlockedDate, error)
	UnblockDate(ctx context.Context, date time.Time) error
	IsDateBlocked(ctx context.Context, date time.Time) (bool, error)
	ListBlockedDates(ctx context.Context) ([]BlockedDate, error)
}

package session

import (
	"context"
	"errors"
	"time"

	"github.com/zeeddd0107/GymPlify-sub000/internal/logger"
	"github.com/zeeddd0107/GymPlify-sub000/internal/metrics"
)

var (
	ErrInvalidDate     = errors.New("invalid date format, use YYYY-MM-DD")
	ErrUnknownTimeSlot = errors.New("unknown time slot")
	ErrDateInPast      = errors.New("cannot book a session on a past date")
	ErrDateBlocked     = errors.New("date is blocked for booking")
	ErrSlotInPast      = errors.New("time slot has already started for this date")
)

// Notifier queues a user-facing notification about a booked session.
type Notifier interface {
	NotifySessionBooked(ctx context.Context, userID int, timeSlot string, when time.Time) error
}

type Service interface {
	CreateSession(ctx context.Context, req CreateSessionRequest) (*Session, error)
	GetSession(ctx context.Context, id int) (*Session, error)
	ListSessions(ctx context.Context) ([]Session, error)
	ListSessionsForUser(ctx context.Context, userID int) ([]Session, error)
	ListSessionsForDay(ctx context.Context, date string) ([]Session, error)
	CompleteSession(ctx context.Context, id int) error
	RescheduleSession(ctx context.Context, id int, req RescheduleSessionRequest) (*Session, error)
	CancelSession(ctx context.Context, id int) error
	SlotAvailability(ctx context.Context, date string) ([]SlotAvailability, error)
	IsSlotFull(ctx context.Context, date, slot string) (bool, error)
	BlockDate(ctx context.Context, date string) (*BlockedDate, error)
	UnblockDate(ctx context.Context, date string) error
	ListBlockedDates(ctx context.Context) ([]BlockedDate, error)
}

type service struct {
	repo     Repository
	notifier Notifier
	now      func() time.Time
}

func NewService(repo Repository, notifier Notifier) Service {
	return &service{
		repo:     repo,
		notifier: notifier,
		// Dates parse as UTC midnight, so the clock they are compared
		// against must be UTC too.
		now: func() time.Time { return time.Now().UTC() },
	}
}

func parseDate(value string) (time.Time, error) {
	date, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return date, nil
}

func (s *service) CreateSession(ctx context.Context, req CreateSessionRequest) (*Session, error) {
	date, err := parseDate(req.Date)
	if err != nil {
		return nil, err
	}

	if !IsValidTimeSlot(req.TimeSlot) {
		return nil, ErrUnknownTimeSlot
	}

	today, _ := DayBounds(s.now())
	day, _ := DayBounds(date)
	if day.Before(today) {
		metrics.RecordSessionRejection("past_date")
		return nil, ErrDateInPast
	}

	blocked, err := s.repo.IsDateBlocked(ctx, day)
	if err != nil {
		return nil, err
	}
	if blocked {
		metrics.RecordSessionRejection("blocked_date")
		return nil, ErrDateBlocked
	}

	if IsTimeSlotPast(req.TimeSlot, day, s.now()) {
		metrics.RecordSessionRejection("past_slot")
		return nil, ErrSlotInPast
	}

	scheduledAt, err := SlotStartTime(req.TimeSlot, day)
	if err != nil {
		return nil, ErrUnknownTimeSlot
	}

	sessionType := req.Type
	if sessionType == "" {
		sessionType = TypeSolo
	}

	created, err := s.repo.CreateSession(ctx, &Session{
		SubscriptionID: req.SubscriptionID,
		UserID:         req.UserID,
		ScheduledDate:  scheduledAt,
		TimeSlot:       req.TimeSlot,
		WorkoutType:    WorkoutTypeFor(day.Weekday()),
		Title:          req.Title,
		Descriptions:   req.Descriptions,
		Type:           sessionType,
	})
	if err != nil {
		if errors.Is(err, ErrSlotFull) {
			metrics.RecordSessionRejection("slot_full")
		}
		return nil, err
	}

	metrics.RecordSessionBooked(created.TimeSlot, created.WorkoutType)

	if s.notifier != nil {
		if err := s.notifier.NotifySessionBooked(ctx, created.UserID, created.TimeSlot, created.ScheduledDate); err != nil {
			logger.Errorf("Failed to queue booking notification for user %d: %v", created.UserID, err)
		}
	}

	return created, nil
}

func (s *service) GetSession(ctx context.Context, id int) (*Session, error) {
	return s.repo.GetSessionByID(ctx, id)
}

func (s *service) ListSessions(ctx context.Context) ([]Session, error) {
	return s.repo.ListSessions(ctx)
}

func (s *service) ListSessionsForDay(ctx context.Context, date string) ([]Session, error) {
	day, err := parseDate(date)
	if err != nil {
		return nil, err
	}
	return s.repo.ListSessionsForDay(ctx, day)
}

func (s *service) ListSessionsForUser(ctx context.Context, userID int) ([]Session, error) {
	return s.repo.ListSessionsForUser(ctx, userID)
}

func (s *service) CompleteSession(ctx context.Context, id int) error {
	if err := s.repo.CompleteSession(ctx, id); err != nil {
		return err
	}

	metrics.RecordSessionCompleted()
	return nil
}

func (s *service) RescheduleSession(ctx context.Context, id int, req RescheduleSessionRequest) (*Session, error) {
	date, err := parseDate(req.Date)
	if err != nil {
		return nil, err
	}

	if !IsValidTimeSlot(req.TimeSlot) {
		return nil, ErrUnknownTimeSlot
	}

	today, _ := DayBounds(s.now())
	day, _ := DayBounds(date)
	if day.Before(today) {
		return nil, ErrDateInPast
	}

	blocked, err := s.repo.IsDateBlocked(ctx, day)
	if err != nil {
		return nil, err
	}
	if blocked {
		return nil, ErrDateBlocked
	}

	if IsTimeSlotPast(req.TimeSlot, day, s.now()) {
		return nil, ErrSlotInPast
	}

	scheduledAt, err := SlotStartTime(req.TimeSlot, day)
	if err != nil {
		return nil, ErrUnknownTimeSlot
	}

	return s.repo.RescheduleSession(ctx, id, scheduledAt, req.TimeSlot, WorkoutTypeFor(day.Weekday()))
}

func (s *service) CancelSession(ctx context.Context, id int) error {
	return s.repo.DeleteSession(ctx, id)
}

func (s *service) SlotAvailability(ctx context.Context, date string) ([]SlotAvailability, error) {
	day, err := parseDate(date)
	if err != nil {
		return nil, err
	}

	result := make([]SlotAvailability, 0, len(TimeSlots))
	for _, slot := range TimeSlots {
		count, err := s.repo.CountScheduledForSlot(ctx, day, slot)
		if err != nil {
			return nil, err
		}

		available := SlotCapacity - count
		if available < 0 {
			available = 0
		}

		result = append(result, SlotAvailability{
			TimeSlot:       slot,
			ScheduledCount: count,
			Available:      available,
			IsFull:         count >= SlotCapacity,
			IsPast:         IsTimeSlotPast(slot, day, s.now()),
		})
	}

	return result, nil
}

func (s *service) IsSlotFull(ctx context.Context, date, slot string) (bool, error) {
	day, err := parseDate(date)
	if err != nil {
		return false, err
	}
	if !IsValidTimeSlot(slot) {
		return false, ErrUnknownTimeSlot
	}

	count, err := s.repo.CountScheduledForSlot(ctx, day, slot)
	if err != nil {
		return false, err
	}
	return count >= SlotCapacity, nil
}

func (s *service) BlockDate(ctx context.Context, date string) (*BlockedDate, error) {
	day, err := parseDate(date)
	if err != nil {
		return nil, err
	}
	return s.repo.BlockDate(ctx, day)
}

func (s *service) UnblockDate(ctx context.Context, date string) error {
	day, err := parseDate(date)
	if err != nil {
		return err
	}
	return s.repo.UnblockDate(ctx, day)
}

func (s *service) ListBlockedDates(ctx context.Context) ([]BlockedDate, error) {
	return s.repo.ListBlockedDates(ctx)
}

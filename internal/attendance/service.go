package attendance

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/zeeddd0107/GymPlify-sub000/internal/metrics"

	"github.com/google/uuid"
)

var ErrInvalidQRCode = errors.New("invalid QR code value")

const (
	ActionCheckIn  = "check_in"
	ActionCheckOut = "check_out"
)

type Service interface {
	Scan(ctx context.Context, code string) (*Attendance, string, error)
	IssueQRCode(userID int) string
	ListForDay(ctx context.Context, day time.Time) ([]Attendance, error)
	ListForUser(ctx context.Context, userID int) ([]Attendance, error)
}

type service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) Service {
	return &service{
		repo: repo,
		now:  time.Now,
	}
}

// ParseQRCode extracts the user id from a scanned value of the form
// "userId_timestamp_random". Everything after the first underscore is
// ignored.
func ParseQRCode(code string) (int, error) {
	idPart, _, found := strings.Cut(strings.TrimSpace(code), "_")
	if !found {
		return 0, ErrInvalidQRCode
	}

	userID, err := strconv.Atoi(idPart)
	if err != nil || userID <= 0 {
		return 0, ErrInvalidQRCode
	}

	return userID, nil
}

// Scan toggles attendance for the scanned member: no open record today means
// check-in, an open record means check-out with the duration in whole
// minutes.
func (s *service) Scan(ctx context.Context, code string) (*Attendance, string, error) {
	userID, err := ParseQRCode(code)
	if err != nil {
		return nil, "", err
	}

	now := s.now()

	open, err := s.repo.GetOpenForUserOnDay(ctx, userID, now)
	if err != nil {
		if errors.Is(err, ErrNoOpenAttendance) {
			record, err := s.repo.CreateCheckIn(ctx, userID, now)
			if err != nil {
				return nil, "", err
			}
			metrics.RecordAttendanceScan(ActionCheckIn)
			return record, ActionCheckIn, nil
		}
		return nil, "", err
	}

	duration := int(now.Sub(open.CheckInTime).Minutes())
	record, err := s.repo.CloseCheckOut(ctx, open.ID, now, duration)
	if err != nil {
		return nil, "", err
	}

	metrics.RecordAttendanceScan(ActionCheckOut)
	return record, ActionCheckOut, nil
}

func (s *service) IssueQRCode(userID int) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return fmt.Sprintf("%d_%d_%s", userID, s.now().Unix(), suffix)
}

func (s *service) ListForDay(ctx context.Context, day time.Time) ([]Attendance, error) {
	return s.repo.ListForDay(ctx, day)
}

func (s *service) ListForUser(ctx context.Context, userID int) ([]Attendance, error) {
	return s.repo.ListForUser(ctx, userID)
}

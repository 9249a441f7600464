package subscription

import (
	"context"
	"sync"
	"time"

	"github.com/zeeddd0107/GymPlify-sub000/internal/logger"
	"github.com/zeeddd0107/GymPlify-sub000/internal/metrics"
)

type Service interface {
	CreateSubscription(ctx context.Context, req CreateSubscriptionRequest) (*Subscription, error)
	GetSubscription(ctx context.Context, id int) (*Subscription, error)
	ListSubscriptions(ctx context.Context) ([]Subscription, error)
	ListForUser(ctx context.Context, userID int) ([]Subscription, error)
	ActiveForUser(ctx context.Context, userID int) (*Subscription, error)
	UpdateStatus(ctx context.Context, id int, status Status) error
	ReconcileExpirations(ctx context.Context, subs []Subscription) int
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

func (s *service) CreateSubscription(ctx context.Context, req CreateSubscriptionRequest) (*Subscription, error) {
	return s.repo.CreateSubscription(ctx, &Subscription{
		UserID:         req.UserID,
		Plan:           req.Plan,
		DisplayName:    req.DisplayName,
		CustomMemberID: req.CustomMemberID,
		MaxSessions:    req.MaxSessions,
	})
}

func (s *service) GetSubscription(ctx context.Context, id int) (*Subscription, error) {
	return s.repo.GetByID(ctx, id)
}

// ListSubscriptions loads every subscription and runs the expiry
// reconciliation pass over the result, so a stale status never survives a
// list load. The returned slice already reflects the corrections.
func (s *service) ListSubscriptions(ctx context.Context) ([]Subscription, error) {
	subs, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	s.ReconcileExpirations(ctx, subs)

	now := s.now()
	for i := range subs {
		if isExpired(subs[i].EndDate, now) && subs[i].Status != StatusExpired {
			subs[i].Status = StatusExpired
		}
	}

	return subs, nil
}

func (s *service) ListForUser(ctx context.Context, userID int) ([]Subscription, error) {
	return s.repo.ListForUser(ctx, userID)
}

func (s *service) ActiveForUser(ctx context.Context, userID int) (*Subscription, error) {
	return s.repo.GetActiveForUser(ctx, userID)
}

func (s *service) UpdateStatus(ctx context.Context, id int, status Status) error {
	return s.repo.UpdateStatus(ctx, id, status)
}

func isExpired(endDate, now time.Time) bool {
	return endDate.Before(now)
}

// ReconcileExpirations corrects every subscription whose status disagrees
// with its end date, and self-heals the owner's active pointer for
// subscriptions that are still live. Updates are issued concurrently and
// fire-and-forget: one failure does not block the rest, failures are logged
// and not retried. Returns the number of updates issued; a second run over a
// consistent list issues zero.
func (s *service) ReconcileExpirations(ctx context.Context, subs []Subscription) int {
	now := s.now()

	var wg sync.WaitGroup
	issued := 0

	for _, sub := range subs {
		switch {
		case isExpired(sub.EndDate, now) && sub.Status != StatusExpired:
			issued++
			wg.Add(1)
			go func(sub Subscription) {
				defer wg.Done()
				if err := s.repo.MarkExpired(ctx, sub.ID, sub.UserID); err != nil {
					logger.Errorf("Failed to expire subscription %d: %v", sub.ID, err)
					return
				}
				metrics.RecordSubscriptionExpired()
			}(sub)
		case !isExpired(sub.EndDate, now) && sub.Status == StatusActive:
			wg.Add(1)
			go func(sub Subscription) {
				defer wg.Done()
				if err := s.repo.EnsureActivePointer(ctx, sub.ID, sub.UserID); err != nil {
					logger.Errorf("Failed to heal active pointer for subscription %d: %v", sub.ID, err)
				}
			}(sub)
		}
	}

	wg.Wait()
	return issued
}

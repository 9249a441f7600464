package request

import (
	"context"

	"github.com/zeeddd0107/GymPlify-sub000/internal/logger"
	"github.com/zeeddd0107/GymPlify-sub000/internal/metrics"
	"github.com/zeeddd0107/GymPlify-sub000/internal/subscription"
)

// DecisionNotifier tells the requesting member about the outcome.
type DecisionNotifier interface {
	NotifyRequestDecision(ctx context.Context, userID int, plan, decision string) error
}

type Service interface {
	Submit(ctx context.Context, userID int, memberName string, req SubmitRequest) (*Request, error)
	ListRequests(ctx context.Context) ([]Request, error)
	Approve(ctx context.Context, id, deciderID int) (*Request, error)
	Reject(ctx context.Context, id, deciderID int) (*Request, error)
}

type service struct {
	repo     Repository
	subRepo  subscription.Repository
	notifier DecisionNotifier
}

func NewService(repo Repository, subRepo subscription.Repository, notifier DecisionNotifier) Service {
	return &service{
		repo:     repo,
		subRepo:  subRepo,
		notifier: notifier,
	}
}

func (s *service) Submit(ctx context.Context, userID int, memberName string, req SubmitRequest) (*Request, error) {
	created, err := s.repo.Create(ctx, userID, memberName, req.Plan, req.Message, req.MaxSessions)
	if err != nil {
		return nil, err
	}

	metrics.RecordSubscriptionRequest(StatusPending)
	return created, nil
}

func (s *service) ListRequests(ctx context.Context) ([]Request, error) {
	return s.repo.ListAll(ctx)
}

// Approve decides the request and creates the subscription, wiring the
// member's pointers through the subscription repository.
func (s *service) Approve(ctx context.Context, id, deciderID int) (*Request, error) {
	decided, err := s.repo.Decide(ctx, id, StatusApproved, deciderID)
	if err != nil {
		return nil, err
	}

	_, err = s.subRepo.CreateSubscription(ctx, &subscription.Subscription{
		UserID:      decided.UserID,
		Plan:        decided.Plan,
		DisplayName: decided.MemberName,
		MaxSessions: decided.MaxSessions,
	})
	if err != nil {
		// The decision is already recorded; surface the subscription failure.
		return nil, err
	}

	metrics.RecordSubscriptionRequest(StatusApproved)

	if s.notifier != nil {
		if err := s.notifier.NotifyRequestDecision(ctx, decided.UserID, decided.Plan, StatusApproved); err != nil {
			logger.Errorf("Failed to queue approval notification for user %d: %v", decided.UserID, err)
		}
	}

	return decided, nil
}

func (s *service) Reject(ctx context.Context, id, deciderID int) (*Request, error) {
	decided, err := s.repo.Decide(ctx, id, StatusRejected, deciderID)
	if err != nil {
		return nil, err
	}

	metrics.RecordSubscriptionRequest(StatusRejected)

	if s.notifier != nil {
		if err := s.notifier.NotifyRequestDecision(ctx, decided.UserID, decided.Plan, StatusRejected); err != nil {
			logger.Errorf("Failed to queue rejection notification for user %d: %v", decided.UserID, err)
		}
	}

	return decided, nil
}

package request

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/zeeddd0107/GymPlify-sub000/internal/subscription"
)

type MockRequestRepo struct{ mock.Mock }

func (m *MockRequestRepo) Create(ctx context.Context, userID int, memberName, plan, message string, maxSessions *int) (*Request, error) {
	args := m.Called(ctx, userID, memberName, plan, message, maxSessions)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Request), args.Error(1)
}

func (m *MockRequestRepo) GetByID(ctx context.Context, id int) (*Request, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Request), args.Error(1)
}

func (m *MockRequestRepo) ListAll(ctx context.Context) ([]Request, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Request), args.Error(1)
}

func (m *MockRequestRepo) ListPendingAfter(ctx context.Context, afterID int) ([]Request, error) {
	args := m.Called(ctx, afterID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Request), args.Error(1)
}

func (m *MockRequestRepo) Decide(ctx context.Context, id int, status string, deciderID int) (*Request, error) {
	args := m.Called(ctx, id, status, deciderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Request), args.Error(1)
}

type MockSubRepo struct{ mock.Mock }

func (m *MockSubRepo) CreateSubscription(ctx context.Context, sub *subscription.Subscription) (*subscription.Subscription, error) {
	args := m.Called(ctx, sub)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*subscription.Subscription), args.Error(1)
}

func (m *MockSubRepo) GetByID(ctx context.Context, id int) (*subscription.Subscription, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*subscription.Subscription), args.Error(1)
}

func (m *MockSubRepo) ListAll(ctx context.Context) ([]subscription.Subscription, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]subscription.Subscription), args.Error(1)
}

func (m *MockSubRepo) ListForUser(ctx context.Context, userID int) ([]subscription.Subscription, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]subscription.Subscription), args.Error(1)
}

func (m *MockSubRepo) GetActiveForUser(ctx context.Context, userID int) (*subscription.Subscription, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*subscription.Subscription), args.Error(1)
}

func (m *MockSubRepo) MarkExpired(ctx context.Context, subID, userID int) error {
	return m.Called(ctx, subID, userID).Error(0)
}

func (m *MockSubRepo) EnsureActivePointer(ctx context.Context, subID, userID int) error {
	return m.Called(ctx, subID, userID).Error(0)
}

func (m *MockSubRepo) UpdateStatus(ctx context.Context, subID int, status subscription.Status) error {
	return m.Called(ctx, subID, status).Error(0)
}

type MockDecisionNotifier struct{ mock.Mock }

func (m *MockDecisionNotifier) NotifyRequestDecision(ctx context.Context, userID int, plan, decision string) error {
	return m.Called(ctx, userID, plan, decision).Error(0)
}

func TestApprove_CreatesSubscriptionAndNotifies(t *testing.T) {
	repo := new(MockRequestRepo)
	subRepo := new(MockSubRepo)
	notifier := new(MockDecisionNotifier)

	repo.On("Decide", mock.Anything, 5, StatusApproved, 2).Return(&Request{
		ID:         5,
		UserID:     10,
		MemberName: "Jordan Reyes",
		Plan:       "monthly",
		Status:     StatusApproved,
	}, nil)
	subRepo.On("CreateSubscription", mock.Anything, mock.MatchedBy(func(sub *subscription.Subscription) bool {
		return sub.UserID == 10 && sub.Plan == "monthly" && sub.DisplayName == "Jordan Reyes"
	})).Return(&subscription.Subscription{ID: 77, UserID: 10, Plan: "monthly"}, nil)
	notifier.On("NotifyRequestDecision", mock.Anything, 10, "monthly", StatusApproved).Return(nil)

	svc := NewService(repo, subRepo, notifier)

	decided, err := svc.Approve(context.Background(), 5, 2)
	require.NoError(t, err)
	assert.Equal(t, StatusApproved, decided.Status)
	repo.AssertExpectations(t)
	subRepo.AssertExpectations(t)
	notifier.AssertExpectations(t)
}

func TestApprove_AlreadyDecided(t *testing.T) {
	repo := new(MockRequestRepo)
	subRepo := new(MockSubRepo)

	repo.On("Decide", mock.Anything, 5, StatusApproved, 2).Return(nil, ErrRequestAlreadyDecided)

	svc := NewService(repo, subRepo, nil)

	decided, err := svc.Approve(context.Background(), 5, 2)
	require.ErrorIs(t, err, ErrRequestAlreadyDecided)
	assert.Nil(t, decided)
	subRepo.AssertNotCalled(t, "CreateSubscription")
}

func TestReject_NotifiesWithoutSubscription(t *testing.T) {
	repo := new(MockRequestRepo)
	subRepo := new(MockSubRepo)
	notifier := new(MockDecisionNotifier)

	repo.On("Decide", mock.Anything, 5, StatusRejected, 2).Return(&Request{
		ID:     5,
		UserID: 10,
		Plan:   "annual",
		Status: StatusRejected,
	}, nil)
	notifier.On("NotifyRequestDecision", mock.Anything, 10, "annual", StatusRejected).Return(nil)

	svc := NewService(repo, subRepo, notifier)

	decided, err := svc.Reject(context.Background(), 5, 2)
	require.NoError(t, err)
	assert.Equal(t, StatusRejected, decided.Status)
	subRepo.AssertNotCalled(t, "CreateSubscription")
	notifier.AssertExpectations(t)
}

func TestSubmit(t *testing.T) {
	repo := new(MockRequestRepo)

	repo.On("Create", mock.Anything, 10, "Jordan Reyes", "quarterly", "please", (*int)(nil)).Return(&Request{
		ID:         8,
		UserID:     10,
		MemberName: "Jordan Reyes",
		Plan:       "quarterly",
		Status:     StatusPending,
	}, nil)

	svc := NewService(repo, new(MockSubRepo), nil)

	created, err := svc.Submit(context.Background(), 10, "Jordan Reyes", SubmitRequest{
		Plan:    "quarterly",
		Message: "please",
	})
	require.NoError(t, err)
	assert.Equal(t, StatusPending, created.Status)
	repo.AssertExpectations(t)
}

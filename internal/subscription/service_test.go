package subscription

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockSubscriptionRepo struct{ mock.Mock }

func (m *MockSubscriptionRepo) CreateSubscription(ctx context.Context, sub *Subscription) (*Subscription, error) {
	args := m.Called(ctx, sub)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Subscription), args.Error(1)
}

func (m *MockSubscriptionRepo) GetByID(ctx context.Context, id int) (*Subscription, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Subscription), args.Error(1)
}

func (m *MockSubscriptionRepo) ListAll(ctx context.Context) ([]Subscription, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Subscription), args.Error(1)
}

func (m *MockSubscriptionRepo) ListForUser(ctx context.Context, userID int) ([]Subscription, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Subscription), args.Error(1)
}

func (m *MockSubscriptionRepo) GetActiveForUser(ctx context.Context, userID int) (*Subscription, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Subscription), args.Error(1)
}

func (m *MockSubscriptionRepo) MarkExpired(ctx context.Context, subID, userID int) error {
	return m.Called(ctx, subID, userID).Error(0)
}

func (m *MockSubscriptionRepo) EnsureActivePointer(ctx context.Context, subID, userID int) error {
	return m.Called(ctx, subID, userID).Error(0)
}

func (m *MockSubscriptionRepo) UpdateStatus(ctx context.Context, subID int, status Status) error {
	return m.Called(ctx, subID, status).Error(0)
}

var reconcileNow = time.Date(2025, 6, 16, 12, 0, 0, 0, time.UTC)

func newTestService(repo Repository) *service {
	svc := NewService(repo).(*service)
	svc.now = func() time.Time { return reconcileNow }
	return svc
}

func TestReconcileExpirations(t *testing.T) {
	repo := new(MockSubscriptionRepo)

	subs := []Subscription{
		// lapsed but still marked active: must flip
		{ID: 1, UserID: 10, Status: StatusActive, EndDate: reconcileNow.Add(-time.Hour)},
		// lapsed and already expired: nothing to do
		{ID: 2, UserID: 11, Status: StatusExpired, EndDate: reconcileNow.Add(-48 * time.Hour)},
		// live and active: pointer self-heal only
		{ID: 3, UserID: 12, Status: StatusActive, EndDate: reconcileNow.Add(24 * time.Hour)},
		// lapsed while suspended: still flips to expired
		{ID: 4, UserID: 13, Status: StatusSuspended, EndDate: reconcileNow.Add(-time.Minute)},
	}

	repo.On("MarkExpired", mock.Anything, 1, 10).Return(nil)
	repo.On("MarkExpired", mock.Anything, 4, 13).Return(nil)
	repo.On("EnsureActivePointer", mock.Anything, 3, 12).Return(nil)

	svc := newTestService(repo)

	issued := svc.ReconcileExpirations(context.Background(), subs)
	assert.Equal(t, 2, issued)
	repo.AssertExpectations(t)
	repo.AssertNotCalled(t, "MarkExpired", mock.Anything, 2, 11)
}

func TestReconcileExpirations_SecondRunIssuesNothing(t *testing.T) {
	repo := new(MockSubscriptionRepo)

	subs := []Subscription{
		{ID: 1, UserID: 10, Status: StatusExpired, EndDate: reconcileNow.Add(-time.Hour)},
		{ID: 2, UserID: 11, Status: StatusExpired, EndDate: reconcileNow.Add(-48 * time.Hour)},
	}

	svc := newTestService(repo)

	issued := svc.ReconcileExpirations(context.Background(), subs)
	assert.Equal(t, 0, issued)
	repo.AssertNotCalled(t, "MarkExpired", mock.Anything, mock.Anything, mock.Anything)
}

func TestReconcileExpirations_BoundaryIsNotExpired(t *testing.T) {
	repo := new(MockSubscriptionRepo)

	// end date exactly now is not yet expired
	subs := []Subscription{
		{ID: 1, UserID: 10, Status: StatusActive, EndDate: reconcileNow},
	}
	repo.On("EnsureActivePointer", mock.Anything, 1, 10).Return(nil)

	svc := newTestService(repo)

	issued := svc.ReconcileExpirations(context.Background(), subs)
	assert.Equal(t, 0, issued)
	repo.AssertExpectations(t)
}

func TestListSubscriptions_CorrectsStaleStatuses(t *testing.T) {
	repo := new(MockSubscriptionRepo)

	repo.On("ListAll", mock.Anything).Return([]Subscription{
		{ID: 1, UserID: 10, Status: StatusActive, EndDate: reconcileNow.Add(-time.Hour)},
		{ID: 2, UserID: 11, Status: StatusActive, EndDate: reconcileNow.Add(time.Hour)},
	}, nil)
	repo.On("MarkExpired", mock.Anything, 1, 10).Return(nil)
	repo.On("EnsureActivePointer", mock.Anything, 2, 11).Return(nil)

	svc := newTestService(repo)

	subs, err := svc.ListSubscriptions(context.Background())
	require.NoError(t, err)
	require.Len(t, subs, 2)

	// the returned slice reflects the correction without a reload
	assert.Equal(t, StatusExpired, subs[0].Status)
	assert.Equal(t, StatusActive, subs[1].Status)
}

func TestActiveForUser(t *testing.T) {
	repo := new(MockSubscriptionRepo)
	repo.On("GetActiveForUser", mock.Anything, 10).Return(&Subscription{
		ID: 3, UserID: 10, Status: StatusActive, EndDate: reconcileNow.Add(24 * time.Hour),
	}, nil)
	repo.On("GetActiveForUser", mock.Anything, 11).Return(nil, ErrSubscriptionNotFound)

	svc := newTestService(repo)

	sub, err := svc.ActiveForUser(context.Background(), 10)
	require.NoError(t, err)
	assert.Equal(t, 3, sub.ID)

	_, err = svc.ActiveForUser(context.Background(), 11)
	assert.ErrorIs(t, err, ErrSubscriptionNotFound)
	repo.AssertExpectations(t)
}

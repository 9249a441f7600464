package subscription

import "context"

type Repository interface {
	CreateSubscription(ctx context.Context, sub *Subscription) (*Subscription, error)
	GetByID(ctx context.Context, id int) (*Subscription, error)
	ListAll(ctx context.Context) ([]Subscription, error)
	ListForUser(ctx context.Context, userID int) ([]Subscription, error)
	GetActiveForUser(ctx context.Context, userID int) (*Subscription, error)
	MarkExpired(ctx context.Context, subID, userID int) error
	EnsureActivePointer(ctx context.Context, subID, userID int) error
	UpdateStatus(ctx context.Context, subID int, status Status) error
}

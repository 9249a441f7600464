package user

import "context"

type Repository interface {
	Create(ctx context.Context, name, email, passwordHash, role string) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByID(ctx context.Context, id int) (*User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	ListAll(ctx context.Context) ([]User, error)
	ListAdminIDs(ctx context.Context) ([]int, error)
	UpdateRole(ctx context.Context, id int, role string) error
	UpdatePassword(ctx context.Context, email, passwordHash string) error
	Delete(ctx context.Context, id int) error
}

package user

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
)

func setupUserMock(t *testing.T) (Repository, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	repo := NewRepository(sqlxDB)

	closer := func() {
		sqlxDB.Close()
	}

	return repo, mock, closer
}

func userRows(u *User) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "name", "email", "password_hash", "role",
		"subscription_status", "active_subscription_id", "last_subscription_id", "created_at",
	}).AddRow(
		u.ID, u.Name, u.Email, u.PasswordHash, u.Role,
		u.SubscriptionStatus, u.ActiveSubscriptionID, u.LastSubscriptionID, u.CreatedAt,
	)
}

func TestCreateAndFindUser(t *testing.T) {
	repo, mock, close := setupUserMock(t)
	defer close()

	ctx := context.Background()
	now := time.Now()
	alice := &User{ID: 1, Name: "Alice", Email: "a@example.com", PasswordHash: "hash", Role: "member", CreatedAt: now}

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO users")).
		WithArgs("Alice", "a@example.com", "hash", "member").
		WillReturnRows(userRows(alice))

	u, err := repo.Create(ctx, "Alice", "a@example.com", "hash", "member")
	require.NoError(t, err)
	require.Equal(t, 1, u.ID)
	require.Equal(t, "member", u.Role)

	mock.ExpectQuery(regexp.QuoteMeta("FROM users")).
		WithArgs("a@example.com").
		WillReturnRows(userRows(alice))

	fu, err := repo.FindByEmail(ctx, "a@example.com")
	require.NoError(t, err)
	require.Equal(t, "Alice", fu.Name)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)")).
		WithArgs("a@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	ok, err := repo.EmailExists(ctx, "a@example.com")
	require.NoError(t, err)
	require.True(t, ok)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFindByEmail_NotFound(t *testing.T) {
	repo, mock, close := setupUserMock(t)
	defer close()

	mock.ExpectQuery(regexp.QuoteMeta("FROM users")).
		WithArgs("ghost@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.FindByEmail(context.Background(), "ghost@example.com")
	require.ErrorIs(t, err, ErrUserNotFound)
}

func TestListAdminIDs(t *testing.T) {
	repo, mock, close := setupUserMock(t)
	defer close()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id FROM users WHERE role = 'admin'")).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(2).AddRow(5))

	ids, err := repo.ListAdminIDs(context.Background())
	require.NoError(t, err)
	require.Equal(t, []int{2, 5}, ids)
}

func TestUpdateRole_NotFound(t *testing.T) {
	repo, mock, close := setupUserMock(t)
	defer close()

	mock.ExpectExec(regexp.QuoteMeta("UPDATE users SET role = $1 WHERE id = $2")).
		WithArgs("staff", 99).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateRole(context.Background(), 99, "staff")
	require.ErrorIs(t, err, ErrUserNotFound)
}

func TestUpdatePassword(t *testing.T) {
	repo, mock, close := setupUserMock(t)
	defer close()

	mock.ExpectExec(regexp.QuoteMeta("UPDATE users SET password_hash = $1 WHERE email = $2")).
		WithArgs("new-hash", "a@example.com").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.UpdatePassword(context.Background(), "a@example.com", "new-hash")
	require.NoError(t, err)
}

func TestDeleteUser_NotFound(t *testing.T) {
	repo, mock, close := setupUserMock(t)
	defer close()

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM users WHERE id = $1")).
		WithArgs(42).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), 42)
	require.ErrorIs(t, err, ErrUserNotFound)
}

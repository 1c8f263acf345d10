package services_test

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/triply/triply-be/internal/apperrors"
	"github.com/triply/triply-be/internal/database"
	"github.com/triply/triply-be/internal/services"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := database.New(":memory:")
	require.NoError(t, err)
	// The pool would hand each connection its own in-memory database.
	db.SetMaxOpenConns(1)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() { db.Close() })
	return db
}

func TestCreateUser(t *testing.T) {
	svc := services.NewUserService(newTestDB(t))

	user, err := svc.CreateUser("A", "a@x.com", "p")
	require.NoError(t, err)
	require.NotEmpty(t, user.ID)
	require.Equal(t, "A", user.FullName)
	require.Equal(t, "a@x.com", user.Email)
	require.Empty(t, user.PasswordHash, "profile must never carry the hash")
}

func TestCreateUser_DuplicateEmail(t *testing.T) {
	svc := services.NewUserService(newTestDB(t))

	_, err := svc.CreateUser("A", "a@x.com", "p")
	require.NoError(t, err)

	// Same email, different password: still a conflict.
	_, err = svc.CreateUser("B", "a@x.com", "other")
	require.ErrorIs(t, err, apperrors.ErrEmailTaken)
}

func TestAuthenticateUser(t *testing.T) {
	svc := services.NewUserService(newTestDB(t))

	created, err := svc.CreateUser("A", "a@x.com", "correct-horse")
	require.NoError(t, err)

	t.Run("success", func(t *testing.T) {
		user, err := svc.AuthenticateUser("a@x.com", "correct-horse")
		require.NoError(t, err)
		require.Equal(t, created.ID, user.ID)
		require.Empty(t, user.PasswordHash)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.AuthenticateUser("a@x.com", "wrong")
		require.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := svc.AuthenticateUser("nobody@x.com", "p")
		require.ErrorIs(t, err, apperrors.ErrUserNotFound)
	})
}

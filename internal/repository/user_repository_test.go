package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"socialfeed/internal/apperr"
	"socialfeed/internal/models"
)

var userColumns = []string{"user_id", "username", "email", "password_hash", "refresh_token", "refresh_token_expiry_time"}

func TestUserRepository_CreateUser(t *testing.T) {
	db, mock := setupMockDB(t)

	mock.ExpectExec(`INSERT INTO users`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := NewUserRepository(db)

	user := &models.User{Username: "alice", Email: "alice@example.com"}
	err := repo.CreateUser(context.Background(), user, "s3cretpass")
	require.NoError(t, err)

	assert.NotEmpty(t, user.UserID)
	assert.NotEmpty(t, user.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("s3cretpass")))
}

func TestUserRepository_VerifyPassword(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cretpass"), bcrypt.DefaultCost)
	require.NoError(t, err)

	t.Run("correct password", func(t *testing.T) {
		db, mock := setupMockDB(t)

		mock.ExpectQuery(`SELECT \* FROM users WHERE email`).
			WithArgs("alice@example.com").
			WillReturnRows(sqlmock.NewRows(userColumns).
				AddRow("user-1", "alice", "alice@example.com", string(hash), "", time.Now()))

		repo := NewUserRepository(db)

		user, err := repo.VerifyPassword(context.Background(), "alice@example.com", "s3cretpass")
		require.NoError(t, err)
		assert.Equal(t, "alice", user.Username)
	})

	t.Run("wrong password", func(t *testing.T) {
		db, mock := setupMockDB(t)

		mock.ExpectQuery(`SELECT \* FROM users WHERE email`).
			WithArgs("alice@example.com").
			WillReturnRows(sqlmock.NewRows(userColumns).
				AddRow("user-1", "alice", "alice@example.com", string(hash), "", time.Now()))

		repo := NewUserRepository(db)

		_, err := repo.VerifyPassword(context.Background(), "alice@example.com", "nope")
		assert.ErrorIs(t, err, apperr.ErrUnauthorized)
	})

	t.Run("unknown email", func(t *testing.T) {
		db, mock := setupMockDB(t)

		mock.ExpectQuery(`SELECT \* FROM users WHERE email`).
			WithArgs("bob@example.com").
			WillReturnRows(sqlmock.NewRows(userColumns))

		repo := NewUserRepository(db)

		_, err := repo.VerifyPassword(context.Background(), "bob@example.com", "whatever")
		assert.ErrorIs(t, err, apperr.ErrNotFound)
	})
}

func TestUserRepository_Usernames(t *testing.T) {
	t.Run("empty input short-circuits", func(t *testing.T) {
		db, _ := setupMockDB(t)

		repo := NewUserRepository(db)

		names, err := repo.Usernames(context.Background(), nil)
		require.NoError(t, err)
		assert.Empty(t, names)
	})

	t.Run("resolves known ids, skips unknown", func(t *testing.T) {
		db, mock := setupMockDB(t)

		mock.ExpectQuery(`SELECT user_id, username FROM users WHERE user_id IN`).
			WillReturnRows(sqlmock.NewRows([]string{"user_id", "username"}).
				AddRow("user-1", "alice").
				AddRow("user-2", "bob"))

		repo := NewUserRepository(db)

		names, err := repo.Usernames(context.Background(), []string{"user-1", "user-2", "ghost"})
		require.NoError(t, err)
		assert.Equal(t, map[string]string{"user-1": "alice", "user-2": "bob"}, names)
	})
}

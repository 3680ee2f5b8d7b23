package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"

	"socialfeed/internal/apperr"
	"socialfeed/internal/models"
)

type userRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) CreateUser(ctx context.Context, user *models.User, password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	user.UserID = uuid.New().String()
	user.PasswordHash = string(hashedPassword)

	query := `
        INSERT INTO users (user_id, username, email, password_hash, refresh_token, refresh_token_expiry_time)
        VALUES (:user_id, :username, :email, :password_hash, :refresh_token, :refresh_token_expiry_time)
    `

	if _, err := r.db.NamedExecContext(ctx, query, user); err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

func (r *userRepository) GetUserByID(ctx context.Context, userID string) (*models.User, error) {
	var user models.User

	err := r.db.GetContext(ctx, &user, `SELECT * FROM users WHERE user_id = $1`, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("user %s: %w", userID, apperr.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return &user, nil
}

func (r *userRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User

	err := r.db.GetContext(ctx, &user, `SELECT * FROM users WHERE email = $1`, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("user with email %s: %w", email, apperr.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}

	return &user, nil
}

func (r *userRepository) GetUserByRefreshToken(ctx context.Context, refreshToken string) (*models.User, error) {
	var user models.User

	query := `SELECT * FROM users WHERE refresh_token = $1 AND refresh_token_expiry_time > now()`

	err := r.db.GetContext(ctx, &user, query, refreshToken)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("refresh token: %w", apperr.ErrUnauthorized)
		}
		return nil, fmt.Errorf("failed to get user by refresh token: %w", err)
	}

	return &user, nil
}

func (r *userRepository) UpdateRefreshToken(ctx context.Context, userID, refreshToken string, expiryTime time.Time) error {
	query := `
        UPDATE users
        SET refresh_token = $1, refresh_token_expiry_time = $2
        WHERE user_id = $3
    `

	if _, err := r.db.ExecContext(ctx, query, refreshToken, expiryTime, userID); err != nil {
		return fmt.Errorf("failed to update refresh token: %w", err)
	}

	return nil
}

func (r *userRepository) VerifyPassword(ctx context.Context, email, password string) (*models.User, error) {
	user, err := r.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, fmt.Errorf("invalid password: %w", apperr.ErrUnauthorized)
	}

	return user, nil
}

// Usernames resolves a set of user ids to usernames in one query. Ids with
// no matching row are simply absent from the result.
func (r *userRepository) Usernames(ctx context.Context, userIDs []string) (map[string]string, error) {
	if len(userIDs) == 0 {
		return map[string]string{}, nil
	}

	query, args, err := sqlx.In(`SELECT user_id, username FROM users WHERE user_id IN (?)`, userIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to build usernames query: %w", err)
	}

	rows := []struct {
		UserID   string `db:"user_id"`
		Username string `db:"username"`
	}{}

	if err := r.db.SelectContext(ctx, &rows, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("failed to resolve usernames: %w", err)
	}

	names := make(map[string]string, len(rows))
	for _, row := range rows {
		names[row.UserID] = row.Username
	}

	return names, nil
}

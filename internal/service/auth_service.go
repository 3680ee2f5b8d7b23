package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"socialfeed/internal/apperr"
	"socialfeed/internal/config"
	"socialfeed/internal/models"
	"socialfeed/internal/repository"
)

type RegisterRequest struct {
	Username string
	Email    string
	Password string
}

// TokenPair is what login and refresh hand back to the client.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

type AuthService interface {
	Register(ctx context.Context, req RegisterRequest) (*models.User, error)
	Login(ctx context.Context, email, password string) (*models.User, *TokenPair, error)
	RefreshTokens(ctx context.Context, refreshToken string) (*models.User, *TokenPair, error)
}

type authService struct {
	userRepo repository.UserRepository
	cfg      *config.Config
}

func NewAuthService(userRepo repository.UserRepository, cfg *config.Config) AuthService {
	return &authService{
		userRepo: userRepo,
		cfg:      cfg,
	}
}

func (s *authService) Register(ctx context.Context, req RegisterRequest) (*models.User, error) {
	const op = "AuthService.Register"

	if strings.TrimSpace(req.Username) == "" || strings.TrimSpace(req.Email) == "" || req.Password == "" {
		return nil, fmt.Errorf("%s: username, email and password are required: %w", op, apperr.ErrValidation)
	}

	if existing, err := s.userRepo.GetUserByEmail(ctx, req.Email); err == nil && existing != nil {
		return nil, fmt.Errorf("%s: user with email %s already exists: %w", op, req.Email, apperr.ErrValidation)
	}

	refreshToken, err := generateRefreshToken()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	user := &models.User{
		Username:               req.Username,
		Email:                  req.Email,
		RefreshToken:           refreshToken,
		RefreshTokenExpiryTime: time.Now().Add(s.cfg.RefreshTokenDuration),
	}

	if err := s.userRepo.CreateUser(ctx, user, req.Password); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return user, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (*models.User, *TokenPair, error) {
	const op = "AuthService.Login"

	user, err := s.userRepo.VerifyPassword(ctx, email, password)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", op, err)
	}

	pair, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", op, err)
	}

	return user, pair, nil
}

func (s *authService) RefreshTokens(ctx context.Context, refreshToken string) (*models.User, *TokenPair, error) {
	const op = "AuthService.RefreshTokens"

	user, err := s.userRepo.GetUserByRefreshToken(ctx, refreshToken)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", op, err)
	}

	pair, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", op, err)
	}

	return user, pair, nil
}

func (s *authService) issueTokens(ctx context.Context, user *models.User) (*TokenPair, error) {
	accessToken, err := s.generateAccessToken(user)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken, err := generateRefreshToken()
	if err != nil {
		return nil, err
	}

	expiry := time.Now().Add(s.cfg.RefreshTokenDuration)
	if err := s.userRepo.UpdateRefreshToken(ctx, user.UserID, refreshToken, expiry); err != nil {
		return nil, err
	}

	return &TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

func (s *authService) generateAccessToken(user *models.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id":  user.UserID,
		"username": user.Username,
		"email":    user.Email,
		"exp":      time.Now().Add(s.cfg.AccessTokenDuration).Unix(),
		"iat":      time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecretKey))
}

func generateRefreshToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate refresh token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

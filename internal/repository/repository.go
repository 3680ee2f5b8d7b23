package repository

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"socialfeed/internal/models"
)

// FeedFilter is the storage-level feed query: already validated and clamped
// by the service, SortBy is a real column name.
type FeedFilter struct {
	Query    string
	OwnerID  string
	SortBy   string
	SortDesc bool
	Limit    int
	Offset   int
}

type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, postID string) (*models.Post, error)
	Exists(ctx context.Context, postID string) (bool, error)
	List(ctx context.Context, filter FeedFilter) ([]*models.Post, int, error)
}

type EngagementRepository interface {
	ToggleLike(ctx context.Context, postID, actorID string) (bool, error)
	ToggleShare(ctx context.Context, postID, actorID string) (bool, error)
	AddComment(ctx context.Context, comment *models.Comment) error
	CastVote(ctx context.Context, postID, optionID, voterID string) error
}

type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User, password string) error
	GetUserByID(ctx context.Context, userID string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByRefreshToken(ctx context.Context, refreshToken string) (*models.User, error)
	UpdateRefreshToken(ctx context.Context, userID, refreshToken string, expiryTime time.Time) error
	VerifyPassword(ctx context.Context, email, password string) (*models.User, error)
	Usernames(ctx context.Context, userIDs []string) (map[string]string, error)
}

type Repository struct {
	Post       PostRepository
	Engagement EngagementRepository
	User       UserRepository
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{
		Post:       NewPostRepository(db),
		Engagement: NewEngagementRepository(db),
		User:       NewUserRepository(db),
	}
}

package service

import (
	"context"
	"io"
	"time"

	"github.com/stretchr/testify/mock"

	"socialfeed/internal/config"
	"socialfeed/internal/models"
	"socialfeed/internal/repository"
)

type MockPostRepository struct {
	mock.Mock
}

func (m *MockPostRepository) Create(ctx context.Context, post *models.Post) error {
	args := m.Called(ctx, post)
	return args.Error(0)
}

func (m *MockPostRepository) GetByID(ctx context.Context, postID string) (*models.Post, error) {
	args := m.Called(ctx, postID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

func (m *MockPostRepository) Exists(ctx context.Context, postID string) (bool, error) {
	args := m.Called(ctx, postID)
	return args.Bool(0), args.Error(1)
}

func (m *MockPostRepository) List(ctx context.Context, filter repository.FeedFilter) ([]*models.Post, int, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*models.Post), args.Int(1), args.Error(2)
}

type MockEngagementRepository struct {
	mock.Mock
}

func (m *MockEngagementRepository) ToggleLike(ctx context.Context, postID, actorID string) (bool, error) {
	args := m.Called(ctx, postID, actorID)
	return args.Bool(0), args.Error(1)
}

func (m *MockEngagementRepository) ToggleShare(ctx context.Context, postID, actorID string) (bool, error) {
	args := m.Called(ctx, postID, actorID)
	return args.Bool(0), args.Error(1)
}

func (m *MockEngagementRepository) AddComment(ctx context.Context, comment *models.Comment) error {
	args := m.Called(ctx, comment)
	return args.Error(0)
}

func (m *MockEngagementRepository) CastVote(ctx context.Context, postID, optionID, voterID string) error {
	args := m.Called(ctx, postID, optionID, voterID)
	return args.Error(0)
}

type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) Upload(ctx context.Context, ownerID, fileName string, file io.Reader, size int64) (string, string, error) {
	args := m.Called(ctx, ownerID, fileName, file, size)
	return args.String(0), args.String(1), args.Error(2)
}

func (m *MockStorage) Remove(ctx context.Context, objectName string) error {
	args := m.Called(ctx, objectName)
	return args.Error(0)
}

type MockResolver struct {
	mock.Mock
}

func (m *MockResolver) Usernames(ctx context.Context, userIDs []string) (map[string]string, error) {
	args := m.Called(ctx, userIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]string), args.Error(1)
}

func testConfig() *config.Config {
	return &config.Config{
		DefaultPageSize: 20,
		MaxPageSize:     100,
		ResolverTimeout: 3 * time.Second,
	}
}

package handlers

import (
	"context"

	"github.com/stretchr/testify/mock"

	"socialfeed/internal/models"
	"socialfeed/internal/service"
)

type MockPostService struct {
	mock.Mock
}

func (m *MockPostService) CreatePost(ctx context.Context, ownerID, content string, image *service.ImageUpload) (*models.Post, error) {
	args := m.Called(ctx, ownerID, content, image)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

func (m *MockPostService) CreatePoll(ctx context.Context, ownerID string, req service.CreatePollRequest) (*models.Post, error) {
	args := m.Called(ctx, ownerID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

func (m *MockPostService) CreatePromotion(ctx context.Context, ownerID string, req service.CreatePromotionRequest, image *service.ImageUpload) (*models.Post, error) {
	args := m.Called(ctx, ownerID, req, image)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

func (m *MockPostService) GetByID(ctx context.Context, postID string) (*models.Post, error) {
	args := m.Called(ctx, postID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

type MockEngagementService struct {
	mock.Mock
}

func (m *MockEngagementService) ToggleLike(ctx context.Context, postID, actorID string) (bool, error) {
	args := m.Called(ctx, postID, actorID)
	return args.Bool(0), args.Error(1)
}

func (m *MockEngagementService) ToggleShare(ctx context.Context, postID, actorID string) (bool, error) {
	args := m.Called(ctx, postID, actorID)
	return args.Bool(0), args.Error(1)
}

func (m *MockEngagementService) AddComment(ctx context.Context, postID, actorID, content string) (*models.Comment, error) {
	args := m.Called(ctx, postID, actorID, content)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Comment), args.Error(1)
}

func (m *MockEngagementService) VoteInPoll(ctx context.Context, postID, actorID, optionID string) (*models.Poll, error) {
	args := m.Called(ctx, postID, actorID, optionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Poll), args.Error(1)
}

type MockFeedService struct {
	mock.Mock
}

func (m *MockFeedService) Feed(ctx context.Context, q service.FeedQuery) ([]models.FeedItem, int, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]models.FeedItem), args.Int(1), args.Error(2)
}

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, req service.RegisterRequest) (*models.User, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, email, password string) (*models.User, *service.TokenPair, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*models.User), args.Get(1).(*service.TokenPair), args.Error(2)
}

func (m *MockAuthService) RefreshTokens(ctx context.Context, refreshToken string) (*models.User, *service.TokenPair, error) {
	args := m.Called(ctx, refreshToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*models.User), args.Get(1).(*service.TokenPair), args.Error(2)
}

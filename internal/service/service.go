package service

import (
	"socialfeed/internal/config"
	"socialfeed/internal/repository"
	"socialfeed/internal/storage"
)

type Service struct {
	Post       PostService
	Engagement EngagementService
	Feed       FeedService
	Auth       AuthService
}

func NewService(repo *repository.Repository, cfg *config.Config, store storage.Storage) *Service {
	return &Service{
		Post:       NewPostService(repo.Post, store),
		Engagement: NewEngagementService(repo.Post, repo.Engagement),
		Feed:       NewFeedService(repo.Post, repo.User, cfg),
		Auth:       NewAuthService(repo.User, cfg),
	}
}

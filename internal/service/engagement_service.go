package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"socialfeed/internal/apperr"
	"socialfeed/internal/models"
	"socialfeed/internal/repository"
)

type EngagementService interface {
	ToggleLike(ctx context.Context, postID, actorID string) (bool, error)
	ToggleShare(ctx context.Context, postID, actorID string) (bool, error)
	AddComment(ctx context.Context, postID, actorID, content string) (*models.Comment, error)
	VoteInPoll(ctx context.Context, postID, actorID, optionID string) (*models.Poll, error)
}

type engagementService struct {
	postRepo       repository.PostRepository
	engagementRepo repository.EngagementRepository
}

func NewEngagementService(postRepo repository.PostRepository, engagementRepo repository.EngagementRepository) EngagementService {
	return &engagementService{
		postRepo:       postRepo,
		engagementRepo: engagementRepo,
	}
}

func (s *engagementService) ToggleLike(ctx context.Context, postID, actorID string) (bool, error) {
	const op = "EngagementService.ToggleLike"

	if err := s.requirePost(ctx, postID); err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	liked, err := s.engagementRepo.ToggleLike(ctx, postID, actorID)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	return liked, nil
}

func (s *engagementService) ToggleShare(ctx context.Context, postID, actorID string) (bool, error) {
	const op = "EngagementService.ToggleShare"

	if err := s.requirePost(ctx, postID); err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	shared, err := s.engagementRepo.ToggleShare(ctx, postID, actorID)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	return shared, nil
}

func (s *engagementService) AddComment(ctx context.Context, postID, actorID, content string) (*models.Comment, error) {
	const op = "EngagementService.AddComment"

	if strings.TrimSpace(content) == "" {
		return nil, fmt.Errorf("%s: comment content is required: %w", op, apperr.ErrValidation)
	}

	if err := s.requirePost(ctx, postID); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	comment := &models.Comment{
		PostID:   postID,
		AuthorID: actorID,
		Content:  content,
	}

	if err := s.engagementRepo.AddComment(ctx, comment); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return comment, nil
}

// VoteInPoll checks the preconditions in a fixed order: poll exists, poll is
// open, option belongs to the poll, actor has not voted. The last check rides
// on the conditional insert so concurrent votes cannot both pass it.
func (s *engagementService) VoteInPoll(ctx context.Context, postID, actorID, optionID string) (*models.Poll, error) {
	const op = "EngagementService.VoteInPoll"

	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if post.Type != models.TypePoll || post.Poll == nil {
		return nil, fmt.Errorf("%s: poll not found: %w", op, apperr.ErrNotFound)
	}

	if time.Now().After(post.Poll.ExpiresAt) {
		return nil, fmt.Errorf("%s: %w", op, apperr.ErrPollExpired)
	}

	found := false
	for _, option := range post.Poll.Options {
		if option.OptionID == optionID {
			found = true
			break
		}
	}
	if !found {
		return nil, fmt.Errorf("%s: option not found: %w", op, apperr.ErrNotFound)
	}

	if err := s.engagementRepo.CastVote(ctx, postID, optionID, actorID); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	updated, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return updated.Poll, nil
}

func (s *engagementService) requirePost(ctx context.Context, postID string) error {
	exists, err := s.postRepo.Exists(ctx, postID)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("post %s: %w", postID, apperr.ErrNotFound)
	}
	return nil
}

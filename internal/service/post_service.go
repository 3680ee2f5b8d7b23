package service

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"socialfeed/internal/apperr"
	"socialfeed/internal/models"
	"socialfeed/internal/repository"
	"socialfeed/internal/storage"
)

// pollDefaultTTL is applied when a poll is created without an explicit
// expiry.
const pollDefaultTTL = 7 * 24 * time.Hour

// ImageUpload is an optional media attachment on a create request.
type ImageUpload struct {
	FileName string
	Reader   io.Reader
	Size     int64
}

type CreatePollRequest struct {
	Question  string
	Options   []string
	ExpiresAt *time.Time
}

type CreatePromotionRequest struct {
	Title       string
	Description string
	ButtonText  string
	ButtonLink  string
	WebsiteLink string
}

type PostService interface {
	CreatePost(ctx context.Context, ownerID, content string, image *ImageUpload) (*models.Post, error)
	CreatePoll(ctx context.Context, ownerID string, req CreatePollRequest) (*models.Post, error)
	CreatePromotion(ctx context.Context, ownerID string, req CreatePromotionRequest, image *ImageUpload) (*models.Post, error)
	GetByID(ctx context.Context, postID string) (*models.Post, error)
}

type postService struct {
	postRepo repository.PostRepository
	storage  storage.Storage
}

func NewPostService(postRepo repository.PostRepository, store storage.Storage) PostService {
	return &postService{
		postRepo: postRepo,
		storage:  store,
	}
}

func (s *postService) CreatePost(ctx context.Context, ownerID, content string, image *ImageUpload) (*models.Post, error) {
	const op = "PostService.CreatePost"

	content = strings.TrimSpace(content)
	if content == "" && image == nil {
		return nil, fmt.Errorf("%s: post must contain either text or an image: %w", op, apperr.ErrValidation)
	}

	post := &models.Post{
		Type:    models.TypePost,
		OwnerID: ownerID,
		Content: content,
	}

	objectName, err := s.attachImage(ctx, post, ownerID, image)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := s.createWithCleanup(ctx, post, objectName); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return post, nil
}

func (s *postService) CreatePoll(ctx context.Context, ownerID string, req CreatePollRequest) (*models.Post, error) {
	const op = "PostService.CreatePoll"

	if strings.TrimSpace(req.Question) == "" || len(req.Options) < 2 {
		return nil, fmt.Errorf("%s: poll requires a question and at least 2 options: %w", op, apperr.ErrValidation)
	}

	expiresAt := time.Now().Add(pollDefaultTTL)
	if req.ExpiresAt != nil {
		expiresAt = *req.ExpiresAt
	}

	options := make([]models.PollOption, 0, len(req.Options))
	for _, text := range req.Options {
		options = append(options, models.PollOption{Text: text, VoterIDs: []string{}})
	}

	post := &models.Post{
		Type:    models.TypePoll,
		OwnerID: ownerID,
		Poll: &models.Poll{
			Question:  req.Question,
			Options:   options,
			ExpiresAt: expiresAt,
		},
	}

	if err := s.createWithCleanup(ctx, post, ""); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return post, nil
}

func (s *postService) CreatePromotion(ctx context.Context, ownerID string, req CreatePromotionRequest, image *ImageUpload) (*models.Post, error) {
	const op = "PostService.CreatePromotion"

	if strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.ButtonLink) == "" {
		return nil, fmt.Errorf("%s: title and button link are required: %w", op, apperr.ErrValidation)
	}

	post := &models.Post{
		Type:    models.TypePromotion,
		OwnerID: ownerID,
		Promotion: &models.Promotion{
			Title:       req.Title,
			Description: req.Description,
			ButtonText:  req.ButtonText,
			ButtonLink:  req.ButtonLink,
			WebsiteLink: req.WebsiteLink,
		},
	}

	objectName, err := s.attachImage(ctx, post, ownerID, image)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := s.createWithCleanup(ctx, post, objectName); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return post, nil
}

func (s *postService) GetByID(ctx context.Context, postID string) (*models.Post, error) {
	return s.postRepo.GetByID(ctx, postID)
}

// attachImage uploads the media before the aggregate is written. Upload
// failure aborts the creation instead of persisting an empty reference.
func (s *postService) attachImage(ctx context.Context, post *models.Post, ownerID string, image *ImageUpload) (string, error) {
	if image == nil {
		return "", nil
	}

	objectName, url, err := s.storage.Upload(ctx, ownerID, image.FileName, image.Reader, image.Size)
	if err != nil {
		log.WithError(err).Warn("media upload failed")
		return "", fmt.Errorf("media upload failed: %w", apperr.ErrDependency)
	}

	post.ImageURL = url
	return objectName, nil
}

// createWithCleanup persists the post; if the insert fails after an upload
// already happened, the orphaned object is removed.
func (s *postService) createWithCleanup(ctx context.Context, post *models.Post, objectName string) error {
	err := s.postRepo.Create(ctx, post)
	if err == nil {
		return nil
	}

	if objectName != "" {
		if removeErr := s.storage.Remove(ctx, objectName); removeErr != nil {
			log.WithError(removeErr).Warn("failed to remove orphaned media object")
		}
	}

	return err
}

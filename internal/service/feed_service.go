package service

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"socialfeed/internal/config"
	"socialfeed/internal/models"
	"socialfeed/internal/repository"
)

// IdentityResolver turns opaque user ids into display names. Resolution is
// best-effort: a failing resolver degrades a feed to unresolved names, it
// never fails the query.
type IdentityResolver interface {
	Usernames(ctx context.Context, userIDs []string) (map[string]string, error)
}

// FeedQuery carries the client-facing query parameters before validation.
type FeedQuery struct {
	Query     string
	OwnerID   string
	SortBy    string
	SortOrder string
	Page      int
	PageSize  int
}

type FeedService interface {
	Feed(ctx context.Context, q FeedQuery) ([]models.FeedItem, int, error)
}

type feedService struct {
	postRepo repository.PostRepository
	resolver IdentityResolver
	cfg      *config.Config
}

func NewFeedService(postRepo repository.PostRepository, resolver IdentityResolver, cfg *config.Config) FeedService {
	return &feedService{
		postRepo: postRepo,
		resolver: resolver,
		cfg:      cfg,
	}
}

// sortColumns is the allow-list of sortable fields. Anything else falls back
// to createdAt rather than passing a client-supplied name into the query.
var sortColumns = map[string]string{
	"createdAt": "created_at",
	"updatedAt": "updated_at",
}

func (s *feedService) Feed(ctx context.Context, q FeedQuery) ([]models.FeedItem, int, error) {
	const op = "FeedService.Feed"

	filter := s.normalize(q)

	posts, total, err := s.postRepo.List(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}

	names := s.resolveNames(ctx, posts)

	items := make([]models.FeedItem, 0, len(posts))
	for _, post := range posts {
		items = append(items, project(post, names))
	}

	return items, total, nil
}

func (s *feedService) normalize(q FeedQuery) repository.FeedFilter {
	page := q.Page
	if page < 1 {
		page = 1
	}

	pageSize := q.PageSize
	if pageSize < 1 || pageSize > s.cfg.MaxPageSize {
		pageSize = s.cfg.DefaultPageSize
	}

	column, ok := sortColumns[q.SortBy]
	if !ok {
		column = "created_at"
	}

	return repository.FeedFilter{
		Query:    q.Query,
		OwnerID:  q.OwnerID,
		SortBy:   column,
		SortDesc: q.SortOrder != "asc",
		Limit:    pageSize,
		Offset:   (page - 1) * pageSize,
	}
}

// resolveNames collects every identity referenced by the page and resolves
// it in one bounded call. On failure the feed renders unresolved names.
func (s *feedService) resolveNames(ctx context.Context, posts []*models.Post) map[string]string {
	seen := make(map[string]struct{})
	ids := []string{}

	collect := func(id string) {
		if _, ok := seen[id]; !ok {
			seen[id] = struct{}{}
			ids = append(ids, id)
		}
	}

	for _, post := range posts {
		collect(post.OwnerID)
		for _, id := range post.Likes {
			collect(id)
		}
		for _, comment := range post.Comments {
			collect(comment.AuthorID)
		}
		if post.Poll != nil {
			for _, option := range post.Poll.Options {
				for _, id := range option.VoterIDs {
					collect(id)
				}
			}
		}
	}

	resolveCtx, cancel := context.WithTimeout(ctx, s.cfg.ResolverTimeout)
	defer cancel()

	names, err := s.resolver.Usernames(resolveCtx, ids)
	if err != nil {
		log.WithError(err).Warn("identity resolution failed, rendering unresolved names")
		return map[string]string{}
	}

	return names
}

func project(post *models.Post, names map[string]string) models.FeedItem {
	lookup := func(id string) *string {
		if name, ok := names[id]; ok {
			return &name
		}
		return nil
	}

	item := models.FeedItem{
		PostID:        post.PostID,
		Type:          post.Type,
		Username:      lookup(post.OwnerID),
		Content:       post.Content,
		ImageURL:      post.ImageURL,
		Promotion:     post.Promotion,
		LikesCount:    len(post.Likes),
		LikedBy:       make([]*string, 0, len(post.Likes)),
		SharesCount:   len(post.Shares),
		CommentsCount: len(post.Comments),
		Comments:      make([]models.FeedComment, 0, len(post.Comments)),
		CreatedAt:     post.CreatedAt,
	}

	for _, id := range post.Likes {
		item.LikedBy = append(item.LikedBy, lookup(id))
	}

	for _, comment := range post.Comments {
		item.Comments = append(item.Comments, models.FeedComment{
			Username: lookup(comment.AuthorID),
			Content:  comment.Content,
		})
	}

	if post.Poll != nil {
		poll := &models.FeedPoll{
			Question:  post.Poll.Question,
			Options:   make([]models.FeedPollOption, 0, len(post.Poll.Options)),
			ExpiresAt: post.Poll.ExpiresAt,
		}
		for _, option := range post.Poll.Options {
			feedOption := models.FeedPollOption{
				OptionID:   option.OptionID,
				Text:       option.Text,
				VotesCount: len(option.VoterIDs),
				VotedBy:    make([]*string, 0, len(option.VoterIDs)),
			}
			for _, id := range option.VoterIDs {
				feedOption.VotedBy = append(feedOption.VotedBy, lookup(id))
			}
			poll.Options = append(poll.Options, feedOption)
		}
		item.Poll = poll
	}

	return item
}

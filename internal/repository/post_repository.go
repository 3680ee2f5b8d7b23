package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	sqlbuilder "github.com/huandu/go-sqlbuilder"
	"github.com/jmoiron/sqlx"

	"socialfeed/internal/apperr"
	"socialfeed/internal/models"
)

type PostRepositoryImpl struct {
	DB *sqlx.DB
}

func NewPostRepository(db *sqlx.DB) *PostRepositoryImpl {
	return &PostRepositoryImpl{DB: db}
}

// postRow maps the tagged-union posts table; variant columns are NULL
// outside their type.
type postRow struct {
	PostID           string         `db:"post_id"`
	Type             string         `db:"type"`
	OwnerID          string         `db:"owner_id"`
	Content          string         `db:"content"`
	ImageURL         string         `db:"image_url"`
	PollQuestion     sql.NullString `db:"poll_question"`
	PollExpiresAt    sql.NullTime   `db:"poll_expires_at"`
	PromoTitle       sql.NullString `db:"promo_title"`
	PromoDescription sql.NullString `db:"promo_description"`
	PromoButtonText  sql.NullString `db:"promo_button_text"`
	PromoButtonLink  sql.NullString `db:"promo_button_link"`
	PromoWebsiteLink sql.NullString `db:"promo_website_link"`
	CreatedAt        time.Time      `db:"created_at"`
	UpdatedAt        time.Time      `db:"updated_at"`
}

func newPostRow(post *models.Post) postRow {
	row := postRow{
		PostID:    post.PostID,
		Type:      string(post.Type),
		OwnerID:   post.OwnerID,
		Content:   post.Content,
		ImageURL:  post.ImageURL,
		CreatedAt: post.CreatedAt,
		UpdatedAt: post.UpdatedAt,
	}

	if post.Poll != nil {
		row.PollQuestion = sql.NullString{String: post.Poll.Question, Valid: true}
		row.PollExpiresAt = sql.NullTime{Time: post.Poll.ExpiresAt, Valid: true}
	}
	if post.Promotion != nil {
		row.PromoTitle = sql.NullString{String: post.Promotion.Title, Valid: true}
		row.PromoDescription = sql.NullString{String: post.Promotion.Description, Valid: true}
		row.PromoButtonText = sql.NullString{String: post.Promotion.ButtonText, Valid: true}
		row.PromoButtonLink = sql.NullString{String: post.Promotion.ButtonLink, Valid: true}
		row.PromoWebsiteLink = sql.NullString{String: post.Promotion.WebsiteLink, Valid: true}
	}

	return row
}

func (row postRow) toModel() *models.Post {
	post := &models.Post{
		PostID:    row.PostID,
		Type:      models.PostType(row.Type),
		OwnerID:   row.OwnerID,
		Content:   row.Content,
		ImageURL:  row.ImageURL,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
		Likes:     []string{},
		Shares:    []string{},
		Comments:  []models.Comment{},
	}

	switch post.Type {
	case models.TypePoll:
		post.Poll = &models.Poll{
			Question:  row.PollQuestion.String,
			Options:   []models.PollOption{},
			ExpiresAt: row.PollExpiresAt.Time,
		}
	case models.TypePromotion:
		post.Promotion = &models.Promotion{
			Title:       row.PromoTitle.String,
			Description: row.PromoDescription.String,
			ButtonText:  row.PromoButtonText.String,
			ButtonLink:  row.PromoButtonLink.String,
			WebsiteLink: row.PromoWebsiteLink.String,
		}
	}

	return post
}

func (r *PostRepositoryImpl) Create(ctx context.Context, post *models.Post) error {
	if post.PostID == "" {
		post.PostID = uuid.New().String()
	}

	now := time.Now()
	post.CreatedAt = now
	post.UpdatedAt = now

	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
        INSERT INTO posts
        (post_id, type, owner_id, content, image_url,
         poll_question, poll_expires_at,
         promo_title, promo_description, promo_button_text, promo_button_link, promo_website_link,
         created_at, updated_at)
        VALUES
        (:post_id, :type, :owner_id, :content, :image_url,
         :poll_question, :poll_expires_at,
         :promo_title, :promo_description, :promo_button_text, :promo_button_link, :promo_website_link,
         :created_at, :updated_at)
    `

	row := newPostRow(post)
	if _, err := tx.NamedExecContext(ctx, query, row); err != nil {
		return fmt.Errorf("failed to insert post: %w", err)
	}

	if post.Poll != nil {
		optionQuery := `
            INSERT INTO poll_options (option_id, post_id, text, position)
            VALUES ($1, $2, $3, $4)
        `
		for i := range post.Poll.Options {
			option := &post.Poll.Options[i]
			if option.OptionID == "" {
				option.OptionID = uuid.New().String()
			}
			if option.VoterIDs == nil {
				option.VoterIDs = []string{}
			}
			if _, err := tx.ExecContext(ctx, optionQuery, option.OptionID, post.PostID, option.Text, i); err != nil {
				return fmt.Errorf("failed to insert poll option: %w", err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit post: %w", err)
	}

	return nil
}

func (r *PostRepositoryImpl) GetByID(ctx context.Context, postID string) (*models.Post, error) {
	query := `SELECT * FROM posts WHERE post_id = $1`

	var row postRow
	if err := r.DB.GetContext(ctx, &row, query, postID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("post %s: %w", postID, apperr.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get post: %w", err)
	}

	post := row.toModel()
	if err := r.hydrate(ctx, []*models.Post{post}); err != nil {
		return nil, err
	}

	return post, nil
}

func (r *PostRepositoryImpl) Exists(ctx context.Context, postID string) (bool, error) {
	var exists bool
	err := r.DB.GetContext(ctx, &exists, `SELECT EXISTS (SELECT 1 FROM posts WHERE post_id = $1)`, postID)
	if err != nil {
		return false, fmt.Errorf("failed to check post existence: %w", err)
	}
	return exists, nil
}

func (r *PostRepositoryImpl) List(ctx context.Context, filter FeedFilter) ([]*models.Post, int, error) {
	sb := sqlbuilder.NewSelectBuilder()
	sb.Select("*").From("posts")
	applyFeedFilter(sb, filter)

	order := filter.SortBy
	if filter.SortDesc {
		order += " DESC"
	} else {
		order += " ASC"
	}
	sb.OrderBy(order)
	sb.Limit(filter.Limit).Offset(filter.Offset)

	query, args := sb.BuildWithFlavor(sqlbuilder.PostgreSQL)

	var rows []postRow
	if err := r.DB.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to query feed: %w", err)
	}

	cb := sqlbuilder.NewSelectBuilder()
	cb.Select("COUNT(*)").From("posts")
	applyFeedFilter(cb, filter)

	countQuery, countArgs := cb.BuildWithFlavor(sqlbuilder.PostgreSQL)

	var total int
	if err := r.DB.GetContext(ctx, &total, countQuery, countArgs...); err != nil {
		return nil, 0, fmt.Errorf("failed to count feed: %w", err)
	}

	posts := make([]*models.Post, 0, len(rows))
	for _, row := range rows {
		posts = append(posts, row.toModel())
	}

	if err := r.hydrate(ctx, posts); err != nil {
		return nil, 0, err
	}

	return posts, total, nil
}

func applyFeedFilter(sb *sqlbuilder.SelectBuilder, filter FeedFilter) {
	if filter.Query != "" {
		sb.Where(sb.ILike("content", "%"+filter.Query+"%"))
	}
	if filter.OwnerID != "" {
		sb.Where(sb.Equal("owner_id", filter.OwnerID))
	}
}

type optionRow struct {
	OptionID string `db:"option_id"`
	PostID   string `db:"post_id"`
	Text     string `db:"text"`
}

type voteRow struct {
	PostID   string `db:"post_id"`
	OptionID string `db:"option_id"`
	VoterID  string `db:"voter_id"`
}

type memberRow struct {
	PostID string `db:"post_id"`
	UserID string `db:"user_id"`
}

// hydrate loads options, votes, likes, shares and comments for the given
// posts with one IN query per table.
func (r *PostRepositoryImpl) hydrate(ctx context.Context, posts []*models.Post) error {
	if len(posts) == 0 {
		return nil
	}

	ids := make([]string, 0, len(posts))
	byID := make(map[string]*models.Post, len(posts))
	for _, post := range posts {
		ids = append(ids, post.PostID)
		byID[post.PostID] = post
	}

	var options []optionRow
	query := `SELECT option_id, post_id, text FROM poll_options WHERE post_id IN (?) ORDER BY post_id, position`
	if err := r.selectIn(ctx, &options, query, ids); err != nil {
		return fmt.Errorf("failed to load poll options: %w", err)
	}

	for _, row := range options {
		post := byID[row.PostID]
		if post == nil || post.Poll == nil {
			continue
		}
		post.Poll.Options = append(post.Poll.Options, models.PollOption{
			OptionID: row.OptionID,
			Text:     row.Text,
			VoterIDs: []string{},
		})
	}

	// Index options only after all appends; appending reallocates the slice.
	optionIndex := make(map[string]*models.PollOption)
	for _, post := range posts {
		if post.Poll == nil {
			continue
		}
		for i := range post.Poll.Options {
			optionIndex[post.Poll.Options[i].OptionID] = &post.Poll.Options[i]
		}
	}

	var votes []voteRow
	query = `SELECT post_id, option_id, voter_id FROM poll_votes WHERE post_id IN (?)`
	if err := r.selectIn(ctx, &votes, query, ids); err != nil {
		return fmt.Errorf("failed to load poll votes: %w", err)
	}
	for _, row := range votes {
		if option := optionIndex[row.OptionID]; option != nil {
			option.VoterIDs = append(option.VoterIDs, row.VoterID)
		}
	}

	var likes []memberRow
	query = `SELECT post_id, user_id FROM post_likes WHERE post_id IN (?)`
	if err := r.selectIn(ctx, &likes, query, ids); err != nil {
		return fmt.Errorf("failed to load likes: %w", err)
	}
	for _, row := range likes {
		if post := byID[row.PostID]; post != nil {
			post.Likes = append(post.Likes, row.UserID)
		}
	}

	var shares []memberRow
	query = `SELECT post_id, user_id FROM post_shares WHERE post_id IN (?)`
	if err := r.selectIn(ctx, &shares, query, ids); err != nil {
		return fmt.Errorf("failed to load shares: %w", err)
	}
	for _, row := range shares {
		if post := byID[row.PostID]; post != nil {
			post.Shares = append(post.Shares, row.UserID)
		}
	}

	var comments []models.Comment
	query = `SELECT comment_id, post_id, author_id, content, created_at FROM comments WHERE post_id IN (?) ORDER BY created_at, comment_id`
	if err := r.selectIn(ctx, &comments, query, ids); err != nil {
		return fmt.Errorf("failed to load comments: %w", err)
	}
	for _, comment := range comments {
		if post := byID[comment.PostID]; post != nil {
			post.Comments = append(post.Comments, comment)
		}
	}

	return nil
}

func (r *PostRepositoryImpl) selectIn(ctx context.Context, dest interface{}, query string, ids []string) error {
	expanded, args, err := sqlx.In(query, ids)
	if err != nil {
		return err
	}
	return r.DB.SelectContext(ctx, dest, r.DB.Rebind(expanded), args...)
}

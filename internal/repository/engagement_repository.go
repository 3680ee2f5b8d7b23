package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"socialfeed/internal/apperr"
	"socialfeed/internal/models"
)

// EngagementRepositoryImpl performs all set-membership writes as single
// conditional statements. Membership is decided by the database constraint,
// never by a read followed by a write.
type EngagementRepositoryImpl struct {
	DB *sqlx.DB
}

func NewEngagementRepository(db *sqlx.DB) *EngagementRepositoryImpl {
	return &EngagementRepositoryImpl{DB: db}
}

func (r *EngagementRepositoryImpl) ToggleLike(ctx context.Context, postID, actorID string) (bool, error) {
	return r.toggleMembership(ctx, "post_likes", postID, actorID)
}

func (r *EngagementRepositoryImpl) ToggleShare(ctx context.Context, postID, actorID string) (bool, error) {
	return r.toggleMembership(ctx, "post_shares", postID, actorID)
}

// toggleMembership adds the actor if absent, otherwise removes them. The
// insert carries the membership check, so concurrent toggles by the same
// actor serialize into alternating flips instead of duplicate adds.
func (r *EngagementRepositoryImpl) toggleMembership(ctx context.Context, table, postID, actorID string) (bool, error) {
	insert := fmt.Sprintf(`
        INSERT INTO %s (post_id, user_id) VALUES ($1, $2)
        ON CONFLICT (post_id, user_id) DO NOTHING
    `, table)

	result, err := r.DB.ExecContext(ctx, insert, postID, actorID)
	if err != nil {
		return false, fmt.Errorf("failed to insert into %s: %w", table, err)
	}

	inserted, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to check affected rows: %w", err)
	}

	if inserted == 1 {
		return true, nil
	}

	remove := fmt.Sprintf(`DELETE FROM %s WHERE post_id = $1 AND user_id = $2`, table)
	if _, err := r.DB.ExecContext(ctx, remove, postID, actorID); err != nil {
		return false, fmt.Errorf("failed to delete from %s: %w", table, err)
	}

	return false, nil
}

func (r *EngagementRepositoryImpl) AddComment(ctx context.Context, comment *models.Comment) error {
	if comment.CommentID == "" {
		comment.CommentID = uuid.New().String()
	}
	comment.CreatedAt = time.Now()

	query := `
        INSERT INTO comments (comment_id, post_id, author_id, content, created_at)
        VALUES (:comment_id, :post_id, :author_id, :content, :created_at)
    `

	if _, err := r.DB.NamedExecContext(ctx, query, comment); err != nil {
		return fmt.Errorf("failed to insert comment: %w", err)
	}

	return nil
}

// CastVote appends the voter to the chosen option only if they have not voted
// anywhere in this poll. The UNIQUE (post_id, voter_id) constraint makes the
// check and the write one atomic statement.
func (r *EngagementRepositoryImpl) CastVote(ctx context.Context, postID, optionID, voterID string) error {
	query := `
        INSERT INTO poll_votes (post_id, option_id, voter_id)
        VALUES ($1, $2, $3)
        ON CONFLICT (post_id, voter_id) DO NOTHING
    `

	result, err := r.DB.ExecContext(ctx, query, postID, optionID, voterID)
	if err != nil {
		return fmt.Errorf("failed to insert vote: %w", err)
	}

	inserted, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check affected rows: %w", err)
	}

	if inserted == 0 {
		return fmt.Errorf("voter %s in poll %s: %w", voterID, postID, apperr.ErrAlreadyVoted)
	}

	return nil
}

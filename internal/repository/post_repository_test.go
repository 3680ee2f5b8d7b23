package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"socialfeed/internal/apperr"
	"socialfeed/internal/models"
)

var postColumns = []string{
	"post_id", "type", "owner_id", "content", "image_url",
	"poll_question", "poll_expires_at",
	"promo_title", "promo_description", "promo_button_text", "promo_button_link", "promo_website_link",
	"created_at", "updated_at",
}

func expectHydration(mock sqlmock.Sqlmock) {
	mock.ExpectQuery(`SELECT option_id, post_id, text FROM poll_options`).
		WillReturnRows(sqlmock.NewRows([]string{"option_id", "post_id", "text"}))
	mock.ExpectQuery(`SELECT post_id, option_id, voter_id FROM poll_votes`).
		WillReturnRows(sqlmock.NewRows([]string{"post_id", "option_id", "voter_id"}))
	mock.ExpectQuery(`SELECT post_id, user_id FROM post_likes`).
		WillReturnRows(sqlmock.NewRows([]string{"post_id", "user_id"}))
	mock.ExpectQuery(`SELECT post_id, user_id FROM post_shares`).
		WillReturnRows(sqlmock.NewRows([]string{"post_id", "user_id"}))
	mock.ExpectQuery(`SELECT comment_id, post_id, author_id, content, created_at FROM comments`).
		WillReturnRows(sqlmock.NewRows([]string{"comment_id", "post_id", "author_id", "content", "created_at"}))
}

func TestPostRepositoryImpl_Create(t *testing.T) {
	tests := []struct {
		name      string
		post      *models.Post
		setupMock func(mock sqlmock.Sqlmock)
	}{
		{
			name: "plain post",
			post: &models.Post{
				Type:    models.TypePost,
				OwnerID: "owner-1",
				Content: "hello",
			},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec(`INSERT INTO posts`).
					WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectCommit()
			},
		},
		{
			name: "poll inserts one row per option",
			post: &models.Post{
				Type:    models.TypePoll,
				OwnerID: "owner-1",
				Poll: &models.Poll{
					Question:  "Best color?",
					Options:   []models.PollOption{{Text: "Red"}, {Text: "Blue"}},
					ExpiresAt: time.Now().Add(24 * time.Hour),
				},
			},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec(`INSERT INTO posts`).
					WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectExec(`INSERT INTO poll_options`).
					WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectExec(`INSERT INTO poll_options`).
					WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectCommit()
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := setupMockDB(t)
			tt.setupMock(mock)

			repo := NewPostRepository(db)

			err := repo.Create(context.Background(), tt.post)
			require.NoError(t, err)

			assert.NotEmpty(t, tt.post.PostID)
			assert.False(t, tt.post.CreatedAt.IsZero())
			if tt.post.Poll != nil {
				for _, option := range tt.post.Poll.Options {
					assert.NotEmpty(t, option.OptionID)
				}
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestPostRepositoryImpl_GetByID(t *testing.T) {
	t.Run("not found", func(t *testing.T) {
		db, mock := setupMockDB(t)

		mock.ExpectQuery(`SELECT \* FROM posts WHERE post_id`).
			WithArgs("missing").
			WillReturnRows(sqlmock.NewRows(postColumns))

		repo := NewPostRepository(db)

		_, err := repo.GetByID(context.Background(), "missing")
		assert.ErrorIs(t, err, apperr.ErrNotFound)
	})

	t.Run("plain post hydrates empty engagement sets", func(t *testing.T) {
		db, mock := setupMockDB(t)

		now := time.Now()
		mock.ExpectQuery(`SELECT \* FROM posts WHERE post_id`).
			WithArgs("post-1").
			WillReturnRows(sqlmock.NewRows(postColumns).AddRow(
				"post-1", "POST", "owner-1", "hello", "",
				nil, nil,
				nil, nil, nil, nil, nil,
				now, now,
			))
		expectHydration(mock)

		repo := NewPostRepository(db)

		post, err := repo.GetByID(context.Background(), "post-1")
		require.NoError(t, err)

		assert.Equal(t, models.TypePost, post.Type)
		assert.Equal(t, "hello", post.Content)
		assert.Nil(t, post.Poll)
		assert.Nil(t, post.Promotion)
		assert.Empty(t, post.Likes)
		assert.Empty(t, post.Comments)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("poll hydrates options in stored order with voters", func(t *testing.T) {
		db, mock := setupMockDB(t)

		now := time.Now()
		mock.ExpectQuery(`SELECT \* FROM posts WHERE post_id`).
			WithArgs("poll-1").
			WillReturnRows(sqlmock.NewRows(postColumns).AddRow(
				"poll-1", "POLL", "owner-1", "", "",
				"Best color?", now.Add(24*time.Hour),
				nil, nil, nil, nil, nil,
				now, now,
			))
		mock.ExpectQuery(`SELECT option_id, post_id, text FROM poll_options`).
			WillReturnRows(sqlmock.NewRows([]string{"option_id", "post_id", "text"}).
				AddRow("opt-1", "poll-1", "Red").
				AddRow("opt-2", "poll-1", "Blue"))
		mock.ExpectQuery(`SELECT post_id, option_id, voter_id FROM poll_votes`).
			WillReturnRows(sqlmock.NewRows([]string{"post_id", "option_id", "voter_id"}).
				AddRow("poll-1", "opt-1", "user-a"))
		mock.ExpectQuery(`SELECT post_id, user_id FROM post_likes`).
			WillReturnRows(sqlmock.NewRows([]string{"post_id", "user_id"}))
		mock.ExpectQuery(`SELECT post_id, user_id FROM post_shares`).
			WillReturnRows(sqlmock.NewRows([]string{"post_id", "user_id"}))
		mock.ExpectQuery(`SELECT comment_id, post_id, author_id, content, created_at FROM comments`).
			WillReturnRows(sqlmock.NewRows([]string{"comment_id", "post_id", "author_id", "content", "created_at"}))

		repo := NewPostRepository(db)

		post, err := repo.GetByID(context.Background(), "poll-1")
		require.NoError(t, err)
		require.NotNil(t, post.Poll)

		require.Len(t, post.Poll.Options, 2)
		assert.Equal(t, "Red", post.Poll.Options[0].Text)
		assert.Equal(t, []string{"user-a"}, post.Poll.Options[0].VoterIDs)
		assert.Empty(t, post.Poll.Options[1].VoterIDs)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPostRepositoryImpl_Exists(t *testing.T) {
	db, mock := setupMockDB(t)

	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs("post-1").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	repo := NewPostRepository(db)

	exists, err := repo.Exists(context.Background(), "post-1")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestPostRepositoryImpl_List(t *testing.T) {
	db, mock := setupMockDB(t)

	now := time.Now()
	mock.ExpectQuery(`SELECT \* FROM posts WHERE content ILIKE`).
		WillReturnRows(sqlmock.NewRows(postColumns).AddRow(
			"post-1", "POST", "owner-1", "hello world", "",
			nil, nil,
			nil, nil, nil, nil, nil,
			now, now,
		))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM posts WHERE content ILIKE`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(7))
	expectHydration(mock)

	repo := NewPostRepository(db)

	posts, total, err := repo.List(context.Background(), FeedFilter{
		Query:    "hello",
		SortBy:   "created_at",
		SortDesc: true,
		Limit:    20,
		Offset:   0,
	})
	require.NoError(t, err)

	assert.Len(t, posts, 1)
	assert.Equal(t, 7, total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

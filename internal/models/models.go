package models

import (
	"time"
)

type PostType string

const (
	TypePost      PostType = "POST"
	TypePoll      PostType = "POLL"
	TypePromotion PostType = "PROMOTION"
)

type User struct {
	UserID                 string    `json:"userId" db:"user_id"`
	Username               string    `json:"username" db:"username"`
	Email                  string    `json:"email" db:"email"`
	PasswordHash           string    `json:"-" db:"password_hash"`
	RefreshToken           string    `json:"-" db:"refresh_token"`
	RefreshTokenExpiryTime time.Time `json:"-" db:"refresh_token_expiry_time"`
}

// Post is the aggregate root for all three content variants. Type decides
// which variant payload is populated; the other variants stay nil.
type Post struct {
	PostID    string    `json:"postId" db:"post_id"`
	Type      PostType  `json:"type" db:"type"`
	OwnerID   string    `json:"ownerId" db:"owner_id"`
	Content   string    `json:"content,omitempty" db:"content"`
	ImageURL  string    `json:"image,omitempty" db:"image_url"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`

	Poll      *Poll      `json:"poll,omitempty" db:"-"`
	Promotion *Promotion `json:"promotion,omitempty" db:"-"`

	Likes    []string  `json:"likes" db:"-"`
	Shares   []string  `json:"shares" db:"-"`
	Comments []Comment `json:"comments" db:"-"`
}

type Poll struct {
	Question  string       `json:"question"`
	Options   []PollOption `json:"options"`
	ExpiresAt time.Time    `json:"expiresAt"`
}

type PollOption struct {
	OptionID string   `json:"optionId" db:"option_id"`
	Text     string   `json:"text" db:"text"`
	VoterIDs []string `json:"votes" db:"-"`
}

type Promotion struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	ButtonText  string `json:"buttonText,omitempty"`
	ButtonLink  string `json:"buttonLink"`
	WebsiteLink string `json:"websiteLink,omitempty"`
}

type Comment struct {
	CommentID string    `json:"commentId" db:"comment_id"`
	PostID    string    `json:"postId" db:"post_id"`
	AuthorID  string    `json:"authorId" db:"author_id"`
	Content   string    `json:"content" db:"content"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// FeedItem is the client-facing projection of a Post: identity references
// resolved to usernames, counts precomputed. Built by the feed service,
// never written back.
type FeedItem struct {
	PostID   string   `json:"_id"`
	Type     PostType `json:"type"`
	Username *string  `json:"username"`

	Content   string     `json:"content,omitempty"`
	ImageURL  string     `json:"image,omitempty"`
	Poll      *FeedPoll  `json:"poll,omitempty"`
	Promotion *Promotion `json:"promotion,omitempty"`

	LikesCount    int           `json:"likesCount"`
	LikedBy       []*string     `json:"likedBy"`
	SharesCount   int           `json:"sharesCount"`
	CommentsCount int           `json:"commentsCount"`
	Comments      []FeedComment `json:"comments"`

	CreatedAt time.Time `json:"createdAt"`
}

type FeedPoll struct {
	Question  string           `json:"question"`
	Options   []FeedPollOption `json:"options"`
	ExpiresAt time.Time        `json:"expiresAt"`
}

type FeedPollOption struct {
	OptionID   string    `json:"optionId"`
	Text       string    `json:"text"`
	VotesCount int       `json:"votesCount"`
	VotedBy    []*string `json:"votedBy"`
}

type FeedComment struct {
	Username *string `json:"username"`
	Content  string  `json:"content"`
}

package post

import "time"

type CreatePostRequest struct {
	Content string `form:"content"`
}

type UpdatePostRequest struct {
	Content string `json:"content" binding:"required"`
}

type CommentRequest struct {
	Body        string `json:"message" binding:"required"`
	Fingerprint string `json:"fingerprint" binding:"required"`
}

// PostView is the feed representation of a post.
type PostView struct {
	Idx        string        `json:"idx"`
	CreatorIdx string        `json:"creator_idx"`
	Content    string        `json:"content"`
	Active     bool          `json:"active"`
	Images     []PostImage   `json:"images"`
	LikeCount  int           `json:"like_count"`
	Liked      bool          `json:"liked"`
	Comments   []CommentView `json:"comments"`
	CreatedAt  time.Time     `json:"created_at"`
}

type PostImage struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

type CommentView struct {
	UserIdx   string    `json:"user_idx"`
	Body      string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

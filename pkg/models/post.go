package models

// Post is a top-level community message. Body may be empty only when an
// image is attached. CreatedAt is epoch milliseconds and is the sort key.
type Post struct {
	ID        int       `json:"id"`
	Author    string    `json:"author"`
	UserSub   *string   `json:"userSub"`
	Body      string    `json:"body"`
	ImageURL  *string   `json:"imageUrl"`
	CreatedAt int64     `json:"createdAt"`
	Comments  []Comment `json:"comments"`
}

// Comment is a reply attached to exactly one Post. PostID is emitted only in
// the create-comment response; comments nested under a post carry their
// parent implicitly and the field is zeroed before shaping.
type Comment struct {
	ID        int     `json:"id"`
	PostID    int     `json:"postId,omitempty"`
	Author    string  `json:"author"`
	UserSub   *string `json:"userSub"`
	Body      string  `json:"body"`
	CreatedAt int64   `json:"createdAt"`
}

type CreatePostRequest struct {
	Body     string `json:"body"`
	ImageURL string `json:"imageUrl"`
}

type CreateCommentRequest struct {
	PostID int    `json:"postId"`
	Body   string `json:"body"`
}

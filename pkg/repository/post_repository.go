package repository

import (
	"database/sql"

	"clubhouse/pkg/models"
)

// PostRepository is the persistence surface for posts and comments. Columns
// are snake_case in the store; scanning into typed fields here keeps driver
// naming out of the API layer.
type PostRepository interface {
	InsertPost(author string, userSub *string, body string, imageURL *string, createdAt int64) (models.Post, error)
	InsertComment(postID int, author string, userSub *string, body string, createdAt int64) (models.Comment, error)
	ListPostsNewestFirst() ([]models.Post, error)
	ListCommentsOldestFirst() ([]models.Comment, error)
	PostExists(id int) (bool, error)
}

type postRepository struct {
	db *sql.DB
}

func NewPostRepository(db *sql.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) InsertPost(author string, userSub *string, body string, imageURL *string, createdAt int64) (models.Post, error) {
	var p models.Post
	err := r.db.QueryRow(`
		INSERT INTO posts (author, user_sub, body, image_url, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, author, user_sub, body, image_url, created_at
	`, author, userSub, body, imageURL, createdAt).Scan(
		&p.ID, &p.Author, &p.UserSub, &p.Body, &p.ImageURL, &p.CreatedAt,
	)
	return p, err
}

func (r *postRepository) InsertComment(postID int, author string, userSub *string, body string, createdAt int64) (models.Comment, error) {
	var c models.Comment
	err := r.db.QueryRow(`
		INSERT INTO comments (post_id, author, user_sub, body, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, post_id, author, user_sub, body, created_at
	`, postID, author, userSub, body, createdAt).Scan(
		&c.ID, &c.PostID, &c.Author, &c.UserSub, &c.Body, &c.CreatedAt,
	)
	return c, err
}

func (r *postRepository) ListPostsNewestFirst() ([]models.Post, error) {
	rows, err := r.db.Query(`
		SELECT id, author, user_sub, body, image_url, created_at
		FROM posts
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	posts := []models.Post{}
	for rows.Next() {
		var p models.Post
		if err := rows.Scan(&p.ID, &p.Author, &p.UserSub, &p.Body, &p.ImageURL, &p.CreatedAt); err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

func (r *postRepository) ListCommentsOldestFirst() ([]models.Comment, error) {
	rows, err := r.db.Query(`
		SELECT id, post_id, author, user_sub, body, created_at
		FROM comments
		ORDER BY created_at ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	comments := []models.Comment{}
	for rows.Next() {
		var c models.Comment
		if err := rows.Scan(&c.ID, &c.PostID, &c.Author, &c.UserSub, &c.Body, &c.CreatedAt); err != nil {
			return nil, err
		}
		comments = append(comments, c)
	}
	return comments, rows.Err()
}

func (r *postRepository) PostExists(id int) (bool, error) {
	var exists bool
	err := r.db.QueryRow(`SELECT EXISTS(SELECT 1 FROM posts WHERE id = $1)`, id).Scan(&exists)
	return exists, err
}

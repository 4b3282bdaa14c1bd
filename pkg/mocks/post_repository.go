package mocks

import (
	"errors"
	"sort"

	"clubhouse/pkg/models"
)

// MockPostRepository is an in-memory PostRepository for tests. It mimics the
// store's ordering guarantees and its FK backstop on comment inserts.
type MockPostRepository struct {
	Posts    []models.Post
	Comments []models.Comment

	ListPostsCalls int

	InsertPostErr    error
	InsertCommentErr error
	ListErr          error

	nextPostID    int
	nextCommentID int
}

func NewMockPostRepository() *MockPostRepository {
	return &MockPostRepository{}
}

func (m *MockPostRepository) InsertPost(author string, userSub *string, body string, imageURL *string, createdAt int64) (models.Post, error) {
	if m.InsertPostErr != nil {
		return models.Post{}, m.InsertPostErr
	}
	m.nextPostID++
	p := models.Post{
		ID:        m.nextPostID,
		Author:    author,
		UserSub:   userSub,
		Body:      body,
		ImageURL:  imageURL,
		CreatedAt: createdAt,
	}
	m.Posts = append(m.Posts, p)
	return p, nil
}

func (m *MockPostRepository) InsertComment(postID int, author string, userSub *string, body string, createdAt int64) (models.Comment, error) {
	if m.InsertCommentErr != nil {
		return models.Comment{}, m.InsertCommentErr
	}
	if !m.hasPost(postID) {
		return models.Comment{}, errors.New("foreign key violation: comments_post_id_fkey")
	}
	m.nextCommentID++
	c := models.Comment{
		ID:        m.nextCommentID,
		PostID:    postID,
		Author:    author,
		UserSub:   userSub,
		Body:      body,
		CreatedAt: createdAt,
	}
	m.Comments = append(m.Comments, c)
	return c, nil
}

func (m *MockPostRepository) ListPostsNewestFirst() ([]models.Post, error) {
	m.ListPostsCalls++
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	posts := make([]models.Post, len(m.Posts))
	copy(posts, m.Posts)
	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].CreatedAt > posts[j].CreatedAt
	})
	return posts, nil
}

func (m *MockPostRepository) ListCommentsOldestFirst() ([]models.Comment, error) {
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	comments := make([]models.Comment, len(m.Comments))
	copy(comments, m.Comments)
	sort.SliceStable(comments, func(i, j int) bool {
		return comments[i].CreatedAt < comments[j].CreatedAt
	})
	return comments, nil
}

func (m *MockPostRepository) PostExists(id int) (bool, error) {
	return m.hasPost(id), nil
}

func (m *MockPostRepository) hasPost(id int) bool {
	for _, p := range m.Posts {
		if p.ID == id {
			return true
		}
	}
	return false
}

package services

import (
	"errors"
	"strings"
	"time"

	"clubhouse/pkg/models"
	"clubhouse/pkg/repository"

	"github.com/lib/pq"
	"github.com/rs/zerolog"
)

var (
	ErrMissingContent = errors.New("missing post content")
	ErrMissingFields  = errors.New("missing postId or body")
	ErrPostNotFound   = errors.New("post not found")
)

// maxAuthorLen applies to post authors only. Comment authors are stored
// untruncated; the asymmetry is inherited behavior and kept as-is.
const maxAuthorLen = 80

const (
	feedCacheKey = "posts:feed"
	feedCacheTTL = 15 * time.Second
)

// fkViolation is the Postgres error code for a foreign-key violation, the
// store-level backstop when a comment references a post that vanished
// between the existence check and the insert.
const fkViolation = "23503"

type PostService interface {
	ListPosts() ([]models.Post, error)
	CreatePost(ident models.Identity, req models.CreatePostRequest) (models.Post, error)
	CreateComment(ident models.Identity, req models.CreateCommentRequest) (models.Comment, error)
}

// Cache is the slice of the Redis adapter the service needs; tests swap in
// an in-memory fake.
type Cache interface {
	Get(key string, dest interface{}) bool
	Set(key string, value interface{}, ttl time.Duration)
	Del(keys ...string)
}

type postService struct {
	repo  repository.PostRepository
	cache Cache
	log   zerolog.Logger
}

func NewPostService(repo repository.PostRepository, cache Cache, log zerolog.Logger) PostService {
	return &postService{repo: repo, cache: cache, log: log}
}

// ListPosts returns every post newest-first, each carrying its comments
// oldest-first. Comments are grouped in memory rather than joined; the
// dataset is small (no pagination exists) and the two reads stay simple.
func (s *postService) ListPosts() ([]models.Post, error) {
	var cached []models.Post
	if s.cache.Get(feedCacheKey, &cached) {
		return cached, nil
	}

	posts, err := s.repo.ListPostsNewestFirst()
	if err != nil {
		return nil, err
	}

	comments, err := s.repo.ListCommentsOldestFirst()
	if err != nil {
		return nil, err
	}

	byPost := make(map[int][]models.Comment)
	for _, c := range comments {
		pid := c.PostID
		c.PostID = 0 // parent is implicit once nested
		byPost[pid] = append(byPost[pid], c)
	}

	for i := range posts {
		if group, ok := byPost[posts[i].ID]; ok {
			posts[i].Comments = group
		} else {
			posts[i].Comments = []models.Comment{}
		}
	}

	s.cache.Set(feedCacheKey, posts, feedCacheTTL)
	return posts, nil
}

func (s *postService) CreatePost(ident models.Identity, req models.CreatePostRequest) (models.Post, error) {
	body := strings.TrimSpace(req.Body)
	image := strings.TrimSpace(req.ImageURL)
	if body == "" && image == "" {
		return models.Post{}, ErrMissingContent
	}

	var imageURL *string
	if image != "" {
		imageURL = &image
	}

	author := truncate(ident.DisplayName(), maxAuthorLen)
	createdAt := time.Now().UnixMilli()

	p, err := s.repo.InsertPost(author, ident.Subject(), body, imageURL, createdAt)
	if err != nil {
		return models.Post{}, err
	}
	p.Comments = []models.Comment{}

	s.cache.Del(feedCacheKey)
	s.log.Info().Int("id", p.ID).Str("author", p.Author).Msg("post created")
	return p, nil
}

func (s *postService) CreateComment(ident models.Identity, req models.CreateCommentRequest) (models.Comment, error) {
	body := strings.TrimSpace(req.Body)
	if req.PostID <= 0 || body == "" {
		return models.Comment{}, ErrMissingFields
	}

	exists, err := s.repo.PostExists(req.PostID)
	if err != nil {
		return models.Comment{}, err
	}
	if !exists {
		return models.Comment{}, ErrPostNotFound
	}

	createdAt := time.Now().UnixMilli()

	c, err := s.repo.InsertComment(req.PostID, ident.DisplayName(), ident.Subject(), body, createdAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == fkViolation {
			return models.Comment{}, ErrPostNotFound
		}
		return models.Comment{}, err
	}

	s.cache.Del(feedCacheKey)
	s.log.Info().Int("id", c.ID).Int("postId", c.PostID).Str("author", c.Author).Msg("comment created")
	return c, nil
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}

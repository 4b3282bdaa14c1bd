package handlers

import (
	"errors"

	"clubhouse/pkg/middleware"
	"clubhouse/pkg/models"
	"clubhouse/pkg/services"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
)

type PostsHandler struct {
	service services.PostService
	log     zerolog.Logger
}

func NewPosts(service services.PostService, log zerolog.Logger) *PostsHandler {
	return &PostsHandler{service: service, log: log}
}

// GET /api/posts
func (h *PostsHandler) List(c *fiber.Ctx) error {
	posts, err := h.service.ListPosts()
	if err != nil {
		h.log.Error().Err(err).Msg("list posts failed")
		return c.Status(500).JSON(fiber.Map{"error": "Failed to load posts"})
	}
	return c.JSON(fiber.Map{"posts": posts})
}

// POST /api/posts (auth required)
func (h *PostsHandler) Create(c *fiber.Ctx) error {
	var req models.CreatePostRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	post, err := h.service.CreatePost(middleware.IdentityFromCtx(c), req)
	if err != nil {
		if errors.Is(err, services.ErrMissingContent) {
			return c.Status(400).JSON(fiber.Map{"error": "Missing post content"})
		}
		h.log.Error().Err(err).Msg("create post failed")
		return c.Status(500).JSON(fiber.Map{"error": "Failed to create post"})
	}

	return c.Status(201).JSON(fiber.Map{"post": post})
}

// POST /api/comments (auth required)
func (h *PostsHandler) CreateComment(c *fiber.Ctx) error {
	var req models.CreateCommentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	comment, err := h.service.CreateComment(middleware.IdentityFromCtx(c), req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrMissingFields):
			return c.Status(400).JSON(fiber.Map{"error": "Missing postId or body"})
		case errors.Is(err, services.ErrPostNotFound):
			return c.Status(404).JSON(fiber.Map{"error": "Post not found"})
		}
		h.log.Error().Err(err).Msg("create comment failed")
		return c.Status(500).JSON(fiber.Map{"error": "Failed to create comment"})
	}

	return c.Status(201).JSON(fiber.Map{"comment": comment})
}

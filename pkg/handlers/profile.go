package handlers

import (
	"clubhouse/pkg/middleware"

	"github.com/gofiber/fiber/v2"
)

type ProfileHandler struct{}

func NewProfile() *ProfileHandler {
	return &ProfileHandler{}
}

// GET /profile (auth required) — the identity claims, verbatim.
func (h *ProfileHandler) Me(c *fiber.Ctx) error {
	ident := middleware.IdentityFromCtx(c)
	return c.JSON(fiber.Map{"user": ident.Claims})
}

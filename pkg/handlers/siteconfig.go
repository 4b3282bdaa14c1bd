package handlers

import (
	"clubhouse/pkg/config"

	"github.com/gofiber/fiber/v2"
)

type SiteConfigHandler struct {
	cfg *config.Config
}

func NewSiteConfig(cfg *config.Config) *SiteConfigHandler {
	return &SiteConfigHandler{cfg: cfg}
}

// GET /api/config — env-derived settings for the client-side widgets
// (Cloudinary unsigned upload, Shopify buy button). Empty strings when the
// corresponding env vars are unset.
func (h *SiteConfigHandler) Get(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"cloudName":           h.cfg.CloudinaryCloudName,
		"uploadPreset":        h.cfg.CloudinaryUploadPreset,
		"shopifyDomain":       h.cfg.ShopifyDomain,
		"shopifyToken":        h.cfg.ShopifyToken,
		"shopifyCollectionId": h.cfg.ShopifyCollectionID,
	})
}

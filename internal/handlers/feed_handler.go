package handlers

import (
	"net/http"

	"github.com/anonto42/curious/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// FeedHandler handles feed-related HTTP requests
type FeedHandler struct {
	resources services.ResourceService
}

func NewFeedHandler(resources services.ResourceService) *FeedHandler {
	return &FeedHandler{resources: resources}
}

func (h *FeedHandler) RegisterFeedRoutes(g *echo.Group) {
	g.GET("/feed", h.GetFeed)
}

// GetFeed previews the latest public prompts of everyone the caller follows
func (h *FeedHandler) GetFeed(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	feed, err := h.resources.GetFeed(c.Request().Context(), userID)
	if err != nil {
		return toHTTPError(err)
	}
	return respond(c, http.StatusOK, feed)
}

package handlers

import (
	"net/http"

	"github.com/anonto42/curious/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// FollowHandler handles follow/unfollow HTTP requests
type FollowHandler struct {
	social services.SocialService
}

func NewFollowHandler(social services.SocialService) *FollowHandler {
	return &FollowHandler{social: social}
}

// RegisterFollowRoutes registers follow-related routes
func (h *FollowHandler) RegisterFollowRoutes(g *echo.Group) {
	g.POST("/follows/:username", h.Follow)
	g.DELETE("/follows/:id", h.Unfollow)
	g.GET("/follows/following", h.ListFollowing)
	g.GET("/follows/followers", h.ListFollowers)
	g.GET("/users/:id/following", h.ListFollowingOf)
	g.GET("/users/:id/followers", h.ListFollowersOf)
}

// Follow follows the user named in the path
func (h *FollowHandler) Follow(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	follow, err := h.social.Follow(c.Request().Context(), userID, c.Param("username"))
	if err != nil {
		return toHTTPError(err)
	}
	return respond(c, http.StatusCreated, follow)
}

// Unfollow removes the edge to the user id in the path
func (h *FollowHandler) Unfollow(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	followedID, err := parseID(c, "id")
	if err != nil {
		return err
	}
	if err := h.social.Unfollow(c.Request().Context(), userID, followedID); err != nil {
		return toHTTPError(err)
	}
	return respond(c, http.StatusOK, echo.Map{"following": false})
}

func (h *FollowHandler) ListFollowing(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	users, err := h.social.ListFollowing(c.Request().Context(), userID)
	if err != nil {
		return toHTTPError(err)
	}
	return respond(c, http.StatusOK, users)
}

func (h *FollowHandler) ListFollowers(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	users, err := h.social.ListFollowers(c.Request().Context(), userID)
	if err != nil {
		return toHTTPError(err)
	}
	return respond(c, http.StatusOK, users)
}

// ListFollowingOf lists who the user in the path follows
func (h *FollowHandler) ListFollowingOf(c echo.Context) error {
	userID, err := parseID(c, "id")
	if err != nil {
		return err
	}
	users, err := h.social.ListFollowing(c.Request().Context(), userID)
	if err != nil {
		return toHTTPError(err)
	}
	return respond(c, http.StatusOK, users)
}

// ListFollowersOf lists the followers of the user in the path
func (h *FollowHandler) ListFollowersOf(c echo.Context) error {
	userID, err := parseID(c, "id")
	if err != nil {
		return err
	}
	users, err := h.social.ListFollowers(c.Request().Context(), userID)
	if err != nil {
		return toHTTPError(err)
	}
	return respond(c, http.StatusOK, users)
}

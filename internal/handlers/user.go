package handlers

import (
	"net/http"
	"strings"

	"github.com/anonto42/curious/backend/internal/models"
	"github.com/anonto42/curious/backend/internal/repositories"
	"github.com/anonto42/curious/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// UserHandler handles HTTP requests related to users
type UserHandler struct {
	userRepository repositories.UserRepository
	social         services.SocialService
}

func NewUserHandler(userRepo repositories.UserRepository, social services.SocialService) *UserHandler {
	return &UserHandler{userRepository: userRepo, social: social}
}

// RegisterUserRoutes registers user lookup and profile routes
func (h *UserHandler) RegisterUserRoutes(g *echo.Group) {
	g.GET("/users", h.ListUsers)
	g.GET("/users/me", h.GetMe)
	g.PUT("/users/me", h.UpdateMe)
	g.GET("/users/search", h.SearchUsers)
	g.GET("/users/username/:username", h.GetUserByUsername)
	g.GET("/users/email/:email", h.GetUserByEmail)
	g.GET("/users/:id", h.GetUser)
}

// GetMe returns the caller with follower and following counts
func (h *UserHandler) GetMe(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	ctx := c.Request().Context()

	user, err := h.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		return toHTTPError(err)
	}
	followers, followings, err := h.social.Counts(ctx, userID)
	if err != nil {
		return toHTTPError(err)
	}
	return respond(c, http.StatusOK, models.UserWithSocialNetwork{
		User:       *user,
		Followers:  followers,
		Followings: followings,
	})
}

func (h *UserHandler) UpdateMe(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	var req models.UpdateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	ctx := c.Request().Context()
	user, err := h.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		return toHTTPError(err)
	}
	if req.FullName != "" {
		user.FullName = req.FullName
	}
	if req.Email != "" {
		user.Email = strings.ToLower(req.Email)
	}
	if err := h.userRepository.UpdateUser(ctx, user); err != nil {
		return toHTTPError(err)
	}
	return respond(c, http.StatusOK, user)
}

func (h *UserHandler) GetUser(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	user, err := h.userRepository.GetUserByID(c.Request().Context(), id)
	if err != nil {
		return toHTTPError(err)
	}
	return respond(c, http.StatusOK, user)
}

func (h *UserHandler) GetUserByUsername(c echo.Context) error {
	user, err := h.userRepository.GetUserByUsername(c.Request().Context(), c.Param("username"))
	if err != nil {
		return toHTTPError(err)
	}
	return respond(c, http.StatusOK, user)
}

func (h *UserHandler) GetUserByEmail(c echo.Context) error {
	user, err := h.userRepository.GetUserByEmail(c.Request().Context(), strings.ToLower(c.Param("email")))
	if err != nil {
		return toHTTPError(err)
	}
	return respond(c, http.StatusOK, user)
}

func (h *UserHandler) ListUsers(c echo.Context) error {
	page, limit := pagination(c)
	users, err := h.userRepository.GetUsers(c.Request().Context(), (page-1)*limit, limit)
	if err != nil {
		return toHTTPError(err)
	}
	return respond(c, http.StatusOK, users)
}

// SearchUsers matches ?q= against usernames and full names
func (h *UserHandler) SearchUsers(c echo.Context) error {
	query := strings.TrimSpace(c.QueryParam("q"))
	if query == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Search query is required")
	}
	_, limit := pagination(c)
	users, err := h.userRepository.SearchUsers(c.Request().Context(), query, limit)
	if err != nil {
		return toHTTPError(err)
	}
	return respond(c, http.StatusOK, users)
}

package handlers

import (
	"net/http"

	"github.com/anonto42/curious/backend/internal/models"
	"github.com/anonto42/curious/backend/internal/services"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// PromptHandler exposes the prompt pipeline
type PromptHandler struct {
	resources services.ResourceService
	logger    *zap.Logger
}

func NewPromptHandler(resources services.ResourceService, logger *zap.Logger) *PromptHandler {
	return &PromptHandler{resources: resources, logger: logger.Named("prompts")}
}

func (h *PromptHandler) RegisterPromptRoutes(g *echo.Group) {
	g.POST("/curious", h.Curious)
	g.POST("/chat", h.Chat)

	g.GET("/prompts", h.ListMine)
	g.GET("/prompts/profile/me", h.ProfilePreview)
	g.GET("/prompts/:id", h.Get)
	g.GET("/prompts/:id/latest", h.Latest)
	g.GET("/prompts/:id/history", h.History)
	g.PATCH("/prompts/:id/visibility", h.SetVisibility)
}

// Curious runs a prompt through the full pipeline and returns one group
// per subject
func (h *PromptHandler) Curious(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	var req models.CuriousRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	groups, err := h.resources.ProcessPrompt(c.Request().Context(), req.Prompt, req.IsPrivate, userID)
	if err != nil {
		h.logger.Warn("Prompt processing failed", zap.Uint("user_id", userID), zap.Error(err))
		return toHTTPError(err)
	}
	h.logger.Debug("Prompt processed", zap.Uint("user_id", userID), zap.Int("subjects", len(groups)))
	return respond(c, http.StatusCreated, groups)
}

// Chat resolves subjects without searching or saving anything
func (h *PromptHandler) Chat(c echo.Context) error {
	var req models.CuriousRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	resolution, err := h.resources.ResolveSubjects(c.Request().Context(), req.Prompt)
	if err != nil {
		return toHTTPError(err)
	}
	return respond(c, http.StatusOK, resolution)
}

func (h *PromptHandler) ListMine(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	prompts, err := h.resources.ListPrompts(c.Request().Context(), userID)
	if err != nil {
		return toHTTPError(err)
	}
	return respond(c, http.StatusOK, prompts)
}

// ProfilePreview samples the caller's three latest prompts
func (h *PromptHandler) ProfilePreview(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	groups, err := h.resources.GetProfilePreview(c.Request().Context(), userID)
	if err != nil {
		return toHTTPError(err)
	}
	return respond(c, http.StatusOK, groups)
}

func (h *PromptHandler) Get(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	promptID, err := parseID(c, "id")
	if err != nil {
		return err
	}
	prompt, err := h.resources.GetPrompt(c.Request().Context(), promptID, userID)
	if err != nil {
		return toHTTPError(err)
	}
	return respond(c, http.StatusOK, prompt)
}

func (h *PromptHandler) Latest(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	promptID, err := parseID(c, "id")
	if err != nil {
		return err
	}
	ctx := c.Request().Context()
	// visibility check
	if _, err := h.resources.GetPrompt(ctx, promptID, userID); err != nil {
		return toHTTPError(err)
	}
	group, err := h.resources.GetPromptContentsLatest(ctx, promptID)
	if err != nil {
		return toHTTPError(err)
	}
	return respond(c, http.StatusOK, group)
}

// History returns the full grouped history, owner only
func (h *PromptHandler) History(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	promptID, err := parseID(c, "id")
	if err != nil {
		return err
	}
	groups, err := h.resources.HistoryForUser(c.Request().Context(), promptID, userID)
	if err != nil {
		return toHTTPError(err)
	}
	return respond(c, http.StatusOK, groups)
}

func (h *PromptHandler) SetVisibility(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	promptID, err := parseID(c, "id")
	if err != nil {
		return err
	}
	var req models.UpdateVisibilityRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	prompt, err := h.resources.SetPromptVisibility(c.Request().Context(), promptID, userID, *req.IsPrivate)
	if err != nil {
		return toHTTPError(err)
	}
	return respond(c, http.StatusOK, prompt)
}

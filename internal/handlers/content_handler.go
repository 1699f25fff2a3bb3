package handlers

import (
	"net/http"

	"github.com/anonto42/curious/backend/internal/repositories"
	"github.com/labstack/echo/v4"
)

// ContentHandler serves stored search results
type ContentHandler struct {
	contentRepository repositories.ContentRepository
}

func NewContentHandler(contentRepo repositories.ContentRepository) *ContentHandler {
	return &ContentHandler{contentRepository: contentRepo}
}

func (h *ContentHandler) RegisterContentRoutes(g *echo.Group) {
	g.GET("/contents", h.List)
	g.GET("/contents/:id", h.Get)
}

func (h *ContentHandler) List(c echo.Context) error {
	page, limit := pagination(c)
	contents, err := h.contentRepository.GetContents(c.Request().Context(), (page-1)*limit, limit)
	if err != nil {
		return toHTTPError(err)
	}
	return respond(c, http.StatusOK, contents)
}

func (h *ContentHandler) Get(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	content, err := h.contentRepository.GetContentByID(c.Request().Context(), id)
	if err != nil {
		return toHTTPError(err)
	}
	return respond(c, http.StatusOK, content)
}

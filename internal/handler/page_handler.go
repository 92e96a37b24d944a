package handler

import (
	"net/http"

	"github.com/Eursukkul/devevent/internal/featured"
	"github.com/labstack/echo/v4"
)

// pageCacheControl lets browsers and CDNs keep the landing page for an hour.
const pageCacheControl = "public, max-age=3600"

// FeaturedSource supplies the landing page list.
type FeaturedSource interface {
	Events() []featured.Event
}

type PageHandler struct {
	featured FeaturedSource
	baseURL  string
}

func NewPageHandler(featured FeaturedSource, baseURL string) *PageHandler {
	return &PageHandler{featured: featured, baseURL: baseURL}
}

func (h *PageHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/", h.Home)
	e.GET("/health", h.Health)
}

type homePage struct {
	BaseURL string
	Events  []featured.Event
}

func (h *PageHandler) Home(c echo.Context) error {
	c.Response().Header().Set("Cache-Control", pageCacheControl)
	return c.Render(http.StatusOK, "home", homePage{
		BaseURL: h.baseURL,
		Events:  h.featured.Events(),
	})
}

func (h *PageHandler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok", "service": "devevent"})
}

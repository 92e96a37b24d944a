package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Eursukkul/devevent/internal/featured"
	"github.com/Eursukkul/devevent/internal/view"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticFeatured []featured.Event

func (s staticFeatured) Events() []featured.Event { return s }

func newPageServer(t *testing.T, events []featured.Event) *echo.Echo {
	t.Helper()
	renderer, err := view.NewRenderer()
	require.NoError(t, err)

	e := echo.New()
	e.Renderer = renderer
	NewPageHandler(staticFeatured(events), "https://devevent.example.com").RegisterRoutes(e)
	return e
}

func TestHome_RendersOneCardPerEvent(t *testing.T) {
	for _, n := range []int{0, 1, 6} {
		events := featured.Default()
		for len(events) < n {
			events = append(events, events[0])
		}
		events = events[:n]

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		newPageServer(t, events).ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		body := rec.Body.String()
		assert.Equal(t, n, strings.Count(body, `class="event-card"`), "cards for %d events", n)
		assert.Contains(t, body, "Featured Events")
		assert.Equal(t, "public, max-age=3600", rec.Header().Get("Cache-Control"))
	}
}

func TestHome_EscapesAndLinksEvents(t *testing.T) {
	events := []featured.Event{{Title: "<Go> & Friends", Slug: "go-friends", Location: "Online"}}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	newPageServer(t, events).ServeHTTP(rec, req)

	body := rec.Body.String()
	assert.Contains(t, body, "&lt;Go&gt; &amp; Friends")
	assert.Contains(t, body, `href="https://devevent.example.com/events/go-friends"`)
}

func TestHealth(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	newPageServer(t, nil).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
}

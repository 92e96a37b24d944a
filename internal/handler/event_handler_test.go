package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Eursukkul/devevent/internal/middleware"
	"github.com/Eursukkul/devevent/internal/models"
	"github.com/Eursukkul/devevent/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Mock EventService ---

type mockEventService struct {
	createFn func(ctx context.Context, in service.CreateEventInput) (*models.Event, error)
	listFn   func(ctx context.Context) ([]models.Event, error)
	created  int
}

func (m *mockEventService) CreateEvent(ctx context.Context, in service.CreateEventInput) (*models.Event, error) {
	m.created++
	return m.createFn(ctx, in)
}
func (m *mockEventService) ListEvents(ctx context.Context) ([]models.Event, error) {
	return m.listFn(ctx)
}

// --- Helpers ---

const uploadedURL = "https://res.cloudinary.com/demo/image/upload/v1/DevEvent/hack.png"

func newServer(svc service.EventService) *echo.Echo {
	e := echo.New()
	e.HTTPErrorHandler = middleware.ErrorHandler(slog.New(slog.NewTextHandler(io.Discard, nil)))
	NewEventHandler(svc).RegisterRoutes(e.Group("/api/events"))
	return e
}

func multipartRequest(t *testing.T, fields map[string]string, image []byte) *http.Request {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if image != nil {
		part, err := w.CreateFormFile("image", "cover.png")
		require.NoError(t, err)
		_, err = part.Write(image)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/events", &body)
	req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
	return req
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

// --- Tests ---

func TestCreateEvent_Handler_Success(t *testing.T) {
	var got service.CreateEventInput
	svc := &mockEventService{
		createFn: func(ctx context.Context, in service.CreateEventInput) (*models.Event, error) {
			got = in
			now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
			return &models.Event{
				ID:        "evt-1",
				Title:     in.Title,
				Tags:      in.Tags,
				Agenda:    in.Agenda,
				Fields:    in.Fields,
				Image:     uploadedURL,
				CreatedAt: now,
				UpdatedAt: now,
			}, nil
		},
	}

	req := multipartRequest(t, map[string]string{
		"title":  "Hack Day",
		"tags":   `["ai","oss"]`,
		"agenda": `[{"time":"10:00","desc":"Kickoff"}]`,
		"venue":  "Bangkok",
	}, []byte("png-bytes"))
	rec := httptest.NewRecorder()
	newServer(svc).ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "Event created successfully", body["message"])

	event := body["event"].(map[string]any)
	assert.Equal(t, "evt-1", event["_id"])
	assert.Equal(t, "Hack Day", event["title"])
	assert.Equal(t, []any{"ai", "oss"}, event["tags"])
	assert.Equal(t, []any{map[string]any{"time": "10:00", "desc": "Kickoff"}}, event["agenda"])
	assert.Equal(t, uploadedURL, event["image"])
	assert.Equal(t, "Bangkok", event["venue"])
	assert.NotEmpty(t, event["createdAt"])

	assert.Equal(t, []byte("png-bytes"), got.Image)
	assert.Equal(t, models.Fields{"venue": "Bangkok"}, got.Fields)
}

func TestCreateEvent_Handler_MissingImage(t *testing.T) {
	svc := &mockEventService{}

	req := multipartRequest(t, map[string]string{"title": "Hack Day", "tags": `[]`, "agenda": `[]`}, nil)
	rec := httptest.NewRecorder()
	newServer(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"message":"Image file is required"}`, rec.Body.String())
	assert.Zero(t, svc.created)
}

func TestCreateEvent_Handler_EmptyImage(t *testing.T) {
	svc := &mockEventService{}

	req := multipartRequest(t, map[string]string{"title": "Hack Day"}, []byte{})
	rec := httptest.NewRecorder()
	newServer(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Zero(t, svc.created)
}

func TestCreateEvent_Handler_NotMultipart(t *testing.T) {
	svc := &mockEventService{}

	req := httptest.NewRequest(http.MethodPost, "/api/events", strings.NewReader(`{"title":"Hack Day"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	newServer(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"message":"Invalid form data"}`, rec.Body.String())
}

func TestCreateEvent_Handler_MalformedJSONFields(t *testing.T) {
	tests := []struct {
		name    string
		fields  map[string]string
		message string
	}{
		{"tags", map[string]string{"tags": `["ai",`, "agenda": `[]`}, "Invalid tags format"},
		{"agenda", map[string]string{"tags": `["ai"]`, "agenda": `{"time":"10:00"}`}, "Invalid agenda format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockEventService{}

			req := multipartRequest(t, tt.fields, []byte("png-bytes"))
			rec := httptest.NewRecorder()
			newServer(svc).ServeHTTP(rec, req)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.JSONEq(t, `{"message":"`+tt.message+`"}`, rec.Body.String())
			assert.Zero(t, svc.created)
		})
	}
}

func TestCreateEvent_Handler_ServiceFailure(t *testing.T) {
	svc := &mockEventService{
		createFn: func(ctx context.Context, in service.CreateEventInput) (*models.Event, error) {
			return nil, errors.New("upload image: image upload failed: timeout")
		},
	}

	req := multipartRequest(t, map[string]string{"title": "Hack Day"}, []byte("png-bytes"))
	rec := httptest.NewRecorder()
	newServer(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"message":"Event Creation Failed","error":"upload image: image upload failed: timeout"}`, rec.Body.String())
}

func TestCreateEvent_Handler_ReturnsHTTPError(t *testing.T) {
	e := echo.New()
	req := multipartRequest(t, map[string]string{"title": "Hack Day"}, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := NewEventHandler(&mockEventService{}).CreateEvent(c)

	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Code)
	assert.Equal(t, "Image file is required", he.Message)
}

func TestListEvents_Handler_Success(t *testing.T) {
	t1 := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	svc := &mockEventService{
		listFn: func(ctx context.Context) ([]models.Event, error) {
			return []models.Event{
				{ID: "3", Title: "t3", CreatedAt: t1.Add(2 * time.Hour)},
				{ID: "2", Title: "t2", CreatedAt: t1.Add(time.Hour)},
				{ID: "1", Title: "t1", CreatedAt: t1},
			}, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/events", nil)
	rec := httptest.NewRecorder()
	newServer(svc).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Message string         `json:"message"`
		Events  []models.Event `json:"events"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Events fetched successfully", resp.Message)
	require.Len(t, resp.Events, 3)
	for i := 1; i < len(resp.Events); i++ {
		assert.False(t, resp.Events[i].CreatedAt.After(resp.Events[i-1].CreatedAt))
	}
	assert.Equal(t, []string{"3", "2", "1"}, []string{resp.Events[0].ID, resp.Events[1].ID, resp.Events[2].ID})
}

func TestListEvents_Handler_EmptyIsArray(t *testing.T) {
	svc := &mockEventService{
		listFn: func(ctx context.Context) ([]models.Event, error) {
			return nil, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/events", nil)
	rec := httptest.NewRecorder()
	newServer(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"Events fetched successfully","events":[]}`, rec.Body.String())
}

func TestListEvents_Handler_Error(t *testing.T) {
	svc := &mockEventService{
		listFn: func(ctx context.Context) ([]models.Event, error) {
			return nil, errors.New("db error")
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/events", nil)
	rec := httptest.NewRecorder()
	newServer(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"message":"Event Fetching Failed","error":"db error"}`, rec.Body.String())
}

package handler

import (
	"io"
	"net/http"

	"github.com/Eursukkul/devevent/internal/dto"
	"github.com/Eursukkul/devevent/internal/models"
	"github.com/Eursukkul/devevent/internal/service"
	"github.com/labstack/echo/v4"
)

type EventHandler struct {
	svc service.EventService
}

func NewEventHandler(svc service.EventService) *EventHandler {
	return &EventHandler{svc: svc}
}

func (h *EventHandler) RegisterRoutes(g *echo.Group) {
	g.POST("", h.CreateEvent)
	g.GET("", h.ListEvents)
}

// CreateEvent checks the form, the image part, then tags and agenda, stopping at the first failure.
func (h *EventHandler) CreateEvent(c echo.Context) error {
	form, err := c.MultipartForm()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, dto.MsgInvalidForm)
	}

	files := form.File[dto.FieldImage]
	if len(files) == 0 || files[0].Size == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, dto.MsgImageRequired)
	}

	req := dto.NewCreateEventForm(form.Value)
	tags, err := models.ParseTags(req.Tags)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, dto.MsgInvalidTags).SetInternal(err)
	}
	agenda, err := models.ParseAgenda(req.Agenda)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, dto.MsgInvalidAgenda).SetInternal(err)
	}

	f, err := files[0].Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, dto.MsgEventCreateFailed).SetInternal(err)
	}
	defer f.Close()
	image, err := io.ReadAll(f)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, dto.MsgEventCreateFailed).SetInternal(err)
	}

	event, err := h.svc.CreateEvent(c.Request().Context(), service.CreateEventInput{
		Title:       req.Title,
		Description: req.Description,
		Tags:        tags,
		Agenda:      agenda,
		Fields:      req.Fields,
		Image:       image,
	})
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, dto.MsgEventCreateFailed).SetInternal(err)
	}

	return c.JSON(http.StatusCreated, dto.EventResponse{Message: dto.MsgEventCreated, Event: event})
}

func (h *EventHandler) ListEvents(c echo.Context) error {
	events, err := h.svc.ListEvents(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, dto.MsgEventFetchFailed).SetInternal(err)
	}
	if events == nil {
		events = []models.Event{}
	}

	return c.JSON(http.StatusOK, dto.EventsResponse{Message: dto.MsgEventsFetched, Events: events})
}

package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Eursukkul/devevent/internal/metrics"
	"github.com/Eursukkul/devevent/internal/models"
	"github.com/Eursukkul/devevent/internal/repository"
	"github.com/Eursukkul/devevent/pkg/imagehost"
	"github.com/Eursukkul/devevent/pkg/rabbitmq"
)

const cleanupTimeout = 10 * time.Second

// CreateEventInput is a validated create request. Image holds the raw cover image bytes.
type CreateEventInput struct {
	Title       string
	Description string
	Tags        models.Tags
	Agenda      models.Agenda
	Fields      models.Fields
	Image       []byte
}

type EventService interface {
	CreateEvent(ctx context.Context, in CreateEventInput) (*models.Event, error)
	ListEvents(ctx context.Context) ([]models.Event, error)
}

// Connector hands out the process-wide repository, opening it on first use.
type Connector interface {
	Connect(ctx context.Context) (repository.EventRepository, error)
}

type Publisher interface {
	Publish(ctx context.Context, routingKey string, payload any) error
}

type eventService struct {
	conn      Connector
	uploader  imagehost.Uploader
	publisher Publisher
	folder    string
	logger    *slog.Logger
}

// NewEventService wires the create/list flow. publisher may be nil to skip notifications.
func NewEventService(conn Connector, uploader imagehost.Uploader, publisher Publisher, folder string, logger *slog.Logger) EventService {
	if logger == nil {
		logger = slog.Default()
	}
	return &eventService{
		conn:      conn,
		uploader:  uploader,
		publisher: publisher,
		folder:    folder,
		logger:    logger,
	}
}

// CreateEvent uploads the image, then persists the event with the returned URL. The upload always
// finishes before the insert; if the insert fails the uploaded image is deleted again.
func (s *eventService) CreateEvent(ctx context.Context, in CreateEventInput) (*models.Event, error) {
	repo, err := s.conn.Connect(ctx)
	if err != nil {
		metrics.EventCreateFailures.WithLabelValues("connect").Inc()
		return nil, err
	}

	start := time.Now()
	upload, err := s.uploader.Upload(ctx, in.Image, s.folder)
	metrics.ImageUploadDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.ImageUploads.WithLabelValues("error").Inc()
		metrics.EventCreateFailures.WithLabelValues("upload").Inc()
		return nil, fmt.Errorf("upload image: %w", err)
	}
	metrics.ImageUploads.WithLabelValues("ok").Inc()

	event := &models.Event{
		Title:       in.Title,
		Description: in.Description,
		Tags:        in.Tags,
		Agenda:      in.Agenda,
		Fields:      in.Fields,
		Image:       upload.URL,
	}
	if err := repo.Create(ctx, event); err != nil {
		metrics.EventCreateFailures.WithLabelValues("persist").Inc()
		s.discardUpload(ctx, upload)
		return nil, fmt.Errorf("create event: %w", err)
	}
	metrics.EventsCreated.Inc()

	if s.publisher != nil {
		if err := s.publisher.Publish(ctx, rabbitmq.RoutingEventCreated, event); err != nil {
			s.logger.Warn("publish event.created failed", "event_id", event.ID, "error", err)
		}
	}

	return event, nil
}

func (s *eventService) discardUpload(ctx context.Context, upload *imagehost.Upload) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cleanupTimeout)
	defer cancel()

	if err := s.uploader.Delete(ctx, upload.PublicID); err != nil {
		metrics.OrphanCleanups.WithLabelValues("error").Inc()
		s.logger.Error("orphaned image left behind", "public_id", upload.PublicID, "url", upload.URL, "error", err)
		return
	}
	metrics.OrphanCleanups.WithLabelValues("ok").Inc()
	s.logger.Info("removed image of unsaved event", "public_id", upload.PublicID)
}

func (s *eventService) ListEvents(ctx context.Context) ([]models.Event, error) {
	repo, err := s.conn.Connect(ctx)
	if err != nil {
		return nil, err
	}
	events, err := repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return events, nil
}

package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Eursukkul/devevent/config"
	"github.com/Eursukkul/devevent/internal/featured"
	"github.com/Eursukkul/devevent/internal/handler"
	"github.com/Eursukkul/devevent/internal/middleware"
	"github.com/Eursukkul/devevent/internal/repository"
	"github.com/Eursukkul/devevent/internal/service"
	"github.com/Eursukkul/devevent/internal/view"
	"github.com/Eursukkul/devevent/pkg/database"
	"github.com/Eursukkul/devevent/pkg/imagehost"
	"github.com/Eursukkul/devevent/pkg/rabbitmq"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echoMw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	logger := cfg.NewLogger()
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	connector := newConnector(cfg)
	defer connector.Close(context.Background())

	// Dial early so a bad connection string shows up in the logs; requests still connect lazily.
	go func() {
		if _, err := connector.Connect(ctx); err != nil {
			logger.Warn("database not reachable yet", "driver", cfg.DBDriver, "error", err)
		}
	}()

	uploader, err := imagehost.New(ctx, imagehost.Config{
		Provider: cfg.ImageProvider,
		Cloudinary: imagehost.CloudinaryConfig{
			URL:       cfg.CloudinaryURL,
			CloudName: cfg.CloudinaryCloudName,
			APIKey:    cfg.CloudinaryAPIKey,
			APISecret: cfg.CloudinaryAPISecret,
		},
		S3: imagehost.S3Config{
			Bucket:          cfg.S3Bucket,
			Region:          cfg.S3Region,
			AccessKeyID:     cfg.S3AccessKeyID,
			SecretAccessKey: cfg.S3SecretAccessKey,
			PublicBaseURL:   cfg.S3PublicBaseURL,
		},
	})
	if err != nil {
		log.Fatalf("failed to create image uploader: %v", err)
	}

	var publisher service.Publisher
	if cfg.RabbitURL != "" {
		p, err := rabbitmq.NewPublisher(cfg.RabbitURL)
		if err != nil {
			log.Fatalf("failed to connect to RabbitMQ: %v", err)
		}
		defer p.Close()
		publisher = p
	}

	svc := service.NewEventService(connector, uploader, publisher, cfg.ImageFolder, logger)

	store, err := featured.NewStore(cfg.FeaturedEventsFile, logger)
	if err != nil {
		log.Fatalf("failed to load featured events: %v", err)
	}
	stopWatch, err := store.Watch()
	if err != nil {
		log.Fatalf("failed to watch featured events: %v", err)
	}
	defer stopWatch()

	renderer, err := view.NewRenderer()
	if err != nil {
		log.Fatalf("failed to parse templates: %v", err)
	}

	e := echo.New()
	e.HideBanner = true
	e.Renderer = renderer
	e.HTTPErrorHandler = middleware.ErrorHandler(logger)
	e.Use(echoMw.RequestIDWithConfig(echoMw.RequestIDConfig{Generator: uuid.NewString}))
	e.Use(middleware.RequestLogger(logger))
	e.Use(echoMw.Recover())
	e.Use(echoMw.BodyLimit(cfg.MaxUploadSize))

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	handler.NewPageHandler(store, cfg.BaseURL).RegisterRoutes(e)

	api := e.Group("/api/events")
	handler.NewEventHandler(svc).RegisterRoutes(api)

	e.Server.ReadHeaderTimeout = 10 * time.Second
	e.Server.ReadTimeout = 60 * time.Second
	e.Server.WriteTimeout = 120 * time.Second

	go func() {
		logger.Info("DevEvent starting", "port", cfg.ServerPort, "db", cfg.DBDriver, "images", cfg.ImageProvider)
		if err := e.Start(":" + cfg.ServerPort); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server stopped", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
	}
}

func newConnector(cfg *config.Config) *database.Connector[repository.EventRepository] {
	if cfg.DBDriver == config.DriverPostgres {
		return database.NewConnector[repository.EventRepository](func(ctx context.Context) (repository.EventRepository, error) {
			db, err := database.OpenPostgres(ctx, cfg.DSN())
			if err != nil {
				return nil, err
			}
			return repository.NewPostgresEventRepository(db), nil
		}, cfg.DBConnectTimeout)
	}

	return database.NewConnector[repository.EventRepository](func(ctx context.Context) (repository.EventRepository, error) {
		db, err := database.OpenMongo(ctx, cfg.MongoURI, cfg.MongoDatabase)
		if err != nil {
			return nil, err
		}
		repo, err := repository.NewMongoEventRepository(ctx, db)
		if err != nil {
			_ = db.Client().Disconnect(context.Background())
			return nil, err
		}
		return repo, nil
	}, cfg.DBConnectTimeout)
}

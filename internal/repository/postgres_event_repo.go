package repository

import (
	"context"
	"time"

	"github.com/Eursukkul/devevent/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type postgresEventRepository struct {
	db  *gorm.DB
	now func() time.Time
}

func NewPostgresEventRepository(db *gorm.DB) EventRepository {
	return &postgresEventRepository{db: db, now: time.Now}
}

func (r *postgresEventRepository) Create(ctx context.Context, event *models.Event) error {
	prepare(event)
	event.ID = uuid.NewString()
	now := r.now().UTC()
	event.CreatedAt = now
	event.UpdatedAt = now
	return r.db.WithContext(ctx).Create(event).Error
}

func (r *postgresEventRepository) FindAll(ctx context.Context) ([]models.Event, error) {
	events := []models.Event{}
	if err := r.db.WithContext(ctx).Order("created_at DESC").Order("id DESC").Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

func (r *postgresEventRepository) Close(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

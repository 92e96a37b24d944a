package repository

import (
	"context"

	"github.com/Eursukkul/devevent/internal/models"
)

// EventRepository persists event documents. Implementations assign the id and both timestamps on
// Create, and FindAll returns newest first.
type EventRepository interface {
	Create(ctx context.Context, event *models.Event) error
	FindAll(ctx context.Context) ([]models.Event, error)
	Close(ctx context.Context) error
}

func prepare(event *models.Event) {
	if event.Tags == nil {
		event.Tags = models.Tags{}
	}
	if event.Agenda == nil {
		event.Agenda = models.Agenda{}
	}
	for k := range event.Fields {
		if models.IsReservedField(k) {
			delete(event.Fields, k)
		}
	}
}

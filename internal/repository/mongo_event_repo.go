package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/Eursukkul/devevent/internal/models"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

const EventsCollection = "events"

type mongoEventRepository struct {
	coll *mongo.Collection
	now  func() time.Time
}

// NewMongoEventRepository binds the events collection and ensures the recency index exists.
func NewMongoEventRepository(ctx context.Context, db *mongo.Database) (EventRepository, error) {
	coll := db.Collection(EventsCollection)
	_, err := coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}},
	})
	if err != nil {
		return nil, fmt.Errorf("create events index: %w", err)
	}
	return &mongoEventRepository{coll: coll, now: time.Now}, nil
}

func (r *mongoEventRepository) Create(ctx context.Context, event *models.Event) error {
	prepare(event)
	event.ID = bson.NewObjectID().Hex()
	// BSON dates carry millisecond precision.
	now := r.now().UTC().Truncate(time.Millisecond)
	event.CreatedAt = now
	event.UpdatedAt = now
	_, err := r.coll.InsertOne(ctx, event)
	return err
}

func (r *mongoEventRepository) FindAll(ctx context.Context) ([]models.Event, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, err
	}
	events := []models.Event{}
	if err := cursor.All(ctx, &events); err != nil {
		return nil, err
	}
	for i := range events {
		for j, item := range events[i].Agenda {
			events[i].Agenda[j] = plainValue(item)
		}
	}
	return events, nil
}

func (r *mongoEventRepository) Close(ctx context.Context) error {
	return r.coll.Database().Client().Disconnect(ctx)
}

// plainValue converts decoded BSON containers into the map/slice shapes encoding/json understands.
func plainValue(v any) any {
	switch t := v.(type) {
	case bson.D:
		m := make(map[string]any, len(t))
		for _, e := range t {
			m[e.Key] = plainValue(e.Value)
		}
		return m
	case bson.M:
		m := make(map[string]any, len(t))
		for k, e := range t {
			m[k] = plainValue(e)
		}
		return m
	case map[string]any:
		m := make(map[string]any, len(t))
		for k, e := range t {
			m[k] = plainValue(e)
		}
		return m
	case bson.A:
		s := make([]any, len(t))
		for i, e := range t {
			s[i] = plainValue(e)
		}
		return s
	case []any:
		s := make([]any, len(t))
		for i, e := range t {
			s[i] = plainValue(e)
		}
		return s
	default:
		return v
	}
}

//go:build integration

package repository

import (
	"context"
	"log"
	"os"
	"testing"
	"time"

	"github.com/Eursukkul/devevent/internal/models"
	"github.com/Eursukkul/devevent/pkg/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

var testMongo *mongo.Database

func TestMain(m *testing.M) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := database.OpenMongo(ctx, getEnv("TEST_MONGODB_URI", "mongodb://localhost:27017"), "devevent_test")
	if err != nil {
		log.Fatalf("failed to connect to test database: %v", err)
	}
	testMongo = db

	code := m.Run()

	_ = testMongo.Drop(context.Background())
	_ = testMongo.Client().Disconnect(context.Background())
	os.Exit(code)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func TestMongoEventRepository_CreateAndFindAll(t *testing.T) {
	ctx := context.Background()
	require.NoError(t, testMongo.Collection(EventsCollection).Drop(ctx))

	r, err := NewMongoEventRepository(ctx, testMongo)
	require.NoError(t, err)
	repo := r.(*mongoEventRepository)

	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	for i, title := range []string{"first", "second", "third"} {
		at := base.Add(time.Duration(i) * time.Hour)
		repo.now = func() time.Time { return at }

		event := &models.Event{
			Title:  title,
			Image:  "https://img.example.com/" + title + ".png",
			Tags:   models.Tags{"ai", "oss"},
			Agenda: models.Agenda{map[string]any{"time": "10:00", "desc": "Kickoff"}},
			Fields: models.Fields{"venue": "Bangkok"},
		}
		require.NoError(t, repo.Create(ctx, event))
		assert.Len(t, event.ID, 24)
	}

	events, err := repo.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, events, 3)
	assert.Equal(t, "third", events[0].Title)
	assert.Equal(t, "second", events[1].Title)
	assert.Equal(t, "first", events[2].Title)
	assert.Equal(t, models.Agenda{map[string]any{"time": "10:00", "desc": "Kickoff"}}, events[0].Agenda)
	assert.Equal(t, models.Fields{"venue": "Bangkok"}, events[0].Fields)

	again, err := repo.FindAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, events, again)
}

package repositories

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"blog-scout/models"
)

type ScrapeRunRepository struct {
	col *mongo.Collection
}

func NewScrapeRunRepository(db *mongo.Database) *ScrapeRunRepository {
	return &ScrapeRunRepository{col: db.Collection("scrape_runs")}
}

// Insert records one completed run summary.
func (r *ScrapeRunRepository) Insert(ctx context.Context, run *models.ScrapeRun) (*mongo.InsertOneResult, error) {
	return r.col.InsertOne(ctx, run)
}

// ListRecent returns up to limit runs, newest first.
func (r *ScrapeRunRepository) ListRecent(ctx context.Context, limit int) ([]models.ScrapeRun, error) {
	if limit < 1 || limit > 100 {
		limit = 20
	}

	findOpts := options.Find().
		SetSort(bson.D{{Key: "started_at", Value: -1}}).
		SetLimit(int64(limit))

	cur, err := r.col.Find(ctx, bson.M{}, findOpts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var runs []models.ScrapeRun
	if err := cur.All(ctx, &runs); err != nil {
		return nil, err
	}
	return runs, nil
}

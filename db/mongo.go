package db

import (
	"context"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"blog-scout/config"
)

var (
	clientOnce sync.Once
	client     *mongo.Client
	db         *mongo.Database
)

// Init initializes the global Mongo client and database from cfg.
// 아카이브는 선택 기능이므로 MONGO_URI 가 설정된 경우에만 호출된다.
func Init(ctx context.Context, cfg *config.AppConfig) error {
	var initErr error
	clientOnce.Do(func() {
		ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()

		cl, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
		if err != nil {
			initErr = err
			return
		}
		// Ping to verify connection
		if err := cl.Ping(ctx, readpref.Primary()); err != nil {
			initErr = err
			return
		}
		client = cl
		db = client.Database(cfg.MongoDBName)

		if err := ensureIndexes(ctx, db); err != nil {
			initErr = err
			return
		}
		config.Logger.Info("MongoDB connected and indexes ensured")
	})
	return initErr
}

func Client() *mongo.Client     { return client }
func Database() *mongo.Database { return db }

func ensureIndexes(ctx context.Context, d *mongo.Database) error {
	// posts: unique index on link (canonical URL is the dedupe key)
	{
		mi := mongo.IndexModel{
			Keys:    bson.D{{Key: "link", Value: 1}},
			Options: options.Index().SetName("uniq_link").SetUnique(true),
		}
		if _, err := d.Collection("posts").Indexes().CreateOne(ctx, mi); err != nil {
			return err
		}
	}

	// scrape_runs: started_at desc for recent-run listing
	{
		mi := mongo.IndexModel{
			Keys:    bson.D{{Key: "started_at", Value: -1}},
			Options: options.Index().SetName("idx_started_at_desc"),
		}
		if _, err := d.Collection("scrape_runs").Indexes().CreateOne(ctx, mi); err != nil {
			return err
		}
	}

	return nil
}

package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ScrapeRun records one completed collection run.
// Collection: scrape_runs
type ScrapeRun struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	RunID        string             `bson:"run_id" json:"run_id"`
	StartedAt    time.Time          `bson:"started_at" json:"started_at"`
	FinishedAt   time.Time          `bson:"finished_at" json:"finished_at"`
	PagesScanned int                `bson:"pages_scanned" json:"pages_scanned"`
	FeedsScanned int                `bson:"feeds_scanned" json:"feeds_scanned"`
	Found        int                `bson:"found" json:"found"`
	Saved        int                `bson:"saved" json:"saved"`
	Skipped      int                `bson:"skipped" json:"skipped"`
	Failed       int                `bson:"failed" json:"failed"`
}

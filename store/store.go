// Package store is the document-store collaborator: point lookups, filtered
// listings and aggregations over the MongoDB collections, plus the
// conditional read-modify-write used to persist project transitions. All
// workflow and gap decisions happen outside this package.
package store

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

var (
	// ErrNotFound reports an absent settlement, project, user or report.
	ErrNotFound = errors.New("not found")

	// ErrConflict reports a project whose status changed between read and
	// write; the caller should re-read and retry the transition decision.
	ErrConflict = errors.New("project modified concurrently")
)

const (
	collUsers     = "users"
	collVillages  = "villages"
	collAmenities = "amenities"
	collGaps      = "gaps"
	collProjects  = "projects"
	collReports   = "reports"
)

type Store struct {
	db *mongo.Database
}

func New(db *mongo.Database) *Store {
	return &Store{db: db}
}

// Ping verifies the underlying connection, for health checks.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.Client().Ping(ctx, nil)
}

// CollectionNames lists the collections present, for the detailed health
// endpoint.
func (s *Store) CollectionNames(ctx context.Context) ([]string, error) {
	return s.db.ListCollectionNames(ctx, bson.M{})
}

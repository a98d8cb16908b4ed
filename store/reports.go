package store

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Selvaprakash-V/SIH2K25/models"
)

func (s *Store) InsertReport(ctx context.Context, r models.Report) (models.Report, error) {
	res, err := s.db.Collection(collReports).InsertOne(ctx, r)
	if err != nil {
		return models.Report{}, err
	}
	r.ID = res.InsertedID.(primitive.ObjectID)
	return r, nil
}

// FindReportByClientID looks up an offline report by its client-generated id,
// used to deduplicate batched syncs.
func (s *Store) FindReportByClientID(ctx context.Context, clientID string) (models.Report, error) {
	var r models.Report
	err := s.db.Collection(collReports).FindOne(ctx, bson.M{"client_id": clientID}).Decode(&r)
	if err == mongo.ErrNoDocuments {
		return models.Report{}, ErrNotFound
	}
	if err != nil {
		return models.Report{}, err
	}
	return r, nil
}

func (s *Store) ListReports(ctx context.Context, villageID string) ([]models.Report, error) {
	filter := bson.M{}
	if villageID != "" {
		filter["village_id"] = villageID
	}

	cursor, err := s.db.Collection(collReports).Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var reports []models.Report
	if err := cursor.All(ctx, &reports); err != nil {
		return nil, err
	}
	return reports, nil
}

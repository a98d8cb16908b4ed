package store

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Selvaprakash-V/SIH2K25/models"
)

// UpsertGapReport stores the latest computed report for a village. The gaps
// collection is a cache of derived data, so a blind overwrite is safe.
func (s *Store) UpsertGapReport(ctx context.Context, r models.GapReport) error {
	_, err := s.db.Collection(collGaps).UpdateOne(ctx,
		bson.M{"village_id": r.VillageID},
		bson.M{"$set": r},
		options.Update().SetUpsert(true))
	return err
}

func (s *Store) ListGapReports(ctx context.Context) ([]models.GapReport, error) {
	cursor, err := s.db.Collection(collGaps).Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var reports []models.GapReport
	if err := cursor.All(ctx, &reports); err != nil {
		return nil, err
	}
	return reports, nil
}

// Recommendation is a village joined with its stored gap report, ranked by
// severity.
type Recommendation struct {
	Village models.Village    `bson:"village" json:"village"`
	Gap     *models.GapReport `bson:"gap,omitempty" json:"gap,omitempty"`
}

// Recommendations returns the villages with the highest severity scores.
// Village _id is an ObjectID while gap reports key on its hex string, so the
// lookup matches through $toString.
func (s *Store) Recommendations(ctx context.Context, limit int64) ([]Recommendation, error) {
	if limit <= 0 || limit > 100 {
		limit = 10
	}

	pipeline := mongo.Pipeline{
		bson.D{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: collGaps},
			{Key: "let", Value: bson.D{{Key: "vid", Value: bson.D{{Key: "$toString", Value: "$_id"}}}}},
			{Key: "pipeline", Value: mongo.Pipeline{
				bson.D{{Key: "$match", Value: bson.D{
					{Key: "$expr", Value: bson.D{{Key: "$eq", Value: bson.A{"$village_id", "$$vid"}}}},
				}}},
			}},
			{Key: "as", Value: "gap"},
		}}},
		bson.D{{Key: "$unwind", Value: bson.D{
			{Key: "path", Value: "$gap"},
			{Key: "preserveNullAndEmptyArrays", Value: true},
		}}},
		bson.D{{Key: "$sort", Value: bson.D{{Key: "gap.severity_score", Value: -1}}}},
		bson.D{{Key: "$limit", Value: limit}},
		bson.D{{Key: "$project", Value: bson.D{
			{Key: "village", Value: "$$ROOT"},
			{Key: "gap", Value: 1},
		}}},
		bson.D{{Key: "$unset", Value: "village.gap"}},
	}

	cursor, err := s.db.Collection(collVillages).Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var recs []Recommendation
	if err := cursor.All(ctx, &recs); err != nil {
		return nil, err
	}
	return recs, nil
}

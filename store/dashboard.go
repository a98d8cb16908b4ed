package store

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// DistrictSummary aggregates village demographics and derived gap data for
// one district.
type DistrictSummary struct {
	District        string  `bson:"_id" json:"district"`
	VillageCount    int64   `bson:"village_count" json:"village_count"`
	TotalPopulation int64   `bson:"total_population" json:"total_population"`
	AvgSCRatio      float64 `bson:"avg_sc_ratio" json:"avg_sc_ratio"`
	AvgSeverity     float64 `bson:"avg_severity" json:"avg_severity"`
}

// DistrictSummaries groups villages by district, optionally scoped to one
// state, joining each village's stored gap report for the severity average.
func (s *Store) DistrictSummaries(ctx context.Context, state string) ([]DistrictSummary, error) {
	match := bson.M{}
	if state != "" {
		match["state"] = state
	}

	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: match}},
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
		bson.D{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$district"},
			{Key: "village_count", Value: bson.D{{Key: "$sum", Value: 1}}},
			{Key: "total_population", Value: bson.D{{Key: "$sum", Value: "$population"}}},
			{Key: "avg_sc_ratio", Value: bson.D{{Key: "$avg", Value: "$sc_ratio"}}},
			{Key: "avg_severity", Value: bson.D{{Key: "$avg", Value: "$gap.severity_score"}}},
		}}},
		bson.D{{Key: "$sort", Value: bson.D{{Key: "_id", Value: 1}}}},
	}

	cursor, err := s.db.Collection(collVillages).Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var summaries []DistrictSummary
	if err := cursor.All(ctx, &summaries); err != nil {
		return nil, err
	}
	return summaries, nil
}

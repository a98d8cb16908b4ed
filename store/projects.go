package store

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Selvaprakash-V/SIH2K25/models"
)

type ProjectFilter struct {
	VillageID string
	Status    models.ProjectStatus
	District  string
	// Active keeps only projects that can still move through the workflow.
	// Ignored when Status is set.
	Active bool
}

// terminalStatuses enumerates the statuses with no outgoing transitions.
func terminalStatuses() []models.ProjectStatus {
	all := []models.ProjectStatus{
		models.StatusPendingState, models.StatusPendingAdmin, models.StatusApproved,
		models.StatusRejected, models.StatusInProgress, models.StatusCompleted,
		models.StatusCancelled,
	}
	var out []models.ProjectStatus
	for _, s := range all {
		if s.Terminal() {
			out = append(out, s)
		}
	}
	return out
}

func (s *Store) ListProjects(ctx context.Context, f ProjectFilter) ([]models.Project, error) {
	filter := bson.M{}
	if f.VillageID != "" {
		filter["village_id"] = f.VillageID
	}
	if f.Status != "" {
		filter["status"] = f.Status
	} else if f.Active {
		filter["status"] = bson.M{"$nin": terminalStatuses()}
	}
	if f.District != "" {
		filter["created_by_district"] = f.District
	}

	cursor, err := s.db.Collection(collProjects).Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var projects []models.Project
	if err := cursor.All(ctx, &projects); err != nil {
		return nil, err
	}
	return projects, nil
}

func (s *Store) GetProject(ctx context.Context, id string) (models.Project, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.Project{}, &models.ValidationError{Field: "project_id", Reason: "not a valid id"}
	}

	var p models.Project
	err = s.db.Collection(collProjects).FindOne(ctx, bson.M{"_id": oid}).Decode(&p)
	if err == mongo.ErrNoDocuments {
		return models.Project{}, ErrNotFound
	}
	if err != nil {
		return models.Project{}, err
	}
	return p, nil
}

func (s *Store) InsertProject(ctx context.Context, p models.Project) (models.Project, error) {
	res, err := s.db.Collection(collProjects).InsertOne(ctx, p)
	if err != nil {
		return models.Project{}, err
	}
	p.ID = res.InsertedID.(primitive.ObjectID)
	return p, nil
}

// ReplaceProject persists a mutated project on the condition that its status
// still matches what the caller read. Two concurrent transitions cannot both
// match, so the loser gets ErrConflict instead of overwriting the winner.
func (s *Store) ReplaceProject(ctx context.Context, p models.Project, readStatus models.ProjectStatus) error {
	filter := bson.M{"_id": p.ID, "status": readStatus}
	res, err := s.db.Collection(collProjects).ReplaceOne(ctx, filter, p)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		count, err := s.db.Collection(collProjects).CountDocuments(ctx, bson.M{"_id": p.ID})
		if err != nil {
			return err
		}
		return replaceMissError(count > 0)
	}
	return nil
}

// replaceMissError classifies a conditional replace that matched nothing:
// either the record is gone, or its status moved under the caller.
func replaceMissError(stillExists bool) error {
	if !stillExists {
		return ErrNotFound
	}
	return ErrConflict
}

// ProjectStats counts projects per workflow status, optionally scoped to a
// district.
func (s *Store) ProjectStats(ctx context.Context, district string) (models.ProjectStats, error) {
	match := bson.M{}
	if district != "" {
		match["created_by_district"] = district
	}

	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: match}},
		bson.D{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$status"},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
	}

	cursor, err := s.db.Collection(collProjects).Aggregate(ctx, pipeline)
	if err != nil {
		return models.ProjectStats{}, err
	}
	defer cursor.Close(ctx)

	var rows []struct {
		Status models.ProjectStatus `bson:"_id"`
		Count  int64                `bson:"count"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return models.ProjectStats{}, err
	}

	var stats models.ProjectStats
	for _, row := range rows {
		stats.Total += row.Count
		switch row.Status {
		case models.StatusPendingState:
			stats.PendingState = row.Count
		case models.StatusPendingAdmin:
			stats.PendingAdmin = row.Count
		case models.StatusApproved:
			stats.Approved = row.Count
		case models.StatusRejected:
			stats.Rejected = row.Count
		case models.StatusInProgress:
			stats.InProgress = row.Count
		case models.StatusCompleted:
			stats.Completed = row.Count
		case models.StatusCancelled:
			stats.Cancelled = row.Count
		}
	}
	return stats, nil
}

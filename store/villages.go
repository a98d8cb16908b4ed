package store

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Selvaprakash-V/SIH2K25/models"
)

type VillageFilter struct {
	State    string
	District string
	Skip     int64
	Limit    int64
}

func (s *Store) ListVillages(ctx context.Context, f VillageFilter) ([]models.Village, error) {
	filter := bson.M{}
	if f.State != "" {
		filter["state"] = f.State
	}
	if f.District != "" {
		filter["district"] = f.District
	}

	limit := f.Limit
	if limit <= 0 || limit > 1000 {
		limit = 100
	}
	opts := options.Find().SetSkip(f.Skip).SetLimit(limit).SetSort(bson.D{{Key: "name", Value: 1}})

	cursor, err := s.db.Collection(collVillages).Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var villages []models.Village
	if err := cursor.All(ctx, &villages); err != nil {
		return nil, err
	}
	return villages, nil
}

func (s *Store) GetVillage(ctx context.Context, id string) (models.Village, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.Village{}, &models.ValidationError{Field: "village_id", Reason: "not a valid id"}
	}

	var v models.Village
	err = s.db.Collection(collVillages).FindOne(ctx, bson.M{"_id": oid}).Decode(&v)
	if err == mongo.ErrNoDocuments {
		return models.Village{}, ErrNotFound
	}
	if err != nil {
		return models.Village{}, err
	}
	return v, nil
}

func (s *Store) CreateVillage(ctx context.Context, v models.Village) (models.Village, error) {
	v.CreatedAt = time.Now().UTC()
	res, err := s.db.Collection(collVillages).InsertOne(ctx, v)
	if err != nil {
		return models.Village{}, err
	}
	v.ID = res.InsertedID.(primitive.ObjectID)
	return v, nil
}

// UpsertVillageRow creates or updates a village keyed by (name, district,
// state) together with its amenity profile. Used by the spreadsheet upload;
// returns the resolved village id and true when a new village was created.
func (s *Store) UpsertVillageRow(ctx context.Context, v models.Village, a models.Amenities) (string, bool, error) {
	now := time.Now().UTC()
	v.UpdatedAt = now

	filter := bson.M{"name": v.Name, "district": v.District, "state": v.State}
	update := bson.M{
		"$set": bson.M{
			"name":       v.Name,
			"district":   v.District,
			"state":      v.State,
			"population": v.Population,
			"sc_ratio":   v.SCRatio,
			"updated_at": now,
		},
		"$setOnInsert": bson.M{"created_at": now},
	}

	res, err := s.db.Collection(collVillages).UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil {
		return "", false, err
	}

	var villageID primitive.ObjectID
	created := res.UpsertedCount > 0
	if created {
		villageID = res.UpsertedID.(primitive.ObjectID)
	} else {
		var existing models.Village
		if err := s.db.Collection(collVillages).FindOne(ctx, filter).Decode(&existing); err != nil {
			return "", false, err
		}
		villageID = existing.ID
	}

	a.VillageID = villageID.Hex()
	if err := s.UpsertAmenities(ctx, a); err != nil {
		return a.VillageID, created, err
	}
	return a.VillageID, created, nil
}

func (s *Store) GetAmenities(ctx context.Context, villageID string) (models.Amenities, error) {
	var a models.Amenities
	err := s.db.Collection(collAmenities).FindOne(ctx, bson.M{"village_id": villageID}).Decode(&a)
	if err == mongo.ErrNoDocuments {
		return models.Amenities{}, ErrNotFound
	}
	if err != nil {
		return models.Amenities{}, err
	}
	return a, nil
}

func (s *Store) UpsertAmenities(ctx context.Context, a models.Amenities) error {
	a = a.Normalized()
	_, err := s.db.Collection(collAmenities).UpdateOne(ctx,
		bson.M{"village_id": a.VillageID},
		bson.M{"$set": a},
		options.Update().SetUpsert(true))
	return err
}

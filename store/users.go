package store

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Selvaprakash-V/SIH2K25/models"
)

// ErrDuplicateEmail reports a signup against an already registered address.
var ErrDuplicateEmail = errors.New("email already registered")

func (s *Store) GetUserByEmail(ctx context.Context, email string) (models.User, error) {
	var u models.User
	err := s.db.Collection(collUsers).FindOne(ctx, bson.M{"email": normalizeEmail(email)}).Decode(&u)
	if err == mongo.ErrNoDocuments {
		return models.User{}, ErrNotFound
	}
	if err != nil {
		return models.User{}, err
	}
	return u, nil
}

func (s *Store) InsertUser(ctx context.Context, u models.User) (models.User, error) {
	u.Email = normalizeEmail(u.Email)

	if _, err := s.GetUserByEmail(ctx, u.Email); err == nil {
		return models.User{}, ErrDuplicateEmail
	} else if err != ErrNotFound {
		return models.User{}, err
	}

	u.CreatedAt = time.Now().UTC()
	res, err := s.db.Collection(collUsers).InsertOne(ctx, u)
	if err != nil {
		return models.User{}, err
	}
	u.ID = res.InsertedID.(primitive.ObjectID)
	return u, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

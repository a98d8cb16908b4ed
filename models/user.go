package models

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string             `bson:"name" json:"name"`
	Email        string             `bson:"email" json:"email"`
	Role         string             `bson:"role" json:"role"`
	State        string             `bson:"state,omitempty" json:"state,omitempty"`
	District     string             `bson:"district,omitempty" json:"district,omitempty"`
	PasswordHash string             `bson:"password_hash" json:"-"`
	CreatedAt    time.Time          `bson:"created_at" json:"created_at"`
}

type UserCreate struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
	State    string `json:"state,omitempty"`
	District string `json:"district,omitempty"`
}

func (uc UserCreate) Validate() error {
	if uc.Name == "" {
		return &ValidationError{Field: "name", Reason: "required"}
	}
	if uc.Email == "" || !strings.Contains(uc.Email, "@") {
		return &ValidationError{Field: "email", Reason: "must be a valid email address"}
	}
	if len(uc.Password) < 6 {
		return &ValidationError{Field: "password", Reason: "must be at least 6 characters"}
	}
	switch uc.Role {
	case "admin", "central", "state", "district", "village":
	case "":
		return &ValidationError{Field: "role", Reason: "required"}
	default:
		return &ValidationError{Field: "role", Reason: "unknown role"}
	}
	return nil
}

type UserLogin struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	User        User   `json:"user"`
}

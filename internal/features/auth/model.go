package auth

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Admin is a local operator account. These never come from Spond.
type Admin struct {
	ID             primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Username       string             `json:"username" bson:"username"`
	Email          string             `json:"email" bson:"email"`
	FullName       string             `json:"full_name,omitempty" bson:"full_name,omitempty"`
	HashedPassword string             `json:"-" bson:"hashed_password"`
	IsActive       bool               `json:"is_active" bson:"is_active"`
	CreatedAt      time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt      time.Time          `json:"updated_at" bson:"updated_at"`
}

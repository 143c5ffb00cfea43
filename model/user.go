package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	ProviderLocal  = "local"
	ProviderGoogle = "google"
)

// User is the credential record. A local account carries a password hash,
// a google account carries the provider subject id instead. The refresh
// token field holds the single currently valid refresh token, empty when
// the user has no active session.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Username     string             `bson:"username" json:"username"`
	Email        string             `bson:"email" json:"email"`
	Password     string             `bson:"password,omitempty" json:"-"`
	Provider     string             `bson:"provider" json:"provider"`
	GoogleID     string             `bson:"google_id,omitempty" json:"-"`
	RefreshToken string             `bson:"refresh_token,omitempty" json:"-"`
	CreatedAt    time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time          `bson:"updated_at" json:"updated_at"`
}

package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Account is a login identity. Profiles reference it only through the
// normalized email, never by id.
type Account struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email        string             `bson:"email" json:"email"`
	PasswordHash *string            `bson:"passwordHash,omitempty" json:"-"`
	AuthProvider string             `bson:"authProvider" json:"authProvider"` // email, google
	GoogleID     *string            `bson:"googleId,omitempty" json:"-"`

	Name   string `bson:"name" json:"name"`
	Avatar string `bson:"avatar" json:"avatar"`

	CreatedAt int64 `bson:"createdAt" json:"createdAt"`
	LastSeen  int64 `bson:"lastSeen" json:"lastSeen"`
}

package models

import "time"

// User is an account owning vehicles, logs and tracked documents.
// Sub is set for accounts created from a federated identity provider.
type User struct {
	ID           string    `bson:"_id" json:"id"`
	Sub          string    `bson:"sub,omitempty" json:"sub,omitempty"`
	Email        string    `bson:"email,omitempty" json:"email"`
	Name         string    `bson:"name" json:"name"`
	PasswordHash string    `bson:"passwordHash,omitempty" json:"-"`
	CreatedAt    time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time `bson:"updatedAt" json:"updatedAt"`
}

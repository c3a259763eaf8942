package models

import "time"

// User is a registered account.
type User struct {
	ID        string    `json:"id"       bson:"_id,omitempty"`
	Username  string    `json:"username" bson:"username"`
	Email     string    `json:"email"    bson:"email"`
	Password  string    `json:"-"        bson:"password"` // bcrypt, never exposed
	CreatedAt time.Time `json:"created"  bson:"createdAt"`
	UpdatedAt time.Time `json:"modified" bson:"updatedAt"`
}

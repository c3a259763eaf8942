package models

import "time"

// Contact is a message submitted through the portfolio contact form.
type Contact struct {
	ID        string    `json:"id"      bson:"_id,omitempty"`
	Name      string    `json:"name"    bson:"name"`
	Email     string    `json:"email"   bson:"email"`
	Message   string    `json:"message" bson:"message"`
	CreatedAt time.Time `json:"created" bson:"createdAt"`
}

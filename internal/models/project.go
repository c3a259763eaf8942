package models

import "time"

// Project is a portfolio showcase entry.
type Project struct {
	ID          string    `json:"id"          bson:"_id,omitempty"`
	Title       string    `json:"title"       bson:"title"`
	Description string    `json:"description" bson:"description"`
	Tech        []string  `json:"tech"        bson:"tech"`
	Link        string    `json:"link"        bson:"link"`
	CreatedAt   time.Time `json:"created"     bson:"createdAt"`
	UpdatedAt   time.Time `json:"modified"    bson:"updatedAt"`
}

package models

import "time"

// Product is a storefront catalog entry.
type Product struct {
	ID          string    `json:"id"          bson:"_id,omitempty"`
	Name        string    `json:"name"        bson:"name"`
	Description string    `json:"description" bson:"description"`
	Price       float64   `json:"price"       bson:"price"`
	Category    string    `json:"category"    bson:"category"`
	ImageURL    string    `json:"image_url"   bson:"imageUrl"`
	Stock       int       `json:"stock"       bson:"stock"`
	CreatedAt   time.Time `json:"created"     bson:"createdAt"`
	UpdatedAt   time.Time `json:"modified"    bson:"updatedAt"`
}

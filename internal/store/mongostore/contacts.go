package mongostore

import (
	"context"
	"time"

	"github.com/stackfolio/core/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type contactStore struct {
	c *mongo.Collection
}

func (s *contactStore) Insert(ctx context.Context, m *models.Contact) error {
	m.ID = primitive.NewObjectID().Hex()
	m.CreatedAt = time.Now().UTC()
	_, err := s.c.InsertOne(ctx, m)
	return mapErr(err)
}

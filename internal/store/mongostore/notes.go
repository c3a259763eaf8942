package mongostore

import (
	"context"
	"time"

	"github.com/stackfolio/core/internal/models"
	"github.com/stackfolio/core/internal/store"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type noteStore struct {
	c *mongo.Collection
}

// noteSort is the fixed list order: pinned first, then most recently updated.
// A single compound sort key so ties inside either group stay stable.
var noteSort = bson.D{{Key: "isPinned", Value: -1}, {Key: "updatedAt", Value: -1}}

// noteQuery translates a NoteFilter into the Mongo find predicate.
// Search delegates tokenization and matching to the title+content text index.
func noteQuery(f store.NoteFilter) bson.M {
	q := bson.M{"user": f.Owner}
	if f.Search != "" {
		q["$text"] = bson.M{"$search": f.Search}
	}
	if f.Tag != "" {
		q["tags"] = f.Tag
	}
	if f.FavoriteOnly {
		q["isFavorite"] = true
	}
	return q
}

func (s *noteStore) Find(ctx context.Context, f store.NoteFilter) ([]models.Note, error) {
	cur, err := s.c.Find(ctx, noteQuery(f), options.Find().SetSort(noteSort))
	if err != nil {
		return nil, err
	}
	notes := []models.Note{}
	if err := cur.All(ctx, &notes); err != nil {
		return nil, err
	}
	return notes, nil
}

func (s *noteStore) FindShared(ctx context.Context, token string) (*models.Note, error) {
	var n models.Note
	err := s.c.FindOne(ctx, bson.M{"shareId": token, "isPublic": true}).Decode(&n)
	if err != nil {
		return nil, mapErr(err)
	}
	return &n, nil
}

func (s *noteStore) Insert(ctx context.Context, n *models.Note) error {
	now := time.Now().UTC()
	n.ID = primitive.NewObjectID().Hex()
	n.CreatedAt = now
	n.UpdatedAt = now
	_, err := s.c.InsertOne(ctx, n)
	return mapErr(err)
}

func (s *noteStore) Update(ctx context.Context, owner, id string, patch store.NotePatch) (*models.Note, error) {
	set := bson.M{"updatedAt": time.Now().UTC()}
	unset := bson.M{}
	if patch.Title != nil {
		set["title"] = *patch.Title
	}
	if patch.Content != nil {
		set["content"] = *patch.Content
	}
	if patch.Tags != nil {
		set["tags"] = *patch.Tags
	}
	if patch.Color != nil {
		set["color"] = *patch.Color
	}
	if patch.IsPinned != nil {
		set["isPinned"] = *patch.IsPinned
	}
	if patch.IsFavorite != nil {
		set["isFavorite"] = *patch.IsFavorite
	}
	if patch.IsPublic != nil {
		set["isPublic"] = *patch.IsPublic
	}
	if patch.SetShareToken {
		if patch.ShareToken != nil {
			set["shareId"] = *patch.ShareToken
		} else {
			// $unset rather than null so the sparse unique index skips the doc.
			unset["shareId"] = ""
		}
	}

	update := bson.M{"$set": set}
	if len(unset) > 0 {
		update["$unset"] = unset
	}

	var n models.Note
	err := s.c.FindOneAndUpdate(ctx,
		bson.M{"_id": id, "user": owner},
		update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&n)
	if err != nil {
		return nil, mapErr(err)
	}
	return &n, nil
}

func (s *noteStore) Delete(ctx context.Context, owner, id string) error {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id, "user": owner})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *noteStore) Count(ctx context.Context, owner string, f store.CountFilter) (int64, error) {
	q := bson.M{"user": owner}
	if f.OnlyPinned {
		q["isPinned"] = true
	}
	if f.OnlyFavorite {
		q["isFavorite"] = true
	}
	return s.c.CountDocuments(ctx, q)
}

func (s *noteStore) DistinctTags(ctx context.Context, owner string) ([]string, error) {
	values, err := s.c.Distinct(ctx, "tags", bson.M{"user": owner})
	if err != nil {
		return nil, err
	}
	tags := make([]string, 0, len(values))
	for _, v := range values {
		if tag, ok := v.(string); ok {
			tags = append(tags, tag)
		}
	}
	return tags, nil
}

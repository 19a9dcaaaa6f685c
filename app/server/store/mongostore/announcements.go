package mongostore

import (
	"announcement-board/app/server/models"
	"announcement-board/app/server/store"
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var _ store.Announcements = (*Announcements)(nil)

type announcementDoc struct {
	ID         primitive.ObjectID `bson:"_id"`
	Title      string             `bson:"title"`
	Content    string             `bson:"content"`
	AuthorID   string             `bson:"author_id"`
	AuthorName string             `bson:"author_name"`
	CreatedAt  time.Time          `bson:"created_at"`
	UpdatedAt  time.Time          `bson:"updated_at"`
}

func (d *announcementDoc) model() models.Announcement {
	return models.Announcement{
		ID:         d.ID.Hex(),
		Title:      d.Title,
		Content:    d.Content,
		AuthorID:   d.AuthorID,
		AuthorName: d.AuthorName,
		CreatedAt:  d.CreatedAt,
		UpdatedAt:  d.UpdatedAt,
	}
}

type Announcements struct {
	coll *mongo.Collection
}

func NewAnnouncements(db *mongo.Database) *Announcements {
	return &Announcements{coll: db.Collection(CollectionAnnouncements)}
}

func (s *Announcements) Create(ctx context.Context, title, content, authorID, authorName string) (*models.Announcement, error) {
	createdAt := now()
	doc := announcementDoc{
		ID:         primitive.NewObjectID(),
		Title:      title,
		Content:    content,
		AuthorID:   authorID,
		AuthorName: authorName,
		CreatedAt:  createdAt,
		UpdatedAt:  createdAt,
	}

	if _, err := s.coll.InsertOne(ctx, &doc); err != nil {
		return nil, fmt.Errorf("create announcement: %w", err)
	}

	announcement := doc.model()
	return &announcement, nil
}

func (s *Announcements) ListAll(ctx context.Context) ([]models.Announcement, error) {
	// ObjectID 在同一进程内单调递增，用于 created_at 相同时的排序
	cursor, err := s.coll.Find(ctx, bson.D{}, options.Find().SetSort(bson.D{
		{Key: "created_at", Value: -1},
		{Key: "_id", Value: -1},
	}))
	if err != nil {
		return nil, fmt.Errorf("list announcements: %w", err)
	}

	var docs []announcementDoc
	if err = cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode announcements: %w", err)
	}

	list := make([]models.Announcement, 0, len(docs))
	for i := range docs {
		list = append(list, docs[i].model())
	}

	return list, nil
}

func (s *Announcements) FindByID(ctx context.Context, id string) (*models.Announcement, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, store.ErrNotFound
	}

	var doc announcementDoc
	if err = s.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("find announcement: %w", err)
	}

	announcement := doc.model()
	return &announcement, nil
}

func (s *Announcements) DeleteByID(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return store.ErrNotFound
	}

	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete announcement: %w", err)
	}
	if res.DeletedCount == 0 {
		return store.ErrNotFound
	}

	return nil
}

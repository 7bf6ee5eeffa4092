package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"campusmind/internal/model"
)

// AnnouncementRepo handles MongoDB operations for announcements
type AnnouncementRepo interface {
	Create(ctx context.Context, a *model.Announcement) error
	ListByCollege(ctx context.Context, collegeID string, limit int64) ([]*model.Announcement, error)
}

type announcementRepo struct {
	collection *mongo.Collection
}

// NewAnnouncementRepo creates a new announcement repository
func NewAnnouncementRepo(db *mongo.Database) AnnouncementRepo {
	return &announcementRepo{
		collection: db.Collection("announcements"),
	}
}

func (r *announcementRepo) Create(ctx context.Context, a *model.Announcement) error {
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now()
	}
	_, err := r.collection.InsertOne(ctx, a)
	return err
}

func (r *announcementRepo) ListByCollege(ctx context.Context, collegeID string, limit int64) ([]*model.Announcement, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(limit)

	cursor, err := r.collection.Find(ctx, bson.M{"collegeId": collegeID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var announcements []*model.Announcement
	if err = cursor.All(ctx, &announcements); err != nil {
		return nil, err
	}
	return announcements, nil
}

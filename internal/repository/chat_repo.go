package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"campusmind/internal/model"
)

// ChatRepo handles MongoDB operations for chat messages
type ChatRepo interface {
	Create(ctx context.Context, msg *model.ChatMessage) error
	ListByStudent(ctx context.Context, studentID, collegeID string, limit int64) ([]*model.ChatMessage, error)
	ListCrisis(ctx context.Context, collegeID string, limit int64) ([]*model.ChatMessage, error)
}

type chatRepo struct {
	collection *mongo.Collection
}

// NewChatRepo creates a new chat message repository
func NewChatRepo(db *mongo.Database) ChatRepo {
	return &chatRepo{
		collection: db.Collection("chat_messages"),
	}
}

func (r *chatRepo) Create(ctx context.Context, msg *model.ChatMessage) error {
	if msg.SentAt.IsZero() {
		msg.SentAt = time.Now()
	}
	_, err := r.collection.InsertOne(ctx, msg)
	return err
}

func (r *chatRepo) ListByStudent(ctx context.Context, studentID, collegeID string, limit int64) ([]*model.ChatMessage, error) {
	filter := bson.M{"studentId": studentID, "collegeId": collegeID}
	return r.list(ctx, filter, limit)
}

func (r *chatRepo) ListCrisis(ctx context.Context, collegeID string, limit int64) ([]*model.ChatMessage, error) {
	filter := bson.M{"collegeId": collegeID, "isCrisis": true}
	return r.list(ctx, filter, limit)
}

func (r *chatRepo) list(ctx context.Context, filter bson.M, limit int64) ([]*model.ChatMessage, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "sentAt", Value: -1}}).
		SetLimit(limit)

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var messages []*model.ChatMessage
	if err = cursor.All(ctx, &messages); err != nil {
		return nil, err
	}
	return messages, nil
}

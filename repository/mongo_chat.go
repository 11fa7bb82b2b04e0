package repository

import (
	"context"

	"NeuroScanAI/models"
	"NeuroScanAI/util"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoChatRepository struct {
	coll *mongo.Collection
}

func NewMongoChatRepository(db *mongo.Database) *MongoChatRepository {
	return &MongoChatRepository{coll: db.Collection(util.ChatCollection)}
}

func (r *MongoChatRepository) Create(ctx context.Context, msg *models.ChatMessage) error {
	if msg.ID == "" {
		msg.ID = NewID()
	}
	_, err := r.coll.InsertOne(ctx, msg)
	return err
}

var oldestFirst = bson.D{{Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}}

func (r *MongoChatRepository) FindThread(ctx context.Context, threadKey string) ([]models.ChatMessage, error) {
	cursor, err := r.coll.Find(ctx, bson.M{"threadKey": threadKey}, options.Find().SetSort(oldestFirst))
	if err != nil {
		return nil, err
	}
	msgs := []models.ChatMessage{}
	if err := cursor.All(ctx, &msgs); err != nil {
		return nil, err
	}
	return msgs, nil
}

package repositories

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	config "github.com/hopebridge/ngo-backend-go/config"
	models "github.com/hopebridge/ngo-backend-go/models"
)

type EventRepo struct {
	col *mongo.Collection
}

func NewEventRepo(cfg *config.Config) *EventRepo {
	return &EventRepo{col: cfg.MongoClient.Database(cfg.DBName).Collection("events")}
}

func (r *EventRepo) FindByTitle(ctx context.Context, title string) (*models.Event, error) {
	var ev models.Event
	if err := r.col.FindOne(ctx, bson.M{"title": title}).Decode(&ev); err != nil {
		return nil, err
	}
	return &ev, nil
}

func (r *EventRepo) IncrementCollected(ctx context.Context, id primitive.ObjectID, amount float64) error {
	_, err := r.col.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{
			"$inc": bson.M{"collected_amount": amount},
			"$set": bson.M{"updated_at": time.Now()},
		},
	)
	return err
}

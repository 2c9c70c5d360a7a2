package repositories

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	config "github.com/hopebridge/ngo-backend-go/config"
	models "github.com/hopebridge/ngo-backend-go/models"
)

type DonationRepo struct {
	col *mongo.Collection
}

func NewDonationRepo(cfg *config.Config) *DonationRepo {
	return &DonationRepo{col: cfg.MongoClient.Database(cfg.DBName).Collection("donations")}
}

func (r *DonationRepo) Get(ctx context.Context, id primitive.ObjectID) (*models.Donation, error) {
	var d models.Donation
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&d); err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *DonationRepo) Insert(ctx context.Context, d *models.Donation) error {
	_, err := r.col.InsertOne(ctx, d)
	return err
}

// SetReviewed performs the conditional Pending -> status flip. The filter on
// the current status is what makes approval single-shot.
func (r *DonationRepo) SetReviewed(ctx context.Context, id primitive.ObjectID, status models.DonationStatus) (bool, error) {
	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": id, "status": models.DonationPending},
		bson.M{"$set": bson.M{"status": status, "updated_at": time.Now()}},
	)
	if err != nil {
		return false, err
	}
	return res.ModifiedCount == 1, nil
}

// List returns donations newest first, optionally only the pending ones.
func (r *DonationRepo) List(ctx context.Context, onlyPending bool) ([]models.Donation, error) {
	filter := bson.M{}
	if onlyPending {
		filter["status"] = models.DonationPending
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}

	var donations []models.Donation
	if err := cursor.All(ctx, &donations); err != nil {
		return nil, err
	}
	return donations, nil
}

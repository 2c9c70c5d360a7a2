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

type CaseRepo struct {
	col *mongo.Collection
}

func NewCaseRepo(cfg *config.Config) *CaseRepo {
	return &CaseRepo{col: cfg.MongoClient.Database(cfg.DBName).Collection("cases")}
}

func (r *CaseRepo) Get(ctx context.Context, id primitive.ObjectID) (*models.Case, error) {
	var c models.Case
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&c); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CaseRepo) FindByTitle(ctx context.Context, title string) (*models.Case, error) {
	var c models.Case
	if err := r.col.FindOne(ctx, bson.M{"title": title}).Decode(&c); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CaseRepo) FindByCaseNo(ctx context.Context, caseNo string) (*models.Case, error) {
	var c models.Case
	if err := r.col.FindOne(ctx, bson.M{"case_no": caseNo}).Decode(&c); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CaseRepo) Insert(ctx context.Context, c *models.Case) error {
	_, err := r.col.InsertOne(ctx, c)
	return err
}

// IncrementCollected applies the allocation as a single atomic $inc, never a
// read-modify-write. A vanished target makes this a no-op.
func (r *CaseRepo) IncrementCollected(ctx context.Context, id primitive.ObjectID, amount float64) error {
	_, err := r.col.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{
			"$inc": bson.M{"amount_collected": amount},
			"$set": bson.M{"updated_at": time.Now()},
		},
	)
	return err
}

func (r *CaseRepo) UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.CaseStatus, amountCollected, finalAmount *float64) error {
	update := bson.M{"status": status, "updated_at": time.Now()}
	if amountCollected != nil {
		update["amount_collected"] = *amountCollected
	}
	if finalAmount != nil {
		update["final_amount"] = *finalAmount
	}

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": update})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

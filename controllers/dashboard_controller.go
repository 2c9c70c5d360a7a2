package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"

	config "github.com/hopebridge/ngo-backend-go/config"
	models "github.com/hopebridge/ngo-backend-go/models"
	services "github.com/hopebridge/ngo-backend-go/services"
)

// DashboardStats aggregates the headline numbers for the admin dashboard:
// per-collection totals, verified donation sum, and month-over-month
// donation growth.
func DashboardStats(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		db := cfg.MongoClient.Database(cfg.DBName)
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		counts := gin.H{}
		for _, name := range []string{"donations", "cases", "events", "programs", "volunteers", "contacts"} {
			n, err := db.Collection(name).CountDocuments(ctx, bson.M{})
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "could not compute stats"})
				return
			}
			counts[name] = n
		}

		// --- Sum of verified donation amounts ---
		cursor, err := db.Collection("donations").Aggregate(ctx, []bson.M{
			{"$match": bson.M{"status": models.DonationVerified}},
			{"$group": bson.M{"_id": nil, "total": bson.M{"$sum": "$amount"}}},
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not compute stats"})
			return
		}
		var sums []struct {
			Total float64 `bson:"total"`
		}
		if err := cursor.All(ctx, &sums); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not compute stats"})
			return
		}
		var totalVerified float64
		if len(sums) > 0 {
			totalVerified = sums[0].Total
		}

		// --- Month-over-month donation growth ---
		prevStart, curStart, nextStart := services.MonthWindows(time.Now())
		cur, err := db.Collection("donations").CountDocuments(ctx, bson.M{
			"created_at": bson.M{"$gte": curStart, "$lt": nextStart},
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not compute stats"})
			return
		}
		prev, err := db.Collection("donations").CountDocuments(ctx, bson.M{
			"created_at": bson.M{"$gte": prevStart, "$lt": curStart},
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not compute stats"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"counts":                  counts,
			"total_verified_amount":   totalVerified,
			"donations_this_month":    cur,
			"donations_last_month":    prev,
			"donation_growth_percent": services.GrowthPercent(float64(cur), float64(prev)),
		})
	}
}

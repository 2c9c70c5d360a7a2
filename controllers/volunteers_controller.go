package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	config "github.com/hopebridge/ngo-backend-go/config"
	models "github.com/hopebridge/ngo-backend-go/models"
)

// ---------------- APPLY ----------------
// Public volunteer application form.
func ApplyVolunteer(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			FullName      string `json:"full_name" binding:"required"`
			Email         string `json:"email" binding:"required,email"`
			ContactNumber string `json:"contact_number" binding:"required"`
			City          string `json:"city"`
			Interest      string `json:"interest"`
		}

		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		now := time.Now()
		volunteer := models.Volunteer{
			ID:            primitive.NewObjectID(),
			FullName:      input.FullName,
			Email:         input.Email,
			ContactNumber: input.ContactNumber,
			City:          input.City,
			Interest:      input.Interest,
			Status:        models.VolunteerPending,
			CreatedAt:     now,
			UpdatedAt:     now,
		}

		col := cfg.MongoClient.Database(cfg.DBName).Collection("volunteers")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if _, err := col.InsertOne(ctx, volunteer); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not submit application"})
			return
		}

		c.JSON(http.StatusCreated, gin.H{"id": volunteer.ID.Hex(), "message": "application submitted"})
	}
}

// ---------------- LIST ----------------
func ListVolunteers(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		col := cfg.MongoClient.Database(cfg.DBName).Collection("volunteers")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		filter := bson.M{}
		if status := c.Query("status"); status != "" {
			filter["status"] = status
		}

		opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
		cursor, err := col.Find(ctx, filter, opts)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch volunteers"})
			return
		}

		var volunteers []models.Volunteer
		if err := cursor.All(ctx, &volunteers); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not decode volunteers"})
			return
		}

		if volunteers == nil {
			volunteers = []models.Volunteer{}
		}
		c.JSON(http.StatusOK, volunteers)
	}
}

// ---------------- STATUS ----------------
func UpdateVolunteerStatus(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		oid, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid volunteer id"})
			return
		}

		var input struct {
			Status models.VolunteerStatus `json:"status" binding:"required"`
		}

		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		if !models.ValidVolunteerStatus(input.Status) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "status must be Pending, Approved or Rejected"})
			return
		}

		col := cfg.MongoClient.Database(cfg.DBName).Collection("volunteers")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		res, err := col.UpdateOne(ctx,
			bson.M{"_id": oid},
			bson.M{"$set": bson.M{"status": input.Status, "updated_at": time.Now()}},
		)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update volunteer"})
			return
		}
		if res.MatchedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "volunteer not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "volunteer status updated", "id": oid.Hex()})
	}
}

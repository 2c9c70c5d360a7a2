package controllers

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	config "github.com/hopebridge/ngo-backend-go/config"
	models "github.com/hopebridge/ngo-backend-go/models"
	utils "github.com/hopebridge/ngo-backend-go/utils"
)

// ---------------- CREATE ----------------
func CreateContactMessage(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			Name    string `json:"name" binding:"required"`
			Email   string `json:"email" binding:"required,email"`
			Subject string `json:"subject"`
			Message string `json:"message" binding:"required"`
		}

		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		msg := models.ContactMessage{
			ID:        primitive.NewObjectID(),
			Name:      input.Name,
			Email:     input.Email,
			Subject:   input.Subject,
			Message:   input.Message,
			CreatedAt: time.Now(),
		}

		col := cfg.MongoClient.Database(cfg.DBName).Collection("contacts")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if _, err := col.InsertOne(ctx, msg); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not save message"})
			return
		}

		// office notification is best-effort
		if err := utils.NotifyContactMessage(msg.Name, msg.Email, msg.Subject, msg.Message); err != nil {
			log.Printf("contact notification email failed: %v", err)
		}

		c.JSON(http.StatusCreated, gin.H{"id": msg.ID.Hex(), "message": "message received"})
	}
}

// ---------------- LIST ----------------
func ListContactMessages(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		col := cfg.MongoClient.Database(cfg.DBName).Collection("contacts")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
		cursor, err := col.Find(ctx, bson.M{}, opts)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch messages"})
			return
		}

		var messages []models.ContactMessage
		if err := cursor.All(ctx, &messages); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not decode messages"})
			return
		}

		if messages == nil {
			messages = []models.ContactMessage{}
		}
		c.JSON(http.StatusOK, messages)
	}
}

// ---------------- MARK READ ----------------
func MarkContactMessageRead(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		oid, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid message id"})
			return
		}

		col := cfg.MongoClient.Database(cfg.DBName).Collection("contacts")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		res, err := col.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{"read": true}})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update message"})
			return
		}
		if res.MatchedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "message not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "marked read", "id": oid.Hex()})
	}
}

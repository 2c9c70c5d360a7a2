package controllers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	config "github.com/hopebridge/ngo-backend-go/config"
	models "github.com/hopebridge/ngo-backend-go/models"
	repositories "github.com/hopebridge/ngo-backend-go/repositories"
	services "github.com/hopebridge/ngo-backend-go/services"
	utils "github.com/hopebridge/ngo-backend-go/utils"
)

// ---------------- CREATE ----------------
func CreateCase(cfg *config.Config) gin.HandlerFunc {
	svc := services.NewCaseService(repositories.NewCaseRepo(cfg))

	return func(c *gin.Context) {
		var input struct {
			CaseNo         string  `form:"case_no" binding:"required"`
			Title          string  `form:"title" binding:"required"`
			Description    string  `form:"description"`
			Category       string  `form:"category" binding:"required"`
			AmountRequired float64 `form:"amount_required"`
		}

		if err := c.ShouldBind(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		if input.AmountRequired < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "amount_required cannot be negative"})
			return
		}

		// --- Handle image upload ---
		var imageURL string
		if fileHeader, err := c.FormFile("image"); err == nil {
			file, err := fileHeader.Open()
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to open file"})
				return
			}
			imageURL, err = utils.UploadToCloudinary(file, utils.FolderCases)
			file.Close()
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{
					"error":   "image upload failed",
					"details": err.Error(),
				})
				return
			}
		}

		caseDoc := models.Case{
			CaseNo:         input.CaseNo,
			Title:          input.Title,
			Description:    input.Description,
			Category:       input.Category,
			AmountRequired: input.AmountRequired,
			Image:          imageURL,
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		err := svc.Create(ctx, &caseDoc)
		switch {
		case errors.Is(err, services.ErrInvalidCategory):
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown case category"})
		case errors.Is(err, services.ErrDuplicateCaseNo):
			c.JSON(http.StatusConflict, gin.H{"error": "case number already in use"})
		case err != nil:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create case"})
		default:
			c.JSON(http.StatusCreated, caseDoc)
		}
	}
}

// ---------------- LIST ----------------
func ListCases(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		col := cfg.MongoClient.Database(cfg.DBName).Collection("cases")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		// --- Build filter ---
		filter := bson.M{}
		if status := c.Query("status"); status != "" {
			filter["status"] = status
		}
		if category := c.Query("category"); category != "" {
			filter["category"] = category
		}

		cursor, err := col.Find(ctx, filter)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch cases"})
			return
		}

		var cases []models.Case
		if err := cursor.All(ctx, &cases); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not decode cases"})
			return
		}

		if len(cases) == 0 {
			c.JSON(http.StatusOK, []models.Case{})
			return
		}

		// --- Pick the most recently updated case ---
		latest := cases[0]
		for _, cs := range cases {
			if cs.UpdatedAt.After(latest.UpdatedAt) {
				latest = cs
			}
		}

		etag := utils.GenerateETag(latest.ID, latest.UpdatedAt)
		if match := c.GetHeader("If-None-Match"); match != "" && match == etag {
			c.Status(http.StatusNotModified)
			return
		}
		c.Header("ETag", etag)
		c.Header("Last-Modified", latest.UpdatedAt.UTC().Format(http.TimeFormat))

		c.JSON(http.StatusOK, cases)
	}
}

// ---------------- GET ----------------
func GetCase(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		oid, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid case id"})
			return
		}

		var caseDoc models.Case
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		err = cfg.MongoClient.Database(cfg.DBName).
			Collection("cases").
			FindOne(ctx, bson.M{"_id": oid}).
			Decode(&caseDoc)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "case not found"})
			return
		}

		etag := utils.GenerateETag(caseDoc.ID, caseDoc.UpdatedAt)
		if match := c.GetHeader("If-None-Match"); match != "" && match == etag {
			c.Status(http.StatusNotModified)
			return
		}
		c.Header("ETag", etag)

		c.JSON(http.StatusOK, caseDoc)
	}
}

// ---------------- UPDATE ----------------
func UpdateCase(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		oid, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid case id"})
			return
		}

		var input struct {
			Title          string  `form:"title"`
			Description    string  `form:"description"`
			Category       string  `form:"category"`
			AmountRequired float64 `form:"amount_required"`
		}

		if err := c.ShouldBind(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		update := bson.M{"updated_at": time.Now()}
		if input.Title != "" {
			update["title"] = input.Title
		}
		if input.Description != "" {
			update["description"] = input.Description
		}
		if input.Category != "" {
			if !models.ValidCaseCategory(input.Category) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "unknown case category"})
				return
			}
			update["category"] = input.Category
		}
		if input.AmountRequired > 0 {
			update["amount_required"] = input.AmountRequired
		}

		// --- Handle replacement image ---
		if fileHeader, err := c.FormFile("image"); err == nil {
			file, err := fileHeader.Open()
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to open image"})
				return
			}
			url, err := utils.UploadToCloudinary(file, utils.FolderCases)
			file.Close()
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "image upload failed", "details": err.Error()})
				return
			}
			update["image"] = url
		}

		if len(update) == 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "no fields to update"})
			return
		}

		col := cfg.MongoClient.Database(cfg.DBName).Collection("cases")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		res, err := col.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": update})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update case"})
			return
		}
		if res.MatchedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "case not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "case updated", "id": oid.Hex()})
	}
}

// ---------------- DELETE ----------------
func DeleteCase(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		oid, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid case id"})
			return
		}

		col := cfg.MongoClient.Database(cfg.DBName).Collection("cases")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		var existing models.Case
		if err := col.FindOne(ctx, bson.M{"_id": oid}).Decode(&existing); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "case not found"})
			return
		}

		res, err := col.DeleteOne(ctx, bson.M{"_id": oid})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete case"})
			return
		}
		if res.DeletedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "case not found"})
			return
		}

		// image cleanup is best-effort; the record delete already happened
		if existing.Image != "" {
			if err := utils.DeleteFromCloudinary(existing.Image); err != nil {
				log.Printf("case image cleanup failed: %v", err)
			}
		}

		c.JSON(http.StatusOK, gin.H{"message": "case deleted", "id": oid.Hex()})
	}
}

// ---------------- STATUS ----------------
func UpdateCaseStatus(cfg *config.Config) gin.HandlerFunc {
	svc := services.NewCaseService(repositories.NewCaseRepo(cfg))

	return func(c *gin.Context) {
		oid, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid case id"})
			return
		}

		var input struct {
			Status      models.CaseStatus `json:"status" binding:"required"`
			FinalAmount *float64          `json:"final_amount"`
		}

		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		caseDoc, err := svc.Transition(ctx, oid, input.Status, input.FinalAmount)
		switch {
		case errors.Is(err, services.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "case not found"})
		case errors.Is(err, services.ErrInvalidTransition):
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status transition"})
		case err != nil:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not update case status"})
		default:
			c.JSON(http.StatusOK, gin.H{
				"message": "case status updated",
				"case":    caseDoc,
			})
		}
	}
}

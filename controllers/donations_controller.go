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

func donationService(cfg *config.Config) *services.DonationService {
	return services.NewDonationService(
		repositories.NewDonationRepo(cfg),
		repositories.NewCaseRepo(cfg),
		repositories.NewEventRepo(cfg),
	)
}

// ---------------- CREATE ----------------
func CreateDonation(cfg *config.Config) gin.HandlerFunc {
	svc := donationService(cfg)

	return func(c *gin.Context) {
		var input struct {
			FullName      string  `form:"full_name" binding:"required"`
			Email         string  `form:"email" binding:"required,email"`
			ContactNumber string  `form:"contact_number" binding:"required"`
			Cause         string  `form:"cause" binding:"required"`
			Purpose       string  `form:"purpose" binding:"required"`
			PaymentMethod string  `form:"payment_method" binding:"required"`
			Amount        float64 `form:"amount"`
		}

		if err := c.ShouldBind(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		if !models.ValidDonationPurpose(input.Purpose) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "purpose must be Sadqah, Zakat or Simple Donation"})
			return
		}

		// validate donation amount
		if input.Amount <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "amount must be greater than 0"})
			return
		}

		// --- Handle receipt upload ---
		var receiptURL string
		if fileHeader, err := c.FormFile("payment_proof"); err == nil {
			file, err := fileHeader.Open()
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to open file"})
				return
			}
			receiptURL, err = utils.UploadToCloudinary(file, utils.FolderReceipts)
			file.Close()
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{
					"error":   "receipt upload failed",
					"details": err.Error(),
				})
				return
			}
		}

		donation := models.Donation{
			FullName:      input.FullName,
			Email:         input.Email,
			ContactNumber: input.ContactNumber,
			Cause:         input.Cause,
			Purpose:       input.Purpose,
			PaymentMethod: input.PaymentMethod,
			Amount:        input.Amount,
			PaymentProof:  receiptURL,
		}

		// link to the donor's account when they are signed in
		if uid := c.GetString("user_id"); uid != "" {
			if userID, err := primitive.ObjectIDFromHex(uid); err == nil {
				donation.UserID = &userID
			}
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := svc.Submit(ctx, &donation); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create donation"})
			return
		}

		// acknowledgement is best-effort
		if err := utils.SendDonationAck(donation.Email, donation.FullName, donation.Cause, donation.Amount); err != nil {
			log.Printf("donation ack email failed: %v", err)
		}

		c.JSON(http.StatusCreated, gin.H{
			"id":      donation.ID.Hex(),
			"message": "donation submitted",
		})
	}
}

// ---------------- LIST ----------------
func ListDonations(cfg *config.Config) gin.HandlerFunc {
	repo := repositories.NewDonationRepo(cfg)

	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		donations, err := repo.List(ctx, false)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch donations"})
			return
		}

		if len(donations) == 0 {
			c.JSON(http.StatusOK, []models.Donation{})
			return
		}

		// --- Pick the most recently updated donation ---
		latest := donations[0]
		for _, d := range donations {
			if d.UpdatedAt.After(latest.UpdatedAt) {
				latest = d
			}
		}

		etag := utils.GenerateETag(latest.ID, latest.UpdatedAt)
		if match := c.GetHeader("If-None-Match"); match != "" && match == etag {
			c.Status(http.StatusNotModified)
			return
		}
		c.Header("ETag", etag)
		c.Header("Last-Modified", latest.UpdatedAt.UTC().Format(http.TimeFormat))

		c.JSON(http.StatusOK, donations)
	}
}

// ---------------- LIST PENDING ----------------
func ListUnapprovedDonations(cfg *config.Config) gin.HandlerFunc {
	repo := repositories.NewDonationRepo(cfg)

	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		donations, err := repo.List(ctx, true)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch donations"})
			return
		}

		if donations == nil {
			donations = []models.Donation{}
		}
		c.JSON(http.StatusOK, donations)
	}
}

// ---------------- GET ----------------
func GetDonation(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		oid, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid donation id"})
			return
		}

		var donation models.Donation
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		err = cfg.MongoClient.Database(cfg.DBName).
			Collection("donations").
			FindOne(ctx, bson.M{"_id": oid}).
			Decode(&donation)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "donation not found"})
			return
		}

		etag := utils.GenerateETag(donation.ID, donation.UpdatedAt)
		if match := c.GetHeader("If-None-Match"); match != "" && match == etag {
			c.Status(http.StatusNotModified)
			return
		}
		c.Header("ETag", etag)

		c.JSON(http.StatusOK, donation)
	}
}

// ---------------- APPROVE ----------------
func ApproveDonation(cfg *config.Config) gin.HandlerFunc {
	svc := donationService(cfg)

	return func(c *gin.Context) {
		oid, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid donation id"})
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		donation, err := svc.Approve(ctx, oid)
		switch {
		case errors.Is(err, services.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "donation not found"})
		case errors.Is(err, services.ErrAlreadyReviewed):
			c.JSON(http.StatusConflict, gin.H{"error": "donation already reviewed"})
		case err != nil:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not approve donation"})
		default:
			c.JSON(http.StatusOK, gin.H{
				"message":  "donation verified",
				"donation": donation,
			})
		}
	}
}

// ---------------- REJECT ----------------
func RejectDonation(cfg *config.Config) gin.HandlerFunc {
	svc := donationService(cfg)

	return func(c *gin.Context) {
		oid, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid donation id"})
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		donation, err := svc.Reject(ctx, oid)
		switch {
		case errors.Is(err, services.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "donation not found"})
		case errors.Is(err, services.ErrAlreadyReviewed):
			c.JSON(http.StatusConflict, gin.H{"error": "donation already reviewed"})
		case err != nil:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not reject donation"})
		default:
			c.JSON(http.StatusOK, gin.H{
				"message":  "donation rejected",
				"donation": donation,
			})
		}
	}
}

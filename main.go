package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/crypto/bcrypt"

	config "github.com/hopebridge/ngo-backend-go/config"
	models "github.com/hopebridge/ngo-backend-go/models"
	routes "github.com/hopebridge/ngo-backend-go/routes"
)

// seedAdmin upserts the back-office account from ADMIN_EMAIL/ADMIN_PASSWORD
// so a fresh deployment has someone who can sign in.
func seedAdmin(ctx context.Context, cfg *config.Config) error {
	email := os.Getenv("ADMIN_EMAIL")
	password := os.Getenv("ADMIN_PASSWORD")
	if email == "" || password == "" {
		return nil
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	now := time.Now()
	col := cfg.MongoClient.Database(cfg.DBName).Collection("users")
	_, err = col.UpdateOne(ctx,
		bson.M{"email": email},
		bson.M{
			"$set": bson.M{
				"password":   string(hashed),
				"role":       models.RoleAdmin,
				"updated_at": now,
			},
			"$setOnInsert": bson.M{
				"_id":        primitive.NewObjectID(),
				"name":       "Administrator",
				"created_at": now,
			},
		},
		options.Update().SetUpsert(true),
	)
	return err
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := cfg.EnsureIndexes(ctx); err != nil {
		log.Fatalf("indexes: %v", err)
	}
	if err := seedAdmin(ctx, cfg); err != nil {
		log.Fatalf("admin seed: %v", err)
	}

	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "If-None-Match"},
		ExposeHeaders:    []string{"ETag", "Last-Modified"},
		MaxAge:           12 * time.Hour,
		AllowCredentials: false,
	}))

	routes.SetupRoutes(r, cfg)

	if err := r.Run(":" + cfg.ServerPort); err != nil {
		log.Fatalf("server: %v", err)
	}
}

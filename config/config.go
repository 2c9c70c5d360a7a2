package config

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Config struct {
	MongoClient *mongo.Client
	DBName      string
	JWTSecret   string
	ServerPort  string
}

// Load reads the environment (via .env when present) and connects to MongoDB.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := &Config{
		DBName:     getEnv("DB_NAME", "ngo"),
		JWTSecret:  getEnv("JWT_SECRET", "defaultsecret"),
		ServerPort: getEnv("SERVER_PORT", "8080"),
	}

	uri := getEnv("MONGO_URI", "mongodb://localhost:27017")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, err
	}
	cfg.MongoClient = client

	return cfg, nil
}

// EnsureIndexes creates the indexes the API relies on. caseNo uniqueness is
// enforced here rather than in application code alone.
func (cfg *Config) EnsureIndexes(ctx context.Context) error {
	cases := cfg.MongoClient.Database(cfg.DBName).Collection("cases")
	_, err := cases.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "case_no", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return err
	}

	users := cfg.MongoClient.Database(cfg.DBName).Collection("users")
	_, err = users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

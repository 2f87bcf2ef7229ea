package config

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

type Config struct {
	Port                    string
	Env                     string
	MongoURI                string
	MongoDB                 string
	JWTSecret               string
	FirebaseCredentialsPath string
	FirebaseStorageBucket   string
}

func Load() *Config {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		logrus.Info("No .env file found, assuming environment variables are set.")
	}

	return &Config{
		Port:                    getEnv("PORT", "5000"),
		Env:                     getEnv("ENV", "development"),
		MongoURI:                getEnv("MONGO_URI", ""),
		MongoDB:                 getEnv("MONGO_DB", "blogspace"),
		JWTSecret:               getEnv("JWT_SECRET", "supersecretjwtkey"),
		FirebaseCredentialsPath: getEnv("FIREBASE_CREDENTIALS_PATH", "./firebase_credentials.json"),
		FirebaseStorageBucket:   getEnv("FIREBASE_STORAGE_BUCKET", ""),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

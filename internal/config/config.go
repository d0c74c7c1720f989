package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	JWTSecret   string
	MongoURI    string
	DBName      string
	SkipAuth    bool
	Environment string
	AppId       string

	// Spond API credentials
	SpondAPIURL   string
	SpondUsername string
	SpondPassword string

	// Forward-sync schedule, per entity kind
	SyncEventsEnabled   bool
	SyncEventsInterval  int  // minutes
	SyncEventsMax       int  // max events fetched per run
	SyncGroupsEnabled   bool
	SyncGroupsInterval  int
	SyncMembersEnabled  bool
	SyncMembersInterval int
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	} else {
		log.Println("Loaded .env file successfully")
	}

	return &Config{
		Port:        getEnv("PORT", "8080"),
		JWTSecret:   getEnv("JWT_SECRET", "secret"),
		MongoURI:    getEnv("MONGO_URI", "mongodb://localhost:27017"),
		DBName:      getEnv("DB_NAME", "club-sync"),
		SkipAuth:    getEnv("SKIP_AUTH", "false") == "true",
		Environment: getEnv("ENVIRONMENT", "development"),
		AppId:       getEnv("APP_ID", "club-sync"),

		SpondAPIURL:   getEnv("SPOND_API_URL", "https://api.spond.com/core/v1/"),
		SpondUsername: getEnv("SPOND_USERNAME", ""),
		SpondPassword: getEnv("SPOND_PASSWORD", ""),

		SyncEventsEnabled:   getEnv("SYNC_EVENTS_ENABLED", "true") == "true",
		SyncEventsInterval:  getEnvInt("SYNC_EVENTS_INTERVAL_MINUTES", 30),
		SyncEventsMax:       getEnvInt("SYNC_EVENTS_MAX_EVENTS", 500),
		SyncGroupsEnabled:   getEnv("SYNC_GROUPS_ENABLED", "true") == "true",
		SyncGroupsInterval:  getEnvInt("SYNC_GROUPS_INTERVAL_MINUTES", 60),
		SyncMembersEnabled:  getEnv("SYNC_MEMBERS_ENABLED", "true") == "true",
		SyncMembersInterval: getEnvInt("SYNC_MEMBERS_INTERVAL_MINUTES", 60),
	}, nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
		log.Printf("Invalid integer for %s, using default %d", key, fallback)
	}
	return fallback
}

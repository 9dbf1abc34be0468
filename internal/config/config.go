package config

import (
	"os"
	"strconv"
)

// Config holds all runtime configuration, read from environment variables.
type Config struct {
	Port        string // HTTP listen port
	MongoURI    string // MongoDB connection URI
	DBName      string // MongoDB database name
	RedisAddr   string // Redis host:port, used for sessions and the job queue
	RedisDB     int    // Redis logical database number
	FolderPath  string // Root directory for blob storage
	Concurrency int    // Worker concurrency for the thumbnail queue
}

// Load reads configuration from the environment, falling back to defaults
// suitable for local development.
func Load() (*Config, error) {
	redisDB, err := getenvInt("REDIS_DB", 0)
	if err != nil {
		return nil, err
	}
	concurrency, err := getenvInt("WORKER_CONCURRENCY", 1)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Port:        getenvStr("PORT", "5000"),
		MongoURI:    getenvStr("MONGO_URI", "mongodb://localhost:27017"),
		DBName:      getenvStr("DB_NAME", "files_manager"),
		RedisAddr:   getenvStr("REDIS_ADDR", "localhost:6379"),
		RedisDB:     redisDB,
		FolderPath:  getenvStr("FOLDER_PATH", "/tmp/files_manager"),
		Concurrency: concurrency,
	}
	return cfg, nil
}

// getenvStr retrieves a string environment variable or returns a default.
func getenvStr(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

// getenvInt retrieves an integer environment variable or returns a default.
func getenvInt(key string, fallback int) (int, error) {
	if value, ok := os.LookupEnv(key); ok {
		i, err := strconv.Atoi(value)
		if err != nil {
			return 0, err
		}
		return i, nil
	}
	return fallback, nil
}

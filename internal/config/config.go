package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	// Server
	Env                string
	Port               string
	CORSAllowedOrigins []string

	// Database
	DBHost         string
	DBPort         string
	DBUser         string
	DBPassword     string
	DBName         string
	DBSSLMode      string
	DBSchema       string
	AutoMigrate    bool
	MigrationsPath string

	// JWT
	JWTSecret string
	JWTIssuer string

	// Object storage
	StorageDriver     string
	S3Bucket          string
	S3Region          string
	S3Endpoint        string
	S3AccessKeyID     string
	S3SecretAccessKey string
	S3UsePathStyle    bool
	FileURLTTL        time.Duration
}

var appConfig *Config

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if not already loaded
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	config := &Config{
		// Server
		Env:                getEnv("ENV", "development"),
		Port:               getEnv("PORT", "8080"),
		CORSAllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "*")),

		// Database
		DBHost:         getEnv("DB_HOST", "localhost"),
		DBPort:         getEnv("DB_PORT", "5432"),
		DBUser:         getEnv("DB_USER", "backoffice"),
		DBPassword:     getEnv("DB_PASSWORD", "backoffice"),
		DBName:         getEnv("DB_NAME", "backoffice"),
		DBSSLMode:      getEnv("DB_SSLMODE", "disable"),
		DBSchema:       getEnv("DB_SCHEMA", "backoffice"),
		AutoMigrate:    getBool("AUTO_MIGRATE", true),
		MigrationsPath: getEnv("MIGRATIONS_PATH", "file://migrations"),

		// JWT
		JWTSecret: getEnv("JWT_SECRET", "fallback-secret-key-for-dev-only"),
		JWTIssuer: getEnv("JWT_ISSUER", ""),

		// Object storage
		StorageDriver:     getEnv("STORAGE_DRIVER", "s3"),
		S3Bucket:          getEnv("S3_BUCKET", "backoffice-files"),
		S3Region:          getEnv("S3_REGION", "us-east-1"),
		S3Endpoint:        getEnv("S3_ENDPOINT", ""),
		S3AccessKeyID:     getEnv("S3_ACCESS_KEY_ID", ""),
		S3SecretAccessKey: getEnv("S3_SECRET_ACCESS_KEY", ""),
		S3UsePathStyle:    getBool("S3_USE_PATH_STYLE", false),
	}

	ttlStr := getEnv("FILE_URL_TTL", "900s")
	ttl, err := time.ParseDuration(ttlStr)
	if err != nil {
		log.Printf("Warning: invalid FILE_URL_TTL value '%s', falling back to 900s\n", ttlStr)
		ttl = 900 * time.Second
	}
	config.FileURLTTL = ttl

	appConfig = config
	return config, nil
}

// Get returns the application configuration
func Get() *Config {
	if appConfig == nil {
		var err error
		appConfig, err = Load()
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}
	}
	return appConfig
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getBool(key string, defaultValue bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		log.Printf("Warning: invalid %s value '%s', falling back to %v\n", key, v, defaultValue)
		return defaultValue
	}
	return b
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Package config loads process configuration from the environment.
package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Storage driver names accepted in STORAGE_DRIVER.
const (
	DriverMongo    = "mongo"
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
	DriverSQLite   = "sqlite"
)

// Config is the typed view of the environment used by cmd/server and cmd/reprice.
type Config struct {
	Port      string
	AppEnv    string
	LogLevel  string
	LogFormat string

	JWTSecret string
	JWTTTL    time.Duration

	StorageDriver string
	MongoURI      string
	MongoDB       string
	SQLitePath    string
	RunMigrations bool

	CacheTTL time.Duration
	OTPTTL   time.Duration

	CloudinaryURL       string
	CloudinaryCloudName string
	CloudinaryAPIKey    string
	CloudinaryAPISecret string
	CloudinaryFolder    string

	ResendAPIKey string
	MailFrom     string
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string

	VisionScreening bool
	GeminiEnabled   bool
	GeminiModel     string

	StaticDir   string
	CORSOrigins []string

	RepriceRate int
}

// Load reads .env (when present) and then the process environment.
// Variables already set in the process win over the file.
func Load(envPath ...string) *Config {
	if err := godotenv.Load(envPath...); err != nil {
		slog.Debug("no .env file loaded", "error", err)
	}

	return &Config{
		Port:      getEnvAsString("PORT", "5000"),
		AppEnv:    getEnvAsString("APP_ENV", "development"),
		LogLevel:  getEnvAsString("LOG_LEVEL", "info"),
		LogFormat: getEnvAsString("LOG_FORMAT", ""),

		JWTSecret: os.Getenv("JWT_SECRET"),
		JWTTTL:    getEnvAsDuration("JWT_TTL", 30*24*time.Hour),

		StorageDriver: strings.ToLower(getEnvAsString("STORAGE_DRIVER", DriverMongo)),
		MongoURI:      getEnvAsString("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:       getEnvAsString("MONGO_DB", "rentease"),
		SQLitePath:    getEnvAsString("SQLITE_PATH", "rentease.db"),
		RunMigrations: getEnvAsBool("RUN_MIGRATIONS", false),

		CacheTTL: getEnvAsDuration("CACHE_TTL", 5*time.Minute),
		OTPTTL:   getEnvAsDuration("OTP_TTL", 5*time.Minute),

		CloudinaryURL:       os.Getenv("CLOUDINARY_URL"),
		CloudinaryCloudName: os.Getenv("CLOUDINARY_CLOUD_NAME"),
		CloudinaryAPIKey:    os.Getenv("CLOUDINARY_API_KEY"),
		CloudinaryAPISecret: os.Getenv("CLOUDINARY_API_SECRET"),
		CloudinaryFolder:    getEnvAsString("CLOUDINARY_FOLDER", "rentease_properties"),

		ResendAPIKey: os.Getenv("RESEND_API_KEY"),
		MailFrom:     getEnvAsString("MAIL_FROM", "RentEase <no-reply@rentease.app>"),
		SMTPHost:     os.Getenv("SMTP_HOST"),
		SMTPPort:     getEnvAsInt("SMTP_PORT", 587),
		SMTPUsername: os.Getenv("SMTP_USERNAME"),
		SMTPPassword: os.Getenv("SMTP_PASSWORD"),

		VisionScreening: getEnvAsBool("VISION_SCREENING", false),
		GeminiEnabled:   getEnvAsBool("GEMINI_ENABLED", false),
		GeminiModel:     getEnvAsString("GEMINI_MODEL", "gemini-2.5-flash"),

		StaticDir:   getEnvAsString("STATIC_DIR", "public"),
		CORSOrigins: getEnvAsList("CORS_ORIGINS", []string{"*"}),

		RepriceRate: getEnvAsInt("REPRICE_RATE_PER_SECOND", 50),
	}
}

// IsProduction reports whether APP_ENV is production.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.AppEnv, "production")
}

// HasCloudinary reports whether enough credentials are set to build a client.
func (c *Config) HasCloudinary() bool {
	if c.CloudinaryURL != "" {
		return true
	}
	return c.CloudinaryCloudName != "" && c.CloudinaryAPIKey != "" && c.CloudinaryAPISecret != ""
}

func getEnvAsString(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	value, err := strconv.Atoi(strings.TrimSpace(valueStr))
	if err != nil {
		slog.Warn("invalid integer in environment, using default", "key", key, "value", valueStr, "default", defaultValue)
		return defaultValue
	}
	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	value, err := strconv.ParseBool(strings.TrimSpace(valueStr))
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr, exists := os.LookupEnv(key)
	if !exists || strings.TrimSpace(valueStr) == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(strings.TrimSpace(valueStr))
	if err != nil || value <= 0 {
		slog.Warn("invalid duration in environment, using default", "key", key, "value", valueStr, "default", defaultValue)
		return defaultValue
	}
	return value
}

func getEnvAsList(key string, defaultValue []string) []string {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(valueStr, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}

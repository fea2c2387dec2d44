package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DriverMySQL  = "mysql"
	DriverSQLite = "sqlite3"
	DriverMongo  = "mongo"
)

type Config struct {
	AppName         string
	AppVersion      string
	AppPort         string
	ShutdownTimeout time.Duration

	DbDriver   string
	DbHost     string
	DbPort     string
	DbUser     string
	DbPassword string
	DbName     string
	DbParams   string
	SQLitePath string

	MongoURI      string
	MongoDatabase string

	JWTSecret    string
	JWTIssuer    string
	JWTExpiresIn time.Duration
	BcryptCost   int

	AuthRateLimitRPS   float64
	AuthRateLimitBurst int

	CORSAllowedOrigins []string
	TrustedProxies     []string
	StaticDir          string
	TranslationFolder  string
}

func LoadConfig() *Config {
	_ = godotenv.Load(".env")

	return &Config{
		AppName:         getEnv("APP_NAME", "taskmanager"),
		AppVersion:      getEnv("APP_VERSION", "dev"),
		AppPort:         getEnv("APP_PORT", "8080"),
		ShutdownTimeout: getEnvAsDuration("SHUTDOWN_TIMEOUT", 15*time.Second),

		DbDriver:   getEnv("DB_DRIVER", DriverMySQL),
		DbHost:     getEnv("MYSQL_HOST", "db"),
		DbPort:     getEnv("MYSQL_PORT", "3306"),
		DbUser:     getEnv("MYSQL_USER", "taskmanager"),
		DbPassword: getEnv("MYSQL_PASSWORD", "taskmanager"),
		DbName:     getEnv("MYSQL_DATABASE", "taskmanager"),
		DbParams:   getEnv("MYSQL_PARAMS", "parseTime=true&clientFoundRows=true"),
		SQLitePath: getEnv("SQLITE_PATH", "data/taskmanager.db"),

		MongoURI:      getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDatabase: getEnv("MONGO_DATABASE", "taskmanager"),

		JWTSecret:    getEnv("JWT_SECRET", "change-me-in-production"),
		JWTIssuer:    getEnv("JWT_ISSUER", "taskmanager"),
		JWTExpiresIn: getEnvAsDuration("JWT_EXPIRES_IN", 7*24*time.Hour),
		BcryptCost:   getEnvAsInt("BCRYPT_COST", 10),

		AuthRateLimitRPS:   getEnvAsFloat("AUTH_RATE_LIMIT_RPS", 1),
		AuthRateLimitBurst: getEnvAsInt("AUTH_RATE_LIMIT_BURST", 10),

		CORSAllowedOrigins: parseList(os.Getenv("CORS_ALLOWED_ORIGINS")),
		TrustedProxies:     parseList(os.Getenv("TRUSTED_PROXIES")),
		StaticDir:          getEnv("STATIC_DIR", ""),
		TranslationFolder:  getEnv("TRANSLATION_FOLDER", "pkg/translator/translation"),
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func getEnvAsFloat(key string, fallback float64) float64 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			return parsed
		}
	}
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return fallback
}

// parseList splits a comma separated value, dropping blanks.
func parseList(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}

	parts := strings.Split(value, ",")
	items := make([]string, 0, len(parts))
	for _, part := range parts {
		item := strings.TrimSpace(part)
		if item == "" {
			continue
		}
		items = append(items, item)
	}

	if len(items) == 0 {
		return nil
	}

	return items
}

package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

var (
	Port        string
	Environment string
	Domain      string

	MongoURI  string
	MongoName string

	JWTSecret string

	RedisAddress     string
	RedisPassword    string
	ReportLimitQueue string
	ReportsPerDay    int

	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioBucket    string
	MinioUseSSL    bool
	MinioPublicURL string

	NominatimBaseURL string

	CORSOrigins []string
)

// LoadConfig reads .env (if present) and populates the package globals.
func LoadConfig() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	Port = getEnv("PORT", "8080")
	Environment = getEnv("GO_ENV", "development")
	Domain = getEnv("DOMAIN", "")

	MongoURI = getEnv("MONGODB_URI", "")
	MongoName = getEnv("MONGODB_NAME", "communitypulse")

	JWTSecret = getEnv("JWT_SECRET", "")

	RedisAddress = getEnv("REDIS_ADDRESS", "localhost:6379")
	RedisPassword = getEnv("REDIS_PASSWORD", "")
	ReportLimitQueue = getEnv("REDIS_QUEUE_FOR_REPORT_LIMIT", "report_limit")
	ReportsPerDay = getEnvInt("REPORTS_PER_DAY", 5)

	MinioEndpoint = getEnv("MINIO_ENDPOINT", "localhost:9000")
	MinioAccessKey = getEnv("MINIO_ACCESS_KEY", "minioadmin")
	MinioSecretKey = getEnv("MINIO_SECRET_KEY", "minioadmin")
	MinioBucket = getEnv("MINIO_BUCKET", "report-photos")
	MinioUseSSL, _ = strconv.ParseBool(getEnv("MINIO_USE_SSL", "false"))
	MinioPublicURL = getEnv("MINIO_PUBLIC_URL", "")

	NominatimBaseURL = getEnv("NOMINATIM_BASE_URL", "https://nominatim.openstreetmap.org")

	CORSOrigins = splitList(getEnv("CORS_ORIGINS", "http://localhost:5173"))
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Invalid value for %s: %q, using %d", key, value, fallback)
		return fallback
	}
	return n
}

func splitList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

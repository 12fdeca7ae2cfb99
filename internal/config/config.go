package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	Clinical  ClinicalConfig
	Predictor PredictorConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
}

type DatabaseConfig struct {
	Connection string
}

// ClinicalConfig wires the three external clinical services. When
// Provider is "static" the built-in deterministic tables are used and
// the URLs are ignored.
type ClinicalConfig struct {
	Provider       string // "static" or "http"
	TerminologyURL string
	DrugURL        string
	InteractionURL string
	CallTimeout    time.Duration
}

type PredictorConfig struct {
	Provider string // "rules" or "http"
	BaseURL  string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Clinical: ClinicalConfig{
			Provider:       getEnv("CLINICAL_PROVIDER", "static"),
			TerminologyURL: getEnv("TERMINOLOGY_BASE_URL", "http://localhost:8081"),
			DrugURL:        getEnv("DRUG_BASE_URL", "http://localhost:8082"),
			InteractionURL: getEnv("INTERACTION_BASE_URL", "http://localhost:8083"),
			CallTimeout:    time.Duration(getEnvAsInt("CLINICAL_CALL_TIMEOUT_SECONDS", 10)) * time.Second,
		},
		Predictor: PredictorConfig{
			Provider: getEnv("PREDICTOR_PROVIDER", "rules"),
			BaseURL:  getEnv("PREDICTOR_BASE_URL", ""),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

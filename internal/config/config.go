package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port          string
	GinMode       string
	MongoURI      string
	MongoDatabase string
	RabbitMQURI   string
	EventExchange string
	LLMBaseURL    string
	LLMAPIKey     string
	LLMModel      string
	LLMTimeout    time.Duration
	LLMMaxRetries int
	SweepInterval time.Duration
	ServiceName   string
}

var AppConfig *Config

func LoadConfig() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	AppConfig = &Config{
		Port:          getEnvOrDefault("PORT", "8080"),
		GinMode:       getEnvOrDefault("GIN_MODE", "debug"),
		MongoURI:      getEnvOrDefault("MONGO_URI", "mongodb://localhost:27017"),
		MongoDatabase: getEnvOrDefault("MONGO_DATABASE", "interview_service"),
		RabbitMQURI:   getEnvOrDefault("RABBITMQ_URI", ""),
		EventExchange: getEnvOrDefault("RABBITMQ_EXCHANGE", "interview.events"),
		LLMBaseURL:    getEnvOrDefault("BASE_URL", "https://api.openai.com/v1"),
		LLMAPIKey:     getEnvOrDefault("API_KEY", ""),
		LLMModel:      getEnvOrDefault("MODEL", "gpt-4o-mini"),
		LLMTimeout:    getDurationOrDefault("LLM_TIMEOUT_SECONDS", 120) * time.Second,
		LLMMaxRetries: getIntOrDefault("LLM_MAX_RETRIES", 3),
		SweepInterval: getDurationOrDefault("SWEEP_INTERVAL_SECONDS", 60) * time.Second,
		ServiceName:   getEnvOrDefault("SERVICE_NAME", "interview-service"),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func getDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return time.Duration(n)
		}
	}
	return defaultValue
}

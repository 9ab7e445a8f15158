package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server  ServerConfig
	Storage StorageConfig
	LLM     LLMConfig
}

type ServerConfig struct {
	Port string
	Env  string
}

type StorageConfig struct {
	UploadPath  string
	MaxFileSize int64
}

type LLMConfig struct {
	Provider  string
	APIKey    string
	Model     string
	Endpoint  string
	Timeout   time.Duration
	MaxTokens int

	// RequestsPerMinute paces outgoing completions; 0 disables pacing
	RequestsPerMinute int
}

const (
	DefaultLLMProvider = "straico"
	DefaultLLMEndpoint = "https://api.straico.com/v1/prompt/completion"
	DefaultLLMModel    = "openai/gpt-4"
)

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found. Using default values.")
	}

	return &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "3000"),
			Env:  getEnv("ENV", "development"),
		},
		Storage: StorageConfig{
			UploadPath:  getEnv("UPLOAD_PATH", "./uploads"),
			MaxFileSize: getEnvAsInt64("MAX_FILE_SIZE", 10485760),
		},
		LLM: LLMConfig{
			Provider: getEnv("LLM_PROVIDER", DefaultLLMProvider),
			// API_KEY is the variable older deployments were configured with
			APIKey:    getEnv("LLM_API_KEY", getEnv("API_KEY", "")),
			Model:     getEnv("LLM_MODEL", ""),
			Endpoint:  getEnv("LLM_ENDPOINT", DefaultLLMEndpoint),
			Timeout:   getEnvAsDuration("LLM_TIMEOUT", "60s"),
			MaxTokens: getEnvAsInt("LLM_MAX_TOKENS", 4096),

			RequestsPerMinute: getEnvAsInt("LLM_REQUESTS_PER_MINUTE", 0),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseInt(valueStr, 10, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := getEnv(key, defaultValue)
	if duration, err := time.ParseDuration(valueStr); err == nil {
		return duration
	}
	duration, _ := time.ParseDuration(defaultValue)
	return duration
}

package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App        AppConfig
	Database   DatabaseConfig
	Chat       ChatConfig
	Completion CompletionConfig
	Ai         AIConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	RedisURL           string
}

type DatabaseConfig struct {
	Connection string
}

type ChatConfig struct {
	CacheTTL      time.Duration // how long a session list stays alive in Redis
	MaxHistory    int           // max messages kept per session in Redis
	ContextPolicy string        // "chronological" (last K) or "pairs" (N pairs + system)
	ContextLastK  int
	ContextPairs  int
	SystemContext int
	Temperature   float64
	MaxTokens     int
	Timeout       time.Duration
}

type CompletionConfig struct {
	MaxBefore       int // char budget for code before the cursor
	MaxAfter        int // char budget for code after the cursor
	MaxLength       int // hard cap on the cleaned completion
	Temperature     float64
	MaxTokens       int
	Timeout         time.Duration
	CacheTTL        time.Duration
	CacheMaxEntries int
	ProjectMaxChars int
	ProjectCacheTTL time.Duration
}

type AIConfig struct {
	LLMProvider   string // "gemini" or "ollama"
	LLMModel      string // e.g. "gemini-1.5-pro", "qwen2.5-coder"
	OllamaBaseURL string
	GeminiAPIKey  string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "*"),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Chat: ChatConfig{
			CacheTTL:      getEnvAsSeconds("REDIS_CHAT_TTL_SECONDS", 86400),
			MaxHistory:    getEnvAsInt("CHAT_MAX_HISTORY", 200),
			ContextPolicy: getEnv("CHAT_CONTEXT_POLICY", "chronological"),
			ContextLastK:  getEnvAsInt("CHAT_CONTEXT_LAST_K", 20),
			ContextPairs:  getEnvAsInt("CHAT_CONTEXT_PAIRS", 6),
			SystemContext: getEnvAsInt("CHAT_SYSTEM_CONTEXT", 2),
			Temperature:   getEnvAsFloat("DEFAULT_TEMPERATURE", 0.7),
			MaxTokens:     getEnvAsInt("DEFAULT_MAX_TOKENS", 1024),
			Timeout:       getEnvAsSeconds("MODEL_TIMEOUT_SECONDS", 15),
		},
		Completion: CompletionConfig{
			MaxBefore:       getEnvAsInt("CODE_COMPLETION_MAX_BEFORE", 1200),
			MaxAfter:        getEnvAsInt("CODE_COMPLETION_MAX_AFTER", 400),
			MaxLength:       getEnvAsInt("CODE_COMPLETION_MAX_LENGTH", 150),
			Temperature:     getEnvAsFloat("CODE_COMPLETION_TEMPERATURE", 0.2),
			MaxTokens:       getEnvAsInt("CODE_COMPLETION_MAX_TOKENS", 256),
			Timeout:         getEnvAsSeconds("CODE_COMPLETION_TIMEOUT", 10),
			CacheTTL:        getEnvAsSeconds("COMPLETION_CACHE_TTL_SECONDS", 300),
			CacheMaxEntries: getEnvAsInt("COMPLETION_CACHE_MAX_ENTRIES", 512),
			ProjectMaxChars: getEnvAsInt("PROJECT_MAX_CHARS", 3000),
			ProjectCacheTTL: getEnvAsSeconds("PROJECT_TTL_SEC", 300),
		},
		Ai: AIConfig{
			LLMProvider:   getEnv("LLM_PROVIDER", "gemini"),
			LLMModel:      getEnv("LLM_MODEL", "gemini-1.5-pro"),
			OllamaBaseURL: getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			GeminiAPIKey:  getEnv("GEMINI_API_KEY", ""),
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

func getEnvAsFloat(key string, fallback float64) float64 {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseFloat(strValue, 64); err == nil {
		return value
	}
	return fallback
}

func getEnvAsSeconds(key string, fallback int) time.Duration {
	return time.Duration(getEnvAsInt(key, fallback)) * time.Second
}

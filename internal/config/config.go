package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Supabase SupabaseConfig
	Keys     APIKeys
	Ai       AIConfig
	Chatbot  ChatbotConfig
	Tracing  TracingConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	Environment        string
	LogFilePath        string
	LeadLogFilePath    string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
	JwtSecret          string
	RateLimitPerMinute int
}

type DatabaseConfig struct {
	Connection string
	Backend    string // "postgres", "supabase" or "memory"
}

type SupabaseConfig struct {
	URL    string
	APIKey string
}

type APIKeys struct {
	OpenAI       string
	HuggingFace  string
	GoogleGemini string
}

type AIConfig struct {
	LLMProvider   string // "ollama", "openai", "huggingface", "gemini"
	LLMModel      string
	OllamaBaseURL string
	OpenAIBaseURL string
	Temperature   float64
	MaxTokens     int
}

type ChatbotConfig struct {
	AssistantName         string
	WelcomeMessage        string
	SiteHost              string
	PropertyPath          string
	MatchThreshold        float64
	DirectAnswerThreshold float64
	PriorityBand          float64
	HistoryMaxTurns       int
	HistoryTokenLimit     int
	TrainingCacheTTL      time.Duration
	FeatureCacheTTL       time.Duration
	LeadTopic             string
}

// TracingConfig drives the OTLP exporter. Tracing is off unless Enabled.
type TracingConfig struct {
	Enabled     bool
	Endpoint    string
	ServiceName string
	SampleRatio float64
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
			LeadLogFilePath:    getEnv("LEAD_LOG_FILE_PATH", "logs/leads.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
			JwtSecret:          getEnv("JWT_SECRET", ""),
			RateLimitPerMinute: getEnvAsInt("RATE_LIMIT_PER_MINUTE", 30),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
			Backend:    getEnv("DATA_BACKEND", "postgres"),
		},
		Supabase: SupabaseConfig{
			URL:    getEnv("SUPABASE_URL", ""),
			APIKey: getEnv("SUPABASE_SERVICE_KEY", ""),
		},
		Keys: APIKeys{
			OpenAI:       getEnv("OPENAI_API_KEY", ""),
			HuggingFace:  getEnv("HUGGINGFACE_API_KEY", ""),
			GoogleGemini: getEnv("GOOGLE_GEMINI_API_KEY", ""),
		},
		Ai: AIConfig{
			LLMProvider:   getEnv("LLM_PROVIDER", "openai"),
			LLMModel:      getEnv("LLM_MODEL", ""),
			OllamaBaseURL: getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			OpenAIBaseURL: getEnv("OPENAI_BASE_URL", ""),
			Temperature:   getEnvAsFloat("LLM_TEMPERATURE", 0.7),
			MaxTokens:     getEnvAsInt("LLM_MAX_TOKENS", 500),
		},
		Chatbot: ChatbotConfig{
			AssistantName:         getEnv("CHATBOT_ASSISTANT_NAME", "Ava"),
			WelcomeMessage:        getEnv("CHATBOT_WELCOME_MESSAGE", "Hi! I'm here to help you find your next home. What are you looking for?"),
			SiteHost:              getEnv("CHATBOT_SITE_HOST", ""),
			PropertyPath:          getEnv("CHATBOT_PROPERTY_PATH", "/properties/"),
			MatchThreshold:        getEnvAsFloat("CHATBOT_MATCH_THRESHOLD", 0.3),
			DirectAnswerThreshold: getEnvAsFloat("CHATBOT_DIRECT_ANSWER_THRESHOLD", 0.6),
			PriorityBand:          getEnvAsFloat("CHATBOT_PRIORITY_BAND", 0.05),
			HistoryMaxTurns:       getEnvAsInt("CHATBOT_HISTORY_MAX_TURNS", 10),
			HistoryTokenLimit:     getEnvAsInt("CHATBOT_HISTORY_TOKEN_LIMIT", 2000),
			TrainingCacheTTL:      time.Duration(getEnvAsInt("CHATBOT_TRAINING_CACHE_SECONDS", 300)) * time.Second,
			FeatureCacheTTL:       time.Duration(getEnvAsInt("CHATBOT_FEATURE_CACHE_SECONDS", 60)) * time.Second,
			LeadTopic:             getEnv("LEAD_CAPTURED_TOPIC_NAME", "LEAD_CAPTURED"),
		},
		Tracing: TracingConfig{
			Enabled:     getEnv("OTEL_ENABLED", "false") == "true",
			Endpoint:    getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4318"),
			ServiceName: getEnv("OTEL_SERVICE_NAME", "realestate-chatbot-backend"),
			SampleRatio: getEnvAsFloat("OTEL_SAMPLE_RATIO", 1),
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

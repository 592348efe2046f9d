package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	Knowledge KnowledgeConfig
	Ai        AIConfig
	Retrieval RetrievalConfig
	Training  TrainingConfig
	Extractor ExtractorConfig
	Events    EventsConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
}

type DatabaseConfig struct {
	Connection string
}

type KnowledgeConfig struct {
	Backend      string // "qdrant", "pgvector" or "memory"
	Collection   string
	VectorDim    int
	QdrantURL    string
	QdrantAPIKey string
	SeedDefaults bool
}

type AIConfig struct {
	EmbeddingProvider  string // "together" or "ollama"
	TogetherAPIKey     string
	TogetherBaseURL    string
	TogetherEmbedModel string
	OllamaBaseURL      string
	OllamaEmbedModel   string
	LLMProvider        string // "together" or "ollama"
	LLMModel           string
}

type RetrievalConfig struct {
	TopK           int
	ScoreThreshold float64
}

type TrainingConfig struct {
	Operators  []string
	SessionTTL time.Duration
}

type ExtractorConfig struct {
	TikaURL string
}

type EventsConfig struct {
	TrainedTopic string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log.csv"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Knowledge: KnowledgeConfig{
			Backend:      getEnv("KNOWLEDGE_BACKEND", "qdrant"),
			Collection:   getEnv("QDRANT_COLLECTION_NAME", "knowledge_base"),
			VectorDim:    getEnvAsInt("EMBEDDING_DIMENSION", 768),
			QdrantURL:    getEnv("QDRANT_URL", "http://localhost:6333"),
			QdrantAPIKey: getEnv("QDRANT_API_KEY", ""),
			SeedDefaults: getEnvAsBool("SEED_DEFAULT_KNOWLEDGE", false),
		},
		Ai: AIConfig{
			EmbeddingProvider:  getEnv("EMBEDDING_PROVIDER", "together"),
			TogetherAPIKey:     getEnv("TOGETHER_API_KEY", ""),
			TogetherBaseURL:    getEnv("TOGETHER_BASE_URL", "https://api.together.xyz/v1"),
			TogetherEmbedModel: getEnv("TOGETHER_EMBEDDING_MODEL", "BAAI/bge-base-en-v1.5"),
			OllamaBaseURL:      getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			OllamaEmbedModel:   getEnv("OLLAMA_EMBEDDING_MODEL", "nomic-embed-text"),
			LLMProvider:        getEnv("LLM_PROVIDER", "together"),
			LLMModel:           getEnv("LLM_MODEL", "meta-llama/Llama-2-70b-chat-hf"),
		},
		Retrieval: RetrievalConfig{
			TopK:           getEnvAsInt("RETRIEVAL_TOP_K", 3),
			ScoreThreshold: getEnvAsFloat("RETRIEVAL_SCORE_THRESHOLD", 0.7),
		},
		Training: TrainingConfig{
			Operators:  splitList(getEnv("OPERATOR_IDS", "")),
			SessionTTL: getEnvAsDuration("TRAINING_SESSION_TTL", time.Hour),
		},
		Extractor: ExtractorConfig{
			TikaURL: getEnv("TIKA_URL", "http://localhost:9998"),
		},
		Events: EventsConfig{
			TrainedTopic: getEnv("KNOWLEDGE_TRAINED_TOPIC_NAME", "knowledge.trained"),
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

func getEnvAsBool(key string, fallback bool) bool {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseBool(strValue); err == nil {
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

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	strValue := getEnv(key, "")
	if value, err := time.ParseDuration(strValue); err == nil {
		return value
	}
	return fallback
}

func splitList(value string) []string {
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

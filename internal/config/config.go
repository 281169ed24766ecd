package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"jpchat/internal/model"
)

type Config struct {
	HTTPPort       string
	DatabaseURL    string
	DatabaseDriver string
	RedisURL       string
	RedisPassword  string
	OpenAIKey      string
	OpenAIBaseURL  string
	OpenAIModel    string
	MetricsPort    string
	LogLevel       string
	LogFormat      string
	LeadFields     []model.Field
	SessionTTL     time.Duration
	HistoryLimit   int
	KnowledgeFile  string
	PersistTimeout time.Duration
	WorkerCount    int
}

func Load() *Config {
	// Carrega .env da raiz do projeto
	_ = godotenv.Load("../../.env")
	// Se não encontrar, tenta no diretório atual
	_ = godotenv.Load()
	return FromEnv()
}

// FromEnv reads the configuration from the process environment only.
func FromEnv() *Config {
	return &Config{
		HTTPPort:       getEnv("HTTP_PORT", "8080"),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		DatabaseDriver: getEnv("DATABASE_DRIVER", "postgres"),
		RedisURL:       getEnv("REDIS_URL", "localhost:6379"),
		RedisPassword:  os.Getenv("REDIS_PASSWORD"),
		OpenAIKey:      os.Getenv("OPENAI_API_KEY"),
		OpenAIBaseURL:  os.Getenv("OPENAI_BASE_URL"),
		OpenAIModel:    getEnv("OPENAI_MODEL", "gpt-4o-mini"),
		MetricsPort:    getEnv("METRICS_PORT", "9090"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		LogFormat:      getEnv("LOG_FORMAT", "json"),
		LeadFields:     parseFields(getEnv("LEAD_FIELDS", "")),
		SessionTTL:     getDuration("SESSION_TTL", 24*time.Hour),
		HistoryLimit:   getInt("HISTORY_LIMIT", 6),
		KnowledgeFile:  getEnv("KNOWLEDGE_FILE", "dados.json"),
		PersistTimeout: getDuration("PERSIST_TIMEOUT", 3*time.Second),
		WorkerCount:    getInt("MIGRATE_WORKERS", 5),
	}
}

// parseFields reads a comma separated field order. An empty value yields the default order;
// unknown names are kept so that the flow constructor can reject them loudly.
func parseFields(v string) []model.Field {
	if strings.TrimSpace(v) == "" {
		return append([]model.Field(nil), model.DefaultFields...)
	}
	var out []model.Field
	for _, p := range strings.Split(v, ",") {
		if p = strings.TrimSpace(strings.ToLower(p)); p != "" {
			out = append(out, model.Field(p))
		}
	}
	return out
}

func getEnv(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func getInt(k string, d int) int {
	v, err := strconv.Atoi(os.Getenv(k))
	if err != nil || v <= 0 {
		return d
	}
	return v
}

func getDuration(k string, d time.Duration) time.Duration {
	v, err := time.ParseDuration(os.Getenv(k))
	if err != nil || v <= 0 {
		return d
	}
	return v
}

package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port             string
	DatabaseDriver   string // "postgres" or "sqlite"
	DatabaseURL      string
	JWTSecret        string
	JWTAccessExpiry  time.Duration
	JWTRefreshExpiry time.Duration

	GoogleClientID            string
	GoogleClientSecret        string
	GoogleCalendarRedirectURI string

	// AI
	AIProvider       string // "gemini", "ollama" or "auto"
	GeminiApiKey     string
	GeminiModel      string
	GeminiRPS        float64
	OllamaBaseURL    string
	OllamaModel      string
	AIDailyCaptures  int
	AIRequestTimeout time.Duration

	// Moment matching
	MomentMatchLimit      int
	MomentMatchWindow     time.Duration
	LearningMinHelpful    int
	LearningMinConfidence float64
	CalendarSyncInterval  time.Duration
	CalendarSchedulerTick time.Duration
	RedisURL              string
	FirebaseCredentials   string
	ChromaAPIKey          string
	ChromaTenant          string
	ChromaDatabase        string
	ArticleFetchTimeout   time.Duration
}

func Load() *Config {
	// Load .env file if it exists
	_ = godotenv.Load()

	return &Config{
		Port:             getEnv("PORT", "8080"),
		DatabaseDriver:   getEnv("DATABASE_DRIVER", "postgres"),
		DatabaseURL:      getEnv("DATABASE_URL", "host=localhost user=postgres password=postgres dbname=thoughtfolio port=5432 sslmode=disable"),
		JWTSecret:        getEnv("JWT_SECRET", "your-secret-key-change-in-production"),
		JWTAccessExpiry:  getDuration("JWT_ACCESS_EXPIRY", 15*time.Minute),
		JWTRefreshExpiry: getDuration("JWT_REFRESH_EXPIRY", 168*time.Hour), // 7 days

		GoogleClientID:            getEnv("GOOGLE_CLIENT_ID", ""),
		GoogleClientSecret:        getEnv("GOOGLE_CLIENT_SECRET", ""),
		GoogleCalendarRedirectURI: getEnv("GOOGLE_CALENDAR_REDIRECT_URI", "http://localhost:3000/calendar/callback"),

		AIProvider:       getEnv("AI_PROVIDER", "gemini"),
		GeminiApiKey:     getEnv("GEMINI_API_KEY", ""),
		GeminiModel:      getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
		GeminiRPS:        getFloat("GEMINI_RPS", 2),
		OllamaBaseURL:    getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
		OllamaModel:      getEnv("OLLAMA_MODEL", "llama3"),
		AIDailyCaptures:  getInt("AI_DAILY_CAPTURES", 10),
		AIRequestTimeout: getDuration("AI_REQUEST_TIMEOUT", 60*time.Second),

		MomentMatchLimit:      getInt("MOMENT_MATCH_LIMIT", 20),
		MomentMatchWindow:     getDuration("MOMENT_MATCH_WINDOW", time.Hour),
		LearningMinHelpful:    getInt("MOMENT_LEARNING_MIN_HELPFUL", 2),
		LearningMinConfidence: getFloat("MOMENT_LEARNING_MIN_CONFIDENCE", 0.7),
		CalendarSyncInterval:  getDuration("CALENDAR_SYNC_INTERVAL", 15*time.Minute),
		CalendarSchedulerTick: getDuration("CALENDAR_SCHEDULER_TICK", time.Minute),

		RedisURL:            getEnv("REDIS_URL", ""),
		FirebaseCredentials: getEnv("FIREBASE_CREDENTIALS", ""),
		ChromaAPIKey:        getEnv("CHROMA_API_KEY", ""),
		ChromaTenant:        getEnv("CHROMA_TENANT", ""),
		ChromaDatabase:      getEnv("CHROMA_DATABASE", ""),
		ArticleFetchTimeout: getDuration("ARTICLE_FETCH_TIMEOUT", 10*time.Second),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			return parsed
		}
	}
	return defaultValue
}

package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Supported generator providers
const (
	ProviderOpenAI = "openai"
	ProviderGroq   = "groq"
	ProviderGemini = "gemini"
)

// Supported cache backends
const (
	CacheMemory = "memory"
	CacheRedis  = "redis"
)

// Config holds application configuration
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Cache     CacheConfig
	LLM       LLMConfig
	Retry     RetryConfig
	Pipeline  PipelineConfig
	RateLimit RateLimitConfig
	Archive   ArchiveConfig
	Admin     AdminConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port            string
	Host            string
	Environment     string
	AllowedOrigins  []string
	ShutdownTimeout int
}

// DatabaseConfig holds PostgreSQL configuration for the pipeline run log
type DatabaseConfig struct {
	RunLogEnabled bool

	Host        string
	Port        string
	User        string
	Password    string
	Name        string
	SSLMode     string
	MaxConns    int
	MinConns    int
	AutoMigrate bool
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// CacheConfig holds result cache configuration
type CacheConfig struct {
	Backend   string `envconfig:"CACHE_BACKEND" default:"memory"`
	TTLHours  int    `envconfig:"CACHE_TTL_HOURS" default:"24"`
	KeyPrefix string `envconfig:"CACHE_KEY_PREFIX" default:"meeting-insights:"`
}

// TTL returns the cache TTL as a duration
func (c CacheConfig) TTL() time.Duration {
	return time.Duration(c.TTLHours) * time.Hour
}

// LLMConfig holds generator configuration
type LLMConfig struct {
	Provider      string        `envconfig:"LLM_PROVIDER" default:"openai"`
	Temperature   float64       `envconfig:"LLM_TEMPERATURE" default:"0"`
	Timeout       time.Duration `envconfig:"LLM_TIMEOUT" default:"30s"`
	RepairTimeout time.Duration `envconfig:"LLM_REPAIR_TIMEOUT" default:"15s"`

	OpenAIAPIKey  string `envconfig:"OPENAI_API_KEY"`
	OpenAIModel   string `envconfig:"OPENAI_MODEL" default:"gpt-4o"`
	OpenAIBaseURL string `envconfig:"OPENAI_BASE_URL"`

	GroqAPIKey  string `envconfig:"GROQ_API_KEY"`
	GroqModel   string `envconfig:"GROQ_MODEL" default:"llama-3.3-70b-versatile"`
	GroqBaseURL string `envconfig:"GROQ_BASE_URL" default:"https://api.groq.com/openai/v1/"`

	GeminiAPIKey string `envconfig:"GEMINI_API_KEY"`
	GeminiModel  string `envconfig:"GEMINI_MODEL" default:"gemini-2.0-flash"`
}

// Model returns the model identifier of the selected provider
func (c LLMConfig) Model() string {
	switch c.Provider {
	case ProviderGroq:
		return c.GroqModel
	case ProviderGemini:
		return c.GeminiModel
	}
	return c.OpenAIModel
}

// RetryConfig holds the backoff policy for generator calls
type RetryConfig struct {
	MaxAttempts     int           `envconfig:"MAX_RETRY_ATTEMPTS" default:"3"`
	InitialInterval time.Duration `envconfig:"RETRY_INITIAL_INTERVAL" default:"500ms"`
	MaxInterval     time.Duration `envconfig:"RETRY_MAX_INTERVAL" default:"5s"`
	Multiplier      float64       `envconfig:"RETRY_MULTIPLIER" default:"2"`
	Jitter          bool          `envconfig:"RETRY_JITTER" default:"false"`
}

// PipelineConfig holds per-request pipeline settings
type PipelineConfig struct {
	Timeout         time.Duration `envconfig:"PIPELINE_TIMEOUT" default:"2m"`
	PromptsFile     string        `envconfig:"PROMPTS_FILE"`
	EventBufferSize int           `envconfig:"EVENT_BUFFER_SIZE" default:"256"`
}

// RateLimitConfig holds request throttling configuration
type RateLimitConfig struct {
	PerMinute int `envconfig:"RATE_LIMIT_PER_MINUTE" default:"10"`
}

// ArchiveConfig holds the object storage used to archive transcripts
type ArchiveConfig struct {
	Enabled         bool   `envconfig:"TRANSCRIPT_ARCHIVE_ENABLED" default:"false"`
	Endpoint        string `envconfig:"MINIO_ENDPOINT" default:"localhost:9000"`
	AccessKeyID     string `envconfig:"MINIO_ACCESS_KEY"`
	SecretAccessKey string `envconfig:"MINIO_SECRET_KEY"`
	BucketName      string `envconfig:"MINIO_BUCKET" default:"meeting-transcripts"`
	UseSSL          bool   `envconfig:"MINIO_USE_SSL" default:"false"`
}

// AdminConfig protects the cache and run log endpoints. An empty secret
// leaves them open.
type AdminConfig struct {
	JWTSecret   string        `envconfig:"ADMIN_JWT_SECRET"`
	TokenExpiry time.Duration `envconfig:"ADMIN_TOKEN_EXPIRY" default:"24h"`
}

// Load loads configuration from environment variables and validates it
func Load() (*Config, error) {
	config, err := read()
	if err != nil {
		return nil, err
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// LoadUnvalidated loads configuration without checking generator settings,
// for tools that only touch the database
func LoadUnvalidated() (*Config, error) {
	return read()
}

func read() (*Config, error) {
	// Load .env file if exists (ignore error if file doesn't exist)
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables or defaults")
	}

	config := &Config{
		Server: ServerConfig{
			Port:            getEnv("PORT", "8080"),
			Host:            getEnv("HOST", "0.0.0.0"),
			Environment:     getEnv("ENVIRONMENT", "development"),
			AllowedOrigins:  getEnvAsSlice("ALLOWED_ORIGINS", []string{"*"}),
			ShutdownTimeout: getEnvAsInt("SHUTDOWN_TIMEOUT", 10),
		},
		Database: DatabaseConfig{
			RunLogEnabled: getEnv("RUN_LOG_ENABLED", "false") == "true",
			Host:          getEnv("DB_HOST", "localhost"),
			Port:          getEnv("DB_PORT", "5432"),
			User:          getEnv("DB_USER", "postgres"),
			Password:      getEnv("DB_PASSWORD", "postgres"),
			Name:          getEnv("DB_NAME", "meeting_insights"),
			SSLMode:       getEnv("DB_SSLMODE", "disable"),
			MaxConns:      getEnvAsInt("DB_MAX_CONNS", 10),
			MinConns:      getEnvAsInt("DB_MIN_CONNS", 2),
			AutoMigrate:   getEnv("DB_AUTO_MIGRATE", "false") == "true",
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
	}

	if err := processEnv(config); err != nil {
		return nil, err
	}

	return config, nil
}

// processEnv fills the tagged sections from the environment
func processEnv(c *Config) error {
	sections := map[string]interface{}{
		"cache":      &c.Cache,
		"llm":        &c.LLM,
		"retry":      &c.Retry,
		"pipeline":   &c.Pipeline,
		"rate limit": &c.RateLimit,
		"archive":    &c.Archive,
		"admin":      &c.Admin,
	}
	for name, spec := range sections {
		if err := envconfig.Process("", spec); err != nil {
			return fmt.Errorf("load %s config: %w", name, err)
		}
	}
	return nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	switch c.LLM.Provider {
	case ProviderOpenAI:
		if c.LLM.OpenAIAPIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY is required when LLM_PROVIDER=%s", ProviderOpenAI)
		}
	case ProviderGroq:
		if c.LLM.GroqAPIKey == "" {
			return fmt.Errorf("GROQ_API_KEY is required when LLM_PROVIDER=%s", ProviderGroq)
		}
	case ProviderGemini:
		if c.LLM.GeminiAPIKey == "" {
			return fmt.Errorf("GEMINI_API_KEY is required when LLM_PROVIDER=%s", ProviderGemini)
		}
	default:
		return fmt.Errorf("unsupported LLM_PROVIDER %q", c.LLM.Provider)
	}

	switch c.Cache.Backend {
	case CacheMemory, CacheRedis:
	default:
		return fmt.Errorf("unsupported CACHE_BACKEND %q", c.Cache.Backend)
	}
	if c.Cache.TTLHours <= 0 {
		return fmt.Errorf("CACHE_TTL_HOURS must be positive, got %d", c.Cache.TTLHours)
	}
	if c.Retry.MaxAttempts < 1 {
		return fmt.Errorf("MAX_RETRY_ATTEMPTS must be at least 1, got %d", c.Retry.MaxAttempts)
	}
	if c.Retry.InitialInterval <= 0 || c.Retry.MaxInterval < c.Retry.InitialInterval {
		return fmt.Errorf("invalid retry interval bounds %s..%s", c.Retry.InitialInterval, c.Retry.MaxInterval)
	}
	if c.Retry.Multiplier < 1 {
		return fmt.Errorf("RETRY_MULTIPLIER must be >= 1, got %v", c.Retry.Multiplier)
	}
	if c.LLM.Timeout <= 0 || c.LLM.RepairTimeout <= 0 {
		return fmt.Errorf("LLM_TIMEOUT and LLM_REPAIR_TIMEOUT must be positive")
	}
	if c.Archive.Enabled && (c.Archive.AccessKeyID == "" || c.Archive.SecretAccessKey == "") {
		return fmt.Errorf("MINIO_ACCESS_KEY and MINIO_SECRET_KEY are required when TRANSCRIPT_ARCHIVE_ENABLED=true")
	}
	if c.RateLimit.PerMinute < 0 {
		return fmt.Errorf("RATE_LIMIT_PER_MINUTE must not be negative")
	}
	// Admin routes are open without a secret, development only
	if !c.IsDevelopment() && c.Admin.JWTSecret == "" {
		return fmt.Errorf("ADMIN_JWT_SECRET is required when ENVIRONMENT=%s", c.Server.Environment)
	}
	return nil
}

// GetDatabaseDSN returns the PostgreSQL connection string
func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// GetRedisAddr returns the Redis address
func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", c.Redis.Host, c.Redis.Port)
}

// IsDevelopment reports whether the server runs in development mode
func (c *Config) IsDevelopment() bool {
	return c.Server.Environment == "development"
}

// Helper functions

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

func getEnvAsSlice(key string, defaultValue []string) []string {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	var out []string
	for _, v := range strings.Split(valueStr, ",") {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}

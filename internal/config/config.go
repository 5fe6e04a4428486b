package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"

	"github.com/osse101/modstanding/internal/domain"
)

// Config holds the application configuration
type Config struct {
	Port        int    `validate:"min=1,max=65535"`
	LogLevel    string `validate:"required"`
	LogFormat   string `validate:"oneof=json text"`
	ServiceName string
	Version     string
	Environment string
	LogDir      string

	DBUser            string
	DBPassword        string
	DBHost            string
	DBPort            string
	DBName            string
	DBMaxConns        int `validate:"min=1"`
	DBMaxConnIdleTime time.Duration
	DBMaxConnLifetime time.Duration

	APIKey         string // API key for authentication
	TrustedProxies []string

	CatalogPath     string
	SchemaDir       string
	CatalogCacheTTL time.Duration

	// Status thresholds seeded into settings storage on first start
	SocialMediumThreshold     int `validate:"gte=0"`
	SocialHabitualThreshold   int `validate:"gte=0"`
	GameplayMediumThreshold   int `validate:"gte=0"`
	GameplayHabitualThreshold int `validate:"gte=0"`

	EventTransport    string `validate:"oneof=memory nats kafka"`
	NATSURL           string
	NATSSubjectPrefix string
	KafkaBrokers      []string
	KafkaTopic        string
	DeadLetterPath    string
	EventMaxRetries   int `validate:"gte=0"`
	EventRetryDelay   time.Duration

	DiscordBotToken     string
	DiscordWebhookID    string
	DiscordWebhookToken string

	WorkerCount     int `validate:"min=1"`
	WorkerQueueSize int `validate:"min=1"`
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	cfg := &Config{
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		LogFormat:   strings.ToLower(getEnv("LOG_FORMAT", "text")),
		ServiceName: getEnv("SERVICE_NAME", "modstanding"),
		Version:     getEnv("VERSION", "dev"),
		Environment: getEnv("ENVIRONMENT", "dev"),
		LogDir:      getEnv("LOG_DIR", "logs"),

		DBUser:            getEnv("DB_USER", "postgres"),
		DBPassword:        getEnv("DB_PASSWORD", "postgres"),
		DBHost:            getEnv("DB_HOST", "localhost"),
		DBPort:            getEnv("DB_PORT", "5432"),
		DBName:            getEnv("DB_NAME", "modstanding"),
		DBMaxConns:        getEnvAsInt("DB_MAX_CONNS", 20),
		DBMaxConnIdleTime: getEnvAsDuration("DB_MAX_CONN_IDLE_TIME", 5*time.Minute),
		DBMaxConnLifetime: getEnvAsDuration("DB_MAX_CONN_LIFETIME", 30*time.Minute),

		APIKey:         getEnv("API_KEY", ""),
		TrustedProxies: getEnvAsList("TRUSTED_PROXIES"),

		CatalogPath:     getEnv("CATALOG_PATH", ConfigPathPunishmentTypes),
		SchemaDir:       getEnv("SCHEMA_DIR", ConfigPathSchemaDir),
		CatalogCacheTTL: getEnvAsDuration("CATALOG_CACHE_TTL", 5*time.Minute),

		SocialMediumThreshold:     getEnvAsInt("THRESHOLD_SOCIAL_MEDIUM", DefaultThresholdMedium),
		SocialHabitualThreshold:   getEnvAsInt("THRESHOLD_SOCIAL_HABITUAL", DefaultThresholdHabitual),
		GameplayMediumThreshold:   getEnvAsInt("THRESHOLD_GAMEPLAY_MEDIUM", DefaultThresholdMedium),
		GameplayHabitualThreshold: getEnvAsInt("THRESHOLD_GAMEPLAY_HABITUAL", DefaultThresholdHabitual),

		EventTransport:    strings.ToLower(getEnv("EVENT_TRANSPORT", EventTransportMemory)),
		NATSURL:           getEnv("NATS_URL", ""),
		NATSSubjectPrefix: getEnv("NATS_SUBJECT_PREFIX", "moderation"),
		KafkaBrokers:      getEnvAsList("KAFKA_BROKERS"),
		KafkaTopic:        getEnv("KAFKA_TOPIC", "moderation.punishments"),
		DeadLetterPath:    getEnv("DEAD_LETTER_PATH", ConfigPathDeadLetter),
		EventMaxRetries:   getEnvAsInt("EVENT_MAX_RETRIES", 5),
		EventRetryDelay:   getEnvAsDuration("EVENT_RETRY_DELAY", 2*time.Second),

		DiscordBotToken:     getEnv("DISCORD_BOT_TOKEN", ""),
		DiscordWebhookID:    getEnv("DISCORD_WEBHOOK_ID", ""),
		DiscordWebhookToken: getEnv("DISCORD_WEBHOOK_TOKEN", ""),

		WorkerCount:     getEnvAsInt("WORKER_COUNT", 4),
		WorkerQueueSize: getEnvAsInt("WORKER_QUEUE_SIZE", 256),
	}

	port, err := strconv.Atoi(getEnv("PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf(ErrMsgInvalidPort, err)
	}
	cfg.Port = port

	if cfg.APIKey == "" {
		return nil, errors.New(ErrMsgMissingAPIKey)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks struct constraints and cross-field rules
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf(ErrMsgInvalidConfig, err)
	}

	if c.SocialHabitualThreshold < c.SocialMediumThreshold {
		return fmt.Errorf(ErrMsgThresholdOrder, "social", c.SocialHabitualThreshold, c.SocialMediumThreshold)
	}
	if c.GameplayHabitualThreshold < c.GameplayMediumThreshold {
		return fmt.Errorf(ErrMsgThresholdOrder, "gameplay", c.GameplayHabitualThreshold, c.GameplayMediumThreshold)
	}

	switch c.EventTransport {
	case EventTransportNATS:
		if c.NATSURL == "" {
			return fmt.Errorf(ErrMsgMissingTransport, "EVENT_TRANSPORT=nats", "NATS_URL")
		}
	case EventTransportKafka:
		if len(c.KafkaBrokers) == 0 {
			return fmt.Errorf(ErrMsgMissingTransport, "EVENT_TRANSPORT=kafka", "KAFKA_BROKERS")
		}
	}

	return nil
}

// DiscordWebhookEnabled reports whether escalation alerts can be delivered
func (c *Config) DiscordWebhookEnabled() bool {
	return c.DiscordWebhookID != "" && c.DiscordWebhookToken != ""
}

// StatusThresholds returns the configured default thresholds
func (c *Config) StatusThresholds() domain.StatusThresholds {
	return domain.StatusThresholds{
		Social:   domain.TierThresholds{Medium: c.SocialMediumThreshold, Habitual: c.SocialHabitualThreshold},
		Gameplay: domain.TierThresholds{Medium: c.GameplayMediumThreshold, Habitual: c.GameplayHabitualThreshold},
	}
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return n
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return d
}

// getEnvAsList splits a comma-separated variable, dropping blanks
func getEnvAsList(key string) []string {
	value, exists := os.LookupEnv(key)
	if !exists {
		return nil
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// GetDBConnString returns the PostgreSQL connection string
func (c *Config) GetDBConnString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser,
		c.DBPassword,
		c.DBHost,
		c.DBPort,
		c.DBName,
	)
}

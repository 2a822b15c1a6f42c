package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net"
	"net/url"
	"os"
	"strings"

	"marketplace/internal/jobs"

	"github.com/joho/godotenv"
	"github.com/spf13/cast"
)

// Config is the process configuration read from the environment.
type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	JWTSecret string

	KafkaBrokers            []string
	KafkaNotificationsTopic string

	OutboxSchedule    string
	OutboxBatchSize   int
	OutboxMaxAttempts int

	LogLevel slog.Level
}

// LoadConfig reads the environment, after applying envFile when it exists.
// Variables already set in the environment take precedence over the file.
func LoadConfig(envFile string) (Config, error) {
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("failed to load %s: %w", envFile, err)
	}

	batchSize, batchErr := intVariable("OUTBOX_BATCH_SIZE", 50)
	maxAttempts, attemptsErr := intVariable("OUTBOX_MAX_ATTEMPTS", 10)

	var level slog.Level
	levelErr := level.UnmarshalText([]byte(variable("LOG_LEVEL", "info")))
	if levelErr != nil {
		levelErr = fmt.Errorf("LOG_LEVEL: %w", levelErr)
	}

	var secretErr error
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secretErr = errors.New("JWT_SECRET is required")
	}

	if err := errors.Join(batchErr, attemptsErr, levelErr, secretErr); err != nil {
		return Config{}, err
	}

	return Config{
		HTTPPort:                variable("HTTP_PORT", "8080"),
		DBHost:                  variable("DB_HOST", "localhost"),
		DBPort:                  variable("DB_PORT", "5432"),
		DBUser:                  variable("DB_USER", "postgres"),
		DBPassword:              os.Getenv("DB_PASSWORD"),
		DBName:                  variable("DB_NAME", "marketplace"),
		DBSslMode:               variable("DB_SSLMODE", "disable"),
		JWTSecret:               secret,
		KafkaBrokers:            splitList(variable("KAFKA_BROKERS", "localhost:9092")),
		KafkaNotificationsTopic: variable("KAFKA_NOTIFICATIONS_TOPIC", "notifications"),
		OutboxSchedule:          variable("OUTBOX_DISPATCH_SCHEDULE", jobs.DefaultOutboxSchedule),
		OutboxBatchSize:         batchSize,
		OutboxMaxAttempts:       maxAttempts,
		LogLevel:                level,
	}, nil
}

// DatabaseURL is the connection string shared by GORM and the migrator.
func (c Config) DatabaseURL() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.DBUser, c.DBPassword),
		Host:     net.JoinHostPort(c.DBHost, c.DBPort),
		Path:     "/" + c.DBName,
		RawQuery: url.Values{"sslmode": []string{c.DBSslMode}}.Encode(),
	}
	return u.String()
}

// variable returns the trimmed value of key, or fallback when unset.
func variable(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func intVariable(key string, fallback int) (int, error) {
	raw := variable(key, "")
	if raw == "" {
		return fallback, nil
	}
	v, err := cast.ToIntE(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return v, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

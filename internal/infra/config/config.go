package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings" // For LogLevel normalization
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// ErrConfiguration is returned by Load when the environment cannot produce a usable config.
// It is the only fatal error kind: the poll loop never starts when it is returned.
var ErrConfiguration = errors.New("configuration error")

const (
	DefaultEndpoint      = "https://practicum.yandex.ru/api/user_api/homework_statuses/"
	DefaultRetryInterval = 600 * time.Second
)

// AppConfig holds all configuration for the application
type AppConfig struct {
	PracticumToken string `validate:"required"`
	TelegramToken  string `validate:"required"`
	TelegramChatID string `validate:"required"`

	PracticumEndpoint string        `validate:"required,url"`
	RetryInterval     time.Duration `validate:"gte=1s"` // cron schedules have second precision
	HTTPTimeout       time.Duration `validate:"gte=0s"` // 0 keeps the transport default

	LogLevel      string
	Environment   string
	LogFile       string
	LogMaxSizeMB  int `validate:"gte=1"`
	LogMaxBackups int `validate:"gte=0"`

	NotifyErrors bool   // Forward loop failures to the chat
	MetricsAddr  string // Empty disables the /metrics endpoint
}

// envNames maps struct fields to the variables they are read from, used for error messages.
var envNames = map[string]string{
	"PracticumToken":    "PRACTICUM_TOKEN",
	"TelegramToken":     "TELEGRAM_TOKEN",
	"TelegramChatID":    "TELEGRAM_CHAT_ID",
	"PracticumEndpoint": "PRACTICUM_ENDPOINT",
	"RetryInterval":     "RETRY_INTERVAL",
	"HTTPTimeout":       "HTTP_TIMEOUT",
	"LogMaxSizeMB":      "LOG_MAX_SIZE_MB",
	"LogMaxBackups":     "LOG_MAX_BACKUPS",
}

// Load reads configuration from environment variables and .env file (if present).
func Load() (*AppConfig, error) {
	// godotenv.Load will not override existing env variables.
	_ = godotenv.Load()
	return FromEnv(os.Getenv)
}

// FromEnv builds and validates the config using getenv as the variable source.
func FromEnv(getenv func(string) string) (*AppConfig, error) {
	cfg := &AppConfig{
		PracticumToken:    strings.TrimSpace(getenv("PRACTICUM_TOKEN")),
		TelegramToken:     strings.TrimSpace(getenv("TELEGRAM_TOKEN")),
		TelegramChatID:    strings.TrimSpace(getenv("TELEGRAM_CHAT_ID")),
		PracticumEndpoint: getenv("PRACTICUM_ENDPOINT"),
		LogFile:           getenv("LOG_FILE"),
		MetricsAddr:       getenv("METRICS_ADDR"),
	}
	var err error

	if cfg.PracticumEndpoint == "" {
		cfg.PracticumEndpoint = DefaultEndpoint
	}
	if cfg.LogFile == "" {
		cfg.LogFile = "homework_bot.log"
	}

	cfg.LogLevel = strings.ToLower(getenv("LOG_LEVEL"))
	if cfg.LogLevel == "" {
		cfg.LogLevel = "debug" // the no-update heartbeat is logged at debug
	}

	cfg.Environment = strings.ToLower(getenv("ENVIRONMENT"))
	if cfg.Environment == "" {
		cfg.Environment = "development" // Default environment
	}

	if cfg.RetryInterval, err = durationOr(getenv, "RETRY_INTERVAL", DefaultRetryInterval); err != nil {
		return nil, err
	}
	if cfg.HTTPTimeout, err = durationOr(getenv, "HTTP_TIMEOUT", 0); err != nil {
		return nil, err
	}
	if cfg.LogMaxSizeMB, err = intOr(getenv, "LOG_MAX_SIZE_MB", 50); err != nil {
		return nil, err
	}
	if cfg.LogMaxBackups, err = intOr(getenv, "LOG_MAX_BACKUPS", 5); err != nil {
		return nil, err
	}

	cfg.NotifyErrors = true
	if v := getenv("NOTIFY_ERRORS"); v != "" {
		cfg.NotifyErrors, err = strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid NOTIFY_ERRORS: %v", ErrConfiguration, err)
		}
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, describeValidation(err)
	}

	return cfg, nil
}

func describeValidation(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", ErrConfiguration, err)
	}
	problems := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		name := envNames[fe.Field()]
		if name == "" {
			name = fe.Field()
		}
		if fe.Tag() == "required" {
			problems = append(problems, name+" is not set")
			continue
		}
		problems = append(problems, fmt.Sprintf("%s fails %q", name, fe.Tag()))
	}
	return fmt.Errorf("%w: %s", ErrConfiguration, strings.Join(problems, "; "))
}

func durationOr(getenv func(string) string, key string, def time.Duration) (time.Duration, error) {
	v := getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid %s: %v", ErrConfiguration, key, err)
	}
	return d, nil
}

func intOr(getenv func(string) string, key string, def int) (int, error) {
	v := getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid %s: %v", ErrConfiguration, key, err)
	}
	return n, nil
}

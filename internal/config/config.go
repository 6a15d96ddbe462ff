package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

var ErrMissingEnvironmentVariables = errors.New("missing required environment variables")

// Config holds application configuration loaded from files and environment variables.
type Config struct {
	Env              string `mapstructure:"env"`             // current application environment (local, dev, production etc)
	LogLevel         string `mapstructure:"log_level"`       // overrides the environment's default log level when set
	TelegramAPIToken string `mapstructure:"-"`               // Telegram API token loaded from environment
	GamesJSONPath    string `mapstructure:"games_json_path"` // path to JSON file with the game catalog
	MetricsAddr      string `mapstructure:"metrics_addr"`    // listen address of the Prometheus endpoint, empty disables it
	DB               DB     `mapstructure:"database"`        // database configuration section
	Quiz             Quiz   `mapstructure:"quiz"`            // quiz engine configuration section
}

// DB contains database-related configuration parameters.
type DB struct {
	URL             string        `mapstructure:"-"`                 // database connection string loaded from environment
	MaxConnections  int           `mapstructure:"max_connections"`   // maximum number of open connections in the pool
	MaxConnLifetime time.Duration `mapstructure:"max_conn_lifetime"` // maximum lifetime of a single connection
	MigrateOnStart  bool          `mapstructure:"migrate_on_start"`  // apply embedded migrations at startup
}

// Quiz contains quiz session parameters.
type Quiz struct {
	FeedbackDelay    time.Duration `mapstructure:"feedback_delay"`    // pause between an answer and the next question
	CompletionPolicy string        `mapstructure:"completion_policy"` // "once" or "every"
	CelebrationRatio float64       `mapstructure:"celebration_ratio"` // default share of max score that triggers a celebration
	SessionTTL       time.Duration `mapstructure:"session_ttl"`       // idle time after which a session is disposed
	JanitorSchedule  string        `mapstructure:"janitor_schedule"`  // cron spec of the idle session cleanup
}

// DSN returns the database connection string if it is configured.
func (db DB) DSN() (string, error) {
	if db.URL == "" {
		return "", ErrMissingEnvironmentVariables
	}
	return db.URL, nil
}

// Load reads configuration from config files and environment variables.
func Load() (*Config, error) {
	// Load .env for local runs; a missing file is fine.
	_ = godotenv.Load()

	// Initialize Viper instance and base config options.
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")

	setDefaults(v)

	// Configure environment variable handling and key mapping.
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_")) // map nested keys to ENV style names
	v.AutomaticEnv()

	// Bind explicit environment variables to configuration keys.
	_ = v.BindEnv("telegram_api_token", "TELEGRAM_API_TOKEN")
	_ = v.BindEnv("database_url", "DATABASE_URL")
	_ = v.BindEnv("env", "APP_ENV")

	// Try to read configuration file if present.
	if err := v.ReadInConfig(); err != nil {
		var fileLookupErr viper.ConfigFileNotFoundError
		if !errors.As(err, &fileLookupErr) {
			return nil, fmt.Errorf("error loading config file: %w", err)
		}
	}

	// Unmarshal configuration into strongly typed struct.
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	// Load sensitive values from environment variables.
	cfg.TelegramAPIToken = v.GetString("telegram_api_token")
	if cfg.TelegramAPIToken == "" {
		return nil, ErrMissingEnvironmentVariables
	}

	cfg.DB.URL = v.GetString("database_url")
	if cfg.DB.URL == "" {
		return nil, ErrMissingEnvironmentVariables
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("env", "local")
	v.SetDefault("games_json_path", "assets/data/games.json")
	v.SetDefault("metrics_addr", ":9090")
	v.SetDefault("database.max_connections", 20)
	v.SetDefault("database.max_conn_lifetime", "30s")
	v.SetDefault("database.migrate_on_start", true)
	v.SetDefault("quiz.feedback_delay", "1s")
	v.SetDefault("quiz.completion_policy", "once")
	v.SetDefault("quiz.celebration_ratio", 0.8)
	v.SetDefault("quiz.session_ttl", "30m")
	v.SetDefault("quiz.janitor_schedule", "@every 5m")
}

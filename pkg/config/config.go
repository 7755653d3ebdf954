package config

import (
	"errors"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

const defaultPageSize = 20

type Config struct {
	Env string

	API     APIConfig
	List    ListConfig
	Notify  NotifyConfig
	Form    FormConfig
	Log     LogConfig
	Metrics MetricsConfig
	Export  ExportConfig
	Stub    StubConfig
}

// APIConfig points the console at the inventory backend.
type APIConfig struct {
	BaseURL string
	Timeout time.Duration
}

// ListConfig tunes collection screens.
type ListConfig struct {
	PageSize int
}

// NotifyConfig controls toast lifetime.
type NotifyConfig struct {
	TTL time.Duration
}

// FormConfig toggles the save confirmation gate.
type FormConfig struct {
	ConfirmSaves bool
}

type LogConfig struct {
	Level  string
	Format string
}

// MetricsConfig exposes the Prometheus registry when Addr is set.
type MetricsConfig struct {
	Addr string
}

type ExportConfig struct {
	Dir       string
	Retention time.Duration
}

// StubConfig configures the development backend.
type StubConfig struct {
	Port           int
	Seed           bool
	AllowedOrigins []string
}

// Load reads configuration from .env, the environment and defaults.
func Load() (*Config, error) {
	return LoadWith(viper.New())
}

// LoadWith reads configuration into a caller-provided viper instance, which
// may already carry bound command line flags.
func LoadWith(v *viper.Viper) (*Config, error) {
	_ = godotenv.Load()

	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	cfg := &Config{}
	cfg.Env = v.GetString("ENV")

	cfg.API = APIConfig{
		BaseURL: strings.TrimRight(v.GetString("API_BASE_URL"), "/"),
		Timeout: parseDuration(v.GetString("API_TIMEOUT"), 10*time.Second),
	}

	pageSize := v.GetInt("PAGE_SIZE")
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	cfg.List = ListConfig{PageSize: pageSize}

	cfg.Notify = NotifyConfig{TTL: parseDuration(v.GetString("NOTIFY_TTL"), 3*time.Second)}
	cfg.Form = FormConfig{ConfirmSaves: v.GetBool("CONFIRM_SAVES")}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.Metrics = MetricsConfig{Addr: v.GetString("METRICS_ADDR")}
	cfg.Export = ExportConfig{
		Dir:       v.GetString("EXPORT_DIR"),
		Retention: parseDuration(v.GetString("EXPORT_RETENTION"), 7*24*time.Hour),
	}
	cfg.Stub = StubConfig{
		Port: v.GetInt("STUB_PORT"),
		Seed: v.GetBool("STUB_SEED"),
	}
	for _, origin := range strings.Split(v.GetString("STUB_ALLOWED_ORIGINS"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.Stub.AllowedOrigins = append(cfg.Stub.AllowedOrigins, origin)
		}
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)

	v.SetDefault("API_BASE_URL", "http://localhost:8080")
	v.SetDefault("API_TIMEOUT", "10s")
	v.SetDefault("PAGE_SIZE", defaultPageSize)

	v.SetDefault("NOTIFY_TTL", "3s")
	v.SetDefault("CONFIRM_SAVES", true)

	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "console")

	v.SetDefault("METRICS_ADDR", "")
	v.SetDefault("EXPORT_DIR", "./exports")
	v.SetDefault("EXPORT_RETENTION", "168h")

	v.SetDefault("STUB_PORT", 8080)
	v.SetDefault("STUB_SEED", true)
	v.SetDefault("STUB_ALLOWED_ORIGINS", "")
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		return fallback
	}

	return d
}

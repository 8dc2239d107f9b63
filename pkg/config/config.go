package config

import (
	"errors"
	"io/fs"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Env string

	Log       LogConfig
	Scheduler SchedulerConfig
	Catalog   CatalogConfig
}

type LogConfig struct {
	Level  string
	Format string
}

// SchedulerConfig tunes the generation engine.
type SchedulerConfig struct {
	ResultLimit int
}

// CatalogConfig locates the catalog snapshot consumed by the CLI.
type CatalogConfig struct {
	SnapshotPath string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		// A missing .env is fine; defaults and the process environment
		// cover every key. SetConfigFile reports the absence as a path
		// error rather than ConfigFileNotFoundError, so check both.
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.Scheduler = SchedulerConfig{
		ResultLimit: v.GetInt("SCHEDULER_RESULT_LIMIT"),
	}
	if cfg.Scheduler.ResultLimit <= 0 {
		cfg.Scheduler.ResultLimit = 500
	}

	cfg.Catalog = CatalogConfig{
		SnapshotPath: v.GetString("CATALOG_SNAPSHOT"),
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)

	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("SCHEDULER_RESULT_LIMIT", 500)
	v.SetDefault("CATALOG_SNAPSHOT", "./catalog.json")
}

package config

import (
	"time"

	"github.com/spf13/viper"
)

type (
	Config struct {
		HTTP
		Library
		Annex
		Thumbs
		Auth
		Janitor
		Tasks
		Global
	}

	HTTP struct {
		Port int32
		Host string
	}
	Library struct {
		Path string // Calibre metadata.db, opened read-only
	}
	Annex struct {
		Path string
	}
	Thumbs struct {
		Dir string // Data directory for thumbnail files
	}
	Auth struct {
		BcryptCost int
	}
	Janitor struct {
		Enabled  bool
		Schedule string // Cron format: "0 3 * * *" = daily at 03:00
	}
	Tasks struct {
		Workers           int
		ReleaseAfter      time.Duration
		CleanupInterval   time.Duration
		RetentionDuration time.Duration
	}
	Global struct {
		ShutdownTimeoutInSeconds int
	}
)

func NewConfig() *Config {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("port", 8089)
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("shutdown_timeout_in_seconds", 2)
	v.SetDefault("library_path", DefaultLibraryPath)
	v.SetDefault("annex_path", DefaultAnnexPath)
	v.SetDefault("data_dir", DefaultDataDir)
	v.SetDefault("auth_bcrypt_cost", 12)

	// Janitor defaults
	v.SetDefault("janitor_enabled", true)
	v.SetDefault("janitor_schedule", "0 3 * * *") // Daily at 03:00

	// Task queue defaults
	v.SetDefault("task_workers", 1)
	v.SetDefault("task_release_after", "15m")
	v.SetDefault("task_cleanup_interval", "1h")
	v.SetDefault("task_retention_duration", "24h")

	return &Config{
		HTTP: HTTP{
			Port: v.GetInt32("PORT"),
			Host: v.GetString("HOST"),
		},
		Library: Library{
			Path: v.GetString("LIBRARY_PATH"),
		},
		Annex: Annex{
			Path: v.GetString("ANNEX_PATH"),
		},
		Thumbs: Thumbs{
			Dir: v.GetString("DATA_DIR"),
		},
		Auth: Auth{
			BcryptCost: v.GetInt("AUTH_BCRYPT_COST"),
		},
		Janitor: Janitor{
			Enabled:  v.GetBool("JANITOR_ENABLED"),
			Schedule: v.GetString("JANITOR_SCHEDULE"),
		},
		Tasks: Tasks{
			Workers:           v.GetInt("TASK_WORKERS"),
			ReleaseAfter:      v.GetDuration("TASK_RELEASE_AFTER"),
			CleanupInterval:   v.GetDuration("TASK_CLEANUP_INTERVAL"),
			RetentionDuration: v.GetDuration("TASK_RETENTION_DURATION"),
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
		},
	}
}

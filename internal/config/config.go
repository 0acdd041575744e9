package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/xxxsen/common/logger"
)

type Config struct {
	Port            int              `json:"port"`
	JWTSecret       string           `json:"jwt_secret"`
	AccessTTLHours  int              `json:"access_ttl_hours"`
	RefreshTTLHours int              `json:"refresh_ttl_hours"`
	Database        DatabaseConfig   `json:"database"`
	FileStore       FileStoreConfig  `json:"file_store"`
	AI              AIConfig         `json:"ai"`
	Upload          UploadConfig     `json:"upload"`
	Cleanup         CleanupConfig    `json:"cleanup"`
	LogConfig       logger.LogConfig `json:"log_config"`
}

type DatabaseConfig struct {
	Host     string `json:"host"`
	Port     int    `json:"port"`
	User     string `json:"user"`
	Password string `json:"password"`
	DBName   string `json:"db_name"`
	SSLMode  string `json:"ssl_mode"`
}

type FileStoreConfig struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

type AIConfig struct {
	Provider       string      `json:"provider"`
	Model          string      `json:"model"`
	TimeoutSeconds int         `json:"timeout_seconds"`
	MaxInputChars  int         `json:"max_input_chars"`
	Data           interface{} `json:"data"`
}

type UploadConfig struct {
	MaxSizeMB int64 `json:"max_size_mb"`
}

type CleanupConfig struct {
	Enable   bool   `json:"enable"`
	CronSpec string `json:"cron_spec"`
	MinAgeH  int    `json:"min_age_hours"`
}

func Load(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	var cfg Config
	if err := json.NewDecoder(file).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if cfg.Port == 0 {
		return nil, fmt.Errorf("port is required")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("jwt_secret is required")
	}
	if cfg.Database.Host == "" || cfg.Database.DBName == "" {
		return nil, fmt.Errorf("database.host and database.db_name are required")
	}
	if cfg.Database.Port == 0 {
		cfg.Database.Port = 5432
	}
	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = "disable"
	}
	if cfg.AccessTTLHours == 0 {
		cfg.AccessTTLHours = 12
	}
	if cfg.RefreshTTLHours == 0 {
		cfg.RefreshTTLHours = 24 * 7
	}
	if cfg.AI.Provider == "" {
		return nil, fmt.Errorf("ai.provider is required")
	}
	if cfg.AI.Model == "" {
		cfg.AI.Model = "gemini-1.5-flash"
	}
	if cfg.AI.TimeoutSeconds == 0 {
		cfg.AI.TimeoutSeconds = 120
	}
	if cfg.Upload.MaxSizeMB == 0 {
		cfg.Upload.MaxSizeMB = 20
	}
	if cfg.FileStore.Type == "" {
		return nil, fmt.Errorf("file_store.type is required")
	}
	if cfg.Cleanup.CronSpec == "" {
		cfg.Cleanup.CronSpec = "0 3 * * *"
	}
	if cfg.Cleanup.MinAgeH == 0 {
		cfg.Cleanup.MinAgeH = 24
	}
	if cfg.LogConfig.Level == "" {
		cfg.LogConfig.Level = "info"
	}
	return &cfg, nil
}

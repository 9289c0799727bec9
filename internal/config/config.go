package config

import (
	"fmt"

	apperrors "asset-management-backend/internal/errors"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Environment string `mapstructure:"ENVIRONMENT"`
	Port        string `mapstructure:"PORT"`
	LogLevel    string `mapstructure:"LOG_LEVEL"`

	// Database configuration
	DatabaseURL      string `mapstructure:"DATABASE_URL"`
	DatabaseHost     string `mapstructure:"DB_HOST"`
	DatabasePort     string `mapstructure:"DB_PORT"`
	DatabaseUser     string `mapstructure:"DB_USER"`
	DatabasePassword string `mapstructure:"DB_PASSWORD"`
	DatabaseName     string `mapstructure:"DB_NAME"`
	DatabaseSSLMode  string `mapstructure:"DB_SSL_MODE"`
	DatabaseLogLevel string `mapstructure:"DB_LOG_LEVEL"`

	// CORS configuration
	AllowedOrigins []string `mapstructure:"ALLOWED_ORIGINS"`

	// Custody sentinels
	StockOwnerID         string `mapstructure:"STOCK_OWNER_ID"`
	StockOwnerName       string `mapstructure:"STOCK_OWNER_NAME"`
	MaintenanceOwnerID   string `mapstructure:"MAINTENANCE_OWNER_ID"`
	MaintenanceOwnerName string `mapstructure:"MAINTENANCE_OWNER_NAME"`

	// Import configuration
	ImportMaxUploadMB int `mapstructure:"IMPORT_MAX_UPLOAD_MB"`
	ImportBatchSize   int `mapstructure:"IMPORT_BATCH_SIZE"`
}

// Load reads configuration from environment variables and config files
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	// Set default values
	setDefaults()

	// Read config file if it exists
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	// Override with environment variables
	viper.AutomaticEnv()

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	// Build database URL if not provided
	if config.DatabaseURL == "" {
		config.DatabaseURL = buildDatabaseURL(&config)
	}

	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &config, nil
}

func setDefaults() {
	viper.SetDefault("ENVIRONMENT", "development")
	viper.SetDefault("PORT", "7008")
	viper.SetDefault("LOG_LEVEL", "info")

	// Database defaults. DATABASE_URL is registered empty so the environment can supply it.
	viper.SetDefault("DATABASE_URL", "")
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_USER", "postgres")
	viper.SetDefault("DB_PASSWORD", "postgres")
	viper.SetDefault("DB_NAME", "asset_management")
	viper.SetDefault("DB_SSL_MODE", "disable")
	viper.SetDefault("DB_LOG_LEVEL", "error")

	// CORS defaults
	viper.SetDefault("ALLOWED_ORIGINS", []string{"http://localhost:3000", "http://localhost:5173"})

	// Custody defaults
	viper.SetDefault("STOCK_OWNER_ID", "TI_STOCK")
	viper.SetDefault("STOCK_OWNER_NAME", "Estoque TI")
	viper.SetDefault("MAINTENANCE_OWNER_ID", "EXT_TECH")
	viper.SetDefault("MAINTENANCE_OWNER_NAME", "Assistência Técnica")

	// Import defaults
	viper.SetDefault("IMPORT_MAX_UPLOAD_MB", 10)
	viper.SetDefault("IMPORT_BATCH_SIZE", 500)
}

func buildDatabaseURL(config *Config) string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		config.DatabaseUser,
		config.DatabasePassword,
		config.DatabaseHost,
		config.DatabasePort,
		config.DatabaseName,
		config.DatabaseSSLMode,
	)
}

func validate(config *Config) error {
	if config.DatabaseName == "" {
		return apperrors.NewConfigurationError("database name is required")
	}

	if config.StockOwnerID == "" || config.StockOwnerName == "" {
		return apperrors.NewConfigurationError("STOCK_OWNER_ID and STOCK_OWNER_NAME are required")
	}

	if config.ImportMaxUploadMB <= 0 {
		return apperrors.NewConfigurationError("IMPORT_MAX_UPLOAD_MB must be positive")
	}

	if config.ImportBatchSize <= 0 {
		return apperrors.NewConfigurationError("IMPORT_BATCH_SIZE must be positive")
	}

	return nil
}

// IsDevelopment returns true if the environment is development
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction returns true if the environment is production
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

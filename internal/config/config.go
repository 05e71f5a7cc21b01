package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config structure represents the application configuration
type Config struct {
	Server struct {
		Port string `yaml:"port" env:"SERVER_PORT"`
		Mode string `yaml:"mode" env:"SERVER_MODE"`
	} `yaml:"server"`

	// Storage names the flat files that back the portal. When DataDir is empty
	// the files are located by searching the working directory and the
	// directories above the executable.
	Storage struct {
		DataDir         string `yaml:"data_dir" env:"PORTAL_DATA_DIR"`
		AccountsFile    string `yaml:"accounts_file" env:"PORTAL_ACCOUNTS_FILE"`
		CredentialsFile string `yaml:"credentials_file" env:"PORTAL_CREDENTIALS_FILE"`
		PaymentsFile    string `yaml:"payments_file" env:"PORTAL_PAYMENTS_FILE"`
		AttendanceFile  string `yaml:"attendance_file" env:"PORTAL_ATTENDANCE_FILE"`
		SchedulesFile   string `yaml:"schedules_file" env:"PORTAL_SCHEDULES_FILE"`
		GradesFile      string `yaml:"grades_file" env:"PORTAL_GRADES_FILE"`
	} `yaml:"storage"`

	JWT struct {
		Secret                string `yaml:"secret" env:"JWT_SECRET"`
		AccessTokenExpiration string `yaml:"access_token_expiration" env:"JWT_ACCESS_TOKEN_EXPIRATION"`
		Issuer                string `yaml:"issuer" env:"JWT_ISSUER"`
	} `yaml:"jwt"`

	Auth struct {
		HashPasswords     bool `yaml:"hash_passwords" env:"AUTH_HASH_PASSWORDS"`
		MinPasswordLength int  `yaml:"min_password_length" env:"AUTH_MIN_PASSWORD_LENGTH"`
	} `yaml:"auth"`

	Portal struct {
		DefaultSemester  string  `yaml:"default_semester" env:"PORTAL_DEFAULT_SEMESTER"`
		PaymentReference string  `yaml:"payment_reference" env:"PORTAL_PAYMENT_REFERENCE"`
		IDPrefix         string  `yaml:"id_prefix" env:"PORTAL_ID_PREFIX"`
		MaxAmountDue     float64 `yaml:"max_amount_due" env:"PORTAL_MAX_AMOUNT_DUE"`
		MaxBalance       float64 `yaml:"max_balance" env:"PORTAL_MAX_BALANCE"`
	} `yaml:"portal"`

	Logging struct {
		Level  string `yaml:"level" env:"LOG_LEVEL"`
		Format string `yaml:"format" env:"LOG_FORMAT"`
	} `yaml:"logging"`
}

// LoadConfig loads configuration from a .env file, a YAML file and environment
// variables, in that order of increasing precedence.
func LoadConfig(configPath string) (*Config, error) {
	return load(configPath, true)
}

// LoadToolConfig loads the configuration for offline tools that never sign
// tokens, so the JWT secret may be left unset.
func LoadToolConfig(configPath string) (*Config, error) {
	return load(configPath, false)
}

func load(configPath string, requireSecret bool) (*Config, error) {
	if err := loadDotEnv(filepath.Dir(configPath)); err != nil {
		return nil, err
	}

	config := &Config{}
	setDefaults(config)

	if _, err := os.Stat(configPath); err == nil {
		file, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		if err := yaml.Unmarshal(file, config); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	if err := loadFromEnv(config); err != nil {
		return nil, fmt.Errorf("failed to load from environment: %w", err)
	}

	if err := validateConfig(config, requireSecret); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// loadDotEnv loads <dir>/.env when present. Variables already set in the
// process environment win over the file.
func loadDotEnv(dir string) error {
	dotEnvPath := filepath.Join(dir, ".env")
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			return fmt.Errorf("failed to load %s: %w", dotEnvPath, err)
		}
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("failed to stat %s: %w", dotEnvPath, err)
	}
	return nil
}

// setDefaults sets default values for the configuration
func setDefaults(config *Config) {
	config.Server.Port = "8080"
	config.Server.Mode = "development"

	config.Storage.AccountsFile = "Database.txt"
	config.Storage.CredentialsFile = "UserPasswordID.txt"
	config.Storage.PaymentsFile = "paymentLogs.txt"
	config.Storage.AttendanceFile = "attendanceRecords.txt"
	config.Storage.SchedulesFile = "courseSchedules.txt"
	config.Storage.GradesFile = "gradeRecords.txt"

	config.JWT.AccessTokenExpiration = "8h"
	config.JWT.Issuer = "islu.portal"

	config.Auth.HashPasswords = false
	config.Auth.MinPasswordLength = 4

	config.Portal.DefaultSemester = "FIRST SEMESTER 2025-2026"
	config.Portal.PaymentReference = "FIRST SEMESTER 2025-2026 Enrollme."
	config.Portal.IDPrefix = "225"
	config.Portal.MaxAmountDue = 7000
	config.Portal.MaxBalance = 24000

	config.Logging.Level = "info"
	config.Logging.Format = "json"
}

// validateConfig ensures that the configuration is valid
func validateConfig(config *Config, requireSecret bool) error {
	if requireSecret && config.JWT.Secret == "" {
		return fmt.Errorf("JWT secret is required")
	}

	if _, err := time.ParseDuration(config.JWT.AccessTokenExpiration); err != nil {
		return fmt.Errorf("invalid JWT access token expiration format: %w", err)
	}

	names := map[string]string{
		"accounts_file":    config.Storage.AccountsFile,
		"credentials_file": config.Storage.CredentialsFile,
		"payments_file":    config.Storage.PaymentsFile,
		"attendance_file":  config.Storage.AttendanceFile,
		"schedules_file":   config.Storage.SchedulesFile,
		"grades_file":      config.Storage.GradesFile,
	}
	for key, name := range names {
		if strings.TrimSpace(name) == "" {
			return fmt.Errorf("storage.%s is required", key)
		}
		if strings.ContainsAny(name, `/\`) {
			return fmt.Errorf("storage.%s must be a bare file name, got %q", key, name)
		}
	}

	if len(config.Portal.IDPrefix) != 3 {
		return fmt.Errorf("portal.id_prefix must be three characters, got %q", config.Portal.IDPrefix)
	}

	if config.Portal.MaxAmountDue < 0 || config.Portal.MaxBalance < 0 {
		return fmt.Errorf("portal statement bounds must not be negative")
	}

	return nil
}

// IsProduction reports whether the server runs in production mode
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Server.Mode, "production")
}

// PrettyLogs reports whether console logging was requested
func (c *Config) PrettyLogs() bool {
	return strings.EqualFold(c.Logging.Format, "text")
}

// GetEnv gets an environment variable or returns a default value
func GetEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

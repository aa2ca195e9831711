package config

import (
	"os"
	"strconv"
	"strings"
)

type Config struct {
	Server   ServerConfig   `json:"server"`
	Database DatabaseConfig `json:"database"`
	Redis    RedisConfig    `json:"redis"`
	JWT      JWTConfig      `json:"jwt"`
	Email    EmailConfig    `json:"email"`
	NATS     NATSConfig     `json:"nats"`
	Worker   WorkerConfig   `json:"worker"`
	App      AppConfig      `json:"app"`
}

type ServerConfig struct {
	Port           string   `json:"port"`
	Host           string   `json:"host"`
	Mode           string   `json:"mode"`
	AllowedOrigins []string `json:"allowedOrigins"`
}

type DatabaseConfig struct {
	Host     string `json:"host"`
	Port     string `json:"port"`
	User     string `json:"user"`
	Password string `json:"password"`
	DBName   string `json:"dbname"`
	SSLMode  string `json:"sslmode"`
}

type RedisConfig struct {
	Host     string `json:"host"`
	Port     string `json:"port"`
	Password string `json:"password"`
	DB       string `json:"db"`
	URL      string `json:"url"` // Built from components or can be overridden
}

type JWTConfig struct {
	AccessSecret      string `json:"-"`
	RefreshSecret     string `json:"-"`
	AccessExpiryHours int    `json:"accessExpiryHours"`
	RefreshExpiryDays int    `json:"refreshExpiryDays"`
}

type EmailConfig struct {
	SendGridAPIKey string `json:"-"`
	SMTPHost       string `json:"smtpHost"`
	SMTPPort       int    `json:"smtpPort"`
	SMTPUsername   string `json:"smtpUsername"`
	SMTPPassword   string `json:"-"`
	From           string `json:"from"`
	FromName       string `json:"fromName"`
}

type NATSConfig struct {
	URL string `json:"url"`
}

type WorkerConfig struct {
	OverdueSweepEnabled  bool   `json:"overdueSweepEnabled"`
	OverdueSweepSchedule string `json:"overdueSweepSchedule"`
}

type AppConfig struct {
	Environment string `json:"environment"`
	Debug       bool   `json:"debug"`
	Version     string `json:"version"`
}

// NewConfig creates a new configuration instance with environment variables
func NewConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:           getEnv("PORT", "8080"),
			Host:           getEnv("HOST", "0.0.0.0"),
			Mode:           getEnv("GIN_MODE", "debug"),
			AllowedOrigins: getListEnv("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000", "http://localhost:5173"}),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "rentals_db"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Redis: buildRedisConfig(),
		JWT: JWTConfig{
			AccessSecret:      getEnv("JWT_ACCESS_SECRET", "dev-access-secret-change-me"),
			RefreshSecret:     getEnv("JWT_REFRESH_SECRET", "dev-refresh-secret-change-me"),
			AccessExpiryHours: getIntEnv("JWT_ACCESS_EXPIRY_HOURS", 1),
			RefreshExpiryDays: getIntEnv("JWT_REFRESH_EXPIRY_DAYS", 7),
		},
		Email: EmailConfig{
			SendGridAPIKey: os.Getenv("SENDGRID_API_KEY"),
			SMTPHost:       os.Getenv("SMTP_HOST"),
			SMTPPort:       getIntEnv("SMTP_PORT", 587),
			SMTPUsername:   os.Getenv("SMTP_USERNAME"),
			SMTPPassword:   os.Getenv("SMTP_PASSWORD"),
			From:           getEnv("EMAIL_FROM", "no-reply@rentals.local"),
			FromName:       getEnv("EMAIL_FROM_NAME", "Rental Manager"),
		},
		NATS: NATSConfig{
			URL: os.Getenv("NATS_URL"),
		},
		Worker: WorkerConfig{
			OverdueSweepEnabled:  getBoolEnv("OVERDUE_SWEEP_ENABLED", true),
			OverdueSweepSchedule: getEnv("OVERDUE_SWEEP_SCHEDULE", "0 0 2 * * *"),
		},
		App: AppConfig{
			Environment: getEnv("ENVIRONMENT", "development"),
			Debug:       getBoolEnv("DEBUG", true),
			Version:     getEnv("VERSION", "1.0.0"),
		},
	}
}

// buildRedisConfig builds the Redis configuration from environment variables
func buildRedisConfig() RedisConfig {
	// Explicit REDIS_URL override wins
	if url := os.Getenv("REDIS_URL"); url != "" {
		return RedisConfig{URL: url}
	}

	host := getEnv("REDIS_HOST", "localhost")
	port := getEnv("REDIS_PORT", "6379")
	password := os.Getenv("REDIS_PASSWORD")
	db := getEnv("REDIS_DB", "0")

	var url string
	if password != "" {
		url = "redis://:" + password + "@" + host + ":" + port + "/" + db
	} else {
		url = "redis://" + host + ":" + port + "/" + db
	}

	return RedisConfig{
		Host:     host,
		Port:     port,
		Password: password,
		DB:       db,
		URL:      url,
	}
}

// DSN returns the database connection string
func (c *DatabaseConfig) DSN() string {
	return "host=" + c.Host +
		" port=" + c.Port +
		" user=" + c.User +
		" password=" + c.Password +
		" dbname=" + c.DBName +
		" sslmode=" + c.SSLMode
}

// IsDevelopment checks if the app is running in development mode
func (c *AppConfig) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction checks if the app is running in production mode
func (c *AppConfig) IsProduction() bool {
	return c.Environment == "production"
}

// getEnv gets environment variable with fallback
func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// getBoolEnv gets boolean environment variable with fallback
func getBoolEnv(key string, fallback bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return fallback
}

// getIntEnv gets integer environment variable with fallback
func getIntEnv(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return fallback
}

// getListEnv gets a comma-separated environment variable with fallback
func getListEnv(key string, fallback []string) []string {
	if value := os.Getenv(key); value != "" {
		parts := strings.Split(value, ",")
		result := make([]string, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				result = append(result, trimmed)
			}
		}
		if len(result) > 0 {
			return result
		}
	}
	return fallback
}

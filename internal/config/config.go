package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config содержит конфигурацию сервера знаний романа.
// Загружается один раз при старте и дальше только читается.
type Config struct {
	// Настройки HTTP-сервера
	Port                string        `envconfig:"SERVER_PORT" default:"8000"`
	BasePath            string        `envconfig:"SERVER_BASE_PATH" default:"/api"`
	ReadTimeout         time.Duration `envconfig:"SERVER_READ_TIMEOUT" default:"15s"`
	IdleTimeout         time.Duration `envconfig:"SERVER_IDLE_TIMEOUT" default:"60s"`
	LogLevel            string        `envconfig:"LOG_LEVEL" default:"info"`
	CORSAllowedOrigins  []string      `envconfig:"CORS_ALLOWED_ORIGINS" default:"http://localhost:3000,http://localhost:5173"`

	// Настройки PostgreSQL
	DBHost        string        `envconfig:"DB_HOST" default:"localhost"`
	DBPort        string        `envconfig:"DB_PORT" default:"5432"`
	DBUser        string        `envconfig:"DB_USER" required:"true"`
	DBPassword    string        `envconfig:"DB_PASSWORD" required:"true"`
	DBName        string        `envconfig:"DB_NAME" required:"true"`
	DBSSLMode     string        `envconfig:"DB_SSL_MODE" default:"disable"`
	DBMaxConns    int           `envconfig:"DB_MAX_CONNECTIONS" default:"10"`
	DBIdleTimeout time.Duration `envconfig:"DB_MAX_IDLE_MINUTES" default:"5m"`

	// SecretKey - процессный секрет для шифрования API-ключей моделей.
	SecretKey string `envconfig:"SECRET_KEY" required:"true"`

	// Таймаут исходящих запросов к API моделей
	AITimeout time.Duration `envconfig:"AI_TIMEOUT" default:"300s"`
}

// GetDSN возвращает строку подключения (DSN) для PostgreSQL.
func (c *Config) GetDSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName, c.DBSSLMode)
}

// Load загружает конфигурацию из переменных окружения.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return &cfg, nil
}

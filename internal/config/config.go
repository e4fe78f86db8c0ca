package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config 应用配置
type Config struct {
	Env            string
	Port           string
	LogLevel       string
	DatabaseURL    string
	SessionTTL     time.Duration
	PosterMaxBytes int64

	// 启动时自动创建的管理员，邮箱为空则跳过
	AdminEmail    string
	AdminUsername string
	AdminPassword string
}

// Load 加载配置
func Load() *Config {
	ttlHours := getEnvInt("SESSION_TTL_HOURS", 24)
	if ttlHours <= 0 {
		ttlHours = 24
	}

	dbUser := getEnv("DB_USER", "postgres")
	dbPass := getEnv("DB_PASSWORD", "postgres")
	dbHost := getEnv("DB_HOST", "localhost")
	dbPort := getEnv("DB_PORT", "5432")
	dbName := getEnv("DB_NAME", "movies")
	dbSSL := getEnv("DB_SSLMODE", "disable")

	dbURL := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		dbUser, dbPass, dbHost, dbPort, dbName, dbSSL)

	return &Config{
		Env:            getEnv("APP_ENV", "development"),
		Port:           getEnv("PORT", "8080"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		DatabaseURL:    dbURL,
		SessionTTL:     time.Duration(ttlHours) * time.Hour,
		PosterMaxBytes: int64(getEnvInt("POSTER_MAX_BYTES", 5<<20)),
		AdminEmail:     getEnv("ADMIN_EMAIL", ""),
		AdminUsername:  getEnv("ADMIN_USERNAME", "admin"),
		AdminPassword:  getEnv("ADMIN_PASSWORD", ""),
	}
}

// IsProduction 是否生产环境
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	v, err := strconv.Atoi(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return v
}

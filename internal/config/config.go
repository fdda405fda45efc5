package config

import (
	"os"
	"strconv"
)

// Config 血糖录入工作站配置
type Config struct {
	API struct {
		// 后端服务地址（原 NEXT_PUBLIC_API_BASE_URL）
		BaseURL string
		Timeout int // 秒
	}

	Redis struct {
		Addr     string
		Password string
		DB       int
	}

	Auth struct {
		// 登录流程持久化的 cookie 文件路径
		CookieFile string
	}

	Log struct {
		Level  string
		Format string
	}
}

// Load 从环境变量加载配置（带默认值）
func Load() *Config {
	cfg := &Config{}

	cfg.API.BaseURL = getEnv("API_BASE_URL", "http://localhost:8080")
	cfg.API.Timeout = getEnvInt("API_TIMEOUT", 30)

	cfg.Redis.Addr = getEnv("REDIS_ADDR", "localhost:6379")
	cfg.Redis.Password = getEnv("REDIS_PASSWORD", "")
	cfg.Redis.DB = getEnvInt("REDIS_DB", 0)

	cfg.Auth.CookieFile = getEnv("AUTH_COOKIE_FILE", ".auth-cookie")

	cfg.Log.Level = getEnv("LOG_LEVEL", "info")
	cfg.Log.Format = getEnv("LOG_FORMAT", "json")

	return cfg
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

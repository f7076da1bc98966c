// File: internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config 應用程式全域設定
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"db"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Auth      AuthConfig      `mapstructure:"auth"`
	LLM       LLMConfig       `mapstructure:"llm"`
	Crisis    CrisisConfig    `mapstructure:"crisis"`
	Mail      MailConfig      `mapstructure:"mail"`
	Log       LogConfig       `mapstructure:"log"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	Worker    WorkerConfig    `mapstructure:"worker"`
}

type ServerConfig struct {
	Port int `mapstructure:"port"`
}

// Addr 回傳 Echo 監聽位址
func (s ServerConfig) Addr() string {
	return fmt.Sprintf(":%d", s.Port)
}

type DatabaseConfig struct {
	URL string `mapstructure:"url"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// AuthConfig JWT 與 OTP 相關設定
type AuthConfig struct {
	AccessTokenSecret        string        `mapstructure:"access_token_secret"`
	AccessTokenTTL           time.Duration `mapstructure:"access_token_ttl"`
	OTPTTL                   time.Duration `mapstructure:"otp_ttl"`
	RequireEmailVerification bool          `mapstructure:"require_email_verification"`
}

// LLMConfig 外部模型供應商設定
type LLMConfig struct {
	Provider     string        `mapstructure:"provider"`
	GroqAPIKey   string        `mapstructure:"groq_api_key"`
	GroqBaseURL  string        `mapstructure:"groq_base_url"`
	GroqModel    string        `mapstructure:"groq_model"`
	GoogleAPIKey string        `mapstructure:"google_api_key"`
	GeminiModel  string        `mapstructure:"gemini_model"`
	Timeout      time.Duration `mapstructure:"timeout"`
}

type CrisisConfig struct {
	Mode string `mapstructure:"mode"`
}

// MailConfig SMTP 寄信設定，Host 為空時停用寄信
type MailConfig struct {
	SMTPHost   string `mapstructure:"smtp_host"`
	SMTPPort   int    `mapstructure:"smtp_port"`
	Username   string `mapstructure:"username"`
	Password   string `mapstructure:"password"`
	From       string `mapstructure:"from"`
	AdminEmail string `mapstructure:"admin_email"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type RateLimitConfig struct {
	Limit  int           `mapstructure:"limit"`
	Window time.Duration `mapstructure:"window"`
}

type WorkerConfig struct {
	Count int `mapstructure:"count"`
}

// envBindings 設定鍵與環境變數的對應
var envBindings = map[string]string{
	"server.port":                     "PORT",
	"db.url":                          "DATABASE_URL",
	"redis.addr":                      "REDIS_ADDR",
	"redis.password":                  "REDIS_PASSWORD",
	"redis.db":                        "REDIS_DB",
	"auth.access_token_secret":        "ACCESS_TOKEN_SECRET",
	"auth.access_token_ttl":           "ACCESS_TOKEN_TTL",
	"auth.otp_ttl":                    "OTP_TTL",
	"auth.require_email_verification": "REQUIRE_EMAIL_VERIFICATION",
	"llm.provider":                    "LLM_PROVIDER",
	"llm.groq_api_key":                "GROQ_API_KEY",
	"llm.groq_base_url":               "GROQ_BASE_URL",
	"llm.groq_model":                  "GROQ_MODEL",
	"llm.google_api_key":              "GOOGLE_API_KEY",
	"llm.gemini_model":                "GEMINI_MODEL",
	"llm.timeout":                     "LLM_TIMEOUT",
	"crisis.mode":                     "CRISIS_MODE",
	"mail.smtp_host":                  "SMTP_HOST",
	"mail.smtp_port":                  "SMTP_PORT",
	"mail.username":                   "SMTP_USERNAME",
	"mail.password":                   "SMTP_PASSWORD",
	"mail.from":                       "SMTP_FROM",
	"mail.admin_email":                "ADMIN_EMAIL",
	"log.level":                       "LOG_LEVEL",
	"log.format":                      "LOG_FORMAT",
	"rate_limit.limit":                "RATE_LIMIT",
	"rate_limit.window":               "RATE_LIMIT_WINDOW",
	"worker.count":                    "WORKER_COUNT",
}

// loadDotEnv 讀取 .env，檔案不存在時忽略
var loadDotEnv = func() { _ = godotenv.Load() }

// Load 從設定檔與環境變數載入設定
// 優先順序：環境變數 > 設定檔 > 預設值
func Load(path string) (*Config, error) {
	loadDotEnv()

	v := viper.New()

	v.SetDefault("server.port", 3000)
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.db", 0)
	v.SetDefault("auth.access_token_ttl", "2h")
	v.SetDefault("auth.otp_ttl", "5m")
	v.SetDefault("auth.require_email_verification", false)
	v.SetDefault("llm.provider", "gemini")
	v.SetDefault("llm.groq_base_url", "https://api.groq.com/openai/v1")
	v.SetDefault("llm.groq_model", "llama-3.3-70b-versatile")
	v.SetDefault("llm.gemini_model", "gemini-2.5-flash")
	v.SetDefault("llm.timeout", "30s")
	v.SetDefault("crisis.mode", "keyword")
	v.SetDefault("mail.smtp_port", 587)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("rate_limit.limit", 20)
	v.SetDefault("rate_limit.window", "1m")
	v.SetDefault("worker.count", 2)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./config")
		v.AddConfigPath(".")
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("綁定環境變數 %s 失敗: %w", env, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("讀取設定檔失敗: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("解析設定失敗: %w", err)
	}
	cfg.LLM.Provider = strings.ToLower(cfg.LLM.Provider)
	cfg.Crisis.Mode = strings.ToLower(cfg.Crisis.Mode)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate 檢查關鍵設定
func (c *Config) Validate() error {
	if c.Database.URL == "" {
		return fmt.Errorf("設定檢查失敗: DATABASE_URL 未設定")
	}
	if c.Redis.Addr == "" {
		return fmt.Errorf("設定檢查失敗: REDIS_ADDR 未設定")
	}
	if c.Auth.AccessTokenSecret == "" {
		return fmt.Errorf("設定檢查失敗: ACCESS_TOKEN_SECRET 未設定")
	}
	if c.Auth.AccessTokenTTL <= 0 {
		return fmt.Errorf("設定檢查失敗: ACCESS_TOKEN_TTL 必須大於 0")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("設定檢查失敗: PORT 必須在 1-65535 之間")
	}
	switch c.LLM.Provider {
	case "groq", "gemini":
	default:
		return fmt.Errorf("設定檢查失敗: 未知的 LLM_PROVIDER %q", c.LLM.Provider)
	}
	switch c.Crisis.Mode {
	case "keyword", "model", "keyword_then_model":
	default:
		return fmt.Errorf("設定檢查失敗: 未知的 CRISIS_MODE %q", c.Crisis.Mode)
	}
	if c.Worker.Count <= 0 {
		return fmt.Errorf("設定檢查失敗: WORKER_COUNT 必須大於 0")
	}
	return nil
}

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/campus")
	t.Setenv("REDIS_ADDR", "127.0.0.1:6379")
	t.Setenv("ACCESS_TOKEN_SECRET", "secret")
}

func noDotEnv(t *testing.T) {
	orig := loadDotEnv
	loadDotEnv = func() {}
	t.Cleanup(func() { loadDotEnv = orig })
}

func TestLoadDefaults(t *testing.T) {
	noDotEnv(t)
	setRequiredEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	require.Nil(t, cfg)

	cfg, err = Load("")
	require.NoError(t, err)
	require.Equal(t, 3000, cfg.Server.Port)
	require.Equal(t, ":3000", cfg.Server.Addr())
	require.Equal(t, 2*time.Hour, cfg.Auth.AccessTokenTTL)
	require.Equal(t, 5*time.Minute, cfg.Auth.OTPTTL)
	require.Equal(t, "gemini", cfg.LLM.Provider)
	require.Equal(t, "keyword", cfg.Crisis.Mode)
	require.Equal(t, 2, cfg.Worker.Count)
	require.Equal(t, "secret", cfg.Auth.AccessTokenSecret)
}

func TestLoadEnvOverride(t *testing.T) {
	noDotEnv(t)
	setRequiredEnv(t)
	t.Setenv("PORT", "8081")
	t.Setenv("LLM_PROVIDER", "Groq")
	t.Setenv("GROQ_API_KEY", "gk")
	t.Setenv("CRISIS_MODE", "keyword_then_model")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("ACCESS_TOKEN_TTL", "90m")

	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, 8081, cfg.Server.Port)
	require.Equal(t, "groq", cfg.LLM.Provider)
	require.Equal(t, "gk", cfg.LLM.GroqAPIKey)
	require.Equal(t, "keyword_then_model", cfg.Crisis.Mode)
	require.Equal(t, 3, cfg.Redis.DB)
	require.Equal(t, 90*time.Minute, cfg.Auth.AccessTokenTTL)
}

func TestLoadConfigFile(t *testing.T) {
	noDotEnv(t)
	setRequiredEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log:\n  level: debug\nworker:\n  count: 4\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "debug", cfg.Log.Level)
	require.Equal(t, 4, cfg.Worker.Count)
}

func TestLoadMissingSecret(t *testing.T) {
	noDotEnv(t)
	setRequiredEnv(t)
	t.Setenv("ACCESS_TOKEN_SECRET", "")
	_, err := Load("")
	require.ErrorContains(t, err, "ACCESS_TOKEN_SECRET")
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{
			Server:   ServerConfig{Port: 3000},
			Database: DatabaseConfig{URL: "db"},
			Redis:    RedisConfig{Addr: "r"},
			Auth:     AuthConfig{AccessTokenSecret: "s", AccessTokenTTL: time.Hour},
			LLM:      LLMConfig{Provider: "groq"},
			Crisis:   CrisisConfig{Mode: "model"},
			Worker:   WorkerConfig{Count: 1},
		}
	}
	c := valid()
	require.NoError(t, c.Validate())

	cases := map[string]func(*Config){
		"db":       func(c *Config) { c.Database.URL = "" },
		"redis":    func(c *Config) { c.Redis.Addr = "" },
		"secret":   func(c *Config) { c.Auth.AccessTokenSecret = "" },
		"ttl":      func(c *Config) { c.Auth.AccessTokenTTL = 0 },
		"port":     func(c *Config) { c.Server.Port = 70000 },
		"provider": func(c *Config) { c.LLM.Provider = "openai" },
		"mode":     func(c *Config) { c.Crisis.Mode = "always" },
		"worker":   func(c *Config) { c.Worker.Count = 0 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			c := valid()
			mutate(&c)
			require.Error(t, c.Validate())
		})
	}
}

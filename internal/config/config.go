package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/mrwolf/schedcheck/internal/verify"
)

type Config struct {
	Port             string
	DBPath           string
	AuditPath        string
	OllamaURL        string
	OllamaModel      string
	OllamaModelHeavy string
	TokenService     string
	TokenAdmin       string
	Timezone         string
	RetentionDays    int
	WindowMorning    string
	WindowAfternoon  string
	WindowEvening    string
}

func Load() (*Config, error) {
	cfg := &Config{
		Port:             getEnv("SCHEDCHECK_PORT", "8080"),
		DBPath:           getEnv("SCHEDCHECK_DB_PATH", ""),
		AuditPath:        getEnv("SCHEDCHECK_AUDIT_PATH", ""),
		OllamaURL:        getEnv("SCHEDCHECK_OLLAMA_URL", "http://localhost:11434"),
		OllamaModel:      getEnv("SCHEDCHECK_OLLAMA_MODEL", "qwen2.5:7b"),
		OllamaModelHeavy: getEnv("SCHEDCHECK_OLLAMA_MODEL_HEAVY", "qwen2.5:14b"),
		TokenService:     getEnv("SCHEDCHECK_TOKEN_SERVICE", ""),
		TokenAdmin:       getEnv("SCHEDCHECK_TOKEN_ADMIN", ""),
		Timezone:         getEnv("SCHEDCHECK_TIMEZONE", "UTC"),
		WindowMorning:    getEnv("SCHEDCHECK_WINDOW_MORNING", "08:00-12:00"),
		WindowAfternoon:  getEnv("SCHEDCHECK_WINDOW_AFTERNOON", "12:00-17:00"),
		WindowEvening:    getEnv("SCHEDCHECK_WINDOW_EVENING", "17:00-21:00"),
	}

	retention := getEnv("SCHEDCHECK_RETENTION_DAYS", "90")
	days, err := strconv.Atoi(retention)
	if err != nil || days <= 0 {
		return nil, fmt.Errorf("SCHEDCHECK_RETENTION_DAYS must be a positive integer, got %q", retention)
	}
	cfg.RetentionDays = days

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.DBPath == "" {
		return fmt.Errorf("SCHEDCHECK_DB_PATH is required")
	}
	if c.AuditPath == "" {
		return fmt.Errorf("SCHEDCHECK_AUDIT_PATH is required")
	}
	if c.TokenService == "" && c.TokenAdmin == "" {
		return fmt.Errorf("at least one of SCHEDCHECK_TOKEN_SERVICE or SCHEDCHECK_TOKEN_ADMIN is required")
	}
	if _, err := c.Windows(); err != nil {
		return err
	}
	return nil
}

// Windows builds the ambiguous-window boundaries from config.
func (c *Config) Windows() (verify.Windows, error) {
	return verify.ParseWindows(c.WindowMorning, c.WindowAfternoon, c.WindowEvening)
}

func (c *Config) ActorFromToken(token string) (string, bool) {
	switch token {
	case c.TokenService:
		if c.TokenService != "" {
			return "service", true
		}
	case c.TokenAdmin:
		if c.TokenAdmin != "" {
			return "admin", true
		}
	}
	return "", false
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

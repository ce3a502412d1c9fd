package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server    ServerConfig
	Site      SiteConfig
	Knowledge KnowledgeConfig
	Assistant AssistantConfig
	Gemini    GeminiConfig
	GigaChat  GigaChatConfig
	SMTP      SMTPConfig
	Database  DatabaseConfig
	JWT       JWTConfig
	RateLimit RateLimitConfig
	Logger    LoggerConfig
}

type LoggerConfig struct {
	Level  string
	Format string // json or console
}

type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	StaticDir    string
}

type SiteConfig struct {
	LinkBase     string
	ContactPhone string
	ContactEmail string
}

type KnowledgeConfig struct {
	// Paths are tried before the default candidates.
	Paths []string
}

type AssistantConfig struct {
	MaxSentences       int
	TruncateTo         int
	GenerativeFallback bool
	Provider           string // gemini or gigachat
	Timeout            time.Duration
	CacheSize          int
}

type GeminiConfig struct {
	APIKey string
	Model  string
}

type GigaChatConfig struct {
	APIKey             string
	Scope              string
	InsecureSkipVerify bool
}

type SMTPConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
	FromName string
	To       string
}

// Missing returns the first unset variable the mailer needs, or "".
func (c SMTPConfig) Missing() string {
	switch {
	case c.Host == "":
		return "SMTP_HOST"
	case c.Port == 0:
		return "SMTP_PORT"
	case c.User == "":
		return "SMTP_USER"
	case c.Password == "":
		return "SMTP_PASS"
	case c.From == "":
		return "CONTACT_FROM_EMAIL"
	case c.To == "":
		return "CONTACT_TO_EMAIL"
	}
	return ""
}

type DatabaseConfig struct {
	Enabled  bool
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type JWTConfig struct {
	SecretKey  string
	Expiration time.Duration
	RefreshExp time.Duration
}

type RateLimitConfig struct {
	ChatPerMinute    int
	ContactPerMinute int
}

func Load() (*Config, error) {
	// .env is optional; plain environment variables work too (Docker/K8s)
	for _, envFile := range []string{".env", "../.env", "../../.env"} {
		if err := godotenv.Load(envFile); err == nil {
			break
		}
	}

	readTimeout := getEnvInt("SERVER_READ_TIMEOUT", 30)
	writeTimeout := getEnvInt("SERVER_WRITE_TIMEOUT", 30)
	jwtExp := getEnvInt("JWT_EXPIRATION_HOURS", 24)
	refreshExp := getEnvInt("JWT_REFRESH_EXPIRATION_HOURS", 168)
	llmTimeout := getEnvInt("ASSISTANT_LLM_TIMEOUT_SECONDS", 12)

	return &Config{
		Server: ServerConfig{
			Port:         getEnv("SERVER_PORT", "8080"),
			ReadTimeout:  time.Duration(readTimeout) * time.Second,
			WriteTimeout: time.Duration(writeTimeout) * time.Second,
			StaticDir:    getEnv("WEB_STATIC_DIR", ""),
		},
		Site: SiteConfig{
			LinkBase:     getEnv("SITE_LINK_BASE", ""),
			ContactPhone: getEnv("SITE_CONTACT_PHONE", "866-790-3014"),
			ContactEmail: getEnv("SITE_CONTACT_EMAIL", "hello@veyemedia.co"),
		},
		Knowledge: KnowledgeConfig{
			Paths: splitList(getEnv("KNOWLEDGE_PATH", "")),
		},
		Assistant: AssistantConfig{
			MaxSentences:       getEnvInt("ASSISTANT_MAX_SENTENCES", 5),
			TruncateTo:         getEnvInt("ASSISTANT_TRUNCATE_TO", 3),
			GenerativeFallback: getEnvBool("ASSISTANT_GENERATIVE_FALLBACK", false),
			Provider:           strings.ToLower(getEnv("ASSISTANT_LLM_PROVIDER", "gemini")),
			Timeout:            time.Duration(llmTimeout) * time.Second,
			CacheSize:          getEnvInt("ASSISTANT_LLM_CACHE_SIZE", 256),
		},
		Gemini: GeminiConfig{
			APIKey: getEnv("GEMINI_API_KEY", ""),
			Model:  getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
		},
		GigaChat: GigaChatConfig{
			APIKey:             getEnv("GIGACHAT_API_KEY", ""),
			Scope:              getEnv("GIGACHAT_SCOPE", "GIGACHAT_API_PERS"),
			InsecureSkipVerify: getEnvBool("GIGACHAT_INSECURE_SKIP_VERIFY", false),
		},
		SMTP: SMTPConfig{
			Host:     getEnv("SMTP_HOST", ""),
			Port:     getEnvInt("SMTP_PORT", 587),
			User:     getEnv("SMTP_USER", ""),
			Password: getEnv("SMTP_PASS", ""),
			From:     getEnv("CONTACT_FROM_EMAIL", ""),
			FromName: getEnv("CONTACT_FROM_NAME", "Veye Media"),
			To:       getEnv("CONTACT_TO_EMAIL", ""),
		},
		Database: DatabaseConfig{
			Enabled:  getEnvBool("DB_ENABLED", false),
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "veye_site"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		JWT: JWTConfig{
			SecretKey:  getEnv("JWT_SECRET_KEY", "your-secret-key-change-in-production"),
			Expiration: time.Duration(jwtExp) * time.Hour,
			RefreshExp: time.Duration(refreshExp) * time.Hour,
		},
		RateLimit: RateLimitConfig{
			ChatPerMinute:    getEnvInt("RATE_LIMIT_CHAT_PER_MINUTE", 30),
			ContactPerMinute: getEnvInt("RATE_LIMIT_CONTACT_PER_MINUTE", 5),
		},
		Logger: LoggerConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
	}, nil
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

func getEnvBool(key string, defaultValue bool) bool {
	v, err := strconv.ParseBool(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return v
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

package app

import (
	"os"
	"strconv"
	"strings"
)

// Config stores runtime configuration loaded from environment variables.
type Config struct {
	AppEnv             string
	HTTPAddr           string
	PortalDBPath       string
	DefaultExamMinutes int
	CSRFEnforced       bool
	RateLimitPerMin    int

	RegistryBaseURL      string
	RegistryCitizenToken string
	RegistryAdminToken   string

	SessionSecret     string
	AdminUsername     string
	AdminPasswordHash string

	SMTPHost string
	SMTPPort int
	SMTPUser string
	SMTPPass string
	SMTPFrom string

	OpenAIAPIKey string
	OpenAIModel  string
}

func LoadConfig() Config {
	smtpPort := 587
	if p := stringsToInt(os.Getenv("SMTP_PORT")); p > 0 {
		smtpPort = p
	}

	return Config{
		AppEnv:             envOrDefault("APP_ENV", "development"),
		HTTPAddr:           envOrDefault("HTTP_ADDR", ":8080"),
		PortalDBPath:       envOrDefault("PORTAL_DB_PATH", "licsim.db"),
		DefaultExamMinutes: intOrDefault("EXAM_MINUTES", 30),
		CSRFEnforced:       boolOrDefault("CSRF_ENFORCED", false),
		RateLimitPerMin:    intOrDefault("RATE_LIMIT_PER_MINUTE", 120),

		RegistryBaseURL:      envOrDefault("REGISTRY_BASE_URL", "http://localhost:9090"),
		RegistryCitizenToken: os.Getenv("REGISTRY_CITIZEN_TOKEN"),
		RegistryAdminToken:   os.Getenv("REGISTRY_ADMIN_TOKEN"),

		SessionSecret:     envOrDefault("SESSION_SECRET", "dev-session-secret"),
		AdminUsername:     envOrDefault("ADMIN_USERNAME", "admin"),
		AdminPasswordHash: os.Getenv("ADMIN_PASSWORD_HASH"),

		SMTPHost: os.Getenv("SMTP_HOST"),
		SMTPPort: smtpPort,
		SMTPUser: os.Getenv("SMTP_USER"),
		SMTPPass: os.Getenv("SMTP_PASS"),
		SMTPFrom: envOrDefault("SMTP_FROM", "noreply@licsim.local"),

		OpenAIAPIKey: os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:  os.Getenv("OPENAI_MODEL"),
	}
}

func envOrDefault(key, fallback string) string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return v
}

func stringsToInt(v string) int {
	n, _ := strconv.Atoi(v)
	return n
}

func intOrDefault(key string, fallback int) int {
	v := stringsToInt(os.Getenv(key))
	if v <= 0 {
		return fallback
	}
	return v
}

func boolOrDefault(key string, fallback bool) bool {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	switch strings.ToLower(v) {
	case "1", "true", "yes", "y", "on":
		return true
	case "0", "false", "no", "n", "off":
		return false
	default:
		return fallback
	}
}

package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration.
type Config struct {
	AppName     string
	AppVersion  string
	Environment string
	HTTPAddr    string
	LogLevel    string

	DBType            string
	DBHost            string
	DBPort            string
	DBName            string
	DBUser            string
	DBPassword        string
	DBSSLMode         string
	DBMaxIdleConn     int
	DBMaxOpenConn     int
	DBConnMaxLifetime int

	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	SMTPFrom     string

	WhatsAppBaseURL  string
	WhatsAppInstance string
	WhatsAppToken    string

	EmpresaNombre string
	EmpresaEmail  string

	// ProcesoRunInterval controls the automation loop cadence; the intended
	// production cadence is one run per day.
	ProcesoRunInterval time.Duration
	ProcesoEnabled     bool
	DispatchTimeout    time.Duration

	SeedDemo bool
}

// Load loads configuration from environment variables and .env file.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		AppName:     getenv("APP_SERVICE", "cobranza"),
		AppVersion:  getenv("APP_VERSION", "0.1.0"),
		Environment: getenv("ENVIRONMENT", "development"),
		HTTPAddr:    getenv("HTTP_ADDR", ":8080"),
		LogLevel:    getenv("LOG_LEVEL", "info"),

		DBType:            getenv("DATABASE_TYPE", "postgres"),
		DBHost:            getenv("DATABASE_HOST", "localhost"),
		DBPort:            getenv("DATABASE_PORT", "5432"),
		DBName:            getenv("DATABASE_NAME", "cobranza"),
		DBUser:            getenv("DATABASE_USER", "postgres"),
		DBPassword:        getenv("DATABASE_PASSWORD", "postgres"),
		DBSSLMode:         getenv("DATABASE_SSLMODE", "disable"),
		DBMaxIdleConn:     getenvInt("DATABASE_MAX_IDLE_CONN", 5),
		DBMaxOpenConn:     getenvInt("DATABASE_MAX_OPEN_CONN", 20),
		DBConnMaxLifetime: getenvInt("DATABASE_CONN_MAX_LIFETIME", 3600),

		SMTPHost:     getenv("SMTP_HOST", ""),
		SMTPPort:     getenvInt("SMTP_PORT", 587),
		SMTPUsername: getenv("SMTP_USER", ""),
		SMTPPassword: getenv("SMTP_PASS", ""),
		SMTPFrom:     getenv("SMTP_FROM", ""),

		WhatsAppBaseURL:  strings.TrimRight(getenv("WHATSAPP_BASE_URL", ""), "/"),
		WhatsAppInstance: getenv("WHATSAPP_INSTANCE", ""),
		WhatsAppToken:    getenv("WHATSAPP_TOKEN", ""),

		EmpresaNombre: getenv("EMPRESA_NOMBRE", "Estudio Contable Andino"),
		EmpresaEmail:  getenv("EMPRESA_EMAIL", "cobranzas@estudioandino.pe"),

		ProcesoRunInterval: getenvDuration("PROCESO_RUN_INTERVAL", 24*time.Hour),
		ProcesoEnabled:     getenvBool("PROCESO_ENABLED", true),
		DispatchTimeout:    getenvDuration("DISPATCH_TIMEOUT", 10*time.Second),

		SeedDemo: getenvBool("SEED_DEMO", false),
	}
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return def
	}
	return parsed
}

func getenvBool(key string, def bool) bool {
	value := strings.ToLower(strings.TrimSpace(os.Getenv(key)))
	if value == "" {
		return def
	}
	switch value {
	case "1", "true", "yes", "y", "on":
		return true
	case "0", "false", "no", "n", "off":
		return false
	default:
		return def
	}
}

func getenvDuration(key string, def time.Duration) time.Duration {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return def
	}
	return parsed
}

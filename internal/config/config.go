package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application level configuration loaded from environment and flags.
type Config struct {
	RunAddress      string
	DatabaseURI     string
	JWTSecret       string
	TokenTTL        time.Duration
	BcryptCost      int
	ShutdownTimeout time.Duration
	LogLevel        string
	StoreName       string
	MetricsPath     string
	Mail            MailConfig
}

// MailConfig describes the outbound SMTP transport for delivery notes.
type MailConfig struct {
	Provider string
	Host     string
	Port     int
	Secure   bool
	Username string
	Password string
	From     string
	Timeout  time.Duration
}

// Enabled reports whether enough is known to open an SMTP session.
func (m MailConfig) Enabled() bool {
	return m.Host != "" && m.From != ""
}

const (
	defaultRunAddress      = ":8080"
	defaultJWTSecret       = "change-me-in-production"
	defaultTokenTTL        = 24 * time.Hour
	defaultBcryptCost      = 10
	defaultShutdownTimeout = 10 * time.Second
	defaultLogLevel        = "info"
	defaultStoreName       = "TatooTenda"
	defaultMetricsPath     = "/metrics"
	defaultEnvFile         = ".env"
	defaultEmailProvider   = ProviderSMTP
	defaultSMTPPort        = 587
	defaultSMTPTimeout     = 15 * time.Second
)

// Supported EMAIL_PROVIDER values.
const (
	ProviderGmail    = "gmail"
	ProviderSendGrid = "sendgrid"
	ProviderSMTP     = "smtp"
)

// Load reads an optional dotenv file, then parses environment variables and flags.
func Load() (*Config, error) {
	if err := loadDotEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	return load(os.Args[1:], os.LookupEnv)
}

type envLookup func(string) (string, bool)

// loadDotEnv never overrides variables already present in the environment.
func loadDotEnv(lookup envLookup) error {
	path := getString(lookup, "ENV_FILE", defaultEnvFile)
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load env file %s: %w", path, err)
	}
	return nil
}

func load(args []string, lookup envLookup) (*Config, error) {
	cfg := &Config{
		RunAddress:      getString(lookup, "RUN_ADDRESS", defaultRunAddress),
		DatabaseURI:     getString(lookup, "DATABASE_URI", ""),
		JWTSecret:       getString(lookup, "JWT_SECRET", defaultJWTSecret),
		TokenTTL:        getDuration(lookup, "JWT_EXPIRES_IN", defaultTokenTTL),
		BcryptCost:      getInt(lookup, "BCRYPT_COST", defaultBcryptCost),
		ShutdownTimeout: getDuration(lookup, "SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
		LogLevel:        getString(lookup, "LOG_LEVEL", defaultLogLevel),
		StoreName:       getString(lookup, "STORE_NAME", defaultStoreName),
		MetricsPath:     getString(lookup, "METRICS_PATH", defaultMetricsPath),
	}
	cfg.Mail.Provider = getString(lookup, "EMAIL_PROVIDER", defaultEmailProvider)

	flags := flag.NewFlagSet("shop", flag.ContinueOnError)
	flags.SetOutput(io.Discard)

	var (
		tokenTTLStr        = cfg.TokenTTL.String()
		shutdownTimeoutStr = cfg.ShutdownTimeout.String()
	)

	flags.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "HTTP server listen address")
	flags.StringVar(&cfg.DatabaseURI, "d", cfg.DatabaseURI, "PostgreSQL DSN")
	flags.StringVar(&cfg.JWTSecret, "jwt-secret", cfg.JWTSecret, "Secret for signing auth tokens")
	flags.StringVar(&tokenTTLStr, "token-ttl", tokenTTLStr, "Lifetime of issued auth tokens")
	flags.IntVar(&cfg.BcryptCost, "bcrypt-cost", cfg.BcryptCost, "Password hashing cost")
	flags.StringVar(&shutdownTimeoutStr, "shutdown-timeout", shutdownTimeoutStr, "Graceful shutdown timeout")
	flags.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level: debug, info, warn, error")
	flags.StringVar(&cfg.StoreName, "store-name", cfg.StoreName, "Store name printed on delivery notes")
	flags.StringVar(&cfg.MetricsPath, "metrics-path", cfg.MetricsPath, "Prometheus endpoint path, empty disables it")
	flags.StringVar(&cfg.Mail.Provider, "email-provider", cfg.Mail.Provider, "Mail provider: gmail, sendgrid, smtp")

	if err := flags.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	var err error

	if cfg.TokenTTL, err = time.ParseDuration(tokenTTLStr); err != nil {
		return nil, fmt.Errorf("invalid token ttl: %w", err)
	}

	if cfg.ShutdownTimeout, err = time.ParseDuration(shutdownTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid shutdown timeout: %w", err)
	}

	if secretFile, ok := lookup("JWT_SECRET_FILE"); ok && secretFile != "" {
		content, err := os.ReadFile(secretFile)
		if err != nil {
			return nil, fmt.Errorf("read jwt secret file: %w", err)
		}
		cfg.JWTSecret = strings.TrimSpace(string(content))
	}

	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = defaultTokenTTL
	}

	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	if cfg.StoreName == "" {
		cfg.StoreName = defaultStoreName
	}

	if cfg.Mail, err = resolveMail(cfg.Mail.Provider, lookup); err != nil {
		return nil, err
	}

	if cfg.DatabaseURI == "" {
		return nil, fmt.Errorf("database URI must be provided")
	}

	return cfg, nil
}

func resolveMail(provider string, lookup envLookup) (MailConfig, error) {
	mail := MailConfig{
		Provider: strings.ToLower(strings.TrimSpace(provider)),
		Port:     defaultSMTPPort,
		Timeout:  getDuration(lookup, "SMTP_TIMEOUT", defaultSMTPTimeout),
	}
	if mail.Timeout <= 0 {
		mail.Timeout = defaultSMTPTimeout
	}

	switch mail.Provider {
	case ProviderGmail:
		mail.Host = "smtp.gmail.com"
		mail.Username = getString(lookup, "EMAIL_USER", "")
		mail.Password = getString(lookup, "EMAIL_PASSWORD", "")
	case ProviderSendGrid:
		mail.Host = "smtp.sendgrid.net"
		mail.Username = "apikey"
		mail.Password = getString(lookup, "SENDGRID_API_KEY", "")
	case ProviderSMTP:
		mail.Host = getString(lookup, "SMTP_HOST", "")
		mail.Port = getInt(lookup, "SMTP_PORT", defaultSMTPPort)
		mail.Secure = getBool(lookup, "SMTP_SECURE", false)
		mail.Username = getString(lookup, "SMTP_USER", "")
		mail.Password = getString(lookup, "SMTP_PASSWORD", "")
	default:
		return MailConfig{}, fmt.Errorf("unknown email provider %q", provider)
	}

	if mail.Port <= 0 {
		mail.Port = defaultSMTPPort
	}

	defaultFrom := ""
	if strings.Contains(mail.Username, "@") {
		defaultFrom = mail.Username
	}
	mail.From = getString(lookup, "EMAIL_FROM", defaultFrom)

	return mail, nil
}

func getString(lookup envLookup, key, def string) string {
	if v, ok := lookup(key); ok && v != "" {
		return v
	}
	return def
}

func getInt(lookup envLookup, key string, def int) int {
	if v, ok := lookup(key); ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getBool(lookup envLookup, key string, def bool) bool {
	if v, ok := lookup(key); ok && v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

func getDuration(lookup envLookup, key string, def time.Duration) time.Duration {
	if v, ok := lookup(key); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

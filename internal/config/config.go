package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator"
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/shopspring/decimal"
)

const envPrefix = "DINEPAY_"

type Config struct {
	Primary          Primary        `koanf:"primary"`
	Server           ServerConfig   `koanf:"server"`
	Database         DatabaseConfig `koanf:"database"`
	Gateway          GatewayConfig  `koanf:"gateway"`
	PlatformTerminal TerminalConfig `koanf:"platform_terminal"`
	Payment          PaymentConfig  `koanf:"payment"`
	RabbitMQ         RabbitMQConfig `koanf:"rabbitmq"`
	Redis            RedisConfig    `koanf:"redis"`
	Logger           LoggerConfig   `koanf:"logger"`
	Frontend         FrontendConfig `koanf:"frontend"`
}

type Primary struct {
	Env string `koanf:"env" validate:"required"`
}

type ServerConfig struct {
	Port           string        `koanf:"port" validate:"required"`
	PublicURL      string        `koanf:"public_url" validate:"required"`
	ReadTimeout    time.Duration `koanf:"read_timeout" validate:"required"`
	WriteTimeout   time.Duration `koanf:"write_timeout" validate:"required"`
	IdleTimeout    time.Duration `koanf:"idle_timeout" validate:"required"`
	RequestTimeout time.Duration `koanf:"request_timeout" validate:"required"`
}

type DatabaseConfig struct {
	Host             string        `koanf:"host" validate:"required"`
	Port             int           `koanf:"port" validate:"required"`
	User             string        `koanf:"user" validate:"required"`
	Password         string        `koanf:"password" validate:"required"`
	Name             string        `koanf:"name" validate:"required"`
	SSLMode          string        `koanf:"ssl_mode" validate:"required"`
	MaxOpenConns     int           `koanf:"max_open_conns" validate:"required"`
	MaxIdleConns     int           `koanf:"max_idle_conns" validate:"required"`
	ConnMaxLifetime  time.Duration `koanf:"conn_max_lifetime" validate:"required"`
	ConnMaxIdleTime  time.Duration `koanf:"conn_max_idle_time" validate:"required"`
	// LockTimeout bounds waits on row locks; keep it under the request timeout.
	LockTimeout      time.Duration `koanf:"lock_timeout"`
	StatementTimeout time.Duration `koanf:"statement_timeout"`
}

type GatewayConfig struct {
	SignURL      string        `koanf:"sign_url" validate:"required"`
	PayURL       string        `koanf:"pay_url" validate:"required"`
	Timeout      time.Duration `koanf:"timeout" validate:"required"`
	ApprovedCode string        `koanf:"approved_code" validate:"required"`
	Lang         string        `koanf:"lang"`
	Encoding     string        `koanf:"encoding"`
}

// TerminalConfig is the platform's own merchant terminal used for
// subscription billing.
type TerminalConfig struct {
	MerchantID string `koanf:"merchant_id"`
	TerminalID string `koanf:"terminal_id"`
	Passphrase string `koanf:"passphrase"`
}

type PaymentConfig struct {
	SessionTTL    time.Duration `koanf:"session_ttl" validate:"required"`
	AmountEpsilon string        `koanf:"amount_epsilon" validate:"required"`
	SettingsTTL   time.Duration `koanf:"settings_ttl"`
}

// Epsilon is the largest callback/session amount difference still accepted.
func (c PaymentConfig) Epsilon() decimal.Decimal {
	d, err := decimal.NewFromString(c.AmountEpsilon)
	if err != nil {
		return decimal.New(1, -2)
	}
	return d.Abs()
}

type RabbitMQConfig struct {
	URL      string `koanf:"url"`
	Exchange string `koanf:"exchange"`
}

type RedisConfig struct {
	Addr     string        `koanf:"addr"`
	Password string        `koanf:"password"`
	DB       int           `koanf:"db"`
	LockTTL  time.Duration `koanf:"lock_ttl"`
}

type FrontendConfig struct {
	SuccessURL string `koanf:"success_url" validate:"required"`
	FailureURL string `koanf:"failure_url" validate:"required"`
}

type LoggerConfig struct {
	Level string `koanf:"level"`
	// Format is "json" or "text"; empty picks by environment.
	Format string `koanf:"format"`
}

var defaults = map[string]any{
	"server.request_timeout":     "30s",
	"gateway.timeout":            "15s",
	"database.lock_timeout":      "10s",
	"database.statement_timeout": "20s",
	"gateway.approved_code":      "00",
	"gateway.lang":               "en",
	"gateway.encoding":           "utf-8",
	"payment.session_ttl":        "15m",
	"payment.amount_epsilon":     "0.01",
	"payment.settings_ttl":       "5m",
	"rabbitmq.exchange":          "notifications",
	"redis.lock_ttl":             "30s",
	"logger.level":               "info",
}

func LoadConfig() (*Config, error) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelError,
	}))
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults, "."), nil); err != nil {
		logger.Error("failed to load config defaults", "error", err)
		return nil, err
	}

	err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ReplaceAll(
			strings.ToLower(strings.TrimPrefix(s, envPrefix)),
			"__",
			".",
		)
	}), nil)
	if err != nil {
		logger.Error("failed to load environment variables", "error", err)
		return nil, err
	}

	mainConfig := &Config{}

	err = k.Unmarshal("", mainConfig)
	if err != nil {
		logger.Error("could not unmarshal main config", "error", err)
		return nil, err
	}

	validate := validator.New()

	err = validate.Struct(mainConfig)
	if err != nil {
		logger.Error("config validation failed", "error", err)
		return nil, err
	}

	if _, err := decimal.NewFromString(mainConfig.Payment.AmountEpsilon); err != nil {
		return nil, fmt.Errorf("payment.amount_epsilon: %w", err)
	}

	return mainConfig, nil
}

func (c *Config) IsDevelopment() bool {
	return c.Primary.Env == "development"
}

package config

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	env := map[string]string{
		"DINEPAY_PRIMARY__ENV":                 "test",
		"DINEPAY_SERVER__PORT":                 "8080",
		"DINEPAY_SERVER__PUBLIC_URL":           "https://api.example.test",
		"DINEPAY_SERVER__READ_TIMEOUT":         "5s",
		"DINEPAY_SERVER__WRITE_TIMEOUT":        "10s",
		"DINEPAY_SERVER__IDLE_TIMEOUT":         "60s",
		"DINEPAY_DATABASE__HOST":               "localhost",
		"DINEPAY_DATABASE__PORT":               "5432",
		"DINEPAY_DATABASE__USER":               "dinepay",
		"DINEPAY_DATABASE__PASSWORD":           "secret",
		"DINEPAY_DATABASE__NAME":               "dinepay",
		"DINEPAY_DATABASE__SSL_MODE":           "disable",
		"DINEPAY_DATABASE__MAX_OPEN_CONNS":     "10",
		"DINEPAY_DATABASE__MAX_IDLE_CONNS":     "2",
		"DINEPAY_DATABASE__CONN_MAX_LIFETIME":  "1h",
		"DINEPAY_DATABASE__CONN_MAX_IDLE_TIME": "10m",
		"DINEPAY_GATEWAY__SIGN_URL":            "https://gw.example.test/sign",
		"DINEPAY_GATEWAY__PAY_URL":             "https://gw.example.test/pay",
		"DINEPAY_FRONTEND__SUCCESS_URL":        "https://app.example.test/paid",
		"DINEPAY_FRONTEND__FAILURE_URL":        "https://app.example.test/failed",
	}
	for k, v := range env {
		t.Setenv(k, v)
	}
}

func TestLoadConfig(t *testing.T) {
	t.Run("applies defaults", func(t *testing.T) {
		setRequiredEnv(t)

		cfg, err := LoadConfig()

		require.NoError(t, err)
		assert.Equal(t, 15*time.Minute, cfg.Payment.SessionTTL)
		assert.Equal(t, 15*time.Second, cfg.Gateway.Timeout)
		assert.Equal(t, "00", cfg.Gateway.ApprovedCode)
		assert.True(t, decimal.New(1, -2).Equal(cfg.Payment.Epsilon()))
		assert.Equal(t, 5432, cfg.Database.Port)
		assert.Equal(t, 10*time.Second, cfg.Database.LockTimeout)
	})

	t.Run("environment overrides defaults", func(t *testing.T) {
		setRequiredEnv(t)
		t.Setenv("DINEPAY_PAYMENT__SESSION_TTL", "30m")
		t.Setenv("DINEPAY_PAYMENT__AMOUNT_EPSILON", "0.05")

		cfg, err := LoadConfig()

		require.NoError(t, err)
		assert.Equal(t, 30*time.Minute, cfg.Payment.SessionTTL)
		assert.True(t, decimal.New(5, -2).Equal(cfg.Payment.Epsilon()))
	})

	t.Run("rejects invalid epsilon", func(t *testing.T) {
		setRequiredEnv(t)
		t.Setenv("DINEPAY_PAYMENT__AMOUNT_EPSILON", "a cent")

		_, err := LoadConfig()

		assert.Error(t, err)
	})

	t.Run("fails validation without required fields", func(t *testing.T) {
		setRequiredEnv(t)
		t.Setenv("DINEPAY_GATEWAY__SIGN_URL", "")

		_, err := LoadConfig()

		assert.Error(t, err)
	})
}

func TestDatabaseConfig_PgxConfig(t *testing.T) {
	db := DatabaseConfig{
		Host: "db.internal", Port: 5433, User: "dine", Password: "p@ss/word", Name: "dinepay", SSLMode: "disable",
		MaxOpenConns: 12, MaxIdleConns: 3, ConnMaxLifetime: time.Hour, ConnMaxIdleTime: 10 * time.Minute,
		LockTimeout: 4 * time.Second, StatementTimeout: 20 * time.Second,
	}

	cfg, err := db.PgxConfig(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "db.internal", cfg.ConnConfig.Host)
	assert.EqualValues(t, 5433, cfg.ConnConfig.Port)
	assert.Equal(t, "p@ss/word", cfg.ConnConfig.Password)
	assert.EqualValues(t, 12, cfg.MaxConns)
	assert.Equal(t, "4000", cfg.ConnConfig.RuntimeParams["lock_timeout"])
	assert.Equal(t, "20000", cfg.ConnConfig.RuntimeParams["statement_timeout"])
	assert.Equal(t, "dinepay", cfg.ConnConfig.RuntimeParams["application_name"])

	db.LockTimeout, db.StatementTimeout = 0, 0
	cfg, err = db.PgxConfig(context.Background())
	require.NoError(t, err)
	assert.NotContains(t, cfg.ConnConfig.RuntimeParams, "lock_timeout")
}

func TestLoggerConfig_Format(t *testing.T) {
	var buf bytes.Buffer
	logger := LoggerConfig{Level: "debug"}.newLogger("production", &buf)

	logger.Debug("hello", "order_id", 42)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "hello", entry["msg"])
	assert.Equal(t, "dinepay", entry["service"])
	assert.EqualValues(t, 42, entry["order_id"])
}

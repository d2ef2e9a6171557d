package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maxsonaraujo/pdc-api/pkg/config"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	t.Setenv("APP_STORE", "memory")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, config.StoreMemory, cfg.App.Store)
	assert.Equal(t, "info", cfg.App.LogLevel)
	assert.Equal(t, 8080, cfg.HTTP.Port)
	assert.Equal(t, 25, cfg.DB.MaxConns)
	assert.Equal(t, "0.5", cfg.Orders.Tolerance)
	assert.Equal(t, []string{"admin", "manager"}, cfg.Orders.NotifyRoles)
	assert.Equal(t, "/orders", cfg.Orders.PublicURL)
}

func TestLoad_DesdeEntorno(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("APP_STORE", "POSTGRES")
	t.Setenv("JWT_SECRET", "s3cr3t")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("DB_MAX_CONNS", "10")
	t.Setenv("ORDERS_TOLERANCE", "0.10")
	t.Setenv("ORDERS_NOTIFY_ROLES", "admin, operator ,")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, config.StorePostgres, cfg.App.Store)
	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.Equal(t, 10, cfg.DB.MaxConns)
	assert.Equal(t, "0.10", cfg.Orders.Tolerance)
	assert.Equal(t, []string{"admin", "operator"}, cfg.Orders.NotifyRoles)
}

func TestValidate(t *testing.T) {
	base := func() config.Config {
		return config.Config{
			App:    config.AppConfig{Env: "production", Store: config.StorePostgres},
			JWT:    config.JWTConfig{Secret: "x"},
			HTTP:   config.HTTPConfig{Port: 8080},
			Orders: config.OrdersConfig{Tolerance: "0.5"},
		}
	}

	ok := base()
	assert.NoError(t, ok.Validate())

	noSecret := base()
	noSecret.JWT.Secret = ""
	assert.ErrorContains(t, noSecret.Validate(), "JWT_SECRET")

	devNoSecret := base()
	devNoSecret.App.Env = "development"
	devNoSecret.JWT.Secret = ""
	assert.NoError(t, devNoSecret.Validate())

	badStore := base()
	badStore.App.Store = "redis"
	assert.ErrorContains(t, badStore.Validate(), "APP_STORE")

	badTol := base()
	badTol.Orders.Tolerance = "medio"
	assert.ErrorContains(t, badTol.Validate(), "ORDERS_TOLERANCE")
}

func TestDBConfig_DSN(t *testing.T) {
	c := config.DBConfig{Host: "db", Port: 5432, User: "app", Password: "p@ss:w", DBName: "pdc", SSLMode: "disable"}
	assert.Equal(t, "postgres://app:p%40ss%3Aw@db:5432/pdc?sslmode=disable", c.DSN())

	c.DatabaseURL = "postgres://x@y/z"
	assert.Equal(t, "postgres://x@y/z", c.ConnectionString())
}

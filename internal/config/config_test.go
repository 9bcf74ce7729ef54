package config

import (
	"os"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		Env:                      "development",
		Port:                     "8080",
		DBDriver:                 DriverPostgres,
		DBPassword:               "secure-password",
		DBSSLMode:                "require",
		DBSchemaMode:             "hybrid",
		DBMaxOpenConns:           25,
		DBMaxIdleConns:           5,
		DBConnMaxLifetimeMinutes: 5,
		TracingSamplerRatio:      1,
	}
}

func TestConfig_ValidateSSLMode(t *testing.T) {
	tests := []struct {
		name        string
		env         string
		sslMode     string
		expectError bool
	}{
		{"Production with empty SSL mode", "production", "", true},
		{"Production with disable SSL mode", "production", "disable", true},
		{"Production with require SSL mode", "production", "require", false},
		{"Prod with empty SSL mode", "prod", "", true},
		{"Prod with disable SSL mode", "prod", "disable", true},
		{"Prod with verify-full SSL mode", "prod", "verify-full", false},
		{"Development with disable SSL mode", "development", "disable", false},
		{"Test with empty SSL mode", "test", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validConfig()
			c.Env = tt.env
			c.DBSSLMode = tt.sslMode

			err := c.Validate()
			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"valid", func(*Config) {}, ""},
		{"empty port", func(c *Config) { c.Port = "" }, "PORT is required"},
		{"unknown driver", func(c *Config) { c.DBDriver = "mysql" }, "unsupported DB_DRIVER"},
		{"unknown schema mode", func(c *Config) { c.DBSchemaMode = "yolo" }, "unsupported DB_SCHEMA_MODE"},
		{"negative pool", func(c *Config) { c.DBMaxOpenConns = -1 }, "must not be negative"},
		{"sampler ratio", func(c *Config) { c.TracingSamplerRatio = 2 }, "TRACING_SAMPLER_RATIO"},
		{"weak production password", func(c *Config) {
			c.Env = "production"
			c.DBPassword = "password"
		}, "strong DB_PASSWORD"},
		{"sqlite in production skips postgres checks", func(c *Config) {
			c.Env = "production"
			c.DBDriver = DriverSQLite
			c.DBPassword = ""
			c.DBSSLMode = "disable"
		}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validConfig()
			tt.mutate(c)
			err := c.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadConfig_SSLModeNormalization(t *testing.T) {
	// Clean up environment variables and viper after test
	defer os.Unsetenv("APP_ENV")
	defer os.Unsetenv("DB_SSLMODE")
	defer viper.Reset()

	os.Setenv("APP_ENV", "development")
	os.Setenv("DB_SSLMODE", "  DISABLE  ")

	c, err := LoadConfig()
	assert.NoError(t, err)
	assert.Equal(t, "disable", c.DBSSLMode)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("APP_ENV", "test")
	t.Setenv("DB_DRIVER", "SQLite")
	t.Setenv("DB_MAX_OPEN_CONNS", "3")
	t.Setenv("NATS_SUBJECT_PREFIX", "forum")
	defer viper.Reset()

	c, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, DriverSQLite, c.DBDriver)
	assert.Equal(t, 3, c.DBMaxOpenConns)
	assert.Equal(t, "forum", c.NATSSubjectPrefix)
	assert.Equal(t, "8080", c.Port)
	assert.Equal(t, "hybrid", c.DBSchemaMode)
}

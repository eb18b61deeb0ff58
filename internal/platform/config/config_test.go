package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFrom_Defaults(t *testing.T) {
	v := viper.New()
	v.Set("STORAGE_DRIVER", "memory")

	cfg, err := loadFrom(v)
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, StorageDriverMemory, cfg.StorageDriver)
	assert.Equal(t, 15*time.Minute, cfg.MessageEditWindow)
	assert.Equal(t, "100-M", cfg.RateLimit)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORSAllowedOrigins)
	assert.NotEmpty(t, cfg.JWTSecret)
}

func TestLoadFrom_Overrides(t *testing.T) {
	v := viper.New()
	v.Set("STORAGE_DRIVER", "Postgres")
	v.Set("PGSQL_URL", "postgres://localhost/chat")
	v.Set("MESSAGE_EDIT_WINDOW", "5m")
	v.Set("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example ,")

	cfg, err := loadFrom(v)
	require.NoError(t, err)
	assert.Equal(t, StorageDriverPostgres, cfg.StorageDriver)
	assert.Equal(t, 5*time.Minute, cfg.MessageEditWindow)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSAllowedOrigins)
}

func TestLoadFrom_InvalidEditWindowFallsBack(t *testing.T) {
	v := viper.New()
	v.Set("STORAGE_DRIVER", "memory")
	v.Set("MESSAGE_EDIT_WINDOW", "soon")

	cfg, err := loadFrom(v)
	require.NoError(t, err)
	assert.Equal(t, 15*time.Minute, cfg.MessageEditWindow)
}

func TestLoadFrom_Rejects(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]any
	}{
		{"postgres without url", map[string]any{"STORAGE_DRIVER": "postgres"}},
		{"unknown driver", map[string]any{"STORAGE_DRIVER": "sqlite"}},
		{"production default secret", map[string]any{"STORAGE_DRIVER": "memory", "IS_PRODUCTION": true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := viper.New()
			for k, val := range tt.env {
				v.Set(k, val)
			}
			_, err := loadFrom(v)
			assert.Error(t, err)
		})
	}
}

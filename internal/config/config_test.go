package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want Config
	}{
		{
			name: "defaults",
			env:  map[string]string{},
			want: Config{
				Port:      "3000",
				DBHost:    "localhost",
				DBUser:    "postgres",
				DBName:    "leavedesk",
				DBPort:    "5432",
				DBSSLMode: "disable",
				RedisAddr: "localhost:6379",
			},
		},
		{
			name: "env overrides",
			env: map[string]string{
				"PORT":         "9090",
				"DB_HOST":      "db.internal",
				"DB_USER":      "leave",
				"DB_PASSWORD":  "secret",
				"DB_NAME":      "leave_prod",
				"DB_PORT":      "5433",
				"DB_SSLMODE":   "require",
				"REDIS_ADDR":   "redis.internal:6379",
				"KAFKA_BROKER": "kafka.internal:9092",
			},
			want: Config{
				Port:        "9090",
				DBHost:      "db.internal",
				DBUser:      "leave",
				DBPassword:  "secret",
				DBName:      "leave_prod",
				DBPort:      "5433",
				DBSSLMode:   "require",
				RedisAddr:   "redis.internal:6379",
				KafkaBroker: "kafka.internal:9092",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			cfg, err := Load()
			require.NoError(t, err)
			assert.Equal(t, tt.want, *cfg)
		})
	}
}

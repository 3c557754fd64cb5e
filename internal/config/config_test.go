package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGetDurationOrDefault(t *testing.T) {
	assert.Equal(t, 5*time.Second, getDurationOrDefault("REDIS_PING_TIMEOUT", 5*time.Second))

	t.Setenv("REDIS_PING_TIMEOUT", "2s")
	assert.Equal(t, 2*time.Second, getDurationOrDefault("REDIS_PING_TIMEOUT", 5*time.Second))

	t.Setenv("REDIS_PING_TIMEOUT", "not-a-duration")
	assert.Equal(t, 5*time.Second, getDurationOrDefault("REDIS_PING_TIMEOUT", 5*time.Second))
}

func TestRabbitMQConfigURL(t *testing.T) {
	cfg := RabbitMQConfig{Host: "broker", Port: "5672", Username: "admin", Password: "pw"}
	assert.Equal(t, "amqp://admin:pw@broker:5672/", cfg.URL())
}

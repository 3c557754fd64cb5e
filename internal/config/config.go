package config

import (
	"fmt"
	"os"
	"time"
)

type CRMServiceConfig struct {
	Port        string
	LedgerCfg   LedgerConfig
	SMTPCfg     SMTPConfig
	RedisCfg    RedisConfig
	RabbitMQCfg RabbitMQConfig
}

type LedgerConfig struct {
	// BasePath is the shared-drive root every ledger workbook lives under.
	BasePath            string
	ClientDirectoryPath string
	UsersPath           string
}

type SMTPConfig struct {
	Host     string
	Port     string
	Username string
	Password string
}

type RedisConfig struct {
	Host        string
	Port        string
	Password    string
	DB          int
	PingTimeout time.Duration
}

type RabbitMQConfig struct {
	Host     string
	Username string
	Password string
	Port     string
}

// URL builds the AMQP connection string.
func (c RabbitMQConfig) URL() string {
	return fmt.Sprintf("amqp://%s:%s@%s:%s/", c.Username, c.Password, c.Host, c.Port)
}

func New() *CRMServiceConfig {
	return &CRMServiceConfig{
		Port: getEnvOrDefault("PORT", "8087"),
		LedgerCfg: LedgerConfig{
			BasePath:            getEnvOrDefault("LEDGER_BASE_PATH", "/taiico/ledgers"),
			ClientDirectoryPath: getEnvOrDefault("CLIENT_DIRECTORY_PATH", "/taiico/ledgers/Clientes/Correos clientes.xlsx"),
			UsersPath:           getEnvOrDefault("USERS_DB_PATH", "/taiico/ledgers/Usuarios/Usuarios.xlsx"),
		},
		SMTPCfg: SMTPConfig{
			Host:     getEnvOrDefault("SMTP_HOST", "smtp.gmail.com"),
			Port:     getEnvOrDefault("SMTP_PORT", "587"),
			Username: getEnvOrDefault("SMTP_USERNAME", ""),
			Password: getEnvOrDefault("SMTP_PASSWORD", ""),
		},
		RedisCfg: RedisConfig{
			Host:        getEnvOrDefault("REDIS_HOST", "localhost"),
			Port:        getEnvOrDefault("REDIS_PORT", "6379"),
			Password:    getEnvOrDefault("REDIS_PASSWORD", ""),
			DB:          0,
			PingTimeout: getDurationOrDefault("REDIS_PING_TIMEOUT", 5*time.Second),
		},
		RabbitMQCfg: RabbitMQConfig{
			Host:     getEnvOrDefault("RABBITMQ_HOST", ""),
			Username: getEnvOrDefault("RABBITMQ_USER", "admin"),
			Password: getEnvOrDefault("RABBITMQ_PWD", "admin"),
			Port:     getEnvOrDefault("RABBITMQ_PORT", "5672"),
		},
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

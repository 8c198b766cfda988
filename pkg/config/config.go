package config

import (
	"errors"
	"os"
	"time"

	"github.com/caarlos0/env/v7"
	"github.com/joho/godotenv"
)

type Config struct {
	HTTPPort                    int           `env:"HTTP_PORT" envDefault:"8080"`
	LogLevel                    string        `env:"LOG_LEVEL" envDefault:"info"`
	PostgresDSN                 string        `env:"POSTGRES_DSN"`
	PostgresMaxConns            int32         `env:"POSTGRES_MAX_CONNS" envDefault:"10"`
	CORSOrigins                 []string      `env:"CORS_ORIGINS" envSeparator:","`
	TrashRetention              time.Duration `env:"TRASH_RETENTION" envDefault:"0"`
	TrashRetentionCheckInterval time.Duration `env:"TRASH_RETENTION_CHECK_INTERVAL" envDefault:"1h"`
	Kafka                       Kafka
}

type Kafka struct {
	Brokers           []string `env:"KAFKA_BROKERS" envSeparator:","`
	RecordEventsTopic string   `env:"KAFKA_RECORD_EVENTS_TOPIC" envDefault:"ledger.record-events"`
}

func New(envPath string) (Config, error) {
	var c Config

	err := godotenv.Load(envPath)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, err
	}

	err = env.Parse(&c)
	if err != nil {
		return Config{}, err
	}

	return c, nil
}

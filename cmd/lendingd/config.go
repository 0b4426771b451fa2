package main

import (
	"github.com/joeshaw/envdecode"
	"github.com/joho/godotenv"
)

// Config holds the daemon configuration, populated from the environment.
// A .env file in the working directory is loaded first when present.
type Config struct {
	HTTPAddr     string `env:"HTTP_ADDR,default=:8080"`
	DatabaseURL  string `env:"DATABASE_URL,required"`
	LogLevel     string `env:"LOG_LEVEL,default=info"`
	EnsureSchema bool   `env:"ENSURE_SCHEMA,default=true"`

	// Cron spec for the daily maintenance run, reminders first, sweep second.
	MaintenanceSchedule string `env:"MAINTENANCE_SCHEDULE,default=0 6 * * *"`

	MailWorkers   int `env:"MAIL_WORKERS,default=2"`
	MailQueueSize int `env:"MAIL_QUEUE_SIZE,default=64"`
}

func loadConfig() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envdecode.StrictDecode(&cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

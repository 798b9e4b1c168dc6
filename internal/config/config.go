package config

import (
	"github.com/caarlos0/env/v11"
)

type Config struct {
	APIKey        string `env:"MEMBERFUL_API_KEY"`
	BaseURL       string `env:"MEMBERFUL_BASE_URL" envDefault:"https://api.memberful.com"`
	WebhookSecret string `env:"MEMBERFUL_WEBHOOK_SECRET"`
	Port          int    `env:"PORT" envDefault:"8080"`
	RedisURL      string `env:"REDIS_URL"`
	DatabaseURL   string `env:"DATABASE_URL"`
}

func Read() (Config, error) {
	return env.ParseAs[Config]()
}

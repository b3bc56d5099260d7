package config

import (
	"fmt"
	"log"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	Env        string `env:"APP_ENV" envDefault:"development"`
	ServerPort string `env:"PORT" envDefault:"8080"`

	MongoURI string `env:"MONGO_URI" envDefault:"mongodb://localhost:27017"`
	MongoDB  string `env:"MONGO_DB" envDefault:"eventdesk"`

	// Empty disables messaging (and with it the confirmation mailer).
	RabbitURL string `env:"RABBIT_URL"`

	MailProvider    string `env:"MAIL_PROVIDER" envDefault:"noop"`
	MailFromAddress string `env:"MAIL_FROM_ADDRESS"`
	MailFromName    string `env:"MAIL_FROM_NAME"`
	AWSRegion       string `env:"AWS_REGION" envDefault:"us-east-1"`
	AWSAccessKeyID  string `env:"AWS_ACCESS_KEY_ID"`
	AWSSecretKey    string `env:"AWS_SECRET_ACCESS_KEY"`
}

// Load reads configuration from the environment, pulling in .env first
// outside production.
func Load() (*Config, error) {
	if os.Getenv("APP_ENV") != "production" {
		if err := godotenv.Load(); err != nil {
			log.Printf("[Config] no .env file loaded: %v", err)
		}
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

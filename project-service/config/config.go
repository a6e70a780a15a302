package config

import (
	"github.com/caarlos0/env/v6"
	"github.com/devteams/devteams-server/server-go"
	"github.com/devteams/devteams-server/utils-go"
	"github.com/rs/zerolog/log"
)

type Config struct {
	Port           string      `env:"LISTEN_ADDR" envDefault:":3000"`
	Timeout        uint64      `env:"TIMEOUT" envDefault:"10"`
	ReadBufferSize int         `env:"READ_BUFFER_SIZE" envDefault:"4096"`
	BodyLimit      int         `env:"BODY_LIMIT" envDefault:"1048576"`
	AppName        string      `env:"APP_NAME" envDefault:"DevTeams"`
	IsProduction   bool        `env:"PRODUCTION"`
	CookieKey      string      `env:"COOKIE_KEY"`
	Dsn            string      `env:"DSN"`
	RedisUrl       string      `env:"REDIS_URL"`
	TaskQueue      string      `env:"TASK_QUEUE" envDefault:"devteams:tasks"`
	LogLevel       string      `env:"LOG_LEVEL" envDefault:"info"`
	AutoMigrate    bool        `env:"AUTO_MIGRATE" envDefault:"true"`
	EmailConfig    EmailConfig `envPrefix:"EMAIL_"`
}

type EmailConfig struct {
	From             string `env:"FROM"`
	SmtpHost         string `env:"SMTP_HOST"`
	SmtpPort         int    `env:"SMTP_PORT" envDefault:"587"`
	SmtpUser         string `env:"SMTP_USER"`
	SmtpPassword     string `env:"SMTP_PASSWORD"`
	SmtpSkipInsecure bool   `env:"SMTP_SKIP_INSECURE" envDefault:"false"`
}

func Parse() (*Config, error) {
	cfg := Config{
		IsProduction: utils.ParseFlags(),
	}

	if err := env.Parse(&cfg); err != nil {
		log.Panic().Err(err).Msg("Failed to parse env config")
	}

	return &cfg, nil
}

func ServerConfig(config *Config) (*server.Config, error) {
	return utils.ConvertConfig[*Config, server.Config](config)
}

func LogConfig(config *Config) *utils.LogConfig {
	return &utils.LogConfig{
		LogLevel:     config.LogLevel,
		IsProduction: config.IsProduction,
	}
}

func PostgresConfig(config *Config) *utils.PostgresConfig {
	return &utils.PostgresConfig{
		Dsn:          config.Dsn,
		IsProduction: config.IsProduction,
	}
}

func RedisConfig(config *Config) *utils.RedisConfig {
	return &utils.RedisConfig{
		RedisUrl: config.RedisUrl,
	}
}

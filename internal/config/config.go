package config

import (
	"github.com/spf13/viper"
)

// Config holds application level configuration loaded from environment
// variables or an optional .env file.
type Config struct {
	Environment string `mapstructure:"ENVIRONMENT"`
	ServerPort  string `mapstructure:"SERVER_PORT"`

	MySQLDSN string `mapstructure:"MYSQL_DSN"`

	RedisAddr string `mapstructure:"REDIS_ADDR"`
	RedisDB   int    `mapstructure:"REDIS_DB"`
	RedisPass string `mapstructure:"REDIS_PASSWORD"`

	JWTSecret string `mapstructure:"JWT_SECRET"`

	RateLimitEnabled bool `mapstructure:"RATE_LIMIT_ENABLED"`
	RateLimitQPS     int  `mapstructure:"RATE_LIMIT_QPS"`
	RateLimitBurst   int  `mapstructure:"RATE_LIMIT_BURST"`

	// SMTP settings are carried for deployments that wire notification
	// tooling around the service; nothing in-process sends mail.
	SMTPHost     string `mapstructure:"SMTP_HOST"`
	SMTPPort     int    `mapstructure:"SMTP_PORT"`
	SMTPUser     string `mapstructure:"SMTP_USER"`
	SMTPPassword string `mapstructure:"SMTP_PASSWORD"`
	SMTPFrom     string `mapstructure:"SMTP_FROM"`

	SwaggerHost string `mapstructure:"SWAGGER_HOST"`
}

// Load builds Config from the environment with sensible defaults. A .env
// file in path is honored when present but is not required.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()

	v.SetDefault("ENVIRONMENT", "development")
	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("MYSQL_DSN", "user:password@tcp(localhost:3306)/riskdesk?charset=utf8mb4&parseTime=True&loc=Local")
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("JWT_SECRET", "change-me")
	v.SetDefault("RATE_LIMIT_ENABLED", true)
	v.SetDefault("RATE_LIMIT_QPS", 20)
	v.SetDefault("RATE_LIMIT_BURST", 40)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

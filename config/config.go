package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	ServerAddr    string        `envconfig:"SERVER_ADDR" default:":5000"`
	DatabaseURL   string        `envconfig:"DATABASE_URL"`
	RPCURL        string        `envconfig:"RPC_URL" default:"http://127.0.0.1:7545"`
	ContractsDir  string        `envconfig:"CONTRACTS_DIR"`
	SenderAddress string        `envconfig:"SENDER_ADDRESS"`
	JWTSecret     string        `envconfig:"JWT_SECRET"`
	JWTExpiry     time.Duration `envconfig:"JWT_EXPIRY" default:"1h"`
	CORSOrigin    string        `envconfig:"CORS_ORIGIN" default:"*"`
}

func LoadConfig() (*Config, error) {
	config := new(Config)
	if err := envconfig.Process("", config); err != nil {
		return nil, fmt.Errorf("process environment config: %w", err)
	}

	if config.DatabaseURL == "" || config.ContractsDir == "" ||
		config.SenderAddress == "" || config.JWTSecret == "" {
		return nil, fmt.Errorf("not enough data in config")
	}
	return config, nil
}

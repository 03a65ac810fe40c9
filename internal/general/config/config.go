package config

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"strings"
)

type Config struct {
	Database struct {
		Host     string
		Port     int
		User     string
		Password string
		Name     string // YAML key: "database"
	}
	RabbitMQ struct {
		Host     string
		Port     int
		User     string
		Password string
	}
	Services struct {
		PassengerServicePort int
		DriverServicePort    int
		AdminServicePort     int
	}
	JWT struct {
		SecretKey string
	}
	CORS struct {
		AllowedOrigins []string
	}
}

// LoadFromFile loads config from a YAML file, applies defaults, and validates
// required fields.
func LoadFromFile(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer file.Close()

	var cfg Config
	if err := parseYAML(file, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyDefaults(&cfg)

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// applyDefaults sets safe defaults for some fields.
func applyDefaults(cfg *Config) {
	// Database
	if cfg.Database.Host == "" {
		cfg.Database.Host = "localhost"
	}
	if cfg.Database.Port == 0 {
		cfg.Database.Port = 5432
	}

	// RabbitMQ
	if cfg.RabbitMQ.Host == "" {
		cfg.RabbitMQ.Host = "localhost"
	}
	if cfg.RabbitMQ.Port == 0 {
		cfg.RabbitMQ.Port = 5672
	}

	// Services
	if cfg.Services.PassengerServicePort == 0 {
		cfg.Services.PassengerServicePort = 7000
	}
	if cfg.Services.DriverServicePort == 0 {
		cfg.Services.DriverServicePort = 7001
	}
	if cfg.Services.AdminServicePort == 0 {
		cfg.Services.AdminServicePort = 7002
	}

	// CORS: permissive by default
	if len(cfg.CORS.AllowedOrigins) == 0 {
		cfg.CORS.AllowedOrigins = []string{"*"}
	}

	if cfg.JWT.SecretKey == "" {
		key := make([]byte, 32)
		if _, err := rand.Read(key); err == nil {
			cfg.JWT.SecretKey = base64.StdEncoding.EncodeToString(key)
		}
	}
}

// validate checks required fields and basic ranges.
func (c *Config) validate() error {
	var problems []string

	// DB
	if c.Database.Port <= 0 || c.Database.Port > 65535 {
		problems = append(problems, "database.port must be in 1..65535")
	}
	if c.Database.User == "" {
		problems = append(problems, "database.user is required")
	}
	if c.Database.Password == "" {
		problems = append(problems, "database.password is required")
	}
	if c.Database.Name == "" {
		problems = append(problems, "database.name is required")
	}

	// RabbitMQ
	if c.RabbitMQ.Port <= 0 || c.RabbitMQ.Port > 65535 {
		problems = append(problems, "rabbitmq.port must be in 1..65535")
	}
	if c.RabbitMQ.User == "" {
		problems = append(problems, "rabbitmq.user is required")
	}
	if c.RabbitMQ.Password == "" {
		problems = append(problems, "rabbitmq.password is required")
	}

	// Services
	if c.Services.PassengerServicePort <= 0 || c.Services.PassengerServicePort > 65535 {
		problems = append(problems, "services.passenger_service must be in 1..65535")
	}
	if c.Services.DriverServicePort <= 0 || c.Services.DriverServicePort > 65535 {
		problems = append(problems, "services.driver_service must be in 1..65535")
	}
	if c.Services.AdminServicePort <= 0 || c.Services.AdminServicePort > 65535 {
		problems = append(problems, "services.admin_service must be in 1..65535")
	}

	if c.JWT.SecretKey == "" {
		problems = append(problems, "jwt.secret_key is required")
	}

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

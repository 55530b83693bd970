// Package config loads titlesym settings from the environment.
package config

import (
	"fmt"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config holds settings shared by the CLI and the lambda
type Config struct {
	// DynamoTable is the DynamoDB table for check records; empty disables DynamoDB
	DynamoTable string `env:"DYNAMODB_TABLE"`
	// DynamoEndpoint overrides DynamoDB endpoint discovery, for local development
	DynamoEndpoint string `env:"DYNAMODB_ENDPOINT"`
	// AWSRegion is required when talking to real DynamoDB
	AWSRegion string `env:"AWS_REGION"`
	// FilePath is the JSON file used when no DynamoDB table is set
	FilePath string `env:"TITLESYM_FILE"`
	// S3Bucket holds the published snapshot of check records
	S3Bucket string `env:"S3_BUCKET"`
	// S3Endpoint overrides S3 endpoint discovery, for local development
	S3Endpoint string `env:"S3_ENDPOINT"`
	// S3DataKey is the object key of the published snapshot
	S3DataKey string `env:"S3_DATA_KEY" env-default:"records/checks.json"`
	// LambdaHandler selects the handler run by cmd/lambda: httpapi or streamer
	LambdaHandler string `env:"LAMBDA_HANDLER" env-default:"httpapi"`

	Log LogConfig
}

// LogConfig holds logger settings
type LogConfig struct {
	Level     string `env:"LOG_LEVEL" env-default:"info"`
	Format    string `env:"LOG_FORMAT" env-default:"json"`
	AddSource bool   `env:"LOG_ADD_SOURCE" env-default:"false"`
}

// Load reads configuration from the environment, applying defaults
func Load() (*Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("config: read env: %w", err)
	}
	return &cfg, nil
}

// LoadLog reads only the logger settings from the environment
func LoadLog() (LogConfig, error) {
	var cfg LogConfig
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return LogConfig{}, fmt.Errorf("config: read env: %w", err)
	}
	return cfg, nil
}

// Validate checks settings needed by the lambda, which always persists to DynamoDB
func (c *Config) Validate() error {
	if c.DynamoTable == "" {
		return fmt.Errorf("DYNAMODB_TABLE environment variable is required")
	}
	if c.DynamoEndpoint == "" && c.AWSRegion == "" {
		return fmt.Errorf("AWS_REGION environment variable is required when DYNAMODB_ENDPOINT is not set")
	}
	return nil
}

// ValidateStreamer checks settings needed by the stream lambda, which only writes to S3
func (c *Config) ValidateStreamer() error {
	if c.S3Bucket == "" {
		return fmt.Errorf("S3_BUCKET environment variable is required")
	}
	if c.S3Endpoint == "" && c.AWSRegion == "" {
		return fmt.Errorf("AWS_REGION environment variable is required when S3_ENDPOINT is not set")
	}
	return nil
}

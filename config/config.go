// Package config loads server and CLI settings from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Config holds application settings.
type Config struct {
	Addr            string        // HTTP listen address
	LogLevel        string        // logrus level name
	LogFormat       string        // json or text
	MaxUploadBytes  int64         // request body limit for uploads
	RateLimitRPS    float64       // sustained analyses per second
	RateLimitBurst  int           // burst size of the rate limiter
	ReadTimeout     time.Duration // http.Server ReadTimeout
	WriteTimeout    time.Duration // http.Server WriteTimeout
	ShutdownTimeout time.Duration // grace period for in-flight requests
	OTLPEndpoint    string        // collector address; empty disables tracing
	ServiceName     string        // service.name resource attribute
	SamplingRate    float64       // trace sampling ratio in [0, 1]
}

// Load reads a .env file if present and then the environment. A missing
// .env file is not an error.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logrus.Debug(".env file not found, using environment")
	}
	return FromEnv()
}

// FromEnv builds a Config from environment variables alone.
func FromEnv() (*Config, error) {
	cfg := &Config{
		Addr:         getEnv("GOSEASON_ADDR", ":8000"),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		LogFormat:    getEnv("LOG_FORMAT", "json"),
		OTLPEndpoint: getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
		ServiceName:  getEnv("OTEL_SERVICE_NAME", "goseason"),
	}

	uploadMB, err := getEnvInt("MAX_UPLOAD_MB", 10)
	if err != nil {
		return nil, err
	}
	if uploadMB <= 0 {
		return nil, fmt.Errorf("MAX_UPLOAD_MB must be positive, got %d", uploadMB)
	}
	cfg.MaxUploadBytes = int64(uploadMB) << 20

	if cfg.RateLimitRPS, err = getEnvFloat("RATE_LIMIT_RPS", 5); err != nil {
		return nil, err
	}
	if cfg.RateLimitBurst, err = getEnvInt("RATE_LIMIT_BURST", 10); err != nil {
		return nil, err
	}
	if cfg.ReadTimeout, err = getEnvDuration("READ_TIMEOUT", 15*time.Second); err != nil {
		return nil, err
	}
	if cfg.WriteTimeout, err = getEnvDuration("WRITE_TIMEOUT", 60*time.Second); err != nil {
		return nil, err
	}
	if cfg.ShutdownTimeout, err = getEnvDuration("SHUTDOWN_TIMEOUT", 10*time.Second); err != nil {
		return nil, err
	}
	if cfg.SamplingRate, err = getEnvFloat("OTEL_SAMPLING_RATE", 1.0); err != nil {
		return nil, err
	}
	if cfg.SamplingRate < 0 || cfg.SamplingRate > 1 {
		return nil, fmt.Errorf("OTEL_SAMPLING_RATE must be in [0, 1], got %g", cfg.SamplingRate)
	}

	if _, err := cfg.Level(); err != nil {
		return nil, fmt.Errorf("LOG_LEVEL: %w", err)
	}
	if cfg.LogFormat != "json" && cfg.LogFormat != "text" {
		return nil, fmt.Errorf("LOG_FORMAT must be json or text, got %q", cfg.LogFormat)
	}

	return cfg, nil
}

// Level returns the parsed logrus level.
func (c *Config) Level() (logrus.Level, error) {
	return logrus.ParseLevel(c.LogLevel)
}

// NewLogger builds a logger with the configured level and format.
func (c *Config) NewLogger() *logrus.Logger {
	logger := logrus.New()
	if level, err := c.Level(); err == nil {
		logger.SetLevel(level)
	}
	if c.LogFormat == "text" {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	} else {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}
	return logger
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
	return n, nil
}

func getEnvFloat(key string, defaultValue float64) (float64, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
	return f, nil
}

func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
	return d, nil
}

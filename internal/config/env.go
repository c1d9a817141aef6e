// Package config provides shared configuration utilities.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/charmbracelet/log"
)

// GetEnv returns the value of the environment variable named by the key,
// or fallback if the variable is not set.
func GetEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

// GetEnvInt is GetEnv for integer values. A set but malformed value is an
// error rather than a silent fallback.
func GetEnvInt(key string, fallback int) (int, error) {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

// GetEnvBool is GetEnv for boolean values, accepting the forms understood
// by strconv.ParseBool.
func GetEnvBool(key string, fallback bool) (bool, error) {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("%s: %w", key, err)
	}
	return b, nil
}

// NewLogger returns a timestamped logger writing to stderr whose level is
// read from LOG_LEVEL (default "info").
func NewLogger(prefix string) (*log.Logger, error) {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
	level, err := log.ParseLevel(GetEnv("LOG_LEVEL", "info"))
	if err != nil {
		return logger, fmt.Errorf("LOG_LEVEL: %w", err)
	}
	logger.SetLevel(level)
	return logger, nil
}

package utils

import (
	"os"
	"strconv"
	"strings"
	"time"
)

func GetEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}

	return defaultValue
}

// LookupEnvOrDefault returns the value whenever key is set, even to "".
func LookupEnvOrDefault(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}

	return defaultValue
}

// GetEnvFloatOrDefault ignores unparsable values.
func GetEnvFloatOrDefault(key string, defaultValue float64) float64 {
	raw := GetEnvTrimmed(key)
	if raw == "" {
		return defaultValue
	}

	parsed, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return defaultValue
	}

	return parsed
}

func GetEnvTrimmed(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}

func GetEnvTrimmedOrDefault(key, defaultValue string) string {
	v := strings.TrimSpace(os.Getenv(key))

	if v == "" {
		return defaultValue
	}

	return v
}

// GetEnvDurationOrDefault ignores unparsable and non-positive values.
func GetEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	raw := GetEnvTrimmed(key)
	if raw == "" {
		return defaultValue
	}

	parsed, err := time.ParseDuration(raw)
	if err != nil || parsed <= 0 {
		return defaultValue
	}

	return parsed
}

// GetEnvIntOrDefault ignores unparsable and non-positive values.
func GetEnvIntOrDefault(key string, defaultValue int) int {
	raw := GetEnvTrimmed(key)
	if raw == "" {
		return defaultValue
	}

	parsed, err := strconv.Atoi(raw)
	if err != nil || parsed <= 0 {
		return defaultValue
	}

	return parsed
}

// GetEnvBool returns defaultValue when the variable is unset or unparsable.
func GetEnvBool(key string, defaultValue bool) bool {
	raw := GetEnvTrimmed(key)
	if raw == "" {
		return defaultValue
	}

	b, err := strconv.ParseBool(raw)
	if err != nil {
		return defaultValue
	}

	return b
}

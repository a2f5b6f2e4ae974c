package config

import "time"

// Config defines the read-only configuration surface used by the application.
//
// Implementations should return the zero value when a key is absent or cannot
// be converted, so callers can rely on defaults registered at construction.
type Config interface {
	// GetString retrieves the configuration value associated with the given key as a string.
	GetString(key string) string

	// GetArray retrieves the configuration value associated with the given key as a string slice.
	GetArray(key string) []string

	// GetBool retrieves the configuration value associated with the given key as a bool.
	GetBool(key string) bool

	// GetInt retrieves the configuration value associated with the given key as an int.
	GetInt(key string) int

	// GetInt64 retrieves the configuration value associated with the given key as an int64.
	GetInt64(key string) int64

	// GetUint retrieves the configuration value associated with the given key as a uint.
	GetUint(key string) uint

	// GetUint64 retrieves the configuration value associated with the given key as a uint64.
	GetUint64(key string) uint64

	// GetFloat64 retrieves the configuration value associated with the given key as a float64.
	GetFloat64(key string) float64

	// GetSecond retrieves the configuration value associated with the given key as seconds.
	GetSecond(key string) time.Duration

	// GetMinute retrieves the configuration value associated with the given key as minutes.
	GetMinute(key string) time.Duration
}

package searchbyquery

import "time"

type Config struct {
	Timeout time.Duration
	// MaxQueryLength bounds the free-text query accepted from callers.
	MaxQueryLength int
}

func LoadConfig() *Config {
	return &Config{
		Timeout:        30 * time.Second,
		MaxQueryLength: 500,
	}
}

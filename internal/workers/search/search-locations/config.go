// internal/workers/search/search-locations/config.go
package searchlocations

import "time"

type Config struct {
	Timeout time.Duration
	// MaxLimit caps the caller supplied result limit.
	MaxLimit int
}

func LoadConfig() *Config {
	return &Config{
		Timeout:  30 * time.Second,
		MaxLimit: 100,
	}
}

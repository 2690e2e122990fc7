package checkavailability

import "time"

type Config struct {
	Timeout       time.Duration
	DefaultWindow time.Duration
	MaxWindow     time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Timeout:       15 * time.Second,
		DefaultWindow: time.Hour,
		MaxWindow:     31 * 24 * time.Hour,
	}
}

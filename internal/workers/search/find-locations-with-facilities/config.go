package findlocationswithfacilities

import "time"

type Config struct {
	Timeout  time.Duration
	MaxLimit int
}

func LoadConfig() *Config {
	return &Config{
		Timeout:  20 * time.Second,
		MaxLimit: 100,
	}
}

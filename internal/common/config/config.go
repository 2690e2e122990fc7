package config

type Config struct {
	App      AppConfig               `mapstructure:"app"`
	Camunda  CamundaConfig           `mapstructure:"camunda"`
	Booking  BookingConfig           `mapstructure:"booking"`
	Database DatabaseConfig          `mapstructure:"database"`
	Workers  map[string]WorkerConfig `mapstructure:"workers"`
	Logging  LoggingConfig           `mapstructure:"logging"`
	Registry RegistryConfig          `mapstructure:"registry"`
	Server   ServerConfig            `mapstructure:"server"`
}

type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

type CamundaConfig struct {
	BrokerAddress  string `mapstructure:"broker_address"`
	MaxJobsActive  int    `mapstructure:"max_jobs_active"`
	Timeout        int    `mapstructure:"timeout"`         // milliseconds
	RequestTimeout int    `mapstructure:"request_timeout"` // milliseconds
}

// BookingConfig describes the upstream booking API and how the tools use it.
type BookingConfig struct {
	BaseURL        string `mapstructure:"base_url"`
	OrganizationID int64  `mapstructure:"organization_id"`
	Username       string `mapstructure:"username"`
	Password       string `mapstructure:"password"`

	// PreferredLocationID scopes the first pass of location resolution.
	// Zero means search the whole organisation.
	PreferredLocationID int64 `mapstructure:"preferred_location_id"`

	Timeout      int     `mapstructure:"timeout"`       // milliseconds
	MaxRetries   int     `mapstructure:"max_retries"`   // per request
	RetryBackoff int     `mapstructure:"retry_backoff"` // milliseconds, first retry
	RateLimit    float64 `mapstructure:"rate_limit"`    // requests per second
	RateBurst    int     `mapstructure:"rate_burst"`

	CacheEnabled bool `mapstructure:"cache_enabled"`
	CacheTTL     int  `mapstructure:"cache_ttl"` // milliseconds

	AvailabilityConcurrency int `mapstructure:"availability_concurrency"`
}

type DatabaseConfig struct {
	Redis RedisConfig `mapstructure:"redis"`
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type WorkerConfig struct {
	Enabled       bool `mapstructure:"enabled"`
	MaxJobsActive int  `mapstructure:"max_jobs_active"`
	Timeout       int  `mapstructure:"timeout"`     // milliseconds
	MaxRetries    int  `mapstructure:"max_retries"` // For error handling
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}

type RegistryConfig struct {
	Path string `mapstructure:"path"`
}

type ServerConfig struct {
	Address string `mapstructure:"address"`
}

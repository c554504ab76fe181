package config

// Config holds runtime configuration for every plspend command.
type Config struct {
	Port            string   `env:"PORT" envDefault:"4000"`
	LogLevel        string   `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat       string   `env:"LOG_FORMAT" envDefault:"text"`
	ReloadInterval  Duration `env:"RELOAD_INTERVAL"`
	ShutdownTimeout Duration `env:"SHUTDOWN_TIMEOUT"`
	Store           string   `env:"STORE" envDefault:"memory"`
	Provider        string   `env:"WAGES_PROVIDER" envDefault:"fbref"`

	Paths    PathsConfig
	FBref    FBrefConfig
	Database DatabaseConfig
	MinIO    MinIOConfig
	Metrics  MetricsConfig
}

// Load reads configuration from the environment. Invalid or non-positive
// durations and counts fall back to defaults.
func Load() (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Port == "" {
		c.Port = defaultPort
	}
	c.ReloadInterval = positiveOr(c.ReloadInterval, defaultReloadInterval)
	c.ShutdownTimeout = positiveOr(c.ShutdownTimeout, defaultShutdownTimeout)
	c.FBref.applyDefaults()
	c.Database.applyDefaults()
	c.Metrics.applyDefaults()
}

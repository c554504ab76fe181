package config

// DatabaseConfig selects and tunes the SQL club-season store.
type DatabaseConfig struct {
	// Driver is "sqlite" or "postgres".
	Driver          string   `env:"DB_DRIVER" envDefault:"sqlite"`
	DSN             string   `env:"DB_DSN" envDefault:"pl_spend.db"`
	MaxOpenConns    int      `env:"DB_MAX_OPEN_CONNS" envDefault:"10"`
	MaxIdleConns    int      `env:"DB_MAX_IDLE_CONNS" envDefault:"5"`
	ConnMaxLifetime Duration `env:"DB_CONN_MAX_LIFETIME"`
	PingTimeout     Duration `env:"DB_PING_TIMEOUT"`
}

func (c *DatabaseConfig) applyDefaults() {
	c.MaxOpenConns = positiveIntOr(c.MaxOpenConns, 10)
	c.MaxIdleConns = positiveIntOr(c.MaxIdleConns, 5)
	c.ConnMaxLifetime = positiveOr(c.ConnMaxLifetime, defaultDBConnLifetime)
	c.PingTimeout = positiveOr(c.PingTimeout, defaultDBPingTimeout)
}

package config

// FBrefConfig controls how the wage scraper talks to FBref.
type FBrefConfig struct {
	BaseURL     string   `env:"FBREF_BASE_URL" envDefault:"https://fbref.com"`
	UserAgent   string   `env:"FBREF_USER_AGENT"`
	Timeout     Duration `env:"FBREF_TIMEOUT"`
	Sleep       Duration `env:"FBREF_SLEEP" envDefault:"1s"` // pause between season requests; 0 disables
	Attempts    int      `env:"FBREF_RETRY_ATTEMPTS" envDefault:"3"`
	Backoff     Duration `env:"FBREF_RETRY_BACKOFF"`
	StartSeason string   `env:"WAGES_START" envDefault:"2013-2014"`
	EndSeason   string   `env:"WAGES_END" envDefault:"2023-2024"`
}

func (c *FBrefConfig) applyDefaults() {
	c.Timeout = positiveOr(c.Timeout, defaultFBrefTimeout)
	c.Sleep = nonNegativeOr(c.Sleep, defaultFBrefSleep)
	c.Backoff = positiveOr(c.Backoff, defaultFBrefBackoff)
	c.Attempts = positiveIntOr(c.Attempts, 3)
}

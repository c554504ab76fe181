package config

import "time"

// Defaults applied when a duration is unset, unparsable or non-positive.
const (
	defaultReloadInterval  = 5 * Duration(time.Minute)
	defaultFBrefTimeout    = 30 * Duration(time.Second)
	defaultFBrefSleep      = 1 * Duration(time.Second)
	defaultFBrefBackoff    = 2 * Duration(time.Second)
	defaultDBConnLifetime  = 5 * Duration(time.Minute)
	defaultDBPingTimeout   = 5 * Duration(time.Second)
	defaultShutdownTimeout = 10 * Duration(time.Second)
)

const (
	defaultPort        = "4000"
	defaultMetricsPort = "9090"
	defaultServiceName = "pl-spend-service"
	defaultDotenvPath  = ".env"
)

package fbref

import "time"

const (
	providerName       = "fbref"
	defaultBaseURL     = "https://fbref.com"
	defaultHTTPTimeout = 30 * time.Second
	defaultUserAgent   = "Mozilla/5.0 (compatible; pl-spend-service; +https://github.com/preston-bernstein/pl-spend-service)"
	wagesPathFormat    = "/en/comps/9/%s/wages/Premier-League-Wages"
	maxErrorBody       = 512
)

// internal/workers/matching/find-vendor-matches/config.go
package findvendormatches

import "time"

type Config struct {
	Timeout time.Duration
	// UseCacheByDefault applies when the job does not set options.useCache.
	UseCacheByDefault bool
}

func LoadConfig() *Config {
	return &Config{
		Timeout:           15 * time.Second,
		UseCacheByDefault: true,
	}
}

// internal/workers/matching/get-cached-recommendations/config.go
package getcachedrecommendations

import "time"

type Config struct {
	Timeout time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Timeout: 5 * time.Second,
	}
}

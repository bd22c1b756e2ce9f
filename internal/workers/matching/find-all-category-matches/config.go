// internal/workers/matching/find-all-category-matches/config.go
package findallcategorymatches

import "time"

type Config struct {
	Timeout time.Duration

	// PublishEvents sends wedding.recommendations.ready once matching finishes.
	PublishEvents bool
}

func LoadConfig() *Config {
	return &Config{
		Timeout:       60 * time.Second,
		PublishEvents: true,
	}
}

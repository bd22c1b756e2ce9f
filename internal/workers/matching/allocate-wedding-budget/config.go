// internal/workers/matching/allocate-wedding-budget/config.go
package allocateweddingbudget

import "time"

type Config struct {
	Timeout time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Timeout: 5 * time.Second,
	}
}

// internal/workers/matching/send-vendor-enquiries/config.go
package sendvendorenquiries

import "time"

type Config struct {
	Timeout            time.Duration
	DefaultPerCategory int
}

func LoadConfig() *Config {
	return &Config{
		Timeout:            30 * time.Second,
		DefaultPerCategory: 3,
	}
}

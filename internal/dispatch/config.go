package dispatch

import "time"

type Config struct {
	QueryTimeout time.Duration
}

func DefaultConfig() *Config {
	return &Config{
		QueryTimeout: 5 * time.Second,
	}
}

package config

import (
	"time"
)

// RateLimitConfig bounds how many generation requests a single client
// address may issue inside one rolling window.
type RateLimitConfig struct {
	MaxRequests int
	Window      time.Duration
}

func NewRateLimitConfig() *RateLimitConfig {
	return &RateLimitConfig{
		MaxRequests: 30,
		Window:      time.Minute,
	}
}

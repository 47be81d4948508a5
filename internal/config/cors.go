package config

import (
	"os"
	"strings"
)

// CORSConfig holds the environment-specific origin allow-list. In
// production only the configured domains are allowed; in development
// the local dev servers plus the hosting provider's preview domains
// (matched by suffix) are allowed.
type CORSConfig struct {
	AllowedOrigins []string
	WildcardSuffix string
}

func NewCORSConfig() *CORSConfig {
	if getEnv("APP_ENV", "development") == "production" {
		origins := strings.Split(getEnv("ALLOWED_ORIGINS", "https://contentcraft.app"), ",")
		for i := range origins {
			origins[i] = strings.TrimSpace(origins[i])
		}
		return &CORSConfig{AllowedOrigins: origins}
	}

	return &CORSConfig{
		AllowedOrigins: []string{
			"http://localhost:3000",
			"http://localhost:5173",
		},
		WildcardSuffix: "lovableproject.com",
	}
}

// OriginAllowed reports whether origin matches the allow-list, either
// exactly or via the wildcard hosting suffix.
func (c *CORSConfig) OriginAllowed(origin string) bool {
	for _, allowed := range c.AllowedOrigins {
		if origin == allowed {
			return true
		}
	}
	return c.WildcardSuffix != "" && strings.Contains(origin, c.WildcardSuffix)
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

package config

import "os"

// GetEnv returns the value of an environment variable, or fallback if it
// is unset. Empty counts as unset so a blank line in .env does not
// silently wipe a default.
func GetEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

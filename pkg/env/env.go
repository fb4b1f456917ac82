package env

import "os"

// Get reads an environment variable, falling back when it is unset or
// empty. Used for knobs read before config parsing (log format).
func Get(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}

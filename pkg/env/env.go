// Package env reads raw environment variables for the few places that must
// not depend on the config package, such as logger bootstrap.
package env

import "os"

// Get returns the value of key, or fallback when it is unset or empty.
func Get(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

package config

import "os"

// Env captures the environment variables the application honors.
// It is read once at process startup (FromEnv) and passed explicitly into
// the components that need it; nothing below the CLI layer reads the
// environment directly.
type Env struct {
	// CacheDir overrides the cache root. Must name an existing directory.
	CacheDir string

	// CustomPagesDir overrides the directory merged into every page lookup.
	CustomPagesDir string

	// ConfigDir overrides the directory searched for config.toml.
	ConfigDir string

	// HTTPProxy and HTTPSProxy are outbound proxies for the archive fetch.
	// Invalid values are ignored, never fatal.
	HTTPProxy  string
	HTTPSProxy string
}

// FromEnv reads the supported environment variables.
func FromEnv() Env {
	return Env{
		CacheDir:       os.Getenv("TEALDEER_CACHE_DIR"),
		CustomPagesDir: os.Getenv("TEALDEER_CUSTOM_PAGES_DIR"),
		ConfigDir:      os.Getenv("TEALDEER_CONFIG_DIR"),
		HTTPProxy:      os.Getenv("HTTP_PROXY"),
		HTTPSProxy:     os.Getenv("HTTPS_PROXY"),
	}
}

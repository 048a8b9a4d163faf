package domain

import "fmt"

// ServeConfig is the manifest section for the development server.
type ServeConfig struct {
	// Host is the interface the server binds to.
	Host string `toml:"host"`

	// Port is the preferred listen port. When busy, the server scans
	// upward for a free one.
	Port int `toml:"port"`

	// Dir is the directory served, relative to the workspace root.
	Dir string `toml:"dir"`

	// SPA rewrites unknown paths to index.html for client routing.
	SPA bool `toml:"spa"`

	// LiveReload pushes change events to connected browsers.
	LiveReload bool `toml:"live_reload"`

	// Open launches the default browser once the server is up.
	Open bool `toml:"open"`

	// EnvFiles lists dotenv files loaded before the server starts, in
	// order, later files overriding earlier ones.
	EnvFiles []string `toml:"env_files"`
}

// Validate checks the server section for correctness.
func (c *ServeConfig) Validate() error {
	if c.Host == "" {
		return fmt.Errorf("%w: serve host must not be empty", ErrInvalidManifest)
	}
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("%w: serve port %d out of range", ErrInvalidManifest, c.Port)
	}
	if err := validateWorkspacePath(c.Dir); err != nil {
		return fmt.Errorf("%w: serve dir: %v", ErrInvalidManifest, err)
	}
	for _, file := range c.EnvFiles {
		if err := validateWorkspacePath(file); err != nil {
			return fmt.Errorf("%w: serve env file: %v", ErrInvalidManifest, err)
		}
	}
	return nil
}

// DefaultServeConfig returns the development server defaults.
func DefaultServeConfig() ServeConfig {
	return ServeConfig{
		Host:       "127.0.0.1",
		Port:       8080,
		Dir:        "dist",
		SPA:        false,
		LiveReload: true,
		Open:       false,
		EnvFiles:   []string{".env"},
	}
}

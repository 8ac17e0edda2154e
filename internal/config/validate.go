// If you are AI: This file validates configuration values and returns
// descriptive errors, adapted from the teacher's internal/config/validate.go.

package config

import (
	"fmt"
)

// Validate checks that all configuration values are within acceptable ranges.
// Returns an error describing the first validation failure found.
func (c *Config) Validate() error {
	if err := c.Server.Validate(); err != nil {
		return fmt.Errorf("server config: %w", err)
	}
	if err := c.Storage.Validate(); err != nil {
		return fmt.Errorf("storage config: %w", err)
	}

	seen := make(map[string]bool, len(c.Streams))
	for _, decl := range c.Streams {
		if err := decl.Validate(); err != nil {
			return fmt.Errorf("stream %q: %w", decl.Name, err)
		}
		if seen[decl.Name] {
			return fmt.Errorf("stream %q declared more than once", decl.Name)
		}
		seen[decl.Name] = true
	}
	return nil
}

// Validate checks server configuration values.
func (s *ServerConfig) Validate() error {
	if s.HealthPort <= 0 || s.HealthPort > 65535 {
		return fmt.Errorf("health_port must be between 1 and 65535, got %d", s.HealthPort)
	}
	if s.APIPort <= 0 || s.APIPort > 65535 {
		return fmt.Errorf("api_port must be between 1 and 65535, got %d", s.APIPort)
	}
	if s.ExportPort <= 0 || s.ExportPort > 65535 {
		return fmt.Errorf("export_port must be between 1 and 65535, got %d", s.ExportPort)
	}
	if s.HealthPort == s.APIPort {
		return fmt.Errorf("health_port and api_port must be different, both are %d", s.HealthPort)
	}
	if s.HealthPort == s.ExportPort {
		return fmt.Errorf("health_port and export_port must be different, both are %d", s.HealthPort)
	}
	if s.APIPort == s.ExportPort {
		return fmt.Errorf("api_port and export_port must be different, both are %d", s.APIPort)
	}
	return nil
}

// Validate checks storage configuration values.
func (s *StorageConfig) Validate() error {
	switch s.Backend {
	case "memory":
		return nil
	case "badger":
		if s.Path == "" {
			return fmt.Errorf("path is required when backend is %q", "badger")
		}
		return nil
	default:
		return fmt.Errorf("backend must be %q or %q, got %q", "memory", "badger", s.Backend)
	}
}

// Validate checks one stream declaration's values.
func (d *StreamDecl) Validate() error {
	if d.Name == "" {
		return fmt.Errorf("name is required")
	}
	if !isValidWidth(d.PrimaryWidth) {
		return fmt.Errorf("primary_width must be 16, 32, or 64, got %d", d.PrimaryWidth)
	}
	if !isValidWidth(d.SecondaryWidth) {
		return fmt.Errorf("secondary_width must be 16, 32, or 64, got %d", d.SecondaryWidth)
	}
	if len(d.Delimiter) != 1 {
		return fmt.Errorf("delimiter must be exactly one byte, got %q", d.Delimiter)
	}
	if d.MetaPrefix == d.DataPrefix {
		return fmt.Errorf("meta_prefix and data_prefix must be different, both are %q", d.MetaPrefix)
	}
	return nil
}

func isValidWidth(w int) bool {
	return w == 16 || w == 32 || w == 64
}

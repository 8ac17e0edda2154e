// If you are AI: This file defines the configuration structure for
// tailstreamd, adapted from the teacher's internal/config/config.go. The
// teacher's Config described media server ports, relay tasks, and a
// transcode profile list; this one describes the static stream layout
// (spec.md §4.11's startup protocol), the storage backend, and export/API
// ports, using the same strict-YAML-decoding, explicit-defaults shape.

package config

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the complete server configuration.
// All fields must have explicit defaults or be required.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Storage StorageConfig `yaml:"storage"`
	Streams []StreamDecl  `yaml:"streams"`
}

// ServerConfig defines HTTP server settings.
type ServerConfig struct {
	HealthPort int `yaml:"health_port"` // Validated only; the server does not listen on it
	APIPort    int `yaml:"api_port"`    // Validated only; the server does not listen on it
	ExportPort int `yaml:"export_port"` // Port serving every route: /healthz, /api/*, httpexport and wsexport
}

// StorageConfig selects and configures the ordered-KV backend.
type StorageConfig struct {
	Backend string `yaml:"backend"`        // "memory" or "badger"
	Path    string `yaml:"path,omitempty"` // badger data directory; ignored for memory
}

// StreamDecl declares one stream's static layout, the Go value standing in
// for the original's compile-time per-stream template instantiation
// (§4.11/§6.11).
type StreamDecl struct {
	Name           string `yaml:"name"`
	PrimaryWidth   int    `yaml:"primary_width"`   // 16, 32, or 64
	SecondaryWidth int    `yaml:"secondary_width"` // 16, 32, or 64
	HasPublisher   bool   `yaml:"has_publisher"`
	MetaPrefix     string `yaml:"meta_prefix,omitempty"`
	DataPrefix     string `yaml:"data_prefix,omitempty"`
	Delimiter      string `yaml:"delimiter,omitempty"`
}

// Load reads configuration from a YAML file.
// Returns an error if the file cannot be read or decoded.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	var cfg Config
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true) // Reject unknown fields

	if err := decoder.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	// Apply defaults
	cfg.setDefaults()

	return &cfg, nil
}

// setDefaults applies explicit default values to unset fields.
func (c *Config) setDefaults() {
	if c.Server.HealthPort == 0 {
		c.Server.HealthPort = 8080
	}
	if c.Server.APIPort == 0 {
		c.Server.APIPort = 8081
	}
	if c.Server.ExportPort == 0 {
		c.Server.ExportPort = 8082
	}
	if c.Storage.Backend == "" {
		c.Storage.Backend = "memory"
	}
	for i := range c.Streams {
		c.Streams[i].setDefaults()
	}
}

func (d *StreamDecl) setDefaults() {
	if d.PrimaryWidth == 0 {
		d.PrimaryWidth = 32
	}
	if d.SecondaryWidth == 0 {
		d.SecondaryWidth = 32
	}
	if d.MetaPrefix == "" {
		d.MetaPrefix = "s"
	}
	if d.DataPrefix == "" {
		d.DataPrefix = "d"
	}
	if d.Delimiter == "" {
		d.Delimiter = ":"
	}
}

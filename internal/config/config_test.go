// If you are AI: This file contains unit tests for config loading, defaults,
// and validation, in the plain-testing style used throughout this module.

package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfigFile(t *testing.T, contents string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfigFile(t, `
streams:
  - name: widgets
    has_publisher: true
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Server.HealthPort != 8080 {
		t.Errorf("got health_port %d, want 8080", cfg.Server.HealthPort)
	}
	if cfg.Server.APIPort != 8081 {
		t.Errorf("got api_port %d, want 8081", cfg.Server.APIPort)
	}
	if cfg.Server.ExportPort != 8082 {
		t.Errorf("got export_port %d, want 8082", cfg.Server.ExportPort)
	}
	if cfg.Storage.Backend != "memory" {
		t.Errorf("got backend %q, want memory", cfg.Storage.Backend)
	}

	decl := cfg.Streams[0]
	if decl.PrimaryWidth != 32 || decl.SecondaryWidth != 32 {
		t.Errorf("got widths (%d,%d), want (32,32)", decl.PrimaryWidth, decl.SecondaryWidth)
	}
	if decl.MetaPrefix != "s" || decl.DataPrefix != "d" || decl.Delimiter != ":" {
		t.Errorf("got prefixes (%q,%q,%q), want (s,d,:)", decl.MetaPrefix, decl.DataPrefix, decl.Delimiter)
	}
}

func TestLoadRejectsUnknownFields(t *testing.T) {
	path := writeConfigFile(t, `
bogus_field: true
`)

	if _, err := Load(path); err == nil {
		t.Error("expected error decoding config with unknown field")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error loading nonexistent config file")
	}
}

func TestValidateRejectsDuplicatePorts(t *testing.T) {
	cfg := &Config{
		Server:  ServerConfig{HealthPort: 8080, APIPort: 8080, ExportPort: 8082},
		Storage: StorageConfig{Backend: "memory"},
	}
	if err := cfg.Validate(); err == nil {
		t.Error("expected error validating config with duplicate ports")
	}
}

func TestValidateRejectsBadgerWithoutPath(t *testing.T) {
	cfg := &Config{
		Server:  ServerConfig{HealthPort: 8080, APIPort: 8081, ExportPort: 8082},
		Storage: StorageConfig{Backend: "badger"},
	}
	if err := cfg.Validate(); err == nil {
		t.Error("expected error validating badger backend without a path")
	}
}

func TestValidateRejectsUnknownBackend(t *testing.T) {
	cfg := &Config{
		Server:  ServerConfig{HealthPort: 8080, APIPort: 8081, ExportPort: 8082},
		Storage: StorageConfig{Backend: "dynamo"},
	}
	if err := cfg.Validate(); err == nil {
		t.Error("expected error validating an unrecognized storage backend")
	}
}

func TestValidateRejectsDuplicateStreamNames(t *testing.T) {
	cfg := &Config{
		Server:  ServerConfig{HealthPort: 8080, APIPort: 8081, ExportPort: 8082},
		Storage: StorageConfig{Backend: "memory"},
		Streams: []StreamDecl{
			{Name: "widgets", PrimaryWidth: 32, SecondaryWidth: 32, MetaPrefix: "s", DataPrefix: "d", Delimiter: ":"},
			{Name: "widgets", PrimaryWidth: 32, SecondaryWidth: 32, MetaPrefix: "s", DataPrefix: "d", Delimiter: ":"},
		},
	}
	if err := cfg.Validate(); err == nil {
		t.Error("expected error validating duplicate stream declarations")
	}
}

func TestValidateRejectsBadWidth(t *testing.T) {
	cfg := &Config{
		Server:  ServerConfig{HealthPort: 8080, APIPort: 8081, ExportPort: 8082},
		Storage: StorageConfig{Backend: "memory"},
		Streams: []StreamDecl{
			{Name: "widgets", PrimaryWidth: 24, SecondaryWidth: 32, MetaPrefix: "s", DataPrefix: "d", Delimiter: ":"},
		},
	}
	if err := cfg.Validate(); err == nil {
		t.Error("expected error validating an unsupported primary_width")
	}
}

func TestValidateAcceptsWellFormedConfig(t *testing.T) {
	cfg := &Config{
		Server:  ServerConfig{HealthPort: 8080, APIPort: 8081, ExportPort: 8082},
		Storage: StorageConfig{Backend: "memory"},
		Streams: []StreamDecl{
			{Name: "widgets", PrimaryWidth: 32, SecondaryWidth: 32, HasPublisher: true, MetaPrefix: "s", DataPrefix: "d", Delimiter: ":"},
		},
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

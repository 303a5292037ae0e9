package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return path
}

const validYAML = `
server:
  host: 127.0.0.1
  port: 8080
storage:
  path: /var/lib/gymlog
auth:
  api_key: secret
alerts:
  enabled: true
`

func TestLoad(t *testing.T) {
	cfg, err := Load(writeConfig(t, validYAML))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Host != "127.0.0.1" {
		t.Errorf("Server.Host = %q, want 127.0.0.1", cfg.Server.Host)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Storage.Path != "/var/lib/gymlog" {
		t.Errorf("Storage.Path = %q, want /var/lib/gymlog", cfg.Storage.Path)
	}
	if cfg.Auth.APIKey != "secret" {
		t.Errorf("Auth.APIKey = %q, want secret", cfg.Auth.APIKey)
	}
	if !cfg.Alerts.Enabled {
		t.Error("Alerts.Enabled = false, want true")
	}
	if cfg.Tailscale.Enabled {
		t.Error("Tailscale.Enabled = true, want false by default")
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("GYMLOG_SERVER_PORT", "9999")
	t.Setenv("GYMLOG_AUTH_API_KEY", "from-env")
	t.Setenv("GYMLOG_ALERTS_ENABLED", "false")

	cfg, err := Load(writeConfig(t, validYAML))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != 9999 {
		t.Errorf("Server.Port = %d, want env override 9999", cfg.Server.Port)
	}
	if cfg.Auth.APIKey != "from-env" {
		t.Errorf("Auth.APIKey = %q, want env override", cfg.Auth.APIKey)
	}
	if cfg.Alerts.Enabled {
		t.Error("Alerts.Enabled = true, want env override false")
	}
}

func TestLoadValidation(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{
			"missing port",
			"storage:\n  path: /tmp/x\nauth:\n  api_key: k\n",
		},
		{
			"missing storage path",
			"server:\n  port: 8080\nauth:\n  api_key: k\n",
		},
		{
			"missing api key",
			"server:\n  port: 8080\nstorage:\n  path: /tmp/x\n",
		},
		{
			"tailscale without hostname",
			"server:\n  port: 8080\nstorage:\n  path: /tmp/x\nauth:\n  api_key: k\ntailscale:\n  enabled: true\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load(writeConfig(t, tt.yaml)); err == nil {
				t.Error("Load() error = nil, want validation error")
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("Load() error = nil, want error for missing file")
	}
}

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/vango-dev/refstore/internal/errors"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return dir
}

func TestNew(t *testing.T) {
	cfg := New()

	if cfg.Server.Port != DefaultPort {
		t.Errorf("Server.Port = %d, want %d", cfg.Server.Port, DefaultPort)
	}
	if cfg.Server.WSPath != "/ws" {
		t.Errorf("Server.WSPath = %q, want /ws", cfg.Server.WSPath)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoad(t *testing.T) {
	if _, err := Load(t.TempDir()); errors.Code(err) != "E120" {
		t.Errorf("missing config error = %v, want E120", err)
	}

	dir := writeConfig(t, `{
  "server": {"host": "127.0.0.1", "port": 9000, "maxSessions": 5},
  "session": {"idleTimeout": "1m"}
}`)
	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Server.Port != 9000 || cfg.Server.Host != "127.0.0.1" {
		t.Errorf("Server = %+v", cfg.Server)
	}
	if cfg.Server.Title != "refstore" {
		t.Errorf("Title default not applied: %q", cfg.Server.Title)
	}
	if cfg.Session.IdleTimeout != "1m" || cfg.Session.ReadTimeout != "60s" {
		t.Errorf("Session = %+v", cfg.Session)
	}
	if cfg.Path() != filepath.Join(dir, ConfigFileName) {
		t.Errorf("Path() = %q", cfg.Path())
	}
	if cfg.Address() != "127.0.0.1:9000" {
		t.Errorf("Address() = %q", cfg.Address())
	}
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		code    string
	}{
		{"bad json", `{"server":`, "E120"},
		{"bad port", `{"server": {"port": 70000}}`, "E121"},
		{"bad ws path", `{"server": {"wsPath": "ws"}}`, "E121"},
		{"bad duration", `{"session": {"idleTimeout": "soon"}}`, "E121"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			if got := errors.Code(err); got != tt.code {
				t.Errorf("Load() error = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestLoadOptional(t *testing.T) {
	cfg, err := LoadOptional(t.TempDir())
	if err != nil {
		t.Fatalf("LoadOptional() error = %v", err)
	}
	if cfg.Server.Port != DefaultPort {
		t.Errorf("Server.Port = %d, want default", cfg.Server.Port)
	}

	if _, err := LoadOptional(writeConfig(t, `{`)); err == nil {
		t.Error("LoadOptional should still report parse errors")
	}
}

func TestApplyEnv(t *testing.T) {
	tests := []struct {
		name      string
		env       map[string]string
		wantAddr  string
		wantDebug bool
		wantErr   bool
	}{
		{"none", nil, ":8080", false, false},
		{"addr", map[string]string{EnvAddr: "localhost:3000"}, "localhost:3000", false, false},
		{"debug", map[string]string{EnvDebug: "true"}, ":8080", true, false},
		{"bad addr", map[string]string{EnvAddr: "nope"}, "", false, true},
		{"bad port", map[string]string{EnvAddr: "localhost:http"}, "", false, true},
		{"bad debug", map[string]string{EnvDebug: "maybe"}, "", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := New()
			err := cfg.ApplyEnv(func(key string) string { return tt.env[key] })
			if (err != nil) != tt.wantErr {
				t.Fatalf("ApplyEnv() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if cfg.Address() != tt.wantAddr {
				t.Errorf("Address() = %q, want %q", cfg.Address(), tt.wantAddr)
			}
			if cfg.Server.Debug != tt.wantDebug {
				t.Errorf("Debug = %v, want %v", cfg.Server.Debug, tt.wantDebug)
			}
		})
	}
}

func TestServerConfig(t *testing.T) {
	cfg := New()
	cfg.Server.Title = "Login"
	cfg.Server.MaxSessions = 3
	cfg.Server.Debug = true
	cfg.Session.IdleTimeout = "2m"
	cfg.Session.MaxRenderPasses = 4

	sc := cfg.ServerConfig()
	if sc.Address != ":8080" || sc.Title != "Login" || sc.MaxSessions != 3 || !sc.DebugMode {
		t.Errorf("ServerConfig() = %+v", sc)
	}
	if sc.SessionConfig.IdleTimeout != 2*time.Minute {
		t.Errorf("IdleTimeout = %v, want 2m", sc.SessionConfig.IdleTimeout)
	}
	if sc.SessionConfig.MaxRenderPasses != 4 {
		t.Errorf("MaxRenderPasses = %d, want 4", sc.SessionConfig.MaxRenderPasses)
	}
	if sc.SessionConfig.ReadTimeout != time.Minute {
		t.Errorf("ReadTimeout = %v, want 1m", sc.SessionConfig.ReadTimeout)
	}
}

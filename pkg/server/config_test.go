package server

import (
	"net/http/httptest"
	"testing"
	"time"
)

func TestApplyDefaults(t *testing.T) {
	config := &ServerConfig{
		Address:       ":9090",
		SessionConfig: &SessionConfig{IdleTimeout: time.Minute},
	}
	config.applyDefaults()

	if config.Address != ":9090" {
		t.Errorf("Address = %q, want :9090", config.Address)
	}
	if config.WSPath != "/ws" {
		t.Errorf("WSPath = %q, want /ws", config.WSPath)
	}
	if config.CheckOrigin == nil {
		t.Error("CheckOrigin should default to SameOriginCheck")
	}
	if config.SessionConfig.IdleTimeout != time.Minute {
		t.Errorf("IdleTimeout = %v, want 1m", config.SessionConfig.IdleTimeout)
	}
	if config.SessionConfig.MaxRenderPasses != 10 {
		t.Errorf("MaxRenderPasses = %d, want 10", config.SessionConfig.MaxRenderPasses)
	}
	if config.ShutdownTimeout != 30*time.Second {
		t.Errorf("ShutdownTimeout = %v, want 30s", config.ShutdownTimeout)
	}
}

func TestServerConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*ServerConfig)
		wantErr bool
	}{
		{"defaults", func(*ServerConfig) {}, false},
		{"relative ws path", func(c *ServerConfig) { c.WSPath = "ws" }, true},
		{"negative max sessions", func(c *ServerConfig) { c.MaxSessions = -1 }, true},
		{"negative render passes", func(c *ServerConfig) { c.SessionConfig.MaxRenderPasses = -1 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := DefaultServerConfig()
			tt.mutate(config)
			err := config.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				wantCode(t, err, "E121")
			}
		})
	}
}

func TestSameOriginCheck(t *testing.T) {
	tests := []struct {
		name   string
		host   string
		origin string
		want   bool
	}{
		{"no origin", "example.com", "", true},
		{"same host", "example.com", "https://example.com", true},
		{"same host with port", "localhost:8080", "http://localhost:8080", true},
		{"different host", "example.com", "https://evil.com", false},
		{"different port", "localhost:8080", "http://localhost:9090", false},
		{"bad origin", "example.com", "://bad", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/ws", nil)
			req.Host = tt.host
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}
			if got := SameOriginCheck(req); got != tt.want {
				t.Errorf("SameOriginCheck() = %v, want %v", got, tt.want)
			}
		})
	}
}

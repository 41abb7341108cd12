package server

import (
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/vango-dev/refstore/internal/errors"
	"github.com/vango-dev/refstore/pkg/render"
)

// SessionConfig holds configuration for individual sessions.
type SessionConfig struct {
	// ReadTimeout is the maximum time to wait for a message from the client.
	// Default: 60 seconds.
	ReadTimeout time.Duration

	// WriteTimeout is the maximum time to wait when sending a message.
	// Default: 10 seconds.
	WriteTimeout time.Duration

	// IdleTimeout is the time after which an inactive session is closed.
	// Default: 5 minutes.
	IdleTimeout time.Duration

	// MaxMessageSize is the maximum size of an incoming WebSocket message.
	// Default: 64KB.
	MaxMessageSize int64

	// MaxRenderPasses bounds how often dirty components are re-rendered
	// after one event. Default: 10.
	MaxRenderPasses int
}

// DefaultSessionConfig returns a SessionConfig with sensible defaults.
func DefaultSessionConfig() *SessionConfig {
	return &SessionConfig{
		ReadTimeout:     60 * time.Second,
		WriteTimeout:    10 * time.Second,
		IdleTimeout:     5 * time.Minute,
		MaxMessageSize:  64 * 1024,
		MaxRenderPasses: 10,
	}
}

// ServerConfig holds server-wide configuration.
type ServerConfig struct {
	// Address is the address to listen on (e.g., ":8080" or "localhost:3000").
	// Default: ":8080".
	Address string

	// Title is the page title of the shell document.
	Title string

	// WSPath is the websocket route. Default: "/ws".
	WSPath string

	// ReadBufferSize is the WebSocket read buffer size.
	// Default: 4096.
	ReadBufferSize int

	// WriteBufferSize is the WebSocket write buffer size.
	// Default: 4096.
	WriteBufferSize int

	// CheckOrigin is called to validate the websocket request origin.
	// Default: SameOriginCheck.
	CheckOrigin func(r *http.Request) bool

	// SessionConfig is the configuration for individual sessions.
	// Default: DefaultSessionConfig().
	SessionConfig *SessionConfig

	// ShutdownTimeout is the maximum time to wait for graceful shutdown.
	// Default: 30 seconds.
	ShutdownTimeout time.Duration

	// ReadHeaderTimeout bounds reading request headers.
	// Default: 5 seconds.
	ReadHeaderTimeout time.Duration

	// MaxSessions is the maximum number of concurrent sessions.
	// 0 means no limit.
	MaxSessions int

	// CleanupInterval is the interval of the idle session sweep.
	// Default: 30 seconds.
	CleanupInterval time.Duration

	// DebugMode enables hook order validation and debug logging.
	DebugMode bool
}

// DefaultServerConfig returns a ServerConfig with sensible defaults.
func DefaultServerConfig() *ServerConfig {
	return &ServerConfig{
		Address:           ":8080",
		Title:             "refstore",
		WSPath:            render.DefaultWSPath,
		ReadBufferSize:    4096,
		WriteBufferSize:   4096,
		CheckOrigin:       SameOriginCheck,
		SessionConfig:     DefaultSessionConfig(),
		ShutdownTimeout:   30 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		CleanupInterval:   30 * time.Second,
	}
}

// applyDefaults fills unset fields from DefaultServerConfig.
func (c *ServerConfig) applyDefaults() {
	defaults := DefaultServerConfig()
	if c.Address == "" {
		c.Address = defaults.Address
	}
	if c.Title == "" {
		c.Title = defaults.Title
	}
	if c.WSPath == "" {
		c.WSPath = defaults.WSPath
	}
	if c.ReadBufferSize == 0 {
		c.ReadBufferSize = defaults.ReadBufferSize
	}
	if c.WriteBufferSize == 0 {
		c.WriteBufferSize = defaults.WriteBufferSize
	}
	if c.CheckOrigin == nil {
		c.CheckOrigin = defaults.CheckOrigin
	}
	if c.SessionConfig == nil {
		c.SessionConfig = defaults.SessionConfig
	} else {
		sc, d := c.SessionConfig, defaults.SessionConfig
		if sc.ReadTimeout == 0 {
			sc.ReadTimeout = d.ReadTimeout
		}
		if sc.WriteTimeout == 0 {
			sc.WriteTimeout = d.WriteTimeout
		}
		if sc.IdleTimeout == 0 {
			sc.IdleTimeout = d.IdleTimeout
		}
		if sc.MaxMessageSize == 0 {
			sc.MaxMessageSize = d.MaxMessageSize
		}
		if sc.MaxRenderPasses == 0 {
			sc.MaxRenderPasses = d.MaxRenderPasses
		}
	}
	if c.ShutdownTimeout == 0 {
		c.ShutdownTimeout = defaults.ShutdownTimeout
	}
	if c.ReadHeaderTimeout == 0 {
		c.ReadHeaderTimeout = defaults.ReadHeaderTimeout
	}
	if c.CleanupInterval == 0 {
		c.CleanupInterval = defaults.CleanupInterval
	}
}

// Validate reports the first invalid value.
func (c *ServerConfig) Validate() error {
	if c.WSPath == "" || c.WSPath[0] != '/' {
		return errors.New("E121").WithDetail(fmt.Sprintf("ws path %q must start with /", c.WSPath))
	}
	if c.MaxSessions < 0 {
		return errors.New("E121").WithDetail("max sessions must not be negative")
	}
	if c.SessionConfig != nil && c.SessionConfig.MaxRenderPasses < 0 {
		return errors.New("E121").WithDetail("max render passes must not be negative")
	}
	return nil
}

// SameOriginCheck accepts requests without an Origin header and requests
// whose Origin host matches the Host header.
func SameOriginCheck(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}

	originURL, err := url.Parse(origin)
	if err != nil {
		return false
	}

	host := r.Host
	if host == "" {
		return false
	}
	return originURL.Host == host
}

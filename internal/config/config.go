package config

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io/fs"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/vango-dev/refstore/internal/errors"
	"github.com/vango-dev/refstore/pkg/server"
)

const (
	// ConfigFileName is the name of the configuration file.
	ConfigFileName = "refstore.json"

	// DefaultPort is the default server port.
	DefaultPort = 8080

	// DefaultHost is the default bind host. Empty binds all interfaces.
	DefaultHost = ""

	// EnvAddr overrides host and port.
	EnvAddr = "REFSTORE_ADDR"

	// EnvDebug enables debug mode when set to a true value.
	EnvDebug = "REFSTORE_DEBUG"
)

// Config represents the complete refstore.json configuration.
type Config struct {
	// Server contains listener and page settings.
	Server ServerConfig `json:"server"`

	// Session contains per-session limits.
	Session SessionConfig `json:"session"`

	// configPath stores the path where the config was loaded from.
	configPath string
}

// ServerConfig contains listener and page settings.
type ServerConfig struct {
	// Host is the host to bind to.
	Host string `json:"host,omitempty"`

	// Port is the port to listen on.
	Port int `json:"port,omitempty"`

	// Title is the page title.
	Title string `json:"title,omitempty"`

	// WSPath is the websocket route.
	WSPath string `json:"wsPath,omitempty"`

	// MaxSessions caps concurrent sessions. 0 means no limit.
	MaxSessions int `json:"maxSessions,omitempty"`

	// Debug enables debug logging and hook order checks.
	Debug bool `json:"debug,omitempty"`
}

// SessionConfig contains per-session limits. Durations use
// time.ParseDuration syntax, e.g. "30s".
type SessionConfig struct {
	ReadTimeout     string `json:"readTimeout,omitempty"`
	WriteTimeout    string `json:"writeTimeout,omitempty"`
	IdleTimeout     string `json:"idleTimeout,omitempty"`
	MaxMessageSize  int64  `json:"maxMessageSize,omitempty"`
	MaxRenderPasses int    `json:"maxRenderPasses,omitempty"`
}

// New returns a Config with default values.
func New() *Config {
	return &Config{
		Server: ServerConfig{
			Host:   DefaultHost,
			Port:   DefaultPort,
			Title:  "refstore",
			WSPath: "/ws",
		},
		Session: SessionConfig{
			ReadTimeout:     "60s",
			WriteTimeout:    "10s",
			IdleTimeout:     "5m",
			MaxMessageSize:  64 * 1024,
			MaxRenderPasses: 10,
		},
	}
}

// Load loads refstore.json from dir.
func Load(dir string) (*Config, error) {
	return LoadFile(filepath.Join(dir, ConfigFileName))
}

// LoadOptional is Load, but returns defaults when dir has no refstore.json.
func LoadOptional(dir string) (*Config, error) {
	cfg, err := Load(dir)
	if stderrors.Is(err, fs.ErrNotExist) {
		return New(), nil
	}
	return cfg, err
}

// LoadFile loads the configuration at path.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.New("E120").
			WithDetail("cannot read " + path).
			Wrap(err)
	}

	cfg := New()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, errors.New("E120").
			WithDetail("Failed to parse " + ConfigFileName + ": " + err.Error()).
			WithSuggestion("Check that " + ConfigFileName + " is valid JSON")
	}

	cfg.configPath = path
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Path returns the path the config was loaded from, or "".
func (c *Config) Path() string {
	return c.configPath
}

// applyDefaults fills in zero values left by a partial file.
func (c *Config) applyDefaults() {
	defaults := New()
	if c.Server.Port == 0 {
		c.Server.Port = defaults.Server.Port
	}
	if c.Server.Title == "" {
		c.Server.Title = defaults.Server.Title
	}
	if c.Server.WSPath == "" {
		c.Server.WSPath = defaults.Server.WSPath
	}
	if c.Session.ReadTimeout == "" {
		c.Session.ReadTimeout = defaults.Session.ReadTimeout
	}
	if c.Session.WriteTimeout == "" {
		c.Session.WriteTimeout = defaults.Session.WriteTimeout
	}
	if c.Session.IdleTimeout == "" {
		c.Session.IdleTimeout = defaults.Session.IdleTimeout
	}
	if c.Session.MaxMessageSize == 0 {
		c.Session.MaxMessageSize = defaults.Session.MaxMessageSize
	}
	if c.Session.MaxRenderPasses == 0 {
		c.Session.MaxRenderPasses = defaults.Session.MaxRenderPasses
	}
}

// Validate checks ranges and duration syntax.
func (c *Config) Validate() error {
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return errors.New("E121").
			WithDetail("Port must be between 0 and 65535")
	}
	if !strings.HasPrefix(c.Server.WSPath, "/") {
		return errors.New("E121").
			WithDetail(fmt.Sprintf("wsPath %q must start with /", c.Server.WSPath))
	}
	if c.Server.MaxSessions < 0 {
		return errors.New("E121").
			WithDetail("maxSessions must not be negative")
	}
	for name, value := range map[string]string{
		"readTimeout":  c.Session.ReadTimeout,
		"writeTimeout": c.Session.WriteTimeout,
		"idleTimeout":  c.Session.IdleTimeout,
	} {
		if _, err := time.ParseDuration(value); err != nil {
			return errors.New("E121").
				WithDetail(fmt.Sprintf("session.%s: %v", name, err))
		}
	}
	return nil
}

// ApplyEnv applies environment overrides read through getenv.
func (c *Config) ApplyEnv(getenv func(string) string) error {
	if addr := getenv(EnvAddr); addr != "" {
		host, port, err := net.SplitHostPort(addr)
		if err != nil {
			return errors.New("E121").
				WithDetail(EnvAddr + ": " + err.Error())
		}
		p, err := strconv.Atoi(port)
		if err != nil {
			return errors.New("E121").
				WithDetail(EnvAddr + ": invalid port " + port)
		}
		c.Server.Host = host
		c.Server.Port = p
	}
	if v := getenv(EnvDebug); v != "" {
		debug, err := strconv.ParseBool(v)
		if err != nil {
			return errors.New("E121").
				WithDetail(EnvDebug + ": " + err.Error())
		}
		c.Server.Debug = debug
	}
	return c.Validate()
}

// Address returns host:port.
func (c *Config) Address() string {
	return net.JoinHostPort(c.Server.Host, strconv.Itoa(c.Server.Port))
}

// ServerConfig converts the file settings into a server configuration.
// Call Validate first; unparsable durations fall back to the defaults.
func (c *Config) ServerConfig() *server.ServerConfig {
	sc := server.DefaultServerConfig()
	sc.Address = c.Address()
	sc.Title = c.Server.Title
	sc.WSPath = c.Server.WSPath
	sc.MaxSessions = c.Server.MaxSessions
	sc.DebugMode = c.Server.Debug

	sess := sc.SessionConfig
	if d, err := time.ParseDuration(c.Session.ReadTimeout); err == nil {
		sess.ReadTimeout = d
	}
	if d, err := time.ParseDuration(c.Session.WriteTimeout); err == nil {
		sess.WriteTimeout = d
	}
	if d, err := time.ParseDuration(c.Session.IdleTimeout); err == nil {
		sess.IdleTimeout = d
	}
	if c.Session.MaxMessageSize > 0 {
		sess.MaxMessageSize = c.Session.MaxMessageSize
	}
	if c.Session.MaxRenderPasses > 0 {
		sess.MaxRenderPasses = c.Session.MaxRenderPasses
	}
	return sc
}

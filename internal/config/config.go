// Package config resolves command line settings from defaults, an optional
// config file, XMLFORM_* environment variables and flags, in that order.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/goliatone/go-xmlform/pkg/extract"
	"github.com/goliatone/go-xmlform/pkg/tree"
)

const (
	// EnvPrefix namespaces environment overrides, e.g. XMLFORM_LOG_LEVEL.
	EnvPrefix = "XMLFORM"

	DefaultLogLevel     = "warn"
	DefaultLogFormat    = "console"
	DefaultRenderer     = "html"
	DefaultOutputFormat = "json"
	DefaultHTTPTimeout  = 15 * time.Second
	DefaultServerName   = "xmlform"
)

// Version is stamped at build time.
var Version = "0.1.0"

// Flag names, also used as viper keys.
const (
	KeyConfig        = "config"
	KeyLogLevel      = "log-level"
	KeyLogFormat     = "log-format"
	KeyRenderer      = "renderer"
	KeyOutputFormat  = "output-format"
	KeyInputFormat   = "input-format"
	KeyTypeAttribute = "type-attribute"
	KeyNameAttribute = "name-attribute"
	KeyAllowHTTP     = "allow-http"
	KeyHTTPTimeout   = "http-timeout"
	KeyServerName    = "server-name"
)

// Config holds the resolved settings shared by every subcommand.
type Config struct {
	LogLevel  string
	LogFormat string

	// Renderer names the registry entry used by `render`.
	Renderer string
	// OutputFormat selects how `extract` prints fields (json or yaml).
	OutputFormat string
	// InputFormat pins the document decoder; auto sniffs the payload.
	InputFormat string

	TypeAttribute string
	NameAttribute string

	AllowHTTP   bool
	HTTPTimeout time.Duration

	ServerName string
	Version    string
}

// DefaultConfig returns the built-in settings.
func DefaultConfig() *Config {
	return &Config{
		LogLevel:      DefaultLogLevel,
		LogFormat:     DefaultLogFormat,
		Renderer:      DefaultRenderer,
		OutputFormat:  DefaultOutputFormat,
		InputFormat:   string(tree.FormatAuto),
		TypeAttribute: extract.DefaultTypeAttribute,
		NameAttribute: extract.DefaultNameAttribute,
		HTTPTimeout:   DefaultHTTPTimeout,
		ServerName:    DefaultServerName,
		Version:       Version,
	}
}

// RegisterFlags defines the persistent flags on flags.
func RegisterFlags(flags *pflag.FlagSet) {
	cfg := DefaultConfig()
	flags.String(KeyConfig, "", "Path to a config file (yaml, json or toml)")
	flags.String(KeyLogLevel, cfg.LogLevel, "Log level (debug, info, warn, error)")
	flags.String(KeyLogFormat, cfg.LogFormat, "Log format (console, json)")
	flags.String(KeyRenderer, cfg.Renderer, "Renderer used by render (html, tui)")
	flags.String(KeyOutputFormat, cfg.OutputFormat, "Field output format for extract (json, yaml)")
	flags.String(KeyInputFormat, cfg.InputFormat, "Document format (auto, xml, json, yaml)")
	flags.String(KeyTypeAttribute, cfg.TypeAttribute, "Attribute carrying the field type")
	flags.String(KeyNameAttribute, cfg.NameAttribute, "Attribute carrying the field name")
	flags.Bool(KeyAllowHTTP, cfg.AllowHTTP, "Allow http(s) document sources")
	flags.Duration(KeyHTTPTimeout, cfg.HTTPTimeout, "Timeout for remote documents")
	flags.String(KeyServerName, cfg.ServerName, "Name advertised by the MCP server")
}

// Load resolves a Config from flags, which must carry the flags defined by
// RegisterFlags. A nil set loads defaults, environment and nothing else.
func Load(flags *pflag.FlagSet) (*Config, error) {
	v := newViper()
	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return nil, fmt.Errorf("config: bind flags: %w", err)
		}
	}

	if path := v.GetString(KeyConfig); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	}

	cfg := &Config{
		LogLevel:      v.GetString(KeyLogLevel),
		LogFormat:     v.GetString(KeyLogFormat),
		Renderer:      v.GetString(KeyRenderer),
		OutputFormat:  v.GetString(KeyOutputFormat),
		InputFormat:   v.GetString(KeyInputFormat),
		TypeAttribute: v.GetString(KeyTypeAttribute),
		NameAttribute: v.GetString(KeyNameAttribute),
		AllowHTTP:     v.GetBool(KeyAllowHTTP),
		HTTPTimeout:   v.GetDuration(KeyHTTPTimeout),
		ServerName:    v.GetString(KeyServerName),
		Version:       Version,
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func newViper() *viper.Viper {
	defaults := DefaultConfig()

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault(KeyConfig, "")
	v.SetDefault(KeyLogLevel, defaults.LogLevel)
	v.SetDefault(KeyLogFormat, defaults.LogFormat)
	v.SetDefault(KeyRenderer, defaults.Renderer)
	v.SetDefault(KeyOutputFormat, defaults.OutputFormat)
	v.SetDefault(KeyInputFormat, defaults.InputFormat)
	v.SetDefault(KeyTypeAttribute, defaults.TypeAttribute)
	v.SetDefault(KeyNameAttribute, defaults.NameAttribute)
	v.SetDefault(KeyAllowHTTP, defaults.AllowHTTP)
	v.SetDefault(KeyHTTPTimeout, defaults.HTTPTimeout)
	v.SetDefault(KeyServerName, defaults.ServerName)
	return v
}

// Validate rejects unknown enum values and empty attribute names.
func (c *Config) Validate() error {
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level: %s (must be one of: debug, info, warn, error)", c.LogLevel)
	}
	switch c.LogFormat {
	case "console", "json":
	default:
		return fmt.Errorf("invalid log format: %s (must be console or json)", c.LogFormat)
	}
	switch c.OutputFormat {
	case "json", "yaml":
	default:
		return fmt.Errorf("invalid output format: %s (must be json or yaml)", c.OutputFormat)
	}
	if _, ok := tree.ParseFormat(c.InputFormat); !ok {
		return fmt.Errorf("invalid input format: %s (must be one of: auto, xml, json, yaml)", c.InputFormat)
	}
	if strings.TrimSpace(c.Renderer) == "" {
		return errors.New("renderer cannot be empty")
	}
	if strings.TrimSpace(c.TypeAttribute) == "" || strings.TrimSpace(c.NameAttribute) == "" {
		return errors.New("type and name attributes cannot be empty")
	}
	if c.HTTPTimeout < 0 {
		return errors.New("http timeout cannot be negative")
	}
	return nil
}

// Format returns the parsed input format.
func (c *Config) Format() tree.Format {
	format, _ := tree.ParseFormat(c.InputFormat)
	return format
}

// IsDebug reports whether debug logging is enabled.
func (c *Config) IsDebug() bool {
	return c.LogLevel == "debug"
}

func (c *Config) String() string {
	return fmt.Sprintf("Config{LogLevel: %s, Renderer: %s, OutputFormat: %s, InputFormat: %s, AllowHTTP: %t}",
		c.LogLevel, c.Renderer, c.OutputFormat, c.InputFormat, c.AllowHTTP)
}

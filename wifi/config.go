package wifi

import (
	"log/slog"
)

// Config holds the settings for a Session.
type Config struct {
	// Dialer opens the transport to the module. Required.
	Dialer Dialer
	// Logger receives per-exchange traffic at debug level.
	// When nil, logging is disabled.
	Logger *slog.Logger
	// ReadChunkSize is the size of each blocking read from the transport.
	ReadChunkSize int
}

func (c *Config) validate() error {
	if c.Dialer == nil {
		return ErrNoDialer
	}
	return nil
}

func (c *Config) setDefaults() {
	if c.Logger == nil {
		c.Logger = slog.New(slog.DiscardHandler)
	}
	if c.ReadChunkSize == 0 {
		c.ReadChunkSize = 1024
	}
}

// ConfigBuilder assembles a Config fluently.
type ConfigBuilder struct {
	config Config
}

func NewConfigBuilder() *ConfigBuilder {
	return &ConfigBuilder{}
}

func (b *ConfigBuilder) WithDialer(d Dialer) *ConfigBuilder {
	b.config.Dialer = d
	return b
}

func (b *ConfigBuilder) WithLogger(l *slog.Logger) *ConfigBuilder {
	b.config.Logger = l
	return b
}

func (b *ConfigBuilder) WithReadChunkSize(n int) *ConfigBuilder {
	b.config.ReadChunkSize = n
	return b
}

// Build validates the assembled Config and returns it.
func (b *ConfigBuilder) Build() (Config, error) {
	if err := b.config.validate(); err != nil {
		return Config{}, err
	}
	return b.config, nil
}

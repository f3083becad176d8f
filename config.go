package serialecho

import (
	"fmt"
	"time"

	"github.com/allbin/serialecho/serial"
)

// Config describes one echo session. It is not modified once Run starts.
type Config struct {
	Port       string // device the loop opens
	BaudRate   int
	Debug      bool
	SourcePort string // when set, socat links SourcePort <-> Port

	Inject         bool
	InjectInterval time.Duration
	ReadTimeout    time.Duration
	LinkTimeout    time.Duration
	Helper         string
	SyncWrites     bool
}

// DefaultConfig returns a configuration with injection enabled every 2s
func DefaultConfig() Config {
	return Config{
		Inject:         true,
		InjectInterval: 2 * time.Second,
		ReadTimeout:    100 * time.Millisecond,
		LinkTimeout:    time.Second,
		Helper:         "socat",
	}
}

// LinkMode reports whether a virtual link must be provisioned.
func (c Config) LinkMode() bool {
	return c.SourcePort != ""
}

// Validate checks the configuration before any resource is acquired.
func (c Config) Validate() error {
	if c.Port == "" {
		return ErrMissingPort
	}
	if c.BaudRate <= 0 {
		return ErrInvalidBaudRate
	}
	if c.LinkMode() && c.SourcePort == c.Port {
		return ErrSamePorts
	}
	if c.Inject && c.InjectInterval <= 0 {
		return ErrInvalidInterval
	}
	if c.LinkMode() && c.LinkTimeout <= 0 {
		return ErrInvalidTimeout
	}

	sc := serial.DefaultConfig()
	for _, opt := range c.serialOptions() {
		if err := opt(&sc); err != nil {
			return fmt.Errorf("invalid serial settings (baudrate %d, read timeout %v): %w", c.BaudRate, c.ReadTimeout, err)
		}
	}
	return nil
}

func (c Config) serialOptions() []serial.Option {
	opts := []serial.Option{
		serial.WithBaudRate(c.BaudRate),
		serial.WithReadTimeout(c.ReadTimeout),
	}
	if c.SyncWrites {
		opts = append(opts, serial.WithSyncWrite())
	}
	return opts
}

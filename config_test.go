package serialecho

import (
	"errors"
	"testing"
	"time"

	"github.com/allbin/serialecho/serial"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if !cfg.Inject {
		t.Error("injection should be enabled by default")
	}
	if cfg.InjectInterval != 2*time.Second {
		t.Errorf("InjectInterval = %v, want 2s", cfg.InjectInterval)
	}
	if cfg.ReadTimeout != 100*time.Millisecond {
		t.Errorf("ReadTimeout = %v, want 100ms", cfg.ReadTimeout)
	}
	if cfg.Helper != "socat" {
		t.Errorf("Helper = %q, want socat", cfg.Helper)
	}
	if cfg.LinkMode() {
		t.Error("LinkMode() = true without a source port")
	}
}

func TestConfigValidate(t *testing.T) {
	valid := func() Config {
		cfg := DefaultConfig()
		cfg.Port = "/dev/ttyUSB0"
		cfg.BaudRate = 9600
		return cfg
	}

	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr error
	}{
		{"valid", func(c *Config) {}, nil},
		{"valid link", func(c *Config) { c.SourcePort = "/tmp/in" }, nil},
		{"missing port", func(c *Config) { c.Port = "" }, ErrMissingPort},
		{"zero baud", func(c *Config) { c.BaudRate = 0 }, ErrInvalidBaudRate},
		{"negative baud", func(c *Config) { c.BaudRate = -9600 }, ErrInvalidBaudRate},
		{"same ports", func(c *Config) { c.SourcePort = c.Port }, ErrSamePorts},
		{"zero interval", func(c *Config) { c.InjectInterval = 0 }, ErrInvalidInterval},
		{"zero interval without injection", func(c *Config) {
			c.Inject = false
			c.InjectInterval = 0
		}, nil},
		{"zero link timeout", func(c *Config) {
			c.SourcePort = "/tmp/in"
			c.LinkTimeout = 0
		}, ErrInvalidTimeout},
		{"zero link timeout without link", func(c *Config) { c.LinkTimeout = 0 }, nil},
		{"uneven read timeout", func(c *Config) { c.ReadTimeout = 150 * time.Millisecond }, serial.ErrInvalidConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.modify(&cfg)

			err := cfg.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("Validate() error = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestSerialOptions(t *testing.T) {
	cfg := DefaultConfig()
	cfg.BaudRate = 57600
	cfg.ReadTimeout = 200 * time.Millisecond
	cfg.SyncWrites = true

	sc := serial.DefaultConfig()
	for _, opt := range cfg.serialOptions() {
		if err := opt(&sc); err != nil {
			t.Fatalf("option error = %v", err)
		}
	}

	if sc.BaudRate != 57600 {
		t.Errorf("BaudRate = %d, want 57600", sc.BaudRate)
	}
	if sc.ReadTimeout != 200*time.Millisecond {
		t.Errorf("ReadTimeout = %v, want 200ms", sc.ReadTimeout)
	}
	if sc.WriteMode != serial.WriteModeSynced {
		t.Errorf("WriteMode = %v, want synced", sc.WriteMode)
	}
}

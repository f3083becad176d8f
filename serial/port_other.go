//go:build !linux

package serial

import (
	"errors"
	"fmt"
	"sync"

	bugst "go.bug.st/serial"
)

// port wraps go.bug.st/serial on platforms without the termios driver.
// WriteModeSynced has no equivalent there and is ignored.
type port struct {
	mu     sync.RWMutex
	p      bugst.Port
	path   string
	closed bool
}

var _ Port = (*port)(nil)

// getBaudRate accepts any positive rate; the OS driver validates the rest.
func getBaudRate(rate int) (uint32, error) {
	if rate <= 0 {
		return 0, ErrInvalidBaudRate
	}
	return uint32(rate), nil
}

func classifyOpenError(device string, err error) error {
	var portErr *bugst.PortError
	if errors.As(err, &portErr) {
		switch portErr.Code() {
		case bugst.PortNotFound:
			return fmt.Errorf("open %s: %w: %w", device, ErrDeviceNotFound, err)
		case bugst.PermissionDenied:
			return fmt.Errorf("open %s: %w: %w", device, ErrPermissionDenied, err)
		case bugst.PortBusy:
			return fmt.Errorf("open %s: %w: %w", device, ErrDeviceInUse, err)
		case bugst.InvalidSpeed:
			return fmt.Errorf("open %s: %w: %w", device, ErrInvalidBaudRate, err)
		}
	}
	return fmt.Errorf("open %s: %w", device, err)
}

func openPort(device string, config Config) (Port, error) {
	mode := &bugst.Mode{
		BaudRate: config.BaudRate,
		DataBits: 8,
		Parity:   bugst.NoParity,
		StopBits: bugst.OneStopBit,
	}

	p, err := bugst.Open(device, mode)
	if err != nil {
		return nil, classifyOpenError(device, err)
	}

	if err := p.SetReadTimeout(config.ReadTimeout); err != nil {
		p.Close()
		return nil, fmt.Errorf("configure %s: %w", device, err)
	}

	return &port{p: p, path: device}, nil
}

func (p *port) Path() string {
	return p.path
}

func (p *port) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return ErrPortClosed
	}
	p.closed = true
	return p.p.Close()
}

func (p *port) Read(buf []byte) (int, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		return 0, ErrPortClosed
	}

	n, err := p.p.Read(buf)
	if err != nil {
		return 0, fmt.Errorf("read %s: %w", p.path, err)
	}
	if n == 0 && len(buf) > 0 {
		return 0, ErrReadTimeout
	}
	return n, nil
}

func (p *port) ReadByte() (byte, error) {
	return readByte(p)
}

func (p *port) Write(data []byte) (int, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		return 0, ErrPortClosed
	}

	written := 0
	for written < len(data) {
		n, err := p.p.Write(data[written:])
		if err != nil {
			return written, fmt.Errorf("write %s: %w", p.path, err)
		}
		written += n
	}
	return written, nil
}

func (p *port) Drain() error {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		return ErrPortClosed
	}

	if err := p.p.Drain(); err != nil {
		return fmt.Errorf("drain %s: %w", p.path, err)
	}
	return nil
}

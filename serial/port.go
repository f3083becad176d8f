package serial

// Port represents a serial port connection interface
type Port interface {
	// Read returns ErrReadTimeout when nothing arrived within the read window.
	Read(buf []byte) (int, error)
	ReadByte() (byte, error)
	// Write returns only after every byte was accepted by the driver.
	Write(data []byte) (int, error)
	// Drain waits until all output written to the port has been transmitted.
	Drain() error
	Close() error
	Path() string
}

// Open opens a serial port with the given device path and options
func Open(device string, opts ...Option) (Port, error) {
	config := DefaultConfig()
	for _, opt := range opts {
		if err := opt(&config); err != nil {
			return nil, err
		}
	}
	return openPort(device, config)
}

// readByte adapts a Read implementation to the single byte contract.
func readByte(p Port) (byte, error) {
	var b [1]byte
	if _, err := p.Read(b[:]); err != nil {
		return 0, err
	}
	return b[0], nil
}

package serialecho

import "errors"

var (
	ErrHandlerInstalled = errors.New("interrupt handler already installed")
	ErrHelperExited     = errors.New("link helper exited unexpectedly")
	ErrDeviceNotCreated = errors.New("link device was not created in time")

	// Configuration errors
	ErrMissingPort     = errors.New("serial port path is required")
	ErrInvalidBaudRate = errors.New("baud rate must be a positive integer")
	ErrSamePorts       = errors.New("socat port must differ from the serial port")
	ErrInvalidInterval = errors.New("inject interval must be positive")
	ErrInvalidTimeout  = errors.New("link timeout must be positive")
)

// Package serial provides the raw byte-level serial port used by serialecho.
//
// Ports are always opened in raw 8N1 mode. Reads use a short window
// (termios VMIN=0, VTIME) so callers can poll a cancellation flag between
// reads instead of blocking indefinitely.
//
// # Basic Usage
//
//	port, err := serial.Open("/dev/ttyUSB0",
//	    serial.WithBaudRate(9600),
//	    serial.WithReadTimeout(100*time.Millisecond),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer port.Close()
//
//	b, err := port.ReadByte()
//	if errors.Is(err, serial.ErrReadTimeout) {
//	    // nothing arrived in this window
//	}
//
// # Error Handling
//
// Open failures wrap ErrDeviceNotFound, ErrPermissionDenied or ErrDeviceInUse
// when the OS error maps to one of them; use errors.Is() to check.
//
// # Platform Support
//
// Linux uses termios ioctls directly. Other platforms fall back to
// go.bug.st/serial with the same read/write contract.
//
// # Default Configuration
//
//   - BaudRate: 115200
//   - Framing: 8N1 (fixed)
//   - ReadTimeout: 100ms
//   - WriteMode: Buffered
package serial

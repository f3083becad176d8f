// Package serialecho is a serial-port diagnostic: it echoes every byte it
// receives back to the sender and, by default, injects a randomly colored
// burst of random bytes every two seconds.
//
// # Basic Usage
//
//	cfg := serialecho.DefaultConfig()
//	cfg.Port = "/dev/ttyUSB0"
//	cfg.BaudRate = 9600
//	cfg.Debug = true
//	if err := serialecho.Run(cfg, os.Stdout, os.Stderr); err != nil {
//	    log.Fatal(err)
//	}
//
// Run returns nil after SIGINT or SIGTERM once the port is closed.
//
// # Virtual Links
//
// Setting SourcePort asks socat to create two linked pseudo-terminals,
// SourcePort and Port, before the port is opened:
//
//	socat PTY,link=<SourcePort>,raw,echo=0 PTY,link=<Port>,raw,echo=0
//
// On exit socat is killed and both links are removed. Failing to remove
// either one makes Run fail.
//
// # Cancellation
//
// Cancellation is cooperative. The loop checks a Flag before every
// iteration and reads with a short timeout, so it stops within one read
// window of the signal. Writes and drains in flight are never interrupted.
package serialecho

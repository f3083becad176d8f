package serialecho

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"strings"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// devicePollInterval is how often Provision checks for the link devices.
const devicePollInterval = 10 * time.Millisecond

// Spawner starts the helper process that links two virtual serial devices.
type Spawner interface {
	Spawn(source, target string) (Helper, error)
}

// Helper is a running link helper.
type Helper interface {
	// Terminate stops the helper and waits for it to exit.
	Terminate() error
}

// Endpoint is the socat address for a raw, non-echoing PTY linked at path.
func Endpoint(path string) string {
	return fmt.Sprintf("PTY,link=%s,raw,echo=0", path)
}

// Socat spawns socat as the link helper.
type Socat struct {
	Binary string // defaults to "socat" on PATH
}

func (s Socat) binary() string {
	if s.Binary == "" {
		return "socat"
	}
	return s.Binary
}

// Spawn starts socat with one PTY endpoint per path. Its output is captured
// so it never writes to the console.
func (s Socat) Spawn(source, target string) (Helper, error) {
	bin := s.binary()
	cmd := exec.Command(bin, Endpoint(source), Endpoint(target))
	detach(cmd)

	out := &syncBuffer{}
	cmd.Stdout = out
	cmd.Stderr = out

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("cannot spawn %s process: %w", bin, err)
	}

	p := &socatProcess{cmd: cmd, output: out, done: make(chan struct{})}
	go func() {
		p.waitErr = cmd.Wait()
		close(p.done)
	}()
	return p, nil
}

type socatProcess struct {
	cmd     *exec.Cmd
	output  *syncBuffer
	done    chan struct{}
	waitErr error
}

// Terminate kills socat and reaps it. A helper that already exited on its
// own is reported as an error.
func (p *socatProcess) Terminate() error {
	select {
	case <-p.done:
		return fmt.Errorf("pid %d: %w: %v%s", p.cmd.Process.Pid, ErrHelperExited, p.waitErr, p.output.summary())
	default:
	}

	if err := p.cmd.Process.Kill(); err != nil && !errors.Is(err, os.ErrProcessDone) {
		return fmt.Errorf("kill pid %d: %w", p.cmd.Process.Pid, err)
	}
	<-p.done
	return nil
}

// Output returns what the helper printed so far.
func (p *socatProcess) Output() string {
	return p.output.String()
}

// syncBuffer is written by the exec copier goroutine and read by Terminate.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func (b *syncBuffer) summary() string {
	s := strings.TrimSpace(b.String())
	if s == "" {
		return ""
	}
	return " (output: " + s + ")"
}

// Link is a provisioned pair of virtual serial devices.
type Link struct {
	Source string
	Target string

	helper Helper
	remove func(string) error
	torn   bool
}

// Provision spawns the helper and waits until both device paths exist.
// If they do not appear within timeout the helper is terminated again.
func Provision(sp Spawner, source, target string, timeout time.Duration, clock clockwork.Clock) (*Link, error) {
	helper, err := sp.Spawn(source, target)
	if err != nil {
		return nil, err
	}

	link := &Link{
		Source: source,
		Target: target,
		helper: helper,
		remove: os.Remove,
	}

	for _, path := range []string{source, target} {
		if err := waitForDevice(clock, path, timeout); err != nil {
			if terr := helper.Terminate(); terr != nil {
				err = errors.Join(err, fmt.Errorf("cannot kill helper process: %w", terr))
			}
			err = errors.Join(err, removeIfExists(source), removeIfExists(target))
			return nil, err
		}
	}
	return link, nil
}

func waitForDevice(clock clockwork.Clock, path string, timeout time.Duration) error {
	deadline := clock.Now().Add(timeout)
	for {
		if _, err := os.Stat(path); err == nil {
			return nil
		}
		if !clock.Now().Before(deadline) {
			return fmt.Errorf("%s: %w within %v", path, ErrDeviceNotCreated, timeout)
		}
		clock.Sleep(devicePollInterval)
	}
}

func removeIfExists(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("cannot remove %s: %w", path, err)
	}
	return nil
}

// Teardown terminates the helper, then removes the source and the target
// device, in that order. Every step is attempted; the first failure is
// returned. Calling Teardown again is a no-op.
func (l *Link) Teardown() error {
	if l.torn {
		return nil
	}
	l.torn = true

	var first error
	if err := l.helper.Terminate(); err != nil {
		first = fmt.Errorf("cannot kill helper process: %w", err)
	}
	for _, path := range []string{l.Source, l.Target} {
		if err := l.remove(path); err != nil && first == nil {
			first = fmt.Errorf("cannot remove %s: %w", path, err)
		}
	}
	return first
}

// HelperOutput returns the captured helper output when available.
func (l *Link) HelperOutput() string {
	if p, ok := l.helper.(interface{ Output() string }); ok {
		return p.Output()
	}
	return ""
}

package serialecho

import (
	"os"
	"sync"

	"github.com/allbin/serialecho/serial"
)

// fakePort serves scripted input and records everything written to it.
// It is used from the loop goroutine only.
type fakePort struct {
	path    string
	input   []byte
	readErr error
	onRead  func()

	writes   [][]byte
	drains   int
	closes   int
	writeErr error
	drainErr error
	closeErr error
}

var _ serial.Port = (*fakePort)(nil)

func (p *fakePort) Path() string { return p.path }

func (p *fakePort) ReadByte() (byte, error) {
	if p.onRead != nil {
		p.onRead()
	}
	if len(p.input) > 0 {
		b := p.input[0]
		p.input = p.input[1:]
		return b, nil
	}
	if p.readErr != nil {
		return 0, p.readErr
	}
	return 0, serial.ErrReadTimeout
}

func (p *fakePort) Read(buf []byte) (int, error) {
	b, err := p.ReadByte()
	if err != nil {
		return 0, err
	}
	buf[0] = b
	return 1, nil
}

func (p *fakePort) Write(data []byte) (int, error) {
	if p.writeErr != nil {
		return 0, p.writeErr
	}
	p.writes = append(p.writes, append([]byte(nil), data...))
	return len(data), nil
}

func (p *fakePort) Drain() error {
	if p.drainErr != nil {
		return p.drainErr
	}
	p.drains++
	return nil
}

func (p *fakePort) Close() error {
	p.closes++
	return p.closeErr
}

// recorder is an append-only operation log shared by fakes.
type recorder struct {
	mu  sync.Mutex
	ops []string
}

func (r *recorder) add(op string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ops = append(r.ops, op)
}

func (r *recorder) list() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.ops...)
}

// fakeSpawner stands in for socat. With create set it creates both device
// paths as regular files.
type fakeSpawner struct {
	rec     *recorder
	create  bool
	err     error
	termErr error
}

func (s *fakeSpawner) Spawn(source, target string) (Helper, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.rec.add("spawn")
	if s.create {
		for _, path := range []string{source, target} {
			if err := os.WriteFile(path, nil, 0o600); err != nil {
				return nil, err
			}
		}
	}
	return &fakeHelper{rec: s.rec, err: s.termErr}, nil
}

type fakeHelper struct {
	rec *recorder
	err error
}

func (h *fakeHelper) Terminate() error {
	h.rec.add("terminate")
	return h.err
}

// notifyInto hands the run's flag to the test instead of installing a
// process signal handler.
func notifyInto(ch chan<- *Flag) NotifyFunc {
	return func(f *Flag) (func(), error) {
		ch <- f
		return func() {}, nil
	}
}

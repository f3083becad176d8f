package serialecho

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/jonboulle/clockwork"
	"go.uber.org/atomic"

	"github.com/allbin/serialecho/internal/console"
	"github.com/allbin/serialecho/serial"
)

// State is the lifecycle state of a Loop
type State int32

const (
	StateRunning State = iota
	StateStopping
	StateStopped
)

func (s State) String() string {
	switch s {
	case StateRunning:
		return "RUNNING"
	case StateStopping:
		return "STOPPING"
	case StateStopped:
		return "STOPPED"
	default:
		return "UNKNOWN"
	}
}

// Stats counts what a Loop did.
type Stats struct {
	Echoed   int
	Bursts   int
	Injected int // bytes sent in bursts
}

// Loop echoes every received byte and injects timed bursts. It owns the
// port from Run until Run returns.
type Loop struct {
	port  serial.Port
	flag  *Flag
	clock clockwork.Clock
	rng   *rand.Rand
	log   *console.Logger

	timer injectTimer
	state atomic.Int32
	stats Stats
}

// LoopOption configures a Loop
type LoopOption func(*Loop)

// WithInjectInterval enables bursts every interval; 0 disables them.
func WithInjectInterval(interval time.Duration) LoopOption {
	return func(l *Loop) {
		l.timer.interval = interval
	}
}

// WithClock replaces the wall clock used for injection timing.
func WithClock(clock clockwork.Clock) LoopOption {
	return func(l *Loop) {
		l.clock = clock
	}
}

// WithRand replaces the random source used for bursts.
func WithRand(r *rand.Rand) LoopOption {
	return func(l *Loop) {
		l.rng = r
	}
}

// WithLogger sets where debug tracing goes.
func WithLogger(log *console.Logger) LoopOption {
	return func(l *Loop) {
		l.log = log
	}
}

// NewLoop creates a loop over an open port. Injection is off unless
// WithInjectInterval is given.
func NewLoop(port serial.Port, flag *Flag, opts ...LoopOption) *Loop {
	l := &Loop{
		port:  port,
		flag:  flag,
		clock: clockwork.NewRealClock(),
		rng:   rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		log:   console.Discard(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// State returns the current lifecycle state.
func (l *Loop) State() State {
	return State(l.state.Load())
}

// Stats returns the counters. Only meaningful once Run returned.
func (l *Loop) Stats() Stats {
	return l.stats
}

// Run polls until the flag is set or an I/O error occurs, then closes the
// port and leaves the loop in StateStopping.
func (l *Loop) Run() (err error) {
	l.state.Store(int32(StateRunning))
	l.timer.last = l.clock.Now()

	defer func() {
		l.state.Store(int32(StateStopping))
		if cerr := l.port.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("cannot close serial port %s: %w", l.port.Path(), cerr)
		}
	}()

	for {
		if l.flag.IsSet() {
			return nil
		}
		if err := l.inject(); err != nil {
			return err
		}
		if err := l.echo(); err != nil {
			return err
		}
	}
}

// markStopped records that teardown finished after Run returned.
func (l *Loop) markStopped() {
	l.state.Store(int32(StateStopped))
}

func (l *Loop) inject() error {
	if !l.timer.due(l.clock.Now()) {
		return nil
	}

	burst := Burst(l.rng)
	if _, err := l.port.Write(burst); err != nil {
		return fmt.Errorf("cannot write bytes on serial: %w", err)
	}
	l.stats.Bursts++
	l.stats.Injected += len(burst)
	l.log.Trafficf("Sending %d bytes", len(burst))
	return nil
}

func (l *Loop) echo() error {
	b, err := l.port.ReadByte()
	if errors.Is(err, serial.ErrReadTimeout) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("cannot read from serial: %w", err)
	}

	l.log.Trafficf("Read: [%d]", b)
	if _, err := l.port.Write([]byte{b}); err != nil {
		return fmt.Errorf("cannot write a byte on serial: %w", err)
	}
	if err := l.port.Drain(); err != nil {
		return fmt.Errorf("cannot flush serial data: %w", err)
	}
	l.stats.Echoed++
	return nil
}

package serialecho

import (
	"errors"
	"fmt"
	"io"
	"math/rand/v2"

	"github.com/jonboulle/clockwork"

	"github.com/allbin/serialecho/internal/console"
	"github.com/allbin/serialecho/serial"
)

// OpenFunc opens the serial device for a session.
type OpenFunc func(device string, opts ...serial.Option) (serial.Port, error)

// NotifyFunc arranges for the flag to be set on interrupt.
type NotifyFunc func(f *Flag) (stop func(), err error)

// Runner wires a session's collaborators. Zero fields fall back to the real
// implementations: socat, serial.Open, NotifyInterrupt and the wall clock.
type Runner struct {
	Spawner Spawner
	Open    OpenFunc
	Notify  NotifyFunc
	Clock   clockwork.Clock
	Rand    *rand.Rand
	Log     *console.Logger
}

// Run executes one session: install the interrupt handler, provision the
// link when configured, open the port, loop until interrupted, then release
// the port and tear the link down. Cleanup runs on every exit path.
func (r *Runner) Run(cfg Config) (err error) {
	if err := cfg.Validate(); err != nil {
		return err
	}
	r.defaults(cfg)
	log := r.Log

	log.Debugf("Port %s selected", cfg.Port)
	log.Debugf("Baudrate %d selected", cfg.BaudRate)

	flag := new(Flag)
	stop, err := r.Notify(flag)
	if err != nil {
		return fmt.Errorf("cannot set interrupt handler: %w", err)
	}
	defer stop()

	var loop *Loop
	defer func() {
		if loop != nil {
			loop.markStopped()
		}
		if err == nil {
			log.Successf("See you later ^^")
		}
	}()

	if cfg.LinkMode() {
		link, perr := Provision(r.Spawner, cfg.SourcePort, cfg.Port, cfg.LinkTimeout, r.Clock)
		if perr != nil {
			return perr
		}
		log.Debugf("Linked %s <-> %s", cfg.SourcePort, cfg.Port)
		defer func() {
			if terr := link.Teardown(); terr != nil {
				err = errors.Join(err, terr)
				return
			}
			log.Successf("Kill socat successfully")
			if out := link.HelperOutput(); out != "" {
				log.Debugf("socat output: %s", out)
			}
		}()
	}

	port, err := r.Open(cfg.Port, cfg.serialOptions()...)
	if err != nil {
		return fmt.Errorf("cannot open serial port %s with baudrate %d bps: %w", cfg.Port, cfg.BaudRate, err)
	}

	opts := []LoopOption{WithClock(r.Clock), WithRand(r.Rand), WithLogger(log)}
	if cfg.Inject {
		opts = append(opts, WithInjectInterval(cfg.InjectInterval))
	}
	loop = NewLoop(port, flag, opts...)

	err = loop.Run()
	stats := loop.Stats()
	log.Debugf("Echoed %d bytes, injected %d bursts (%d bytes)", stats.Echoed, stats.Bursts, stats.Injected)
	return err
}

func (r *Runner) defaults(cfg Config) {
	if r.Spawner == nil {
		r.Spawner = Socat{Binary: cfg.Helper}
	}
	if r.Open == nil {
		r.Open = serial.Open
	}
	if r.Notify == nil {
		r.Notify = NotifyInterrupt
	}
	if r.Clock == nil {
		r.Clock = clockwork.NewRealClock()
	}
	if r.Rand == nil {
		r.Rand = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if r.Log == nil {
		r.Log = console.Discard()
	}
}

// Run executes a session with the real collaborators. Debug lines go to out
// when cfg.Debug is set; warnings and errors go to errOut.
func Run(cfg Config, out, errOut io.Writer) error {
	r := &Runner{Log: console.New(out, errOut, cfg.Debug)}
	return r.Run(cfg)
}

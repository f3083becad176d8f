package serialecho

import (
	"math/rand/v2"
	"time"
)

const (
	// MaxBurstPayload is the largest number of random bytes in one burst.
	MaxBurstPayload = 25

	// ColorReset ends every burst.
	ColorReset = "\x1b[0m"
)

// Burst returns ESC[3Xm (X in 1..7), 1 to MaxBurstPayload random bytes,
// then ColorReset.
func Burst(r *rand.Rand) []byte {
	color := byte('1' + r.IntN(7))
	n := 1 + r.IntN(MaxBurstPayload)

	b := make([]byte, 0, 5+n+len(ColorReset))
	b = append(b, 0x1b, '[', '3', color, 'm')
	for range n {
		b = append(b, byte(r.UintN(256)))
	}
	return append(b, ColorReset...)
}

// injectTimer gates bursts on wall-clock time. Only the loop touches it.
type injectTimer struct {
	interval time.Duration
	last     time.Time
}

// due reports whether more than interval elapsed since the last burst and,
// if so, restarts the interval at now.
func (t *injectTimer) due(now time.Time) bool {
	if t.interval <= 0 || now.Sub(t.last) <= t.interval {
		return false
	}
	t.last = now
	return true
}

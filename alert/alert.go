// Package alert plays the audible notification signal. In a terminal the
// signal is the BEL character; whether it produces sound is up to the
// emulator, which is why playback failures are always swallowed.
package alert

import (
	"io"
	"sync"
)

// Alerter gates playback on two things: the persisted sound preference
// (queried live through enabled) and a one-time prime performed inside a
// user gesture. Without the prime, nothing is ever played, mirroring
// autoplay-blocking environments.
type Alerter struct {
	mu      sync.Mutex
	out     io.Writer
	enabled func() bool
	primed  bool
}

func New(out io.Writer, enabled func() bool) *Alerter {
	return &Alerter{out: out, enabled: enabled}
}

// Prime unlocks the audio channel. Must be invoked synchronously from a
// user interaction (e.g. toggling the sound preference); it performs a
// silent write so a broken output surfaces here instead of at play time.
// Errors are ignored either way.
func (a *Alerter) Prime() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.primed {
		return
	}
	if a.out != nil {
		_, _ = a.out.Write([]byte{})
	}
	a.primed = true
}

func (a *Alerter) Primed() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.primed
}

// Play emits the alert once. No-op when the preference is off or the
// alerter was never primed; write failures never surface.
func (a *Alerter) Play() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.primed || a.enabled == nil || !a.enabled() {
		return
	}
	if a.out == nil {
		return
	}
	_, _ = a.out.Write([]byte{0x07})
}

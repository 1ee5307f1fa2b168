// Package instrument provides the per-phase wall-clock timing capture
// named in §5: a thin timer used identically by every
// core stage when instrumentation is enabled on that stage's instance.
package instrument

import "time"

// Timer accumulates named phase durations for one stage run. The zero
// value is usable but records nothing until Enabled is set, matching §5's
// "enabling instrumentation is a per-instance boolean".
type Timer struct {
	Enabled bool
	phases  []PhaseTiming
	start   time.Time
	current string
}

// PhaseTiming is one named phase's measured duration.
type PhaseTiming struct {
	Name     string
	Duration time.Duration
}

// Start begins timing a phase. If a phase was already open, it is closed
// first (recorded under its own name) before the new one starts.
func (t *Timer) Start(phase string) {
	if !t.Enabled {
		return
	}
	t.closeCurrent()
	t.current = phase
	t.start = time.Now()
}

// Stop closes the currently open phase, if any.
func (t *Timer) Stop() {
	if !t.Enabled {
		return
	}
	t.closeCurrent()
}

func (t *Timer) closeCurrent() {
	if t.current == "" {
		return
	}
	t.phases = append(t.phases, PhaseTiming{Name: t.current, Duration: time.Since(t.start)})
	t.current = ""
}

// Report returns the recorded phase timings and their aggregate total.
// Safe to call whether or not Enabled was set (an unused Timer reports an
// empty Report).
func (t *Timer) Report() Report {
	t.Stop()
	total := time.Duration(0)
	for _, p := range t.phases {
		total += p.Duration
	}
	return Report{Phases: append([]PhaseTiming(nil), t.phases...), Total: total}
}

// Package trend tracks per-metric growth behavior across sampling cycles:
// an exponential moving average, the current monotonic-increase streak, and
// cumulative growth since tracking began. The tracker feeds the top-N
// fastest-growing ranking in the final report.
package trend

import "sort"

// DefaultAlpha is the EMA smoothing constant.
const DefaultAlpha = 0.3

// State holds the tracked trend values for one metric.
type State struct {
	// EMA is the exponential moving average, initialized to the first
	// observed value.
	EMA float64

	// Streak is the number of consecutive strictly-increasing observations.
	// Any non-increase resets it to zero.
	Streak int

	// Last is the most recent observed value, updated unconditionally.
	Last float64

	// Growth is the cumulative change since the first observation.
	Growth float64

	start float64
}

// Tracker maintains trend state for every metric it has ever observed.
// Metrics are created lazily on first observation and never expire; a metric
// that stops appearing in samples simply stops updating.
//
// The Tracker is owned by the collection controller and is not safe for
// concurrent use.
type Tracker struct {
	alpha  float64
	states map[string]*State
}

// NewTracker creates a Tracker with the given EMA smoothing constant.
func NewTracker(alpha float64) *Tracker {
	return &Tracker{
		alpha:  alpha,
		states: make(map[string]*State),
	}
}

// Observe records one sampled value for name and returns the updated state.
func (t *Tracker) Observe(name string, value float64) *State {
	st, ok := t.states[name]
	if !ok {
		st = &State{
			EMA:   value,
			Last:  value,
			start: value,
		}
		t.states[name] = st
		return st
	}

	st.EMA += t.alpha * (value - st.EMA)

	if value > st.Last {
		st.Streak++
	} else {
		st.Streak = 0
	}
	st.Last = value
	st.Growth = value - st.start

	return st
}

// State returns the tracked state for name, or nil if never observed.
func (t *Tracker) State(name string) *State {
	return t.states[name]
}

// Len returns the number of tracked metrics.
func (t *Tracker) Len() int {
	return len(t.states)
}

// Ranked is one entry of a growth ranking.
type Ranked struct {
	Name   string
	Growth float64
}

// TopN returns the n fastest-growing tracked metrics by cumulative growth,
// descending. Ties are broken by name ascending so the ranking is
// deterministic.
func (t *Tracker) TopN(n int) []Ranked {
	ranked := make([]Ranked, 0, len(t.states))
	for name, st := range t.states {
		ranked = append(ranked, Ranked{Name: name, Growth: st.Growth})
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Growth != ranked[j].Growth {
			return ranked[i].Growth > ranked[j].Growth
		}
		return ranked[i].Name < ranked[j].Name
	})

	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

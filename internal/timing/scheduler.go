package timing

import (
	"fmt"
	"math"
)

const (
	DefaultBaseDelayMs = 250

	rampDivisor  = 4
	positionGain = 8
	minDelayGain = 20
)

// Policy controls per-frame display durations.
type Policy struct {
	BaseDelayMs int
	SpeedRamp   bool
}

func (p Policy) Validate() error {
	if p.BaseDelayMs <= 0 {
		return fmt.Errorf("base delay must be positive, got %d", p.BaseDelayMs)
	}
	return nil
}

// MaxDelayMs is the slowest frame duration, always the base delay.
func (p Policy) MaxDelayMs() int { return p.BaseDelayMs }

// MinDelayMs is the fastest frame duration the ramp may produce.
func (p Policy) MinDelayMs() int {
	if !p.SpeedRamp {
		return p.BaseDelayMs
	}
	m := p.BaseDelayMs / rampDivisor
	if m < 1 {
		m = 1
	}
	return m
}

// Scheduler assigns a display duration to each surviving token.
type Scheduler struct {
	policy Policy
}

func NewScheduler(p Policy) *Scheduler {
	return &Scheduler{policy: p}
}

func (s *Scheduler) Policy() Policy { return s.policy }

// DelayFor returns the delay in milliseconds of the token at index out of
// total surviving tokens.
//
// With the ramp on, frames near the midpoint play fastest. The arithmetic
// is empirical and kept exactly: d = (|i|*8/half)*(max-min) - min*20,
// clamped to [min, max], where i runs over [-half, half).
func (s *Scheduler) DelayFor(index, total int) int {
	maxDelay := s.policy.MaxDelayMs()
	if !s.policy.SpeedRamp || total <= 1 {
		return maxDelay
	}
	minDelay := s.policy.MinDelayMs()

	half := math.Ceil(float64(total) / 2)
	i := float64(index) - half

	v := math.Abs(i) * positionGain
	p := v / half
	span := float64(maxDelay - minDelay)
	d := p*span - float64(minDelay)*minDelayGain

	d = math.Max(float64(minDelay), math.Min(float64(maxDelay), d))
	return int(math.Round(d))
}

// Schedule returns the delay of every frame of a run with total tokens.
func (s *Scheduler) Schedule(total int) []int {
	delays := make([]int, total)
	for i := range delays {
		delays[i] = s.DelayFor(i, total)
	}
	return delays
}

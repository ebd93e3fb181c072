package style

import (
	"fmt"
	"image/color"
	"strings"
)

// Mode selects how fill and background swap between frames.
type Mode int

const (
	// Off keeps the configured pair for the whole run.
	Off Mode = iota
	// Frame swaps the pair on every frame.
	Frame
	// Word swaps the pair after each token that ends a sentence.
	Word
)

func (m Mode) String() string {
	switch m {
	case Off:
		return "off"
	case Frame:
		return "frame"
	case Word:
		return "word"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "off", "none":
		return Off, nil
	case "frame":
		return Frame, nil
	case "word", "sentence":
		return Word, nil
	}
	return Off, fmt.Errorf("unknown alternate mode: %s", s)
}

// Policy is the configured color pair and how it alternates.
type Policy struct {
	Fill       color.Color
	Background color.Color
	Mode       Mode
}

// Alternator hands out the (fill, background) pair of each frame.
type Alternator struct {
	policy  Policy
	swapped bool
}

func NewAlternator(p Policy) *Alternator {
	return &Alternator{policy: p}
}

// StyleFor returns the pair of the frame at frameIndex under the
// deterministic modes. Word mode depends on the tokens seen and is only
// available through Next.
func (a *Alternator) StyleFor(frameIndex int) (fill, bg color.Color) {
	if a.policy.Mode == Frame && frameIndex%2 == 1 {
		return a.policy.Background, a.policy.Fill
	}
	return a.policy.Fill, a.policy.Background
}

// Next returns the pair for the next frame, which shows token, and
// advances the alternation.
func (a *Alternator) Next(token string) (fill, bg color.Color) {
	fill, bg = a.policy.Fill, a.policy.Background
	if a.swapped {
		fill, bg = bg, fill
	}

	switch a.policy.Mode {
	case Frame:
		a.swapped = !a.swapped
	case Word:
		if endsSentence(token) {
			a.swapped = !a.swapped
		}
	}
	return fill, bg
}

// Reset rewinds the alternation to the configured pair.
func (a *Alternator) Reset() { a.swapped = false }

func endsSentence(token string) bool {
	token = strings.TrimRight(token, `"')]}»”’`)
	if token == "" {
		return false
	}
	switch token[len(token)-1] {
	case '.', '!', '?':
		return true
	}
	return false
}

package progress

import (
	"bytes"
	"strings"
	"testing"
)

func TestPercent(t *testing.T) {
	tests := []struct {
		done, total int
		want        float64
	}{
		{1, 3, 33.33},
		{2, 3, 66.66},
		{3, 3, 100},
		{0, 0, 0},
	}
	for _, tt := range tests {
		if got := Percent(tt.done, tt.total); got != tt.want {
			t.Errorf("Percent(%d, %d) = %v, want %v", tt.done, tt.total, got, tt.want)
		}
	}
}

func TestLine_Frame(t *testing.T) {
	var buf bytes.Buffer
	l := NewLine(&buf)

	l.Frame(0, 3, "alpha")
	l.Frame(1, 3, "beta")

	out := buf.String()
	for _, want := range []string{`\ Generating | 1/3 (33.33%) | alpha`, "| Generating | 2/3 (66.66%) | beta"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%q", want, out)
		}
	}
	if strings.Count(out, "\r") != 2 {
		t.Errorf("each frame line should end with a carriage return: %q", out)
	}
}

func TestLine_Finished(t *testing.T) {
	var buf bytes.Buffer
	l := NewLine(&buf)
	l.Finished([]string{"out0-0.gif", "out1-0.gif"}, 4)

	out := buf.String()
	if !strings.Contains(out, "Finished!") {
		t.Errorf("missing summary: %q", out)
	}
	if !strings.Contains(out, "out1-0.gif (4 frames)") {
		t.Errorf("missing file listing: %q", out)
	}
}

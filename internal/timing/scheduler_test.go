package timing

import "testing"

func TestPolicy_MinDelay(t *testing.T) {
	tests := []struct {
		name   string
		policy Policy
		want   int
	}{
		{"ramp off", Policy{BaseDelayMs: 250}, 250},
		{"ramp on", Policy{BaseDelayMs: 250, SpeedRamp: true}, 62},
		{"ramp on tiny base", Policy{BaseDelayMs: 3, SpeedRamp: true}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.policy.MinDelayMs(); got != tt.want {
				t.Errorf("MinDelayMs() = %d, want %d", got, tt.want)
			}
			if tt.policy.MinDelayMs() > tt.policy.MaxDelayMs() {
				t.Error("min delay exceeds max delay")
			}
		})
	}
}

func TestPolicy_Validate(t *testing.T) {
	if err := (Policy{BaseDelayMs: 0}).Validate(); err == nil {
		t.Error("expected error for zero delay")
	}
	if err := (Policy{BaseDelayMs: -5}).Validate(); err == nil {
		t.Error("expected error for negative delay")
	}
	if err := (Policy{BaseDelayMs: 100}).Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestScheduler_ConstantWithoutRamp(t *testing.T) {
	s := NewScheduler(Policy{BaseDelayMs: 180})
	for i, d := range s.Schedule(9) {
		if d != 180 {
			t.Errorf("frame %d: delay %d, want 180", i, d)
		}
	}
}

func TestScheduler_RampBounds(t *testing.T) {
	policy := Policy{BaseDelayMs: 250, SpeedRamp: true}
	s := NewScheduler(policy)

	const total = 11
	delays := s.Schedule(total)

	for i, d := range delays {
		if d < policy.MinDelayMs() || d > policy.MaxDelayMs() {
			t.Errorf("frame %d: delay %d outside [%d, %d]", i, d, policy.MinDelayMs(), policy.MaxDelayMs())
		}
	}

	mid := delays[total/2]
	if mid > delays[0] {
		t.Errorf("midpoint delay %d should not exceed edge delay %d", mid, delays[0])
	}
	if mid > delays[total-1] {
		t.Errorf("midpoint delay %d should not exceed edge delay %d", mid, delays[total-1])
	}
}

func TestScheduler_ReferenceValues(t *testing.T) {
	s := NewScheduler(Policy{BaseDelayMs: 250, SpeedRamp: true})

	tests := []struct {
		total    int
		expected []int
	}{
		{11, []int{250, 62, 62, 62, 62, 62, 62, 62, 62, 62, 62}},
		{2, []int{250, 62}},
		{4, []int{250, 62, 62, 62}},
	}

	for _, tt := range tests {
		got := s.Schedule(tt.total)
		if len(got) != len(tt.expected) {
			t.Fatalf("Schedule(%d) length %d, want %d", tt.total, len(got), len(tt.expected))
		}
		for i := range got {
			if got[i] != tt.expected[i] {
				t.Errorf("Schedule(%d)[%d] = %d, want %d", tt.total, i, got[i], tt.expected[i])
			}
		}
	}
}

func TestScheduler_LongRunRampsBackUp(t *testing.T) {
	s := NewScheduler(Policy{BaseDelayMs: 1000, SpeedRamp: true})

	// half=50: the first frame is at |i|=50 and clamps to max, the
	// midpoint clamps to min.
	delays := s.Schedule(100)
	if delays[0] != 1000 {
		t.Errorf("first frame delay %d, want 1000", delays[0])
	}
	if delays[50] != 250 {
		t.Errorf("midpoint delay %d, want 250", delays[50])
	}
	// |i|=49: 49*8/50 = 7.84 -> 7.84*750 - 5000 = 880
	if delays[1] != 880 {
		t.Errorf("second frame delay %d, want 880", delays[1])
	}
}

func TestScheduler_DegenerateTotals(t *testing.T) {
	s := NewScheduler(Policy{BaseDelayMs: 250, SpeedRamp: true})

	if got := s.DelayFor(0, 0); got != 250 {
		t.Errorf("DelayFor(0, 0) = %d, want 250", got)
	}
	if got := s.DelayFor(0, 1); got != 250 {
		t.Errorf("DelayFor(0, 1) = %d, want 250", got)
	}
	if got := s.Schedule(0); len(got) != 0 {
		t.Errorf("Schedule(0) = %v, want empty", got)
	}
}

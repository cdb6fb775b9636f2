package gesture

import "testing"

func TestTargetsExcludeNone(t *testing.T) {
	if len(Targets) != 5 {
		t.Fatalf("expected 5 targets, got %d", len(Targets))
	}
	for _, g := range Targets {
		if g == None {
			t.Error("None must never be a target")
		}
		if !g.IsTarget() {
			t.Errorf("%v should report IsTarget", g)
		}
	}
	if None.IsTarget() {
		t.Error("None.IsTarget() should be false")
	}
}

func TestIsTilt(t *testing.T) {
	tests := []struct {
		g        Gesture
		expected bool
	}{
		{None, false},
		{Left, true},
		{Right, true},
		{Forward, true},
		{Back, true},
		{Twist, false},
	}
	for _, tc := range tests {
		if tc.g.IsTilt() != tc.expected {
			t.Errorf("%v.IsTilt() = %v, expected %v", tc.g, tc.g.IsTilt(), tc.expected)
		}
	}
}

func TestParseRoundTrip(t *testing.T) {
	for _, g := range append([]Gesture{None}, Targets...) {
		got, err := Parse(g.String())
		if err != nil {
			t.Fatalf("Parse(%q) failed: %v", g.String(), err)
		}
		if got != g {
			t.Errorf("Parse(%q) = %v, expected %v", g.String(), got, g)
		}
	}

	if g, err := Parse(" twist "); err != nil || g != Twist {
		t.Errorf("Parse should be case-insensitive, got %v, %v", g, err)
	}
	if _, err := Parse("spin"); err == nil {
		t.Error("Parse(\"spin\") should fail")
	}
}

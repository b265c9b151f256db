package gpio

import "testing"

func TestPullModeCodes(t *testing.T) {
	cases := []struct {
		mode PullMode
		code uint32
		str  string
	}{
		{PullUp, 0, "pull-up"},
		{PullDown, 1, "pull-down"},
		{PullUpDown, 2, "pull-up+down"},
		{PullFloating, 3, "floating"},
	}
	for _, tc := range cases {
		if tc.mode.Code() != tc.code {
			t.Errorf("%s: Code() = %d, want %d", tc.str, tc.mode.Code(), tc.code)
		}
		if tc.mode.String() != tc.str {
			t.Errorf("PullMode(%d): String() = %q, want %q", tc.mode, tc.mode.String(), tc.str)
		}
		if !tc.mode.valid() {
			t.Errorf("%s must be valid", tc.str)
		}
	}

	if PullMode(9).valid() {
		t.Error("PullMode(9) must be invalid")
	}
}

func TestWakeupTriggerCodes(t *testing.T) {
	if WakeupLowLevel.Code() != 4 {
		t.Errorf("WakeupLowLevel.Code() = %d, want 4", WakeupLowLevel.Code())
	}
	if WakeupHighLevel.Code() != 5 {
		t.Errorf("WakeupHighLevel.Code() = %d, want 5", WakeupHighLevel.Code())
	}
	if WakeupLowLevel == WakeupHighLevel {
		t.Error("triggers must be distinct")
	}

	// The zero value must never arm a trigger.
	var zero WakeupTrigger
	if zero.valid() {
		t.Error("zero WakeupTrigger must be invalid")
	}
}

func TestDirectionCodes(t *testing.T) {
	cases := []struct {
		dir  Direction
		code uint8
		str  string
	}{
		{DirInput, 1, "input"},
		{DirOutput, 2, "output"},
		{DirInputOutputOD, 7, "output-input"},
	}
	for _, tc := range cases {
		if uint8(tc.dir) != tc.code {
			t.Errorf("%s: code = %d, want %d", tc.str, uint8(tc.dir), tc.code)
		}
		if tc.dir.String() != tc.str {
			t.Errorf("Direction(%d): String() = %q, want %q", tc.dir, tc.dir.String(), tc.str)
		}
	}
}

package gpio

import "testing"

func TestDriveFactories(t *testing.T) {
	named := []struct {
		name string
		s    DriveStrength
		code uint32
	}{
		{"weak", DriveWeak(), 0},
		{"less-weak", DriveLessWeak(), 1},
		{"medium", DriveMedium(), 2},
		{"strongest", DriveStrongest(), 3},
	}

	for _, tc := range named {
		if tc.s.Code() != tc.code {
			t.Errorf("%s: code = %d, want %d", tc.name, tc.s.Code(), tc.code)
		}
		if tc.s.String() != tc.name {
			t.Errorf("%s: String() = %q", tc.name, tc.s.String())
		}
	}

	// Pairwise distinct.
	for i, a := range named {
		for j, b := range named {
			if (i == j) != (a.s == b.s) {
				t.Errorf("%s == %s should be %v", a.name, b.name, i == j)
			}
		}
	}

	if DriveDefault() != DriveMedium() {
		t.Errorf("DriveDefault() = %v, want %v", DriveDefault(), DriveMedium())
	}
}

func TestPinNumEquality(t *testing.T) {
	a, err := ESP32.Pin(3)
	if err != nil {
		t.Fatal(err)
	}
	b, err := ESP32.Pin(3)
	if err != nil {
		t.Fatal(err)
	}
	c, err := ESP32.Pin(5)
	if err != nil {
		t.Fatal(err)
	}

	if a != a {
		t.Error("equality is not reflexive")
	}
	if a != b || b != a {
		t.Error("pins built from the same number must be equal")
	}
	if a == c {
		t.Error("pins built from different numbers must differ")
	}

	// Same number through a different variant's validator is still the
	// same value.
	d, err := ESP32C3.Pin(3)
	if err != nil {
		t.Fatal(err)
	}
	if a != d {
		t.Error("equality must depend only on the number")
	}

	// Usable as a map key.
	seen := map[PinNum]int{a: 1}
	if seen[b] != 1 {
		t.Error("equal pins must index the same map slot")
	}
}

func TestPinNumString(t *testing.T) {
	p, err := Linux.Pin(7)
	if err != nil {
		t.Fatal(err)
	}
	if p.String() != "GPIO7" {
		t.Errorf("String() = %q, want GPIO7", p.String())
	}
}

func TestLevelString(t *testing.T) {
	if Low.String() != "low" || High.String() != "high" {
		t.Errorf("Level strings = %q/%q", Low.String(), High.String())
	}
}

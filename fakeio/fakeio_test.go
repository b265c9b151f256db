package fakeio_test

import (
	"errors"
	"reflect"
	"testing"

	"github.com/brunohorta82/idf-gpio/fakeio"
	"github.com/brunohorta82/idf-gpio/gpio"
)

func TestPowerOnState(t *testing.T) {
	d := fakeio.New()

	// Unconfigured pads have no input buffer.
	if lvl := d.Level(3); lvl != gpio.Low {
		t.Errorf("unconfigured pad reads %v, want low", lvl)
	}
	code, err := d.DriveCapability(3)
	if err != nil {
		t.Fatalf("DriveCapability: %v", err)
	}
	if code != 2 {
		t.Errorf("power-on drive code = %d, want 2", code)
	}
}

// Reads resolve like a pad would electrically: driven level first,
// then the external level, then the pulls.
func TestLevelResolution(t *testing.T) {
	high := gpio.High
	low := gpio.Low

	cases := []struct {
		name     string
		dir      gpio.Direction
		latch    gpio.Level
		pull     gpio.PullMode
		external *gpio.Level
		want     gpio.Level
	}{
		{"output reads low", gpio.DirOutput, high, gpio.PullUp, nil, low},
		{"input external high", gpio.DirInput, low, gpio.PullDown, &high, high},
		{"input external low", gpio.DirInput, low, gpio.PullUp, &low, low},
		{"input pull-up", gpio.DirInput, low, gpio.PullUp, nil, high},
		{"input pull-down", gpio.DirInput, low, gpio.PullDown, nil, low},
		{"input floating", gpio.DirInput, low, gpio.PullFloating, nil, low},
		{"od driven low", gpio.DirInputOutputOD, low, gpio.PullUp, &high, low},
		{"od released pull-up", gpio.DirInputOutputOD, high, gpio.PullUp, nil, high},
		{"od released external low", gpio.DirInputOutputOD, high, gpio.PullUp, &low, low},
		{"od released floating", gpio.DirInputOutputOD, high, gpio.PullFloating, nil, low},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d := fakeio.New()
			const n = 9
			if err := d.Reset(n); err != nil {
				t.Fatal(err)
			}
			if err := d.SetDirection(n, tc.dir); err != nil {
				t.Fatal(err)
			}
			if err := d.SetLevel(n, tc.latch); err != nil {
				t.Fatal(err)
			}
			if err := d.SetPullMode(n, tc.pull); err != nil {
				t.Fatal(err)
			}
			if tc.external != nil {
				d.SetExternalLevel(n, *tc.external)
			}
			if got := d.Level(n); got != tc.want {
				t.Errorf("Level = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestResetRestoresPowerOn(t *testing.T) {
	d := fakeio.New()
	const n = 4

	if err := d.SetDirection(n, gpio.DirInput); err != nil {
		t.Fatal(err)
	}
	if err := d.SetPullMode(n, gpio.PullDown); err != nil {
		t.Fatal(err)
	}
	if err := d.SetDriveCapability(n, 3); err != nil {
		t.Fatal(err)
	}
	d.SetExternalLevel(n, gpio.High)

	if err := d.Reset(n); err != nil {
		t.Fatal(err)
	}

	code, err := d.DriveCapability(n)
	if err != nil {
		t.Fatal(err)
	}
	if code != 2 {
		t.Errorf("drive code after reset = %d, want 2", code)
	}
	// Direction is off again.
	if lvl := d.Level(n); lvl != gpio.Low {
		t.Errorf("reset pad reads %v, want low", lvl)
	}
	// The outside world is not part of the chip and survives.
	if err := d.SetDirection(n, gpio.DirInput); err != nil {
		t.Fatal(err)
	}
	if lvl := d.Level(n); lvl != gpio.High {
		t.Errorf("external level lost across reset")
	}
}

func TestHoldFreezesLatch(t *testing.T) {
	d := fakeio.New()
	const n = 6

	if err := d.Reset(n); err != nil {
		t.Fatal(err)
	}
	if err := d.SetDirection(n, gpio.DirInputOutputOD); err != nil {
		t.Fatal(err)
	}
	if err := d.SetLevel(n, gpio.High); err != nil { // release
		t.Fatal(err)
	}
	if err := d.HoldEnable(n); err != nil {
		t.Fatal(err)
	}

	// Writes are accepted and ignored while held.
	if err := d.SetLevel(n, gpio.Low); err != nil {
		t.Fatal(err)
	}
	if lvl := d.Level(n); lvl != gpio.High {
		t.Errorf("held pad changed level: %v", lvl)
	}

	if err := d.HoldDisable(n); err != nil {
		t.Fatal(err)
	}
	if err := d.SetLevel(n, gpio.Low); err != nil {
		t.Fatal(err)
	}
	if lvl := d.Level(n); lvl != gpio.Low {
		t.Errorf("released pad kept level: %v", lvl)
	}
}

func TestFailWith(t *testing.T) {
	boom := errors.New("boom")
	d := fakeio.New()

	d.FailWith("set_level", boom)
	if err := d.SetLevel(1, gpio.High); !errors.Is(err, boom) {
		t.Errorf("err = %v, want boom", err)
	}
	// The attempt is part of the trace.
	if ops := d.Ops(); !reflect.DeepEqual(ops, []string{"set_level 1 1"}) {
		t.Errorf("ops = %v", ops)
	}
	// And the latch did not move: a low latch drives an open-drain
	// line low even against the pull-up.
	if err := d.SetDirection(1, gpio.DirInputOutputOD); err != nil {
		t.Fatal(err)
	}
	if err := d.SetPullMode(1, gpio.PullUp); err != nil {
		t.Fatal(err)
	}
	if lvl := d.Level(1); lvl != gpio.Low {
		t.Errorf("failed write changed the latch: %v", lvl)
	}

	d.FailWith("set_level", nil)
	if err := d.SetLevel(1, gpio.High); err != nil {
		t.Errorf("cleared failure still fails: %v", err)
	}
}

func TestOpsTrace(t *testing.T) {
	d := fakeio.New()

	if err := d.Reset(2); err != nil {
		t.Fatal(err)
	}
	if err := d.SetDirection(2, gpio.DirOutput); err != nil {
		t.Fatal(err)
	}
	if err := d.SetPullMode(2, gpio.PullUpDown); err != nil {
		t.Fatal(err)
	}
	if err := d.WakeupEnable(2, gpio.WakeupLowLevel); err != nil {
		t.Fatal(err)
	}

	want := []string{
		"reset 2",
		"set_direction 2 2",
		"set_pull_mode 2 2",
		"wakeup_enable 2 4",
	}
	if got := d.Ops(); !reflect.DeepEqual(got, want) {
		t.Errorf("ops = %v, want %v", got, want)
	}

	d.ClearOps()
	if got := d.Ops(); len(got) != 0 {
		t.Errorf("ops after clear = %v", got)
	}
}

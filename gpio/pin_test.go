package gpio_test

import (
	"errors"
	"reflect"
	"testing"

	"github.com/brunohorta82/idf-gpio/fakeio"
	"github.com/brunohorta82/idf-gpio/gpio"
)

func newChip(t *testing.T) (*gpio.Chip, *fakeio.Driver) {
	t.Helper()
	drv := fakeio.New()
	chip, err := gpio.NewChip(gpio.Linux, drv)
	if err != nil {
		t.Fatalf("NewChip: %v", err)
	}
	return chip, drv
}

func pin(t *testing.T, chip *gpio.Chip, n uint32) gpio.PinNum {
	t.Helper()
	p, err := chip.Pin(n)
	if err != nil {
		t.Fatalf("Pin(%d): %v", n, err)
	}
	return p
}

func TestNewChipValidation(t *testing.T) {
	if _, err := gpio.NewChip(nil, fakeio.New()); !errors.Is(err, gpio.ErrInvalidArg) {
		t.Errorf("nil variant: err = %v, want ErrInvalidArg", err)
	}
	if _, err := gpio.NewChip(gpio.Linux, nil); !errors.Is(err, gpio.ErrInvalidArg) {
		t.Errorf("nil driver: err = %v, want ErrInvalidArg", err)
	}
}

func TestOutputConfiguresAndDrives(t *testing.T) {
	chip, drv := newChip(t)

	out, err := chip.Output(pin(t, chip, 3))
	if err != nil {
		t.Fatalf("Output: %v", err)
	}
	if err := out.SetHigh(); err != nil {
		t.Errorf("SetHigh: %v", err)
	}
	if err := out.SetLow(); err != nil {
		t.Errorf("SetLow: %v", err)
	}

	want := []string{
		"reset 3",
		"set_direction 3 2",
		"set_level 3 1",
		"set_level 3 0",
	}
	if got := drv.Ops(); !reflect.DeepEqual(got, want) {
		t.Errorf("ops = %v, want %v", got, want)
	}
}

func TestInputSensing(t *testing.T) {
	chip, drv := newChip(t)

	in, err := chip.Input(pin(t, chip, 5))
	if err != nil {
		t.Fatalf("Input: %v", err)
	}

	// Reset leaves the pull-up on, so an untouched line reads high.
	if lvl := in.Level(); lvl != gpio.High {
		t.Errorf("fresh input reads %v, want high", lvl)
	}

	if err := in.SetPullMode(gpio.PullDown); err != nil {
		t.Fatalf("SetPullMode: %v", err)
	}
	if lvl := in.Level(); lvl != gpio.Low {
		t.Errorf("pulled-down input reads %v, want low", lvl)
	}

	drv.SetExternalLevel(5, gpio.High)
	if lvl := in.Level(); lvl != gpio.High {
		t.Errorf("externally driven input reads %v, want high", lvl)
	}
	drv.ClearExternalLevel(5)
	if lvl := in.Level(); lvl != gpio.Low {
		t.Errorf("released input reads %v, want low again", lvl)
	}
}

func TestInputWakeup(t *testing.T) {
	chip, drv := newChip(t)

	in, err := chip.Input(pin(t, chip, 2))
	if err != nil {
		t.Fatalf("Input: %v", err)
	}
	drv.ClearOps()

	if err := in.WakeupEnable(gpio.WakeupHighLevel); err != nil {
		t.Fatalf("WakeupEnable: %v", err)
	}
	if err := in.WakeupDisable(); err != nil {
		t.Fatalf("WakeupDisable: %v", err)
	}

	want := []string{"wakeup_enable 2 5", "wakeup_disable 2"}
	if got := drv.Ops(); !reflect.DeepEqual(got, want) {
		t.Errorf("ops = %v, want %v", got, want)
	}
}

func TestOpenDrain(t *testing.T) {
	chip, drv := newChip(t)

	od, err := chip.OutputInput(pin(t, chip, 4))
	if err != nil {
		t.Fatalf("OutputInput: %v", err)
	}

	// The output latch powers on low, so the pin drives the line low
	// until it is released.
	if lvl := od.Level(); lvl != gpio.Low {
		t.Errorf("fresh open-drain pin reads %v, want low", lvl)
	}

	if err := od.SetFloating(); err != nil {
		t.Fatalf("SetFloating: %v", err)
	}
	if lvl := od.Level(); lvl != gpio.High {
		t.Errorf("released line with pull-up reads %v, want high", lvl)
	}

	// Another device holding the line low wins while we float.
	drv.SetExternalLevel(4, gpio.Low)
	if lvl := od.Level(); lvl != gpio.Low {
		t.Errorf("externally held line reads %v, want low", lvl)
	}
	drv.ClearExternalLevel(4)

	// Driving low wins over the pull-up and any external high.
	drv.SetExternalLevel(4, gpio.High)
	if err := od.SetLow(); err != nil {
		t.Fatalf("SetLow: %v", err)
	}
	if lvl := od.Level(); lvl != gpio.Low {
		t.Errorf("driven-low line reads %v, want low", lvl)
	}
	drv.ClearExternalLevel(4)

	if err := od.SetPullMode(gpio.PullFloating); err != nil {
		t.Fatalf("SetPullMode: %v", err)
	}
	if err := od.SetFloating(); err != nil {
		t.Fatalf("SetFloating: %v", err)
	}
	if lvl := od.Level(); lvl != gpio.Low {
		t.Errorf("released line without pulls reads %v, want low", lvl)
	}

	// The release is a level write on the wire.
	ops := drv.Ops()
	if len(ops) == 0 || ops[len(ops)-1] != "set_level 4 1" {
		t.Errorf("last op = %v, want set_level 4 1", ops)
	}
}

func TestReservedPinFailsBeforeDriver(t *testing.T) {
	chip, drv := newChip(t)

	if _, err := chip.Pin(24); !errors.Is(err, gpio.ErrInvalidArg) {
		t.Fatalf("Pin(24): err = %v, want ErrInvalidArg", err)
	}
	if ops := drv.Ops(); len(ops) != 0 {
		t.Errorf("driver saw %v before validation failed", ops)
	}
}

func TestConstructorAtomicity(t *testing.T) {
	boom := errors.New("boom")

	t.Run("reset fails", func(t *testing.T) {
		chip, drv := newChip(t)
		drv.FailWith("reset", boom)

		out, err := chip.Output(pin(t, chip, 3))
		if out != nil {
			t.Fatal("handle produced although reset failed")
		}
		if !errors.Is(err, boom) {
			t.Errorf("err = %v, want wrapped boom", err)
		}
		var de *gpio.DriverError
		if !errors.As(err, &de) || de.Op != "reset" || de.Pin != 3 {
			t.Errorf("err = %#v, want DriverError{reset, 3}", err)
		}
	})

	t.Run("set_direction fails", func(t *testing.T) {
		chip, drv := newChip(t)
		drv.FailWith("set_direction", boom)

		in, err := chip.Input(pin(t, chip, 3))
		if in != nil {
			t.Fatal("handle produced although set_direction failed")
		}
		var de *gpio.DriverError
		if !errors.As(err, &de) || de.Op != "set_direction" {
			t.Errorf("err = %v, want DriverError{set_direction}", err)
		}
		// The reset was still attempted first.
		want := []string{"reset 3", "set_direction 3 1"}
		if got := drv.Ops(); !reflect.DeepEqual(got, want) {
			t.Errorf("ops = %v, want %v", got, want)
		}
	})
}

func TestDriveStrengthRoundTrip(t *testing.T) {
	chip, _ := newChip(t)

	out, err := chip.Output(pin(t, chip, 6))
	if err != nil {
		t.Fatalf("Output: %v", err)
	}

	// Pads report the default strength until programmed.
	s, err := out.DriveStrength()
	if err != nil {
		t.Fatalf("DriveStrength: %v", err)
	}
	if s != gpio.DriveDefault() {
		t.Errorf("initial strength = %v, want %v", s, gpio.DriveDefault())
	}

	if err := out.SetDriveStrength(gpio.DriveStrongest()); err != nil {
		t.Fatalf("SetDriveStrength: %v", err)
	}
	s, err = out.DriveStrength()
	if err != nil {
		t.Fatalf("DriveStrength: %v", err)
	}
	if s != gpio.DriveStrongest() {
		t.Errorf("strength = %v, want %v", s, gpio.DriveStrongest())
	}
}

func TestDriveStrengthBadReadBack(t *testing.T) {
	chip, drv := newChip(t)

	out, err := chip.Output(pin(t, chip, 6))
	if err != nil {
		t.Fatalf("Output: %v", err)
	}

	// A driver reporting a code the variant does not know must not
	// produce a DriveStrength.
	if err := drv.SetDriveCapability(6, 9); err != nil {
		t.Fatalf("SetDriveCapability: %v", err)
	}
	if _, err := out.DriveStrength(); !errors.Is(err, gpio.ErrInvalidArg) {
		t.Errorf("err = %v, want ErrInvalidArg", err)
	}
}

func TestMethodErrorsCarryOp(t *testing.T) {
	boom := errors.New("boom")
	chip, drv := newChip(t)

	out, err := chip.Output(pin(t, chip, 3))
	if err != nil {
		t.Fatalf("Output: %v", err)
	}

	drv.FailWith("set_level", boom)
	err = out.SetHigh()
	var de *gpio.DriverError
	if !errors.As(err, &de) {
		t.Fatalf("err = %v, want DriverError", err)
	}
	if de.Op != "set_level" || de.Pin != 3 || !errors.Is(err, boom) {
		t.Errorf("DriverError = %+v", de)
	}
}

func TestInvalidModesRejectedBeforeDriver(t *testing.T) {
	chip, drv := newChip(t)

	in, err := chip.Input(pin(t, chip, 5))
	if err != nil {
		t.Fatalf("Input: %v", err)
	}
	drv.ClearOps()

	if err := in.SetPullMode(gpio.PullMode(9)); !errors.Is(err, gpio.ErrInvalidArg) {
		t.Errorf("SetPullMode(9): err = %v, want ErrInvalidArg", err)
	}
	var zero gpio.WakeupTrigger
	if err := in.WakeupEnable(zero); !errors.Is(err, gpio.ErrInvalidArg) {
		t.Errorf("WakeupEnable(0): err = %v, want ErrInvalidArg", err)
	}
	if ops := drv.Ops(); len(ops) != 0 {
		t.Errorf("driver saw %v for invalid arguments", ops)
	}
}

func TestOutputHold(t *testing.T) {
	chip, drv := newChip(t)

	out, err := chip.Output(pin(t, chip, 7))
	if err != nil {
		t.Fatalf("Output: %v", err)
	}
	drv.ClearOps()

	if err := out.HoldEnable(); err != nil {
		t.Fatalf("HoldEnable: %v", err)
	}
	if err := out.HoldDisable(); err != nil {
		t.Fatalf("HoldDisable: %v", err)
	}

	want := []string{"hold_enable 7", "hold_disable 7"}
	if got := drv.Ops(); !reflect.DeepEqual(got, want) {
		t.Errorf("ops = %v, want %v", got, want)
	}
}

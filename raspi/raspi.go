// Package raspi drives pins through the BCM283x registers using
// govattu. It maps directly onto the function select, set, clear and
// level registers, so reads and writes are single register operations.
//
// The SoC has no open-drain mode. Open-drain outputs are emulated by
// switching the function select between output-low and input: driving
// low muxes the pin to output with the latch cleared, releasing it
// muxes the pin back to input so the bias and the bus decide the level.
//
// Drive strength lives in the pad control registers, which govattu does
// not expose, and the SoC has no wakeup or hold controls; all three
// report ErrNotSupported.
package raspi

import (
	"fmt"

	"github.com/hjkoskel/govattu"

	"github.com/brunohorta82/idf-gpio/gpio"
)

// Function select and pull codes from the BCM283x datasheet. FSEL 000
// is input, GPPUD 00/01/10 are off, pull-down and pull-up.
const (
	fselInput = govattu.AltSetting(0)

	pullOff  = govattu.PinPull(0)
	pullDown = govattu.PinPull(1)
	pullUp   = govattu.PinPull(2)
)

type pinState struct {
	dir gpio.Direction
}

// Driver implements gpio.Driver over memory mapped BCM283x registers.
type Driver struct {
	hw   govattu.Vattu
	pins map[uint32]*pinState
}

var _ gpio.Driver = (*Driver)(nil)

// New maps the GPIO registers. Requires access to /dev/mem, so the
// process must run as root.
func New() (*Driver, error) {
	hw, err := govattu.Open()
	if err != nil {
		return nil, fmt.Errorf("raspi: open registers: %w", err)
	}
	return &Driver{hw: hw, pins: make(map[uint32]*pinState)}, nil
}

// Reset muxes the pin back to input with the latch cleared and the
// pull disabled.
func (d *Driver) Reset(pin uint32) error {
	p := uint8(pin)
	d.hw.PinClear(p)
	d.hw.PinMode(p, fselInput)
	d.hw.PullMode(p, pullOff)
	delete(d.pins, pin)
	return nil
}

// SetDirection programs the function select. Outputs come up with the
// latch low, and emulated open-drain outputs start driving low.
func (d *Driver) SetDirection(pin uint32, dir gpio.Direction) error {
	p := uint8(pin)
	switch dir {
	case gpio.DirInput:
		d.hw.PinMode(p, fselInput)
		d.pins[pin] = &pinState{dir: dir}
	case gpio.DirOutput, gpio.DirInputOutputOD:
		// Latch low before switching the mux so the pin never
		// glitches high.
		d.hw.PinClear(p)
		d.hw.PinMode(p, govattu.ALToutput)
		d.pins[pin] = &pinState{dir: dir}
	default:
		return fmt.Errorf("raspi: direction %v: %w", dir, gpio.ErrInvalidArg)
	}
	return nil
}

// SetLevel writes the output latch. On an emulated open-drain pin a
// high level releases the line instead of driving it.
func (d *Driver) SetLevel(pin uint32, lvl gpio.Level) error {
	st, ok := d.pins[pin]
	if !ok || st.dir == gpio.DirInput {
		return fmt.Errorf("raspi: pin %d is not an output: %w", pin, gpio.ErrInvalidArg)
	}
	p := uint8(pin)

	if st.dir == gpio.DirInputOutputOD {
		if lvl == gpio.High {
			d.hw.PinMode(p, fselInput)
		} else {
			d.hw.PinClear(p)
			d.hw.PinMode(p, govattu.ALToutput)
		}
		return nil
	}

	if lvl == gpio.High {
		d.hw.PinSet(p)
	} else {
		d.hw.PinClear(p)
	}
	return nil
}

// Level reads the pin level register, which samples the pad regardless
// of the function select.
func (d *Driver) Level(pin uint32) gpio.Level {
	return gpio.Level(d.hw.ReadPinLevel(uint8(pin)))
}

// SetPullMode programs the pull control. The SoC has single pull-up
// and pull-down resistors with no both-resistors mode.
func (d *Driver) SetPullMode(pin uint32, pull gpio.PullMode) error {
	p := uint8(pin)
	switch pull {
	case gpio.PullUp:
		d.hw.PullMode(p, pullUp)
	case gpio.PullDown:
		d.hw.PullMode(p, pullDown)
	case gpio.PullFloating:
		d.hw.PullMode(p, pullOff)
	default:
		return fmt.Errorf("raspi: pull %v: %w", pull, gpio.ErrNotSupported)
	}
	return nil
}

// DriveCapability is not exposed through the GPIO registers.
func (d *Driver) DriveCapability(pin uint32) (uint32, error) {
	return 0, fmt.Errorf("raspi: drive capability: %w", gpio.ErrNotSupported)
}

// SetDriveCapability is not exposed through the GPIO registers.
func (d *Driver) SetDriveCapability(pin uint32, code uint32) error {
	return fmt.Errorf("raspi: drive capability: %w", gpio.ErrNotSupported)
}

// WakeupEnable is not available on this SoC.
func (d *Driver) WakeupEnable(pin uint32, trig gpio.WakeupTrigger) error {
	return fmt.Errorf("raspi: wakeup: %w", gpio.ErrNotSupported)
}

// WakeupDisable is not available on this SoC.
func (d *Driver) WakeupDisable(pin uint32) error {
	return fmt.Errorf("raspi: wakeup: %w", gpio.ErrNotSupported)
}

// HoldEnable is not available on this SoC.
func (d *Driver) HoldEnable(pin uint32) error {
	return fmt.Errorf("raspi: hold: %w", gpio.ErrNotSupported)
}

// HoldDisable is not available on this SoC.
func (d *Driver) HoldDisable(pin uint32) error {
	return fmt.Errorf("raspi: hold: %w", gpio.ErrNotSupported)
}

// Close unmaps the registers. Pin states are left as programmed.
func (d *Driver) Close() error {
	return d.hw.Close()
}

// Package rpio drives pins through /dev/gpiomem using go-rpio. Unlike
// the raspi backend it needs no root, at the cost of going through the
// gpiomem window instead of the full register file.
//
// Open-drain outputs are emulated the same way as in the raspi backend:
// driving low switches the pin to output-low, releasing it switches the
// pin back to input. Drive strength, wakeup and hold are not exposed by
// the hardware and report ErrNotSupported.
package rpio

import (
	"fmt"

	"github.com/stianeikeland/go-rpio/v4"

	"github.com/brunohorta82/idf-gpio/gpio"
)

type pinState struct {
	dir gpio.Direction
}

// Driver implements gpio.Driver over the gpiomem mapping.
type Driver struct {
	pins map[uint32]*pinState
}

var _ gpio.Driver = (*Driver)(nil)

// New maps the GPIO memory window.
func New() (*Driver, error) {
	if err := rpio.Open(); err != nil {
		return nil, fmt.Errorf("rpio: open gpiomem: %w", err)
	}
	return &Driver{pins: make(map[uint32]*pinState)}, nil
}

// Reset returns the pin to input with the pull disabled.
func (d *Driver) Reset(pin uint32) error {
	p := rpio.Pin(pin)
	p.Input()
	p.PullOff()
	delete(d.pins, pin)
	return nil
}

// SetDirection programs the pin mode. Outputs come up low, and
// emulated open-drain outputs start driving low.
func (d *Driver) SetDirection(pin uint32, dir gpio.Direction) error {
	p := rpio.Pin(pin)
	switch dir {
	case gpio.DirInput:
		p.Input()
		d.pins[pin] = &pinState{dir: dir}
	case gpio.DirOutput, gpio.DirInputOutputOD:
		p.Low()
		p.Output()
		d.pins[pin] = &pinState{dir: dir}
	default:
		return fmt.Errorf("rpio: direction %v: %w", dir, gpio.ErrInvalidArg)
	}
	return nil
}

// SetLevel writes the output latch. On an emulated open-drain pin a
// high level releases the line instead of driving it.
func (d *Driver) SetLevel(pin uint32, lvl gpio.Level) error {
	st, ok := d.pins[pin]
	if !ok || st.dir == gpio.DirInput {
		return fmt.Errorf("rpio: pin %d is not an output: %w", pin, gpio.ErrInvalidArg)
	}
	p := rpio.Pin(pin)

	if st.dir == gpio.DirInputOutputOD {
		if lvl == gpio.High {
			p.Input()
		} else {
			p.Low()
			p.Output()
		}
		return nil
	}

	if lvl == gpio.High {
		p.High()
	} else {
		p.Low()
	}
	return nil
}

// Level samples the pad, which works in both input and output modes.
func (d *Driver) Level(pin uint32) gpio.Level {
	return gpio.Level(rpio.Pin(pin).Read() == rpio.High)
}

// SetPullMode programs the pull control. The SoC has no both-resistors
// mode.
func (d *Driver) SetPullMode(pin uint32, pull gpio.PullMode) error {
	p := rpio.Pin(pin)
	switch pull {
	case gpio.PullUp:
		p.PullUp()
	case gpio.PullDown:
		p.PullDown()
	case gpio.PullFloating:
		p.PullOff()
	default:
		return fmt.Errorf("rpio: pull %v: %w", pull, gpio.ErrNotSupported)
	}
	return nil
}

// DriveCapability is not exposed through gpiomem.
func (d *Driver) DriveCapability(pin uint32) (uint32, error) {
	return 0, fmt.Errorf("rpio: drive capability: %w", gpio.ErrNotSupported)
}

// SetDriveCapability is not exposed through gpiomem.
func (d *Driver) SetDriveCapability(pin uint32, code uint32) error {
	return fmt.Errorf("rpio: drive capability: %w", gpio.ErrNotSupported)
}

// WakeupEnable is not available on this SoC.
func (d *Driver) WakeupEnable(pin uint32, trig gpio.WakeupTrigger) error {
	return fmt.Errorf("rpio: wakeup: %w", gpio.ErrNotSupported)
}

// WakeupDisable is not available on this SoC.
func (d *Driver) WakeupDisable(pin uint32) error {
	return fmt.Errorf("rpio: wakeup: %w", gpio.ErrNotSupported)
}

// HoldEnable is not available on this SoC.
func (d *Driver) HoldEnable(pin uint32) error {
	return fmt.Errorf("rpio: hold: %w", gpio.ErrNotSupported)
}

// HoldDisable is not available on this SoC.
func (d *Driver) HoldDisable(pin uint32) error {
	return fmt.Errorf("rpio: hold: %w", gpio.ErrNotSupported)
}

// Close resets configured pins to input and unmaps the window.
func (d *Driver) Close() error {
	for pin := range d.pins {
		p := rpio.Pin(pin)
		p.Input()
		p.PullOff()
		delete(d.pins, pin)
	}
	return rpio.Close()
}

// Package periphio drives pins through the periph.io host drivers. The
// pins are resolved by their BCM name through the periph registry, so
// the backend works on any board periph has a host driver for.
//
// periph models bias as part of switching a pin to input, so pulls are
// only applied to pins currently read as inputs. Open-drain outputs are
// emulated by switching between output-low and input, keeping the last
// requested pull across releases. Drive strength, wakeup and hold are
// not part of the periph pin model and report ErrNotSupported.
package periphio

import (
	"fmt"

	pgpio "periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/host/v3"

	"github.com/brunohorta82/idf-gpio/gpio"
)

type pinState struct {
	pin      pgpio.PinIO
	dir      gpio.Direction
	released bool
	pull     pgpio.Pull
}

// Driver implements gpio.Driver over periph.io host drivers.
type Driver struct {
	pins map[uint32]*pinState
}

var _ gpio.Driver = (*Driver)(nil)

// New initialises the periph host drivers.
func New() (*Driver, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("periphio: host init: %w", err)
	}
	return &Driver{pins: make(map[uint32]*pinState)}, nil
}

func lookup(pin uint32) (pgpio.PinIO, error) {
	p := gpioreg.ByName(fmt.Sprintf("GPIO%d", pin))
	if p == nil {
		return nil, fmt.Errorf("periphio: no pin GPIO%d on this board: %w", pin, gpio.ErrInvalidArg)
	}
	return p, nil
}

// Reset switches the pin back to a floating input.
func (d *Driver) Reset(pin uint32) error {
	p, err := lookup(pin)
	if err != nil {
		return err
	}
	delete(d.pins, pin)
	if err := p.In(pgpio.Float, pgpio.NoEdge); err != nil {
		return fmt.Errorf("periphio: reset GPIO%d: %w", pin, err)
	}
	return nil
}

// SetDirection switches the pin mode. Outputs come up low, and
// emulated open-drain outputs start driving low.
func (d *Driver) SetDirection(pin uint32, dir gpio.Direction) error {
	p, err := lookup(pin)
	if err != nil {
		return err
	}

	st := &pinState{pin: p, dir: dir, pull: pgpio.PullNoChange}
	switch dir {
	case gpio.DirInput:
		err = p.In(pgpio.PullNoChange, pgpio.NoEdge)
	case gpio.DirOutput, gpio.DirInputOutputOD:
		err = p.Out(pgpio.Low)
	default:
		return fmt.Errorf("periphio: direction %v: %w", dir, gpio.ErrInvalidArg)
	}
	if err != nil {
		return fmt.Errorf("periphio: direction GPIO%d: %w", pin, err)
	}
	d.pins[pin] = st
	return nil
}

// SetLevel writes the output level. On an emulated open-drain pin a
// high level releases the line instead of driving it.
func (d *Driver) SetLevel(pin uint32, lvl gpio.Level) error {
	st, ok := d.pins[pin]
	if !ok || st.dir == gpio.DirInput {
		return fmt.Errorf("periphio: pin GPIO%d is not an output: %w", pin, gpio.ErrInvalidArg)
	}

	if st.dir == gpio.DirInputOutputOD {
		var err error
		if lvl == gpio.High {
			err = st.pin.In(st.pull, pgpio.NoEdge)
			st.released = true
		} else {
			err = st.pin.Out(pgpio.Low)
			st.released = false
		}
		if err != nil {
			return fmt.Errorf("periphio: set GPIO%d: %w", pin, err)
		}
		return nil
	}

	out := pgpio.Low
	if lvl == gpio.High {
		out = pgpio.High
	}
	if err := st.pin.Out(out); err != nil {
		return fmt.Errorf("periphio: set GPIO%d: %w", pin, err)
	}
	return nil
}

// Level reads the pin. Unresolvable pins report low.
func (d *Driver) Level(pin uint32) gpio.Level {
	st, ok := d.pins[pin]
	if !ok {
		p, err := lookup(pin)
		if err != nil {
			return gpio.Low
		}
		return gpio.Level(p.Read() == pgpio.High)
	}
	return gpio.Level(st.pin.Read() == pgpio.High)
}

// SetPullMode applies the bias. Pins currently read as inputs are
// reconfigured immediately; a released open-drain pin picks the new
// bias up on its next release. periph cannot bias a driven output, and
// no periph host has a both-resistors bias.
func (d *Driver) SetPullMode(pin uint32, pull gpio.PullMode) error {
	st, ok := d.pins[pin]
	if !ok {
		return fmt.Errorf("periphio: pin GPIO%d is not configured: %w", pin, gpio.ErrInvalidArg)
	}

	var bias pgpio.Pull
	switch pull {
	case gpio.PullUp:
		bias = pgpio.PullUp
	case gpio.PullDown:
		bias = pgpio.PullDown
	case gpio.PullFloating:
		bias = pgpio.Float
	default:
		return fmt.Errorf("periphio: pull %v: %w", pull, gpio.ErrNotSupported)
	}
	st.pull = bias

	switch {
	case st.dir == gpio.DirInput, st.dir == gpio.DirInputOutputOD && st.released:
		if err := st.pin.In(bias, pgpio.NoEdge); err != nil {
			return fmt.Errorf("periphio: bias GPIO%d: %w", pin, err)
		}
		return nil
	case st.dir == gpio.DirInputOutputOD:
		return nil
	default:
		return fmt.Errorf("periphio: bias on driven output GPIO%d: %w", pin, gpio.ErrNotSupported)
	}
}

// DriveCapability is not part of the periph pin model.
func (d *Driver) DriveCapability(pin uint32) (uint32, error) {
	return 0, fmt.Errorf("periphio: drive capability: %w", gpio.ErrNotSupported)
}

// SetDriveCapability is not part of the periph pin model.
func (d *Driver) SetDriveCapability(pin uint32, code uint32) error {
	return fmt.Errorf("periphio: drive capability: %w", gpio.ErrNotSupported)
}

// WakeupEnable is not part of the periph pin model.
func (d *Driver) WakeupEnable(pin uint32, trig gpio.WakeupTrigger) error {
	return fmt.Errorf("periphio: wakeup: %w", gpio.ErrNotSupported)
}

// WakeupDisable is not part of the periph pin model.
func (d *Driver) WakeupDisable(pin uint32) error {
	return fmt.Errorf("periphio: wakeup: %w", gpio.ErrNotSupported)
}

// HoldEnable is not part of the periph pin model.
func (d *Driver) HoldEnable(pin uint32) error {
	return fmt.Errorf("periphio: hold: %w", gpio.ErrNotSupported)
}

// HoldDisable is not part of the periph pin model.
func (d *Driver) HoldDisable(pin uint32) error {
	return fmt.Errorf("periphio: hold: %w", gpio.ErrNotSupported)
}

// Close halts every configured pin.
func (d *Driver) Close() error {
	var first error
	for pin, st := range d.pins {
		if err := st.pin.Halt(); err != nil && first == nil {
			first = fmt.Errorf("periphio: halt GPIO%d: %w", pin, err)
		}
		delete(d.pins, pin)
	}
	return first
}

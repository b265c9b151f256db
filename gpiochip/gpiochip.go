//go:build linux

// Package gpiochip drives pins through the Linux GPIO character device
// using go-gpiocdev. Lines are requested lazily on SetDirection and
// released on Reset, so only configured pins are held.
//
// The character device has no drive strength, wakeup or hold controls;
// those report ErrNotSupported. Pull resistors map to line bias, except
// that the kernel has no both-resistors bias.
package gpiochip

import (
	"fmt"
	"log"

	"github.com/warthog618/go-gpiocdev"

	"github.com/brunohorta82/idf-gpio/gpio"
)

// Config holds configuration for the character device backend.
type Config struct {
	Chip     string `yaml:"chip"`
	Consumer string `yaml:"consumer"`
}

type line struct {
	l   *gpiocdev.Line
	dir gpio.Direction
}

// Driver implements gpio.Driver over /dev/gpiochip*.
type Driver struct {
	chip     string
	consumer string
	lines    map[uint32]*line
}

var _ gpio.Driver = (*Driver)(nil)

// New creates a character device driver. The chip defaults to
// "gpiochip0". Lines are not requested until pins are configured.
func New(cfg Config) (*Driver, error) {
	if cfg.Chip == "" {
		cfg.Chip = "gpiochip0"
	}
	if cfg.Consumer == "" {
		cfg.Consumer = "idf-gpio"
	}
	return &Driver{
		chip:     cfg.Chip,
		consumer: cfg.Consumer,
		lines:    make(map[uint32]*line),
	}, nil
}

// Reset releases the line so the kernel restores its default state.
func (d *Driver) Reset(pin uint32) error {
	d.release(pin)
	return nil
}

// SetDirection requests the line in the given direction, replacing any
// previous request. Open-drain outputs start driven low, matching the
// power-on latch.
func (d *Driver) SetDirection(pin uint32, dir gpio.Direction) error {
	d.release(pin)

	opts := []gpiocdev.LineReqOption{gpiocdev.WithConsumer(d.consumer)}
	switch dir {
	case gpio.DirInput:
		opts = append(opts, gpiocdev.AsInput)
	case gpio.DirOutput:
		opts = append(opts, gpiocdev.AsOutput(0))
	case gpio.DirInputOutputOD:
		opts = append(opts, gpiocdev.AsOutput(0), gpiocdev.AsOpenDrain)
	default:
		return fmt.Errorf("gpiochip: direction %v: %w", dir, gpio.ErrInvalidArg)
	}

	l, err := gpiocdev.RequestLine(d.chip, int(pin), opts...)
	if err != nil {
		return fmt.Errorf("gpiochip: request %s line %d: %w", d.chip, pin, err)
	}
	d.lines[pin] = &line{l: l, dir: dir}
	return nil
}

// SetLevel writes the output value of a requested line.
func (d *Driver) SetLevel(pin uint32, lvl gpio.Level) error {
	ln, ok := d.lines[pin]
	if !ok || ln.dir == gpio.DirInput {
		return fmt.Errorf("gpiochip: pin %d is not an output: %w", pin, gpio.ErrInvalidArg)
	}
	v := 0
	if lvl == gpio.High {
		v = 1
	}
	if err := ln.l.SetValue(v); err != nil {
		return fmt.Errorf("gpiochip: set line %d: %w", pin, err)
	}
	return nil
}

// Level reads the line as sampled by the kernel. Unrequested lines and
// read failures report low.
func (d *Driver) Level(pin uint32) gpio.Level {
	ln, ok := d.lines[pin]
	if !ok {
		return gpio.Low
	}
	v, err := ln.l.Value()
	if err != nil {
		log.Printf("gpiochip: read line %d: %v", pin, err)
		return gpio.Low
	}
	return gpio.Level(v != 0)
}

// SetPullMode reconfigures the line bias. The kernel knows pull-up,
// pull-down and disabled; there is no both-resistors bias.
func (d *Driver) SetPullMode(pin uint32, pull gpio.PullMode) error {
	ln, ok := d.lines[pin]
	if !ok {
		return fmt.Errorf("gpiochip: pin %d is not requested: %w", pin, gpio.ErrInvalidArg)
	}

	var bias gpiocdev.LineConfigOption
	switch pull {
	case gpio.PullUp:
		bias = gpiocdev.WithPullUp
	case gpio.PullDown:
		bias = gpiocdev.WithPullDown
	case gpio.PullFloating:
		bias = gpiocdev.WithBiasDisabled
	default:
		return fmt.Errorf("gpiochip: pull %v: %w", pull, gpio.ErrNotSupported)
	}
	if err := ln.l.Reconfigure(bias); err != nil {
		return fmt.Errorf("gpiochip: bias line %d: %w", pin, err)
	}
	return nil
}

// DriveCapability is not exposed by the character device.
func (d *Driver) DriveCapability(pin uint32) (uint32, error) {
	return 0, fmt.Errorf("gpiochip: drive capability: %w", gpio.ErrNotSupported)
}

// SetDriveCapability is not exposed by the character device.
func (d *Driver) SetDriveCapability(pin uint32, code uint32) error {
	return fmt.Errorf("gpiochip: drive capability: %w", gpio.ErrNotSupported)
}

// WakeupEnable is not exposed by the character device.
func (d *Driver) WakeupEnable(pin uint32, trig gpio.WakeupTrigger) error {
	return fmt.Errorf("gpiochip: wakeup: %w", gpio.ErrNotSupported)
}

// WakeupDisable is not exposed by the character device.
func (d *Driver) WakeupDisable(pin uint32) error {
	return fmt.Errorf("gpiochip: wakeup: %w", gpio.ErrNotSupported)
}

// HoldEnable is not exposed by the character device.
func (d *Driver) HoldEnable(pin uint32) error {
	return fmt.Errorf("gpiochip: hold: %w", gpio.ErrNotSupported)
}

// HoldDisable is not exposed by the character device.
func (d *Driver) HoldDisable(pin uint32) error {
	return fmt.Errorf("gpiochip: hold: %w", gpio.ErrNotSupported)
}

// Close releases every requested line.
func (d *Driver) Close() error {
	for pin, ln := range d.lines {
		ln.l.Close()
		delete(d.lines, pin)
	}
	return nil
}

func (d *Driver) release(pin uint32) {
	if ln, ok := d.lines[pin]; ok {
		ln.l.Close()
		delete(d.lines, pin)
	}
}

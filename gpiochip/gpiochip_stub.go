//go:build !linux

package gpiochip

import "github.com/brunohorta82/idf-gpio/gpio"

// Config holds configuration for the character device backend.
type Config struct {
	Chip     string `yaml:"chip"`
	Consumer string `yaml:"consumer"`
}

// Driver is a stub for non-linux platforms.
type Driver struct{}

var _ gpio.Driver = (*Driver)(nil)

// New returns an error on non-linux platforms.
func New(cfg Config) (*Driver, error) {
	return nil, gpio.ErrNotSupported
}

func (d *Driver) Reset(pin uint32) error {
	return gpio.ErrNotSupported
}

func (d *Driver) SetDirection(pin uint32, dir gpio.Direction) error {
	return gpio.ErrNotSupported
}

func (d *Driver) SetLevel(pin uint32, lvl gpio.Level) error {
	return gpio.ErrNotSupported
}

func (d *Driver) Level(pin uint32) gpio.Level {
	return gpio.Low
}

func (d *Driver) SetPullMode(pin uint32, pull gpio.PullMode) error {
	return gpio.ErrNotSupported
}

func (d *Driver) DriveCapability(pin uint32) (uint32, error) {
	return 0, gpio.ErrNotSupported
}

func (d *Driver) SetDriveCapability(pin uint32, code uint32) error {
	return gpio.ErrNotSupported
}

func (d *Driver) WakeupEnable(pin uint32, trig gpio.WakeupTrigger) error {
	return gpio.ErrNotSupported
}

func (d *Driver) WakeupDisable(pin uint32) error {
	return gpio.ErrNotSupported
}

func (d *Driver) HoldEnable(pin uint32) error {
	return gpio.ErrNotSupported
}

func (d *Driver) HoldDisable(pin uint32) error {
	return gpio.ErrNotSupported
}

func (d *Driver) Close() error {
	return nil
}

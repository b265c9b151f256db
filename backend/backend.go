// Package backend constructs a gpio.Driver from configuration, so the
// daemon picks its hardware access method at startup instead of at
// build time.
package backend

import (
	"fmt"

	"github.com/brunohorta82/idf-gpio/fakeio"
	"github.com/brunohorta82/idf-gpio/gpio"
	"github.com/brunohorta82/idf-gpio/gpiochip"
	"github.com/brunohorta82/idf-gpio/periphio"
	"github.com/brunohorta82/idf-gpio/raspi"
	"github.com/brunohorta82/idf-gpio/remote"
	"github.com/brunohorta82/idf-gpio/rpio"
)

// Config selects and parameterises the driver backend.
type Config struct {
	Type     string `yaml:"type"`     // "fake", "gpiochip", "raspi", "rpio", "periph", "remote"
	Chip     string `yaml:"chip"`     // gpiochip: chip name, default "gpiochip0"
	Consumer string `yaml:"consumer"` // gpiochip: consumer label on requested lines
	Port     string `yaml:"port"`     // remote: serial device
	Baud     int    `yaml:"baud"`     // remote: baud rate, default 115200
}

// New constructs the configured driver. An empty type selects the fake
// driver so the daemon can run on a machine with no GPIO hardware.
func New(cfg Config) (gpio.Driver, error) {
	switch cfg.Type {
	case "", "fake":
		return fakeio.New(), nil
	case "gpiochip", "cdev":
		return gpiochip.New(gpiochip.Config{Chip: cfg.Chip, Consumer: cfg.Consumer})
	case "raspi":
		return raspi.New()
	case "rpio", "gpiomem":
		return rpio.New()
	case "periph":
		return periphio.New()
	case "remote", "serial":
		return remote.New(remote.Config{Port: cfg.Port, Baud: cfg.Baud})
	default:
		return nil, fmt.Errorf("unknown backend type %q", cfg.Type)
	}
}

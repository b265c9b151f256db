package main

import (
	"fmt"

	"github.com/warthog618/gpio"
)

// TriggerConfig holds configuration for the snapshot button.
type TriggerConfig struct {
	Pin *int `yaml:"pin"`
}

// Trigger watches a push button wired between a pin and ground. The
// pin is pulled up and a falling edge fires the callback, so no
// polling loop is needed.
type Trigger struct {
	pin *gpio.Pin
}

// newTrigger starts watching the configured pin. Returns nil when no
// pin is configured.
func newTrigger(cfg TriggerConfig, onPress func()) (*Trigger, error) {
	if cfg.Pin == nil {
		return nil, nil
	}

	if err := gpio.Open(); err != nil {
		return nil, fmt.Errorf("open gpio: %w", err)
	}

	pin := gpio.NewPin(*cfg.Pin)
	pin.Input()
	pin.PullUp()
	if err := pin.Watch(gpio.EdgeFalling, func(*gpio.Pin) { onPress() }); err != nil {
		gpio.Close()
		return nil, fmt.Errorf("watch pin %d: %w", *cfg.Pin, err)
	}

	return &Trigger{pin: pin}, nil
}

// Release stops watching the pin and unmaps the gpio memory.
func (t *Trigger) Release() error {
	t.pin.Unwatch()
	return gpio.Close()
}

package main

import (
	"fmt"
	"strings"

	"github.com/brunohorta82/idf-gpio/backend"
	"github.com/brunohorta82/idf-gpio/gpio"
	"github.com/brunohorta82/idf-gpio/monitor"
	"github.com/brunohorta82/idf-gpio/mqtt"
)

// Config is the main configuration structure for the daemon.
type Config struct {
	// MQTT connection settings
	MQTT mqtt.Config `yaml:"mqtt"`

	// Driver backend selection
	Backend backend.Config `yaml:"backend"`

	// Poll and publish settings
	Monitor monitor.Config `yaml:"monitor"`

	// Optional snapshot button
	Trigger TriggerConfig `yaml:"trigger"`

	// General settings
	ClientID string `yaml:"client_id"`
	Variant  string `yaml:"variant"`

	// Pins to configure and expose
	Pins []PinConfig `yaml:"pins"`
}

// PinConfig describes one pin to configure at startup. Which fields
// apply depends on the mode: pull and wake are input settings, drive,
// initial and hold are output settings. An open-drain pin takes both
// sides except hold.
type PinConfig struct {
	Name    string `yaml:"name"`
	Num     uint32 `yaml:"num"`
	Mode    string `yaml:"mode"`    // "output", "input", "inout"
	Pull    string `yaml:"pull"`    // "floating", "up", "down", "both"
	Drive   string `yaml:"drive"`   // "weak", "less-weak", "medium", "strongest"
	Wake    string `yaml:"wake"`    // "low", "high"
	Initial string `yaml:"initial"` // "low", "high"
	Hold    bool   `yaml:"hold"`
}

func parsePull(s string) (gpio.PullMode, error) {
	switch strings.ToLower(s) {
	case "floating", "none":
		return gpio.PullFloating, nil
	case "up", "pullup":
		return gpio.PullUp, nil
	case "down", "pulldown":
		return gpio.PullDown, nil
	case "both", "updown":
		return gpio.PullUpDown, nil
	default:
		return gpio.PullFloating, fmt.Errorf("unknown pull %q", s)
	}
}

func parseDrive(s string) (gpio.DriveStrength, error) {
	switch strings.ToLower(s) {
	case "weak":
		return gpio.DriveWeak(), nil
	case "less-weak", "lessweak":
		return gpio.DriveLessWeak(), nil
	case "medium":
		return gpio.DriveMedium(), nil
	case "strongest", "strong":
		return gpio.DriveStrongest(), nil
	case "default":
		return gpio.DriveDefault(), nil
	default:
		return gpio.DriveStrength{}, fmt.Errorf("unknown drive %q", s)
	}
}

func parseWake(s string) (gpio.WakeupTrigger, error) {
	switch strings.ToLower(s) {
	case "low":
		return gpio.WakeupLowLevel, nil
	case "high":
		return gpio.WakeupHighLevel, nil
	default:
		return 0, fmt.Errorf("unknown wake trigger %q", s)
	}
}

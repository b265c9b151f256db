// Package fakeio is an in-memory gpio.Driver for tests and for running
// the monitor without hardware.
//
// Pads behave electrically rather than as plain variable stores: reads
// resolve against the driven level, an externally applied level and
// the pull resistors, depending on the pin's direction. Every mutating
// call is recorded in vendor codes, and any operation can be forced to
// fail, which makes the driver usable for fault injection.
//
// The driver is not safe for concurrent use.
package fakeio

import (
	"fmt"

	"github.com/brunohorta82/idf-gpio/gpio"
)

// Drive code pads report until told otherwise.
const defaultDrive = 2

type pin struct {
	dir      gpio.Direction // zero while the pin is unconfigured
	level    gpio.Level     // output latch
	pull     gpio.PullMode
	drive    uint32
	wake     gpio.WakeupTrigger // zero when disarmed
	hold     bool
	external *gpio.Level
}

// Driver simulates the vendor GPIO driver.
type Driver struct {
	pins   map[uint32]*pin
	ops    []string
	failOn map[string]error
}

var _ gpio.Driver = (*Driver)(nil)

// New returns a driver with every pad in its power-on state.
func New() *Driver {
	return &Driver{
		pins:   make(map[uint32]*pin),
		failOn: make(map[string]error),
	}
}

// powerOn is the pad state after reset: pull-up on, direction off,
// default drive, latch low.
func powerOn() *pin {
	return &pin{pull: gpio.PullUp, drive: defaultDrive}
}

func (d *Driver) state(num uint32) *pin {
	p, ok := d.pins[num]
	if !ok {
		p = powerOn()
		d.pins[num] = p
	}
	return p
}

func (d *Driver) record(format string, args ...any) {
	d.ops = append(d.ops, fmt.Sprintf(format, args...))
}

// Ops returns the mutating driver calls issued so far, oldest first,
// formatted with vendor codes ("set_direction 4 2"). Reads are not
// recorded.
func (d *Driver) Ops() []string {
	out := make([]string, len(d.ops))
	copy(out, d.ops)
	return out
}

// ClearOps discards the recorded calls.
func (d *Driver) ClearOps() { d.ops = nil }

// FailWith makes every future call of the named operation ("reset",
// "set_level", ...) return err. A nil err clears the failure. The
// failing call is still recorded.
func (d *Driver) FailWith(op string, err error) {
	if err == nil {
		delete(d.failOn, op)
		return
	}
	d.failOn[op] = err
}

// SetExternalLevel applies a level to the pad from outside the chip,
// as a connected device would. It shows up on reads while the pin is
// an input or a released open-drain output.
func (d *Driver) SetExternalLevel(num uint32, lvl gpio.Level) {
	p := d.state(num)
	p.external = &lvl
}

// ClearExternalLevel disconnects the external level.
func (d *Driver) ClearExternalLevel(num uint32) {
	d.state(num).external = nil
}

func (d *Driver) Reset(num uint32) error {
	d.record("reset %d", num)
	if err := d.failOn["reset"]; err != nil {
		return err
	}
	ext := d.state(num).external // the outside world survives a reset
	p := powerOn()
	p.external = ext
	d.pins[num] = p
	return nil
}

func (d *Driver) SetDirection(num uint32, dir gpio.Direction) error {
	d.record("set_direction %d %d", num, uint32(dir))
	if err := d.failOn["set_direction"]; err != nil {
		return err
	}
	d.state(num).dir = dir
	return nil
}

func (d *Driver) SetLevel(num uint32, lvl gpio.Level) error {
	d.record("set_level %d %d", num, levelBit(lvl))
	if err := d.failOn["set_level"]; err != nil {
		return err
	}
	p := d.state(num)
	if p.hold {
		return nil // latch is frozen, write accepted and ignored
	}
	p.level = lvl
	return nil
}

func (d *Driver) Level(num uint32) gpio.Level {
	p := d.state(num)
	switch p.dir {
	case gpio.DirInput:
		return d.sensed(p)
	case gpio.DirInputOutputOD:
		if p.level == gpio.Low {
			return gpio.Low // actively driven low wins
		}
		return d.sensed(p)
	}
	// Push-pull outputs and unconfigured pins have no input buffer.
	return gpio.Low
}

// sensed resolves what the input buffer sees on a line nobody drives:
// the external level if one is applied, otherwise the pulls.
func (d *Driver) sensed(p *pin) gpio.Level {
	if p.external != nil {
		return *p.external
	}
	if p.pull == gpio.PullUp {
		return gpio.High
	}
	return gpio.Low
}

func (d *Driver) SetPullMode(num uint32, pull gpio.PullMode) error {
	d.record("set_pull_mode %d %d", num, pull.Code())
	if err := d.failOn["set_pull_mode"]; err != nil {
		return err
	}
	d.state(num).pull = pull
	return nil
}

func (d *Driver) DriveCapability(num uint32) (uint32, error) {
	if err := d.failOn["get_drive_capability"]; err != nil {
		return 0, err
	}
	return d.state(num).drive, nil
}

func (d *Driver) SetDriveCapability(num uint32, code uint32) error {
	d.record("set_drive_capability %d %d", num, code)
	if err := d.failOn["set_drive_capability"]; err != nil {
		return err
	}
	d.state(num).drive = code
	return nil
}

func (d *Driver) WakeupEnable(num uint32, trig gpio.WakeupTrigger) error {
	d.record("wakeup_enable %d %d", num, trig.Code())
	if err := d.failOn["wakeup_enable"]; err != nil {
		return err
	}
	d.state(num).wake = trig
	return nil
}

func (d *Driver) WakeupDisable(num uint32) error {
	d.record("wakeup_disable %d", num)
	if err := d.failOn["wakeup_disable"]; err != nil {
		return err
	}
	d.state(num).wake = 0
	return nil
}

func (d *Driver) HoldEnable(num uint32) error {
	d.record("hold_enable %d", num)
	if err := d.failOn["hold_enable"]; err != nil {
		return err
	}
	d.state(num).hold = true
	return nil
}

func (d *Driver) HoldDisable(num uint32) error {
	d.record("hold_disable %d", num)
	if err := d.failOn["hold_disable"]; err != nil {
		return err
	}
	d.state(num).hold = false
	return nil
}

func levelBit(lvl gpio.Level) int {
	if lvl == gpio.High {
		return 1
	}
	return 0
}

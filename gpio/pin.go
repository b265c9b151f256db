package gpio

import "fmt"

// Chip binds a hardware variant to the driver that programs it. All
// pin handles are created through a Chip; creating a handle resets the
// pin and fixes its direction, and the handle then exposes only the
// operations legal for that configuration. Reconfiguring a pin means
// creating a new handle over the same number.
type Chip struct {
	variant *Variant
	drv     Driver
}

// NewChip binds variant and driver.
func NewChip(v *Variant, drv Driver) (*Chip, error) {
	if v == nil {
		return nil, fmt.Errorf("gpio: nil variant: %w", ErrInvalidArg)
	}
	if drv == nil {
		return nil, fmt.Errorf("gpio: nil driver: %w", ErrInvalidArg)
	}
	return &Chip{variant: v, drv: drv}, nil
}

// Variant returns the chip's hardware variant.
func (c *Chip) Variant() *Variant { return c.variant }

// Pin validates a raw pin number against the chip's variant.
func (c *Chip) Pin(n uint32) (PinNum, error) { return c.variant.Pin(n) }

// DriveStrength validates a raw drive code against the chip's variant.
func (c *Chip) DriveStrength(code uint32) (DriveStrength, error) {
	return c.variant.DriveStrength(code)
}

// pinCore carries the state shared by all pin configurations and
// implements each operation exactly once. The exported handles wrap it
// and re-expose the subset legal for their configuration.
type pinCore struct {
	chip *Chip
	num  PinNum
}

func (p pinCore) fail(op string, err error) error {
	return &DriverError{Op: op, Pin: p.num.Num(), Err: err}
}

func (p pinCore) setLevel(lvl Level) error {
	if err := p.chip.drv.SetLevel(p.num.Num(), lvl); err != nil {
		return p.fail("set_level", err)
	}
	return nil
}

func (p pinCore) level() Level {
	return p.chip.drv.Level(p.num.Num())
}

func (p pinCore) setPullMode(mode PullMode) error {
	if !mode.valid() {
		return fmt.Errorf("gpio: pull mode %d: %w", mode, ErrInvalidArg)
	}
	if err := p.chip.drv.SetPullMode(p.num.Num(), mode); err != nil {
		return p.fail("set_pull_mode", err)
	}
	return nil
}

func (p pinCore) driveStrength() (DriveStrength, error) {
	code, err := p.chip.drv.DriveCapability(p.num.Num())
	if err != nil {
		return DriveStrength{}, p.fail("get_drive_capability", err)
	}
	return p.chip.variant.DriveStrength(code)
}

func (p pinCore) setDriveStrength(s DriveStrength) error {
	if err := p.chip.drv.SetDriveCapability(p.num.Num(), s.Code()); err != nil {
		return p.fail("set_drive_capability", err)
	}
	return nil
}

func (p pinCore) wakeupEnable(trig WakeupTrigger) error {
	if !trig.valid() {
		return fmt.Errorf("gpio: wakeup trigger %d: %w", trig, ErrInvalidArg)
	}
	if err := p.chip.drv.WakeupEnable(p.num.Num(), trig); err != nil {
		return p.fail("wakeup_enable", err)
	}
	return nil
}

func (p pinCore) wakeupDisable() error {
	if err := p.chip.drv.WakeupDisable(p.num.Num()); err != nil {
		return p.fail("wakeup_disable", err)
	}
	return nil
}

func (p pinCore) holdEnable() error {
	if err := p.chip.drv.HoldEnable(p.num.Num()); err != nil {
		return p.fail("hold_enable", err)
	}
	return nil
}

func (p pinCore) holdDisable() error {
	if err := p.chip.drv.HoldDisable(p.num.Num()); err != nil {
		return p.fail("hold_disable", err)
	}
	return nil
}

// configure resets the pin and programs its direction. Both calls must
// succeed for a handle to come into existence.
func (c *Chip) configure(pin PinNum, dir Direction) (pinCore, error) {
	p := pinCore{chip: c, num: pin}
	if err := c.drv.Reset(pin.Num()); err != nil {
		return pinCore{}, p.fail("reset", err)
	}
	if err := c.drv.SetDirection(pin.Num(), dir); err != nil {
		return pinCore{}, p.fail("set_direction", err)
	}
	return p, nil
}

// Output is a pin configured as a push-pull output. It drives the line
// both ways but cannot read it back; the input buffer is off in this
// mode.
type Output struct {
	pin pinCore
}

// Output resets the pin and configures it as a push-pull output.
func (c *Chip) Output(pin PinNum) (*Output, error) {
	p, err := c.configure(pin, DirOutput)
	if err != nil {
		return nil, err
	}
	return &Output{pin: p}, nil
}

// Num returns the pin's validated number.
func (o *Output) Num() PinNum { return o.pin.num }

// SetHigh drives the line high.
func (o *Output) SetHigh() error { return o.pin.setLevel(High) }

// SetLow drives the line low.
func (o *Output) SetLow() error { return o.pin.setLevel(Low) }

// DriveStrength reads back the pad's drive strength.
func (o *Output) DriveStrength() (DriveStrength, error) { return o.pin.driveStrength() }

// SetDriveStrength programs the pad's drive strength.
func (o *Output) SetDriveStrength(s DriveStrength) error { return o.pin.setDriveStrength(s) }

// HoldEnable latches the current output level so it survives light
// sleep and watchdog resets.
func (o *Output) HoldEnable() error { return o.pin.holdEnable() }

// HoldDisable releases the latch.
func (o *Output) HoldDisable() error { return o.pin.holdDisable() }

// Input is a pin configured as an input.
type Input struct {
	pin pinCore
}

// Input resets the pin and configures it as an input.
func (c *Chip) Input(pin PinNum) (*Input, error) {
	p, err := c.configure(pin, DirInput)
	if err != nil {
		return nil, err
	}
	return &Input{pin: p}, nil
}

// Num returns the pin's validated number.
func (i *Input) Num() PinNum { return i.pin.num }

// Level samples the line. Reads cannot fail; see Driver.Level.
func (i *Input) Level() Level { return i.pin.level() }

// SetPullMode configures the internal pull resistors.
func (i *Input) SetPullMode(mode PullMode) error { return i.pin.setPullMode(mode) }

// WakeupEnable arms a level wakeup on the pin.
func (i *Input) WakeupEnable(trig WakeupTrigger) error { return i.pin.wakeupEnable(trig) }

// WakeupDisable disarms the wakeup.
func (i *Input) WakeupDisable() error { return i.pin.wakeupDisable() }

// OutputInput is a pin in open-drain mode with the input buffer
// enabled, the configuration used for bit-banging single-wire
// protocols. It has Input's full capability set; on the output side it
// can drive the line low or release it, never drive it high. A
// released line needs a pull-up, internal or external, to read high.
type OutputInput struct {
	pin pinCore
}

// OutputInput resets the pin and configures it as an open-drain
// output with input enabled.
func (c *Chip) OutputInput(pin PinNum) (*OutputInput, error) {
	p, err := c.configure(pin, DirInputOutputOD)
	if err != nil {
		return nil, err
	}
	return &OutputInput{pin: p}, nil
}

// Num returns the pin's validated number.
func (p *OutputInput) Num() PinNum { return p.pin.num }

// Level samples the line.
func (p *OutputInput) Level() Level { return p.pin.level() }

// SetPullMode configures the internal pull resistors.
func (p *OutputInput) SetPullMode(mode PullMode) error { return p.pin.setPullMode(mode) }

// WakeupEnable arms a level wakeup on the pin.
func (p *OutputInput) WakeupEnable(trig WakeupTrigger) error { return p.pin.wakeupEnable(trig) }

// WakeupDisable disarms the wakeup.
func (p *OutputInput) WakeupDisable() error { return p.pin.wakeupDisable() }

// SetFloating releases the line. Writing a high level to an open-drain
// pad turns the low-side driver off and leaves the level to the pulls.
func (p *OutputInput) SetFloating() error { return p.pin.setLevel(High) }

// SetLow actively drives the line low.
func (p *OutputInput) SetLow() error { return p.pin.setLevel(Low) }

// DriveStrength reads back the pad's drive strength.
func (p *OutputInput) DriveStrength() (DriveStrength, error) { return p.pin.driveStrength() }

// SetDriveStrength programs the pad's drive strength.
func (p *OutputInput) SetDriveStrength(s DriveStrength) error { return p.pin.setDriveStrength(s) }

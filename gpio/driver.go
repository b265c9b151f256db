package gpio

// Driver is the capability surface a hardware backend provides. The
// typed layer validates every argument before it calls a Driver, so
// implementations may assume pin numbers and attribute values are in
// range for the variant they serve.
//
// Level is the one infallible operation: implementations that hit an
// internal error log it and report Low. Drive capability travels as
// raw vendor codes in both directions so read-backs can be wrapped by
// Variant.DriveStrength.
//
// Backends that hold OS resources should additionally implement
// io.Closer; callers release them by type assertion.
type Driver interface {
	// Reset returns the pin to its power-on configuration.
	Reset(pin uint32) error
	// SetDirection programs the pin's I/O mode.
	SetDirection(pin uint32, dir Direction) error
	// SetLevel writes the pin's output latch.
	SetLevel(pin uint32, lvl Level) error
	// Level samples the pin's input buffer.
	Level(pin uint32) Level
	// SetPullMode configures the internal pull resistors.
	SetPullMode(pin uint32, pull PullMode) error
	// DriveCapability reports the pad's current drive code.
	DriveCapability(pin uint32) (uint32, error)
	// SetDriveCapability programs the pad's drive code.
	SetDriveCapability(pin uint32, code uint32) error
	// WakeupEnable arms a level-triggered sleep wakeup on the pin.
	WakeupEnable(pin uint32, trig WakeupTrigger) error
	// WakeupDisable disarms the pin's sleep wakeup.
	WakeupDisable(pin uint32) error
	// HoldEnable latches the pin's output so it survives sleep and reset.
	HoldEnable(pin uint32) error
	// HoldDisable releases a held pin.
	HoldDisable(pin uint32) error
}

package gpio

// PullMode selects the internal resistor configuration of a pin. The
// zero value is PullFloating.
type PullMode uint8

const (
	PullFloating PullMode = iota // no internal resistor
	PullUp
	PullDown
	PullUpDown // both resistors, roughly half rail
)

// Vendor pull mode codes.
const (
	codePullUp     = 0
	codePullDown   = 1
	codePullUpDown = 2
	codeFloating   = 3
)

func (m PullMode) valid() bool { return m <= PullUpDown }

// Code returns the vendor driver code for m.
func (m PullMode) Code() uint32 {
	switch m {
	case PullUp:
		return codePullUp
	case PullDown:
		return codePullDown
	case PullUpDown:
		return codePullUpDown
	}
	return codeFloating
}

func (m PullMode) String() string {
	switch m {
	case PullFloating:
		return "floating"
	case PullUp:
		return "pull-up"
	case PullDown:
		return "pull-down"
	case PullUpDown:
		return "pull-up+down"
	}
	return "invalid"
}

// WakeupTrigger is the level condition that wakes the system from
// light sleep. The zero value is invalid, so an unset field can never
// arm a trigger by accident.
type WakeupTrigger uint8

const (
	_ WakeupTrigger = iota
	WakeupLowLevel
	WakeupHighLevel
)

// Vendor interrupt type codes for level wakeups.
const (
	codeIntrLowLevel  = 4
	codeIntrHighLevel = 5
)

func (t WakeupTrigger) valid() bool {
	return t == WakeupLowLevel || t == WakeupHighLevel
}

// Code returns the vendor driver code for t.
func (t WakeupTrigger) Code() uint32 {
	if t == WakeupHighLevel {
		return codeIntrHighLevel
	}
	return codeIntrLowLevel
}

func (t WakeupTrigger) String() string {
	switch t {
	case WakeupLowLevel:
		return "low-level"
	case WakeupHighLevel:
		return "high-level"
	}
	return "invalid"
}

// Direction programs a pin's I/O mode. The constants are the vendor
// driver's direction codes.
type Direction uint8

const (
	DirInput         Direction = 1
	DirOutput        Direction = 2
	DirInputOutputOD Direction = 7 // open-drain output with input buffer on
)

func (d Direction) String() string {
	switch d {
	case DirInput:
		return "input"
	case DirOutput:
		return "output"
	case DirInputOutputOD:
		return "output-input"
	}
	return "invalid"
}

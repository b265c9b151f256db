package gpio

import "fmt"

// Level is the electrical state of a pin.
type Level bool

const (
	Low  Level = false
	High Level = true
)

func (l Level) String() string {
	if l == High {
		return "high"
	}
	return "low"
}

// PinNum is a pin number that has been checked against a hardware
// variant: it is in range and not reserved. The only way to obtain one
// is Variant.Pin or Chip.Pin, so holding a PinNum is proof the number
// is usable on that variant. Comparable with ==; two PinNums are equal
// exactly when their numbers are.
type PinNum struct {
	num uint32
}

// Num returns the raw pin number.
func (p PinNum) Num() uint32 { return p.num }

func (p PinNum) String() string { return fmt.Sprintf("GPIO%d", p.num) }

// DriveStrength is a validated output drive capability code. The named
// values (DriveWeak through DriveStrongest) are valid on every
// variant. Arbitrary codes, such as ones read back from hardware, are
// wrapped with Variant.DriveStrength. Comparable with ==.
//
// How much current each step sources or sinks depends on the chip;
// consult the datasheet.
type DriveStrength struct {
	code uint32
}

// Vendor drive capability codes, weakest first.
const (
	driveCap0 = 0
	driveCap1 = 1
	driveCap2 = 2
	driveCap3 = 3
)

// DriveWeak returns the weakest drive strength.
func DriveWeak() DriveStrength { return DriveStrength{driveCap0} }

// DriveLessWeak returns the second weakest drive strength.
func DriveLessWeak() DriveStrength { return DriveStrength{driveCap1} }

// DriveMedium returns the medium drive strength, which is also the
// hardware default after reset.
func DriveMedium() DriveStrength { return DriveStrength{driveCap2} }

// DriveStrongest returns the maximum drive strength.
func DriveStrongest() DriveStrength { return DriveStrength{driveCap3} }

// DriveDefault returns the drive strength pads have after reset. It
// equals DriveMedium.
func DriveDefault() DriveStrength { return DriveMedium() }

// Code returns the raw vendor code.
func (s DriveStrength) Code() uint32 { return s.code }

func (s DriveStrength) String() string {
	switch s.code {
	case driveCap0:
		return "weak"
	case driveCap1:
		return "less-weak"
	case driveCap2:
		return "medium"
	case driveCap3:
		return "strongest"
	}
	return fmt.Sprintf("drive(%d)", s.code)
}

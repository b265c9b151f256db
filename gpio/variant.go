package gpio

import (
	"fmt"
	"strings"
)

// Variant describes the GPIO matrix of one hardware target: how many
// pin numbers exist, which of them are off limits (bonded to internal
// flash or absent from the package), and the exclusive upper bound of
// the pad drive capability codes.
//
// Validators only read the struct, so synthetic variants work exactly
// like the predeclared ones.
type Variant struct {
	Name     string
	NumPins  uint32   // pin numbers are valid in [0, NumPins)
	Reserved []uint32 // pin numbers that must not be used
	MaxDrive uint32   // drive codes are valid in [0, MaxDrive)
}

// Predeclared hardware variants.
var (
	ESP32   = &Variant{Name: "esp32", NumPins: 40, Reserved: []uint32{24}, MaxDrive: 4}
	ESP32S2 = &Variant{Name: "esp32s2", NumPins: 47, Reserved: []uint32{22, 23, 24, 25}, MaxDrive: 4}
	ESP32S3 = &Variant{Name: "esp32s3", NumPins: 49, Reserved: []uint32{22, 23, 24, 25}, MaxDrive: 4}
	ESP32C2 = &Variant{Name: "esp32c2", NumPins: 21, MaxDrive: 4}
	ESP32C3 = &Variant{Name: "esp32c3", NumPins: 22, MaxDrive: 4}

	// Linux is the table for simulator and host builds.
	Linux = &Variant{Name: "linux", NumPins: 25, Reserved: []uint32{24}, MaxDrive: 4}
)

var variants = []*Variant{ESP32, ESP32S2, ESP32S3, ESP32C2, ESP32C3, Linux}

// Variants returns the predeclared variants.
func Variants() []*Variant {
	out := make([]*Variant, len(variants))
	copy(out, variants)
	return out
}

// VariantByName looks up a predeclared variant by name, ignoring case.
// Meant for configuration files.
func VariantByName(name string) (*Variant, error) {
	for _, v := range variants {
		if strings.EqualFold(v.Name, name) {
			return v, nil
		}
	}
	return nil, fmt.Errorf("gpio: unknown variant %q: %w", name, ErrInvalidArg)
}

// Pin validates n against the variant and returns it as a PinNum.
func (v *Variant) Pin(n uint32) (PinNum, error) {
	if n >= v.NumPins {
		return PinNum{}, fmt.Errorf("gpio: pin %d out of range on %s: %w", n, v.Name, ErrInvalidArg)
	}
	for _, r := range v.Reserved {
		if n == r {
			return PinNum{}, fmt.Errorf("gpio: pin %d is reserved on %s: %w", n, v.Name, ErrInvalidArg)
		}
	}
	return PinNum{num: n}, nil
}

// DriveStrength validates a raw vendor drive code against the variant.
// Use it to wrap codes read back from hardware; prefer the named
// values otherwise.
func (v *Variant) DriveStrength(code uint32) (DriveStrength, error) {
	if code >= v.MaxDrive {
		return DriveStrength{}, fmt.Errorf("gpio: drive strength %d out of range on %s: %w", code, v.Name, ErrInvalidArg)
	}
	return DriveStrength{code: code}, nil
}

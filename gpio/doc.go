// Package gpio is a validated, capability-typed layer over raw GPIO
// drivers.
//
// Raw pin numbers and attribute codes are wrapped in value types that
// can only be obtained by validating against a hardware Variant, so an
// out-of-range or reserved value never reaches a driver. Pin
// configuration is expressed in the type system: a Chip hands out
// Output, Input and OutputInput handles, and each handle exposes only
// the operations that are legal for that configuration.
//
// The package does no hardware access of its own. A Driver
// implementation (see the fakeio, gpiochip, raspi, rpio, periphio and
// remote packages) carries the register work; this layer validates,
// maps and delegates.
//
// All operations are direct synchronous calls and take no locks.
// Callers that share one physical pin across goroutines must
// serialize access themselves; two handles built over the same pin
// number race at the register level.
package gpio

// Package remote executes GPIO driver calls on a microcontroller
// agent attached over a serial line.
//
// The protocol is one ASCII command per line. Pins, directions, pull
// modes, wakeup triggers and drive strengths travel as the vendor's
// numeric codes; the agent replies "ok", "ok <value>" or
// "err <hex-status>", echoing its own status codes on failure.
package remote

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/tarm/serial"

	"github.com/brunohorta82/idf-gpio/gpio"
)

// Known agent status codes.
const (
	statusInvalidArg   = 0x102
	statusNotSupported = 0x106
)

// StatusError is a non-zero status reported by the agent.
type StatusError struct {
	Code uint32
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("remote: status 0x%x", e.Code)
}

// Is maps the well-known agent statuses onto the gpio sentinels, so
// errors.Is(err, gpio.ErrNotSupported) holds across the wire.
func (e *StatusError) Is(target error) bool {
	switch e.Code {
	case statusInvalidArg:
		return target == gpio.ErrInvalidArg
	case statusNotSupported:
		return target == gpio.ErrNotSupported
	}
	return false
}

// Config holds serial line settings.
type Config struct {
	Port string `yaml:"port"`
	Baud int    `yaml:"baud"`
}

// Driver forwards gpio.Driver calls to the agent.
type Driver struct {
	conn io.ReadWriteCloser
	r    *bufio.Reader
}

var _ gpio.Driver = (*Driver)(nil)

// New opens the serial port. Baud defaults to 115200.
func New(cfg Config) (*Driver, error) {
	if cfg.Baud == 0 {
		cfg.Baud = 115200
	}
	port, err := serial.OpenPort(&serial.Config{
		Name:        cfg.Port,
		Baud:        cfg.Baud,
		ReadTimeout: 2 * time.Second,
	})
	if err != nil {
		return nil, fmt.Errorf("open serial %s: %w", cfg.Port, err)
	}
	return newConn(port), nil
}

// newConn wraps an established line. Split from New so the codec can
// be exercised over an in-memory connection.
func newConn(conn io.ReadWriteCloser) *Driver {
	return &Driver{conn: conn, r: bufio.NewReader(conn)}
}

// Close closes the serial line.
func (d *Driver) Close() error {
	if d.conn == nil {
		return nil
	}
	return d.conn.Close()
}

// command sends one request line and parses the agent's reply.
func (d *Driver) command(words ...string) (uint32, error) {
	req := strings.Join(words, " ")
	if _, err := io.WriteString(d.conn, req+"\n"); err != nil {
		return 0, fmt.Errorf("remote: write %q: %w", req, err)
	}
	line, err := d.r.ReadString('\n')
	if err != nil {
		return 0, fmt.Errorf("remote: reply to %q: %w", req, err)
	}
	return parseReply(strings.TrimSpace(line))
}

func parseReply(line string) (uint32, error) {
	switch {
	case line == "ok":
		return 0, nil
	case strings.HasPrefix(line, "ok "):
		v, err := strconv.ParseUint(line[len("ok "):], 10, 32)
		if err != nil {
			return 0, fmt.Errorf("remote: bad value in %q", line)
		}
		return uint32(v), nil
	case strings.HasPrefix(line, "err "):
		code, err := strconv.ParseUint(line[len("err "):], 16, 32)
		if err != nil {
			return 0, fmt.Errorf("remote: bad status in %q", line)
		}
		return 0, &StatusError{Code: uint32(code)}
	}
	return 0, fmt.Errorf("remote: bad reply %q", line)
}

func u(n uint32) string { return strconv.FormatUint(uint64(n), 10) }

func (d *Driver) Reset(pin uint32) error {
	_, err := d.command("reset", u(pin))
	return err
}

func (d *Driver) SetDirection(pin uint32, dir gpio.Direction) error {
	_, err := d.command("dir", u(pin), u(uint32(dir)))
	return err
}

func (d *Driver) SetLevel(pin uint32, lvl gpio.Level) error {
	bit := "0"
	if lvl == gpio.High {
		bit = "1"
	}
	_, err := d.command("set", u(pin), bit)
	return err
}

func (d *Driver) Level(pin uint32) gpio.Level {
	v, err := d.command("get", u(pin))
	if err != nil {
		log.Printf("remote: get %d: %v", pin, err)
		return gpio.Low
	}
	return gpio.Level(v != 0)
}

func (d *Driver) SetPullMode(pin uint32, pull gpio.PullMode) error {
	_, err := d.command("pull", u(pin), u(pull.Code()))
	return err
}

func (d *Driver) DriveCapability(pin uint32) (uint32, error) {
	return d.command("getdrv", u(pin))
}

func (d *Driver) SetDriveCapability(pin uint32, code uint32) error {
	_, err := d.command("setdrv", u(pin), u(code))
	return err
}

func (d *Driver) WakeupEnable(pin uint32, trig gpio.WakeupTrigger) error {
	_, err := d.command("wake", u(pin), u(trig.Code()))
	return err
}

func (d *Driver) WakeupDisable(pin uint32) error {
	_, err := d.command("unwake", u(pin))
	return err
}

func (d *Driver) HoldEnable(pin uint32) error {
	_, err := d.command("hold", u(pin))
	return err
}

func (d *Driver) HoldDisable(pin uint32) error {
	_, err := d.command("unhold", u(pin))
	return err
}

// Package monitor polls GPIO points and mirrors them over MQTT.
//
// Each Point carries the capabilities its pin configuration actually
// has: outputs can be set but not read back, inputs read but never
// set, open-drain pins do both. The monitor publishes level changes
// retained under <prefix>/pin/<name>/state and accepts commands on
// <prefix>/pin/<name>/set. All pin access happens on the Run
// goroutine; commands and snapshot requests from other goroutines are
// funneled through channels.
package monitor

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/brunohorta82/idf-gpio/gpio"
)

// Point is one named pin exposed to the broker. A nil Read or Set
// marks the capability as absent.
type Point struct {
	Name string
	Read func() gpio.Level
	Set  func(gpio.Level) error
}

// Publisher is the broker surface the monitor needs. *mqtt.Client
// satisfies it.
type Publisher interface {
	Publish(topic, payload string)
	PublishRetained(topic, payload string)
}

// Config holds monitor settings.
type Config struct {
	IntervalMS  int    `yaml:"interval_ms"`
	TopicPrefix string `yaml:"topic_prefix"`
}

type command struct {
	name string
	lvl  gpio.Level
}

// Monitor owns a set of points and the loop that serializes access to
// them.
type Monitor struct {
	points   []Point
	byName   map[string]*Point
	pub      Publisher
	prefix   string
	interval time.Duration
	last     map[string]gpio.Level
	cmds     chan command
	snaps    chan struct{}
}

// New builds a monitor. Point names must be unique. A zero interval
// defaults to 250ms, an empty prefix to "idf-gpio".
func New(cfg Config, points []Point, pub Publisher) *Monitor {
	if cfg.IntervalMS <= 0 {
		cfg.IntervalMS = 250
	}
	if cfg.TopicPrefix == "" {
		cfg.TopicPrefix = "idf-gpio"
	}

	m := &Monitor{
		points:   points,
		byName:   make(map[string]*Point, len(points)),
		pub:      pub,
		prefix:   cfg.TopicPrefix,
		interval: time.Duration(cfg.IntervalMS) * time.Millisecond,
		last:     make(map[string]gpio.Level),
		cmds:     make(chan command, 16),
		snaps:    make(chan struct{}, 1),
	}
	for i := range m.points {
		m.byName[m.points[i].Name] = &m.points[i]
	}
	return m
}

// StateTopic returns the retained topic a point's level is published
// on.
func (m *Monitor) StateTopic(name string) string {
	return fmt.Sprintf("%s/pin/%s/state", m.prefix, name)
}

// SetTopicFilter returns the wildcard subscription for set commands.
func (m *Monitor) SetTopicFilter() string {
	return m.prefix + "/pin/+/set"
}

// TopicPrefix returns the effective topic prefix after defaulting.
func (m *Monitor) TopicPrefix() string {
	return m.prefix
}

// Run publishes an initial snapshot and then serves ticks, commands
// and snapshot requests until ctx is cancelled. All driver access
// happens here.
func (m *Monitor) Run(ctx context.Context) {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	m.publishAll()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.poll()
		case cmd := <-m.cmds:
			m.apply(cmd)
		case <-m.snaps:
			m.publishAll()
		}
	}
}

// Snapshot asks the loop to republish every readable point. Safe from
// any goroutine; coalesces if one is already pending.
func (m *Monitor) Snapshot() {
	select {
	case m.snaps <- struct{}{}:
	default:
	}
}

// HandleMessage routes an inbound broker message. Topics outside
// <prefix>/pin/<name>/set are ignored. Safe from any goroutine.
func (m *Monitor) HandleMessage(topic string, payload []byte) {
	name, ok := m.setTopicName(topic)
	if !ok {
		return
	}
	lvl, err := ParseLevel(string(payload))
	if err != nil {
		log.Printf("monitor: %s: %v", topic, err)
		return
	}
	select {
	case m.cmds <- command{name: name, lvl: lvl}:
	default:
		log.Printf("monitor: command queue full, dropping %s", topic)
	}
}

// setTopicName extracts the point name from <prefix>/pin/<name>/set.
func (m *Monitor) setTopicName(topic string) (string, bool) {
	rest, ok := strings.CutPrefix(topic, m.prefix+"/pin/")
	if !ok {
		return "", false
	}
	name, ok := strings.CutSuffix(rest, "/set")
	if !ok || name == "" || strings.Contains(name, "/") {
		return "", false
	}
	return name, true
}

// ParseLevel parses a command payload: "high"/"1" or "low"/"0",
// case-insensitive.
func ParseLevel(s string) (gpio.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "high", "1":
		return gpio.High, nil
	case "low", "0":
		return gpio.Low, nil
	}
	return gpio.Low, fmt.Errorf("bad level %q", s)
}

// poll reads every readable point and publishes the ones that moved.
func (m *Monitor) poll() {
	for i := range m.points {
		pt := &m.points[i]
		if pt.Read == nil {
			continue
		}
		lvl := pt.Read()
		if last, seen := m.last[pt.Name]; seen && last == lvl {
			continue
		}
		m.last[pt.Name] = lvl
		log.Printf("pin %s: %s", pt.Name, lvl)
		m.pub.PublishRetained(m.StateTopic(pt.Name), lvl.String())
	}
}

// publishAll republishes every readable point regardless of the last
// known level.
func (m *Monitor) publishAll() {
	for i := range m.points {
		pt := &m.points[i]
		if pt.Read == nil {
			continue
		}
		lvl := pt.Read()
		m.last[pt.Name] = lvl
		m.pub.PublishRetained(m.StateTopic(pt.Name), lvl.String())
	}
}

// apply executes one set command on the loop goroutine.
func (m *Monitor) apply(cmd command) {
	pt, ok := m.byName[cmd.name]
	if !ok {
		log.Printf("monitor: no point named %q", cmd.name)
		return
	}
	if pt.Set == nil {
		log.Printf("monitor: %s is not settable", cmd.name)
		return
	}
	if err := pt.Set(cmd.lvl); err != nil {
		log.Printf("monitor: set %s %s: %v", cmd.name, cmd.lvl, err)
		return
	}
	// Readable points reflect the write immediately instead of waiting
	// for the next tick.
	if pt.Read != nil {
		lvl := pt.Read()
		m.last[pt.Name] = lvl
		m.pub.PublishRetained(m.StateTopic(pt.Name), lvl.String())
	}
}

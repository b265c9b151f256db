package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"gopkg.in/yaml.v2"

	"github.com/brunohorta82/idf-gpio/backend"
	"github.com/brunohorta82/idf-gpio/gpio"
	"github.com/brunohorta82/idf-gpio/monitor"
	"github.com/brunohorta82/idf-gpio/mqtt"
)

var build = "dev"

// App holds the wiring of the daemon.
type App struct {
	cfg     *Config
	drv     gpio.Driver
	chip    *gpio.Chip
	mqtt    *mqtt.Client
	monitor *monitor.Monitor
	trigger *Trigger
	ctx     context.Context
	cancel  context.CancelFunc
}

func main() {
	fmt.Printf("idf-gpio build %s\n", build)

	cfgfile := flag.String("cfg", "idf-gpio.cfg", "Config file")
	flag.Parse()

	// Load configuration
	f, err := os.Open(*cfgfile)
	if err != nil {
		log.Fatalf("Open config: %v", err)
	}
	defer f.Close()

	var cfg Config
	if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
		log.Fatalf("Decode config: %v", err)
	}

	if cfg.ClientID == "" {
		log.Fatal("client_id missing in config file")
	}
	if cfg.Variant == "" {
		cfg.Variant = "linux"
	}

	variant, err := gpio.VariantByName(cfg.Variant)
	if err != nil {
		log.Fatalf("Variant: %v", err)
	}

	// Create application context
	ctx, cancel := context.WithCancel(context.Background())

	app := &App{
		cfg:    &cfg,
		ctx:    ctx,
		cancel: cancel,
	}

	// Initialize the driver backend and the validated chip on top
	app.drv, err = backend.New(cfg.Backend)
	if err != nil {
		log.Fatalf("Init backend: %v", err)
	}
	app.chip, err = gpio.NewChip(variant, app.drv)
	if err != nil {
		log.Fatalf("Init chip: %v", err)
	}

	points, err := app.configurePins(cfg.Pins)
	if err != nil {
		log.Fatalf("Configure pins: %v", err)
	}
	log.Printf("Configured %d pins on %s", len(points), variant.Name)

	// Initialize MQTT
	app.mqtt, err = mqtt.New(cfg.MQTT, cfg.ClientID, mqtt.Handlers{
		OnConnect:    app.onMQTTConnect,
		OnDisconnect: app.onMQTTDisconnect,
		OnMessage:    app.onMQTTMessage,
	})
	if err != nil {
		log.Fatalf("Init MQTT: %v", err)
	}

	app.monitor = monitor.New(cfg.Monitor, points, app.mqtt)

	// Initialize the snapshot button if configured
	app.trigger, err = newTrigger(cfg.Trigger, app.monitor.Snapshot)
	if err != nil {
		log.Fatalf("Init trigger: %v", err)
	}

	// Start background goroutines
	go app.monitor.Run(ctx)
	go func() {
		if err := app.mqtt.Connect(); err != nil {
			log.Printf("MQTT connect: %v", err)
		}
	}()
	go app.pingSender()

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	fmt.Println("Shutting down...")
	cancel()

	// Cleanup
	app.mqtt.Disconnect()
	if app.trigger != nil {
		app.trigger.Release()
	}
	if c, ok := app.drv.(io.Closer); ok {
		if err := c.Close(); err != nil {
			log.Printf("Close driver: %v", err)
		}
	}

	fmt.Println("Shutdown complete")
}

// configurePins runs every configured pin through its typed
// constructor and returns the monitor points exposing them.
func (app *App) configurePins(pins []PinConfig) ([]monitor.Point, error) {
	points := make([]monitor.Point, 0, len(pins))
	for _, pc := range pins {
		if pc.Name == "" {
			return nil, fmt.Errorf("pin %d: name missing", pc.Num)
		}
		pin, err := app.chip.Pin(pc.Num)
		if err != nil {
			return nil, fmt.Errorf("pin %q: %w", pc.Name, err)
		}

		var pt monitor.Point
		switch strings.ToLower(pc.Mode) {
		case "output", "out":
			pt, err = app.setupOutput(pin, pc)
		case "input", "in", "":
			pt, err = app.setupInput(pin, pc)
		case "inout", "open-drain", "od":
			pt, err = app.setupOutputInput(pin, pc)
		default:
			err = fmt.Errorf("unknown mode %q", pc.Mode)
		}
		if err != nil {
			return nil, fmt.Errorf("pin %q: %w", pc.Name, err)
		}
		pt.Name = pc.Name
		points = append(points, pt)
	}
	return points, nil
}

func (app *App) setupOutput(pin gpio.PinNum, pc PinConfig) (monitor.Point, error) {
	if pc.Pull != "" || pc.Wake != "" {
		return monitor.Point{}, fmt.Errorf("pull and wake do not apply to outputs")
	}

	out, err := app.chip.Output(pin)
	if err != nil {
		return monitor.Point{}, err
	}
	if pc.Drive != "" {
		drive, err := parseDrive(pc.Drive)
		if err != nil {
			return monitor.Point{}, err
		}
		if err := out.SetDriveStrength(drive); err != nil {
			return monitor.Point{}, err
		}
	}
	if pc.Initial != "" {
		lvl, err := monitor.ParseLevel(pc.Initial)
		if err != nil {
			return monitor.Point{}, err
		}
		if err := setOutput(out, lvl); err != nil {
			return monitor.Point{}, err
		}
	}
	if pc.Hold {
		if err := out.HoldEnable(); err != nil {
			return monitor.Point{}, err
		}
	}

	return monitor.Point{
		Set: func(lvl gpio.Level) error { return setOutput(out, lvl) },
	}, nil
}

func setOutput(out *gpio.Output, lvl gpio.Level) error {
	if lvl == gpio.High {
		return out.SetHigh()
	}
	return out.SetLow()
}

func (app *App) setupInput(pin gpio.PinNum, pc PinConfig) (monitor.Point, error) {
	if pc.Drive != "" || pc.Initial != "" || pc.Hold {
		return monitor.Point{}, fmt.Errorf("drive, initial and hold do not apply to inputs")
	}

	in, err := app.chip.Input(pin)
	if err != nil {
		return monitor.Point{}, err
	}
	if pc.Pull != "" {
		pull, err := parsePull(pc.Pull)
		if err != nil {
			return monitor.Point{}, err
		}
		if err := in.SetPullMode(pull); err != nil {
			return monitor.Point{}, err
		}
	}
	if pc.Wake != "" {
		trig, err := parseWake(pc.Wake)
		if err != nil {
			return monitor.Point{}, err
		}
		if err := in.WakeupEnable(trig); err != nil {
			return monitor.Point{}, err
		}
	}

	return monitor.Point{Read: in.Level}, nil
}

func (app *App) setupOutputInput(pin gpio.PinNum, pc PinConfig) (monitor.Point, error) {
	if pc.Hold {
		return monitor.Point{}, fmt.Errorf("hold does not apply to open-drain pins")
	}

	od, err := app.chip.OutputInput(pin)
	if err != nil {
		return monitor.Point{}, err
	}
	if pc.Pull != "" {
		pull, err := parsePull(pc.Pull)
		if err != nil {
			return monitor.Point{}, err
		}
		if err := od.SetPullMode(pull); err != nil {
			return monitor.Point{}, err
		}
	}
	if pc.Drive != "" {
		drive, err := parseDrive(pc.Drive)
		if err != nil {
			return monitor.Point{}, err
		}
		if err := od.SetDriveStrength(drive); err != nil {
			return monitor.Point{}, err
		}
	}
	if pc.Wake != "" {
		trig, err := parseWake(pc.Wake)
		if err != nil {
			return monitor.Point{}, err
		}
		if err := od.WakeupEnable(trig); err != nil {
			return monitor.Point{}, err
		}
	}
	if pc.Initial != "" {
		lvl, err := monitor.ParseLevel(pc.Initial)
		if err != nil {
			return monitor.Point{}, err
		}
		if err := setOpenDrain(od, lvl); err != nil {
			return monitor.Point{}, err
		}
	}

	return monitor.Point{
		Read: od.Level,
		Set:  func(lvl gpio.Level) error { return setOpenDrain(od, lvl) },
	}, nil
}

// setOpenDrain treats high as releasing the line, so the bus or the
// pull decides the level.
func setOpenDrain(od *gpio.OutputInput, lvl gpio.Level) error {
	if lvl == gpio.High {
		return od.SetFloating()
	}
	return od.SetLow()
}

func (app *App) onMQTTConnect() {
	if err := app.mqtt.Subscribe(app.monitor.SetTopicFilter()); err != nil {
		log.Printf("Subscribe error: %v", err)
	}

	topic := fmt.Sprintf("%s/status/node/%s", app.monitor.TopicPrefix(), app.cfg.ClientID)
	app.mqtt.PublishRetained(topic, `{"status":"online"}`)

	// Retained pin state may be stale after a reconnect
	app.monitor.Snapshot()
}

func (app *App) onMQTTDisconnect() {
	log.Println("MQTT connection lost")
}

func (app *App) onMQTTMessage(topic string, payload []byte) {
	app.monitor.HandleMessage(topic, payload)
}

func (app *App) pingSender() {
	ticker := time.NewTicker(120 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-app.ctx.Done():
			return
		case <-ticker.C:
			topic := fmt.Sprintf("%s/status/node/%s/ping", app.monitor.TopicPrefix(), app.cfg.ClientID)
			app.mqtt.Publish(topic, `{"status":"ok"}`)
		}
	}
}

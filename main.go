package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"gitlab.com/gomidi/midi/v2"
	"golang.org/x/sync/errgroup"

	"github.com/PixPMusic/gopher-surface/internal/actions"
	"github.com/PixPMusic/gopher-surface/internal/atom"
	"github.com/PixPMusic/gopher-surface/internal/config"
	"github.com/PixPMusic/gopher-surface/internal/logger"
	"github.com/PixPMusic/gopher-surface/internal/loop"
	internalmidi "github.com/PixPMusic/gopher-surface/internal/midi"
	"github.com/PixPMusic/gopher-surface/internal/model"
	"github.com/PixPMusic/gopher-surface/internal/mqttbridge"
	"github.com/PixPMusic/gopher-surface/internal/startup"
)

func main() {
	configPath := flag.String("config", "", "path to the config file (.toml, .yaml or .yml)")
	listPorts := flag.Bool("list-ports", false, "print the available MIDI ports and exit")
	writeConfig := flag.Bool("write-config", false, "write the effective config back to disk and exit")
	autostart := flag.String("autostart", "", "on or off: register or remove the login entry and exit")
	flag.Parse()

	if *autostart != "" {
		if err := setAutostart(*autostart, *configPath); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	if err := run(*configPath, *listPorts, *writeConfig); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// setAutostart registers the daemon to start at login with the same config.
func setAutostart(mode, configPath string) error {
	switch mode {
	case "on":
		var args []string
		if configPath != "" {
			abs, err := filepath.Abs(configPath)
			if err != nil {
				return err
			}
			args = []string{"-config", abs}
		}
		cmd, err := startup.Self(args...)
		if err != nil {
			return err
		}
		return startup.Enable(cmd)
	case "off":
		return startup.Disable()
	default:
		return fmt.Errorf("autostart: want on or off, got %q", mode)
	}
}

func run(configPath string, listPorts, writeConfig bool) error {
	if configPath == "" {
		p, err := config.DefaultPath()
		if err != nil {
			return fmt.Errorf("config path: %w", err)
		}
		configPath = p
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if writeConfig {
		return cfg.Save()
	}

	log, err := logger.New(cfg.Logger.Level)
	if err != nil {
		return err
	}
	log = log.With(logger.Fields{"instance": cfg.InstanceID})

	manager := internalmidi.NewManager()
	defer manager.Close()

	if listPorts {
		for _, p := range manager.ListInPorts() {
			fmt.Println("in: ", p)
		}
		for _, p := range manager.ListOutPorts() {
			fmt.Println("out:", p)
		}
		return nil
	}

	send, err := manager.SenderFor(cfg.MIDI.OutPort)
	if err != nil {
		return fmt.Errorf("output port %q: %w", cfg.MIDI.OutPort, err)
	}

	var thru func(midi.Message) error
	if cfg.MIDI.ThruPort != "" {
		if thru, err = manager.SenderFor(cfg.MIDI.ThruPort); err != nil {
			return fmt.Errorf("thru port %q: %w", cfg.MIDI.ThruPort, err)
		}
	}
	notes := internalmidi.NewNoteInput(cfg.MIDI.Channel, thru)

	events := loop.New(log, loop.DefaultDepth)
	store := model.NewStore(log, nil)

	actionStore := cfg.ActionStore()
	executor := actions.NewExecutor(log, actionStore)
	executor.Register(actions.ActionTypeMidi, actions.NewMidiHandler(manager))
	executor.Register(actions.ActionTypeShellCommand, actions.NewShellHandler(log))

	var bridge *mqttbridge.Bridge
	if cfg.MQTT.Enabled {
		bridge = mqttbridge.New(log, cfg.MQTTConf(), store, events.Post)
		executor.Register(actions.ActionTypeMQTT, actions.NewMQTTHandler(bridge))
		store.OnSet(bridge.PublishSet)
	}
	if err := executor.Validate(); err != nil {
		log.WithError(err).Warn("some actions are invalid and will fail when invoked")
	}
	store.SetInvoker(executor)
	log.WithField("actions", actionStore.Names()).Debug("actions loaded")

	controller := atom.New(log, store, notes, send, atom.Options{
		Channel:     cfg.MIDI.Channel,
		Sensitivity: cfg.Surface.EncoderSensitivity,
		Device:      internalmidi.GetDevice(internalmidi.DeviceType(cfg.MIDI.Device)),
	})
	if err := controller.Start(); err != nil {
		return err
	}
	defer func() {
		if err := controller.Stop(); err != nil {
			log.WithError(err).Error("failed to restore device mode")
		}
	}()

	stopListening, err := manager.StartListening(cfg.MIDI.InPort, func(msg midi.Message) {
		if !events.Post(func() { controller.HandleMIDI(msg) }) {
			log.WithField("msg", msg.String()).Debug("loop stopped, message dropped")
		}
	}, func(err error) {
		events.Fail(fmt.Errorf("midi input: %w", err))
	})
	if err != nil {
		return fmt.Errorf("input port %q: %w", cfg.MIDI.InPort, err)
	}
	defer stopListening()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return events.Run(gctx, cfg.TickInterval(), func() {
			if err := controller.Tick(); err != nil {
				log.WithError(err).Warn("light update failed, retrying next cycle")
			}
		})
	})
	if bridge != nil {
		g.Go(func() error {
			if err := bridge.Start(gctx); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			<-gctx.Done()
			return bridge.Stop()
		})
	}

	log.With(logger.Fields{
		"in":  cfg.MIDI.InPort,
		"out": cfg.MIDI.OutPort,
	}).Info("controller running")

	err = g.Wait()
	log.Info("shutting down")
	return err
}

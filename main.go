package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	gomidi "gitlab.com/gomidi/midi/v2"

	"padgrid/config"
	"padgrid/debug"
	"padgrid/instrument"
	"padgrid/midi"
	"padgrid/theme"
	"padgrid/tui"
)

func main() {
	configPath := flag.String("config", "", "config file (default ~/.config/padgrid/config.yaml)")
	monitor := flag.Bool("tui", false, "show the status monitor")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		debug.Fatal("config", err, "padgrid")
	}

	logFile := cfg.LogFile
	if *monitor && logFile == "" {
		// the monitor owns the terminal
		logFile = "padgrid.log"
	}
	if err := debug.Setup(logFile, cfg.LogLevel); err != nil {
		debug.Fatal("config", err, "log setup")
	}

	if err := run(cfg, *monitor); err != nil {
		debug.Error("main", err, "exiting")
		debug.Close()
		debug.Fatal("main", err, "padgrid")
	}
	debug.Close()
}

func run(cfg *config.Config, monitor bool) error {
	reg, err := cfg.Registry()
	if err != nil {
		return err
	}
	key, err := cfg.Key()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	defer gomidi.CloseDriver()

	deviceMgr := midi.NewDeviceManager(cfg.DeviceFilter)
	controllers, err := deviceMgr.Discover(2)
	if err != nil {
		return err
	}

	out, err := openOutput(cfg)
	if err != nil {
		deviceMgr.Close()
		return err
	}

	inst, err := instrument.New(controllers, out, instrument.Options{
		Registry:         reg,
		Key:              key,
		NoteLayout:       cfg.NoteLayout,
		InputChannel:     cfg.InputChannel,
		OutputChannel:    cfg.OutputChannel,
		HandshakeTimeout: cfg.HandshakeTimeout,
		HandshakeRetries: cfg.HandshakeRetries,
	})
	if err != nil {
		out.Close()
		deviceMgr.Close()
		return err
	}
	// Close also closes the controllers and the output
	defer inst.Close()

	if err := inst.Start(ctx); err != nil {
		return err
	}

	if !monitor {
		fmt.Printf("padgrid: playing on %q, ctrl+c to stop\n", cfg.OutputPort)
		<-ctx.Done()
		return nil
	}

	th := theme.New(nil)
	if cfg.Palette != "" {
		palette, err := theme.LoadGPL(cfg.Palette)
		if err != nil {
			return err
		}
		th = theme.New(palette)
	}
	p := tea.NewProgram(tui.NewModel(inst, th), tea.WithAltScreen())
	go func() {
		<-ctx.Done()
		p.Quit()
	}()
	_, err = p.Run()
	return err
}

func openOutput(cfg *config.Config) (midi.Output, error) {
	if cfg.VirtualOutput {
		out, err := midi.OpenVirtualOutput(cfg.OutputPort)
		if err == nil {
			return out, nil
		}
		debug.Warn("output", "virtual output %q: %v, looking for an existing port", cfg.OutputPort, err)
	}
	return midi.OpenNamedOutput(cfg.OutputPort)
}

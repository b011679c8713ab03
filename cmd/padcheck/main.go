package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	gomidi "gitlab.com/gomidi/midi/v2"

	"padgrid/debug"
	"padgrid/midi"
)

func main() {
	filter := flag.String("filter", midi.DefaultFilter, "port name filter")
	timeout := flag.Duration("timeout", 2*time.Second, "handshake reply timeout")
	verbose := flag.Bool("v", false, "debug logging")
	flag.Parse()

	level := "warn"
	if *verbose {
		level = "debug"
	}
	if err := debug.Setup("", level); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer gomidi.CloseDriver()

	dm := midi.NewDeviceManager(*filter)
	switch flag.Arg(0) {
	case "list":
		listPorts(dm)
	case "detect":
		detect(dm)
	case "handshake":
		handshake(dm, *timeout, false)
	case "leds":
		handshake(dm, *timeout, true)
	default:
		usage()
	}
}

func usage() {
	fmt.Println("nanoPAD2 probe")
	fmt.Println("")
	fmt.Println("Usage: padcheck [-filter name] [-timeout d] [-v] command")
	fmt.Println("")
	fmt.Println("Commands:")
	fmt.Println("  list       - List all MIDI ports")
	fmt.Println("  detect     - Show ports matching the filter")
	fmt.Println("  handshake  - Run the sysex handshake on every match")
	fmt.Println("  leds       - Handshake, then walk the settings lights")
}

func listPorts(dm *midi.DeviceManager) {
	fmt.Println("(waiting up to 3 seconds...)")
	ins, outs, err := dm.ListPorts()
	if err != nil {
		fmt.Printf("\n%v\n", err)
		fmt.Println("Fix: sudo killall coreaudiod midiserver")
		return
	}
	fmt.Println("=== MIDI Input Ports ===")
	for i, name := range ins {
		fmt.Printf("  %d: %s\n", i, name)
	}
	fmt.Println("\n=== MIDI Output Ports ===")
	for i, name := range outs {
		fmt.Printf("  %d: %s\n", i, name)
	}
}

func detect(dm *midi.DeviceManager) {
	pairs, err := dm.Find()
	if err != nil {
		fmt.Println(err)
		return
	}
	for i, p := range pairs {
		fmt.Printf("  %d: %s\n", i, p.Name)
	}
	if len(pairs) < 2 {
		fmt.Printf("\nfound %d, padgrid needs two controllers\n", len(pairs))
	}
}

func handshake(dm *midi.DeviceManager, timeout time.Duration, leds bool) {
	pairs, err := dm.Find()
	if err != nil {
		fmt.Println(err)
		return
	}
	ctrls, err := dm.Discover(len(pairs))
	if err != nil {
		fmt.Println(err)
		return
	}
	defer dm.Close()
	if len(ctrls) == 0 {
		fmt.Println("no controllers found")
		return
	}

	ctx := context.Background()
	for _, c := range ctrls {
		if err := c.Handshake(ctx, timeout, 0); err != nil {
			fmt.Printf("%s: %v\n", c, err)
			continue
		}
		fmt.Printf("%s: channel %d, prefix % X\n", c, c.Channel(), c.Prefix())
		if !leds {
			continue
		}
		for n := 0; n < midi.LEDCount; n++ {
			c.SetLEDs(1 << n)
			time.Sleep(250 * time.Millisecond)
		}
		c.SetLEDs(0)
	}
}

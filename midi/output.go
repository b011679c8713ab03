package midi

import (
	"fmt"

	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
	"gitlab.com/gomidi/midi/v2/drivers/rtmididrv"
)

// portOutput sends to a single driver output. Sends are best effort: no
// queueing, no retry.
type portOutput struct {
	outPort drivers.Out
	send    func(msg gomidi.Message) error
}

// OpenVirtualOutput hosts a new output port other applications can
// connect to. Needs the rtmidi driver.
func OpenVirtualOutput(name string) (Output, error) {
	drv, ok := drivers.Get().(*rtmididrv.Driver)
	if !ok {
		return nil, fmt.Errorf("virtual output %q: driver %v cannot host virtual ports", name, drivers.Get())
	}
	out, err := drv.OpenVirtualOut(name)
	if err != nil {
		return nil, fmt.Errorf("virtual output %q: %w", name, err)
	}
	return newPortOutput(out)
}

// OpenNamedOutput connects to an existing output port whose name contains name.
func OpenNamedOutput(name string) (Output, error) {
	out, err := gomidi.FindOutPort(name)
	if err != nil {
		return nil, fmt.Errorf("output %q: %w", name, err)
	}
	return newPortOutput(out)
}

func newPortOutput(out drivers.Out) (Output, error) {
	send, err := gomidi.SendTo(out)
	if err != nil {
		return nil, fmt.Errorf("open output %s: %w", out, err)
	}
	return &portOutput{outPort: out, send: send}, nil
}

func (o *portOutput) Send(msg gomidi.Message) error {
	return o.send(msg)
}

func (o *portOutput) Close() error {
	return o.outPort.Close()
}

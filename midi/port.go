package midi

import (
	"fmt"

	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv" // Register MIDI driver
)

// hwPort joins a driver input and output that belong to the same device.
type hwPort struct {
	id      string
	inPort  drivers.In
	outPort drivers.Out
	send    func(msg gomidi.Message) error
}

// OpenPort opens the output for sending; the input is opened by Listen.
func OpenPort(id string, inPort drivers.In, outPort drivers.Out) (Port, error) {
	send, err := gomidi.SendTo(outPort)
	if err != nil {
		return nil, fmt.Errorf("open output %s: %w", outPort, err)
	}
	return &hwPort{id: id, inPort: inPort, outPort: outPort, send: send}, nil
}

func (p *hwPort) ID() string {
	return p.id
}

func (p *hwPort) Send(msg gomidi.Message) error {
	return p.send(msg)
}

func (p *hwPort) Listen(fn func(msg gomidi.Message)) (func(), error) {
	stop, err := gomidi.ListenTo(p.inPort, func(msg gomidi.Message, timestampms int32) {
		fn(msg)
	}, gomidi.UseSysEx())
	if err != nil {
		return nil, fmt.Errorf("open input %s: %w", p.inPort, err)
	}
	return stop, nil
}

// Close closes both driver ports; stop listeners first.
func (p *hwPort) Close() error {
	inErr := p.inPort.Close()
	outErr := p.outPort.Close()
	if inErr != nil {
		return inErr
	}
	return outErr
}

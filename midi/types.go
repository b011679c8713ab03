package midi

import (
	"errors"

	gomidi "gitlab.com/gomidi/midi/v2"
)

var (
	// ErrDiscovery means fewer controllers were found than the instrument needs.
	ErrDiscovery = errors.New("controller discovery failed")
	// ErrHandshakeTimeout means a controller did not answer a sysex request in time.
	ErrHandshakeTimeout = errors.New("handshake timed out")
	// ErrAborted means a pending request was abandoned because the controller
	// closed or the caller's context ended.
	ErrAborted = errors.New("request aborted")
	// ErrRequestOutstanding means a second request was started while one is pending.
	ErrRequestOutstanding = errors.New("request already outstanding")
	// ErrBadReply means a sysex reply did not have the expected shape.
	ErrBadReply = errors.New("malformed sysex reply")
)

// Port is one bidirectional connection to a device.
type Port interface {
	ID() string
	Send(msg gomidi.Message) error
	// Listen delivers every incoming message, sysex included, in arrival order.
	Listen(fn func(msg gomidi.Message)) (stop func(), err error)
	Close() error
}

// Output is where translated notes go.
type Output interface {
	Send(msg gomidi.Message) error
	Close() error
}

// nanoPAD2 control surface
const (
	SceneChannel uint8 = 15
	SceneControl uint8 = 57
	LEDOn        uint8 = 127
	LEDOff       uint8 = 0
	LEDCount           = 4
)

// LEDControls address the four settings indicator lights on SceneChannel.
var LEDControls = [LEDCount]uint8{0x79, 0x7A, 0x7B, 0x7C}

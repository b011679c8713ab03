package midi

import (
	"sync"

	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
)

// stubPort is the least a DeviceManager needs to open a controller.
type stubPort struct {
	id string

	mu     sync.Mutex
	closed bool
}

func (p *stubPort) ID() string { return p.id }

func (p *stubPort) Send(msg gomidi.Message) error { return nil }

func (p *stubPort) Listen(fn func(gomidi.Message)) (func(), error) {
	return func() {}, nil
}

func (p *stubPort) Close() error {
	p.mu.Lock()
	p.closed = true
	p.mu.Unlock()
	return nil
}

func (p *stubPort) isClosed() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.closed
}

// fakeIn and fakeOut only implement String; Match never touches anything else.
type fakeIn struct {
	drivers.In
	name string
}

func (f fakeIn) String() string { return f.name }

type fakeOut struct {
	drivers.Out
	name string
}

func (f fakeOut) String() string { return f.name }

package midi

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	gomidi "gitlab.com/gomidi/midi/v2"

	"padgrid/debug"
)

// Handler receives a controller's channel voice events once its handshake
// has completed. Calls for one controller arrive in order.
type Handler func(c *Controller, ev Event)

// request is the single outstanding sysex exchange of a controller.
type request struct {
	id    string
	match func([]byte) bool
	reply chan []byte
}

// Controller is one nanoPAD2: its port, the channel learned during the
// handshake and the request latch bridging replies to a waiting caller.
type Controller struct {
	index int
	port  Port
	stop  func()

	mu      sync.Mutex
	pending *request
	handler Handler
	closed  bool
	done    chan struct{}

	channel uint8
	prefix  []byte
	ready   atomic.Bool
}

// NewController wraps a port and starts listening on it. Input is routed
// by the controller: sysex goes to the request latch, everything else to
// the handler once the controller is ready.
func NewController(index int, port Port) (*Controller, error) {
	c := &Controller{
		index: index,
		port:  port,
		done:  make(chan struct{}),
	}
	stop, err := port.Listen(c.receive)
	if err != nil {
		return nil, err
	}
	c.stop = stop
	return c, nil
}

func (c *Controller) Index() int {
	return c.index
}

func (c *Controller) ID() string {
	return c.port.ID()
}

// Channel is valid once Ready.
func (c *Controller) Channel() uint8 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.channel
}

// Prefix returns a copy of the command prefix learned during the handshake.
func (c *Controller) Prefix() []byte {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]byte(nil), c.prefix...)
}

func (c *Controller) Ready() bool {
	return c.ready.Load()
}

// SetHandler installs the event handler; nil stops delivery.
func (c *Controller) SetHandler(h Handler) {
	c.mu.Lock()
	c.handler = h
	c.mu.Unlock()
}

func (c *Controller) String() string {
	return fmt.Sprintf("controller %d (%s)", c.index, c.port.ID())
}

func (c *Controller) receive(msg gomidi.Message) {
	var data []byte
	if msg.GetSysEx(&data) {
		if !c.Deliver(data) {
			debug.Log("sysex", "%s: unsolicited sysex % X", c, data)
		}
		return
	}
	if !c.ready.Load() {
		debug.LogEvery(10, "input", "%s: dropping input before handshake", c)
		return
	}
	ev, ok := Parse(msg)
	if !ok {
		return
	}
	c.mu.Lock()
	h := c.handler
	c.mu.Unlock()
	if h != nil {
		h(c, ev)
	}
}

// Deliver hands a sysex payload to the pending request. It returns false
// when nothing is waiting or the payload is not the awaited reply.
func (c *Controller) Deliver(data []byte) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	req := c.pending
	if req == nil {
		return false
	}
	if req.match != nil && !req.match(data) {
		debug.Log("sysex", "%s: request %s ignoring % X", c, req.id, data)
		return false
	}
	c.pending = nil
	req.reply <- append([]byte(nil), data...)
	return true
}

// Request sends a sysex payload and waits for the reply accepted by match.
// Only one request may be outstanding per controller; a second caller gets
// ErrRequestOutstanding. The wait ends with the reply, ErrHandshakeTimeout,
// or ErrAborted when ctx ends or the controller is closed.
func (c *Controller) Request(ctx context.Context, payload []byte, match func([]byte) bool, timeout time.Duration) ([]byte, error) {
	req := &request{
		id:    uuid.NewString(),
		match: match,
		reply: make(chan []byte, 1),
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil, fmt.Errorf("%s: %w", c, ErrAborted)
	}
	if c.pending != nil {
		c.mu.Unlock()
		return nil, fmt.Errorf("%s: %w", c, ErrRequestOutstanding)
	}
	c.pending = req
	c.mu.Unlock()
	defer c.clear(req)

	debug.Log("sysex", "%s: request %s sending % X", c, req.id, payload)
	if err := c.port.Send(gomidi.SysEx(payload)); err != nil {
		return nil, fmt.Errorf("%s: send sysex: %w", c, err)
	}

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case data := <-req.reply:
		debug.Log("sysex", "%s: request %s reply % X", c, req.id, data)
		return data, nil
	case <-timer.C:
		return nil, fmt.Errorf("%s: no reply after %s: %w", c, timeout, ErrHandshakeTimeout)
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w: %v", c, ErrAborted, ctx.Err())
	case <-c.done:
		return nil, fmt.Errorf("%s: closed: %w", c, ErrAborted)
	}
}

func (c *Controller) clear(req *request) {
	c.mu.Lock()
	if c.pending == req {
		c.pending = nil
	}
	c.mu.Unlock()
}

func (c *Controller) requestRetry(ctx context.Context, payload []byte, match func([]byte) bool, timeout time.Duration, retries int) ([]byte, error) {
	var err error
	for attempt := 0; attempt <= retries; attempt++ {
		var data []byte
		data, err = c.Request(ctx, payload, match, timeout)
		if err == nil {
			return data, nil
		}
		if !errors.Is(err, ErrHandshakeTimeout) {
			return nil, err
		}
		debug.Warn("sysex", "%s: attempt %d: %v", c, attempt+1, err)
	}
	return nil, err
}

// Handshake learns the controller's channel and switches it into native
// mode. Timeouts are retried; the controller is Ready afterwards.
func (c *Controller) Handshake(ctx context.Context, timeout time.Duration, retries int) error {
	data, err := c.requestRetry(ctx, SearchQuery(), IsSearchReply, timeout, retries)
	if err != nil {
		return fmt.Errorf("device search: %w", err)
	}
	channel, err := ParseSearchReply(data)
	if err != nil {
		return err
	}

	c.mu.Lock()
	c.channel = channel
	c.prefix = CommandPrefix(channel)
	c.mu.Unlock()

	if _, err := c.requestRetry(ctx, NativeModeCommand(channel), CommandReplyMatcher(channel), timeout, retries); err != nil {
		return fmt.Errorf("native mode: %w", err)
	}

	c.ready.Store(true)
	debug.Info("sysex", "%s ready on channel %d", c, channel)
	return nil
}

// SetLED switches one of the four settings lights.
func (c *Controller) SetLED(n int, on bool) error {
	if n < 0 || n >= LEDCount {
		return fmt.Errorf("led %d out of range", n)
	}
	value := LEDOff
	if on {
		value = LEDOn
	}
	return c.port.Send(gomidi.ControlChange(SceneChannel, LEDControls[n], value))
}

// SetLEDs sets all four lights from a bit mask, bit 0 being the first.
func (c *Controller) SetLEDs(mask uint8) error {
	debug.Log("led", "%s: mask %04b", c, mask)
	var firstErr error
	for n := 0; n < LEDCount; n++ {
		if err := c.SetLED(n, mask&(1<<n) != 0); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// Close aborts any pending request, stops input and closes the port.
func (c *Controller) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	c.handler = nil
	close(c.done)
	c.mu.Unlock()

	c.ready.Store(false)
	if c.stop != nil {
		c.stop()
	}
	return c.port.Close()
}

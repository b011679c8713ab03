package midi

import (
	"fmt"
	"strings"
	"sync"
	"time"

	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"

	"padgrid/debug"
)

// DefaultFilter matches the port names of Korg nanoPAD2 controllers.
const DefaultFilter = "nanoPAD2"

// PortPair is an input and output port sharing a device name.
type PortPair struct {
	Name string
	In   drivers.In
	Out  drivers.Out
}

// DeviceManager finds the controllers at startup and owns them afterwards.
type DeviceManager struct {
	filter      string
	scanTimeout time.Duration

	// scan and open are swapped out in tests
	scan func() ([]drivers.In, []drivers.Out, error)
	open func(PortPair) (Port, error)

	mu          sync.RWMutex
	controllers []*Controller
}

// NewDeviceManager creates a device manager matching port names that
// contain filter (case-insensitive).
func NewDeviceManager(filter string) *DeviceManager {
	if filter == "" {
		filter = DefaultFilter
	}
	dm := &DeviceManager{
		filter:      filter,
		scanTimeout: 3 * time.Second,
		open: func(p PortPair) (Port, error) {
			return OpenPort(p.Name, p.In, p.Out)
		},
	}
	dm.scan = dm.scanPorts
	return dm
}

// Controllers returns a snapshot of the discovered controllers.
func (dm *DeviceManager) Controllers() []*Controller {
	dm.mu.RLock()
	defer dm.mu.RUnlock()
	return append([]*Controller(nil), dm.controllers...)
}

// scanPorts lists driver ports; the driver can hang (CoreMIDI), so the
// scan runs with a timeout.
func (dm *DeviceManager) scanPorts() ([]drivers.In, []drivers.Out, error) {
	type portsResult struct {
		inPorts  []drivers.In
		outPorts []drivers.Out
	}

	ch := make(chan portsResult, 1)
	go func() {
		ch <- portsResult{inPorts: gomidi.GetInPorts(), outPorts: gomidi.GetOutPorts()}
	}()

	select {
	case result := <-ch:
		return result.inPorts, result.outPorts, nil
	case <-time.After(dm.scanTimeout):
		return nil, nil, fmt.Errorf("%w: port scan timed out after %s", ErrDiscovery, dm.scanTimeout)
	}
}

// Match pairs every input whose name contains the filter with the output of
// the same name, in input order.
func (dm *DeviceManager) Match(inPorts []drivers.In, outPorts []drivers.Out) []PortPair {
	var pairs []PortPair
	filter := strings.ToLower(dm.filter)
	for _, in := range inPorts {
		name := in.String()
		if !strings.Contains(strings.ToLower(name), filter) {
			continue
		}
		for _, out := range outPorts {
			if strings.EqualFold(out.String(), name) {
				pairs = append(pairs, PortPair{Name: name, In: in, Out: out})
				break
			}
		}
	}
	return pairs
}

// Find lists the matching port pairs without opening them.
func (dm *DeviceManager) Find() ([]PortPair, error) {
	inPorts, outPorts, err := dm.scan()
	if err != nil {
		return nil, err
	}
	return dm.Match(inPorts, outPorts), nil
}

// Discover opens the first want matching controllers. Finding fewer is an
// ErrDiscovery; no controller is left open in that case.
func (dm *DeviceManager) Discover(want int) ([]*Controller, error) {
	pairs, err := dm.Find()
	if err != nil {
		return nil, err
	}
	debug.Info("discover", "%d ports match %q", len(pairs), dm.filter)
	if len(pairs) < want {
		return nil, fmt.Errorf("%w: found %d %s controllers, need %d", ErrDiscovery, len(pairs), dm.filter, want)
	}

	var found []*Controller
	fail := func(err error) ([]*Controller, error) {
		for _, c := range found {
			c.Close()
		}
		return nil, err
	}
	for i, pair := range pairs[:want] {
		port, err := dm.open(pair)
		if err != nil {
			return fail(fmt.Errorf("%w: %s: %v", ErrDiscovery, pair.Name, err))
		}
		c, err := NewController(i, port)
		if err != nil {
			port.Close()
			return fail(fmt.Errorf("%w: %s: %v", ErrDiscovery, pair.Name, err))
		}
		debug.Info("discover", "connected %s", c)
		found = append(found, c)
	}

	dm.mu.Lock()
	dm.controllers = found
	dm.mu.Unlock()
	return append([]*Controller(nil), found...), nil
}

// Close closes every controller.
func (dm *DeviceManager) Close() {
	dm.mu.Lock()
	defer dm.mu.Unlock()
	for _, c := range dm.controllers {
		c.Close()
	}
	dm.controllers = nil
}

// ListPorts returns the names of all input and output ports.
func (dm *DeviceManager) ListPorts() (ins, outs []string, err error) {
	inPorts, outPorts, err := dm.scan()
	if err != nil {
		return nil, nil, err
	}
	for _, p := range inPorts {
		ins = append(ins, p.String())
	}
	for _, p := range outPorts {
		outs = append(outs, p.String())
	}
	return ins, outs, nil
}

package midi

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/gomidi/midi/v2/drivers"
)

func testManager(ins []string, outs []string) (*DeviceManager, map[string]*stubPort) {
	dm := NewDeviceManager("")
	opened := map[string]*stubPort{}
	dm.scan = func() ([]drivers.In, []drivers.Out, error) {
		var in []drivers.In
		var out []drivers.Out
		for _, n := range ins {
			in = append(in, fakeIn{name: n})
		}
		for _, n := range outs {
			out = append(out, fakeOut{name: n})
		}
		return in, out, nil
	}
	dm.open = func(p PortPair) (Port, error) {
		fp := &stubPort{id: p.Name}
		opened[p.Name] = fp
		return fp, nil
	}
	return dm, opened
}

func TestDiscoverTwo(t *testing.T) {
	names := []string{"Midi Through Port-0", "nanoPAD2:nanoPAD2 MIDI 1 20:0", "nanoPAD2:nanoPAD2 MIDI 1 24:0", "nanoPAD2:nanoPAD2 MIDI 1 28:0"}
	dm, opened := testManager(names, names)

	ctrls, err := dm.Discover(2)
	require.NoError(t, err)
	require.Len(t, ctrls, 2)
	assert.Equal(t, 0, ctrls[0].Index())
	assert.Equal(t, names[1], ctrls[0].ID())
	assert.Equal(t, names[2], ctrls[1].ID())
	assert.Len(t, opened, 2)
	assert.Len(t, dm.Controllers(), 2)

	dm.Close()
	assert.True(t, opened[names[1]].isClosed())
	assert.Empty(t, dm.Controllers())
}

func TestDiscoverTooFew(t *testing.T) {
	names := []string{"nanoPAD2:nanoPAD2 MIDI 1 20:0", "nanoKONTROL2 MIDI 1"}
	dm, opened := testManager(names, names)

	_, err := dm.Discover(2)
	assert.ErrorIs(t, err, ErrDiscovery)
	assert.Empty(t, opened)
}

func TestDiscoverNeedsOutput(t *testing.T) {
	dm, _ := testManager(
		[]string{"nanoPAD2 A", "nanoPAD2 B"},
		[]string{"nanoPAD2 A"},
	)
	_, err := dm.Discover(2)
	assert.ErrorIs(t, err, ErrDiscovery)
}

func TestDiscoverOpenFailureClosesOthers(t *testing.T) {
	names := []string{"nanoPAD2 A", "nanoPAD2 B"}
	dm, opened := testManager(names, names)
	open := dm.open
	dm.open = func(p PortPair) (Port, error) {
		if p.Name == "nanoPAD2 B" {
			return nil, errors.New("busy")
		}
		return open(p)
	}

	_, err := dm.Discover(2)
	assert.ErrorIs(t, err, ErrDiscovery)
	assert.True(t, opened["nanoPAD2 A"].isClosed())
}

func TestListPorts(t *testing.T) {
	dm, _ := testManager([]string{"a", "b"}, []string{"c"})
	ins, outs, err := dm.ListPorts()
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, ins)
	assert.Equal(t, []string{"c"}, outs)
}

func TestFindDoesNotOpen(t *testing.T) {
	names := []string{"NANOPAD2 one", "nanopad2 two", "Launchpad X"}
	dm, opened := testManager(names, names)

	pairs, err := dm.Find()
	require.NoError(t, err)
	require.Len(t, pairs, 2)
	assert.Equal(t, "NANOPAD2 one", pairs[0].Name)
	assert.Empty(t, opened)
}

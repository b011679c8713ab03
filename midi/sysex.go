package midi

import "fmt"

// Korg nanoPAD2 system exclusive protocol. Payloads exclude the F0/F7 framing.
//
//	search:       42 50 00 00             reply 42 50 01 ch ...
//	prefix:       42 4g 00 01 12 00       g = channel
//	native mode:  prefix 00 00 01

const (
	korgID      = 0x42
	searchReply = 0x01
)

var (
	searchQuery      = [...]byte{korgID, 0x50, 0x00, 0x00}
	prefixTemplate   = [...]byte{korgID, 0x40, 0x00, 0x01, 0x12, 0x00}
	nativeModeSuffix = [...]byte{0x00, 0x00, 0x01}
)

// SearchQuery asks any listening device for its channel.
func SearchQuery() []byte {
	return append([]byte(nil), searchQuery[:]...)
}

// IsSearchReply accepts the device's answer to SearchQuery. The query
// itself, echoed back on a loopback port, is not a reply.
func IsSearchReply(data []byte) bool {
	return len(data) >= 4 && data[0] == korgID && data[1] == searchQuery[1] && data[2] == searchReply
}

// ParseSearchReply extracts the device channel from a search reply.
func ParseSearchReply(data []byte) (uint8, error) {
	if !IsSearchReply(data) {
		return 0, fmt.Errorf("%w: search reply % X", ErrBadReply, data)
	}
	ch := data[3]
	if ch > 15 {
		return 0, fmt.Errorf("%w: channel %d", ErrBadReply, ch)
	}
	return ch, nil
}

// CommandPrefix addresses configuration writes to the device on channel.
// Each call returns a fresh slice.
func CommandPrefix(channel uint8) []byte {
	p := append([]byte(nil), prefixTemplate[:]...)
	p[1] += channel
	return p
}

// NativeModeCommand switches the device into reporting raw pad presses.
func NativeModeCommand(channel uint8) []byte {
	return append(CommandPrefix(channel), nativeModeSuffix[:]...)
}

// CommandReplyMatcher accepts a reply addressed from the device on channel.
func CommandReplyMatcher(channel uint8) func([]byte) bool {
	return func(data []byte) bool {
		return len(data) >= 2 && data[0] == korgID && data[1] == prefixTemplate[1]+channel
	}
}

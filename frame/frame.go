// SPDX-License-Identifier: GPL-3.0-or-later

// Package frame contains [*Frame] and the related definitions.
package frame

import (
	"encoding/hex"
	"fmt"
)

// MaxPayload is the maximum number of payload bytes in a [*Frame].
const MaxPayload = 1500

// Frame is a link-layer frame relayed between paired interfaces.
type Frame struct {
	// Payload is the frame payload.
	Payload []byte
}

// New copies at most [MaxPayload] bytes of the given payload into
// a newly allocated [*Frame]. The copy ensures the frame does not
// alias buffers the sender may reuse after transmitting.
func New(payload []byte) *Frame {
	if len(payload) > MaxPayload {
		payload = payload[:MaxPayload]
	}
	data := make([]byte, len(payload))
	copy(data, payload)
	return &Frame{Payload: data}
}

// Len returns the payload length in bytes.
func (f *Frame) Len() int {
	return len(f.Payload)
}

// String returns the string representation of the frame.
func (f *Frame) String() string {
	return fmt.Sprintf("frame length=%d", len(f.Payload))
}

// Dump returns a hex dump of the payload for debug logs.
func (f *Frame) Dump() string {
	return hex.Dump(f.Payload)
}

//
// SPDX-License-Identifier: GPL-3.0-or-later
//
// Virtual interface pair and packet relay.
//

package wifisim

import (
	"log/slog"
	"net"
	"sync"

	"github.com/rbmk-project/common/errclass"
	"github.com/rbmk-project/wifisim/frame"
)

const (
	// StationName is the name of the station interface, which
	// simulates the client radio.
	StationName = "sta0"

	// SinkName is the name of the sink interface, which
	// simulates the other end of the radio link.
	SinkName = "sta0sink"
)

// Stats is a snapshot of the counters of an [*Interface].
type Stats struct {
	// RxPackets counts frames delivered to the host.
	RxPackets uint64

	// RxBytes counts payload bytes delivered to the host.
	RxBytes uint64

	// TxPackets counts transmitted frames.
	TxPackets uint64

	// TxBytes counts transmitted payload bytes.
	TxBytes uint64

	// RxDropped counts frames the host failed to accept.
	RxDropped uint64
}

// Interface models one of the two paired virtual interfaces.
//
// Construct via [New], which creates the station and the sink
// already paired with each other. Each interface exclusively owns
// its receive queue; the queue is mutated only by the relay.
type Interface struct {
	// host receives frames delivered through this interface.
	host Host

	// hwaddr is the interface hardware address.
	hwaddr net.HardwareAddr

	// logger optionally emits structured logs.
	logger *slog.Logger

	// name is the interface name.
	name string

	// peer is the paired interface. It is set once during
	// [New] and never changes afterwards.
	peer *Interface

	// mu protects the fields below.
	mu sync.Mutex

	// closed reports whether the interface is closed.
	closed bool

	// queue is the FIFO receive queue.
	queue []*frame.Frame

	// stats contains the interface counters.
	stats Stats
}

// newInterface creates an [*Interface] with the given name. The
// hardware address keeps its first byte zero, so it can never be
// a multicast address, and fills the rest with the leading name
// bytes, which makes the two addresses distinct as long as names
// differ within their first five bytes or in length.
func newInterface(name string, host Host, logger *slog.Logger) *Interface {
	hwaddr := make(net.HardwareAddr, 6)
	copy(hwaddr[1:], name)
	return &Interface{
		host:   host,
		hwaddr: hwaddr,
		logger: logger,
		name:   name,
		peer:   nil,
		mu:     sync.Mutex{},
		closed: false,
		queue:  nil,
		stats:  Stats{},
	}
}

// Name returns the interface name.
func (ifp *Interface) Name() string {
	return ifp.name
}

// HardwareAddr returns the interface hardware address.
func (ifp *Interface) HardwareAddr() net.HardwareAddr {
	return ifp.hwaddr
}

// Stats returns a snapshot of the interface counters.
func (ifp *Interface) Stats() Stats {
	ifp.mu.Lock()
	defer ifp.mu.Unlock()
	return ifp.stats
}

// Transmit sends a payload out of this interface.
//
// We copy at most [frame.MaxPayload] bytes of the payload into a
// frame, bump the tx counters, enqueue the frame on the peer's
// receive queue, and immediately trigger receive processing on
// the peer, simulating the rx interrupt. Delivery is
// instantaneous, with no latency nor reordering.
//
// Transmit reports success once the frame is enqueued, regardless
// of the eventual delivery outcome: there is no backpressure from
// the receiver to the sender and delivery failures only show up
// in the peer's RxDropped counter. The only possible error is
// [net.ErrClosed] after the interface has been closed.
func (ifp *Interface) Transmit(payload []byte) error {
	fr := frame.New(payload)

	ifp.mu.Lock()
	if ifp.closed {
		ifp.mu.Unlock()
		return net.ErrClosed
	}
	ifp.stats.TxPackets++
	ifp.stats.TxBytes += uint64(fr.Len())
	ifp.mu.Unlock()

	if ifp.logger != nil {
		ifp.logger.Debug(
			"txFrame",
			slog.String("iface", ifp.name),
			slog.Int("frameLen", fr.Len()),
			slog.String("frameDump", fr.Dump()),
		)
	}

	ifp.peer.enqueue(fr)
	ifp.peer.receiveNext()
	return nil
}

// enqueue appends a frame to the receive queue. Frames enqueued
// on a closed interface are discarded.
func (ifp *Interface) enqueue(fr *frame.Frame) {
	ifp.mu.Lock()
	defer ifp.mu.Unlock()
	if ifp.closed {
		return
	}
	ifp.queue = append(ifp.queue, fr)
}

// receiveNext dequeues the oldest frame and hands it to the host
// through [Host.DeliverFrame]. On success we bump the rx
// counters; on failure we bump the drop counter. Either way the
// frame leaves the queue immediately.
func (ifp *Interface) receiveNext() {
	ifp.mu.Lock()
	if len(ifp.queue) <= 0 {
		ifp.mu.Unlock()
		return
	}
	fr := ifp.queue[0]
	ifp.queue = ifp.queue[1:]
	ifp.mu.Unlock()

	err := ifp.host.DeliverFrame(ifp, fr.Payload)

	ifp.mu.Lock()
	if err != nil {
		ifp.stats.RxDropped++
	} else {
		ifp.stats.RxPackets++
		ifp.stats.RxBytes += uint64(fr.Len())
	}
	ifp.mu.Unlock()

	if ifp.logger != nil {
		ifp.logger.Debug(
			"rxFrame",
			slog.Any("err", err),
			slog.String("errClass", errclass.New(err)),
			slog.String("iface", ifp.name),
			slog.Int("frameLen", fr.Len()),
		)
	}
}

// Close marks the interface as closed and flushes any frame still
// sitting in the receive queue. Close is idempotent.
func (ifp *Interface) Close() error {
	ifp.mu.Lock()
	defer ifp.mu.Unlock()
	ifp.closed = true
	ifp.queue = nil
	return nil
}

//
// SPDX-License-Identifier: GPL-3.0-or-later
//

package wifisim_test

import (
	"bytes"
	"errors"
	"net"
	"testing"

	"github.com/rbmk-project/wifisim"
	"github.com/rbmk-project/wifisim/frame"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransmit(t *testing.T) {
	t.Run("delivers the payload to the peer", func(t *testing.T) {
		host := newRecordingHost()
		sim, err := wifisim.New(&wifisim.Config{Host: host})
		require.NoError(t, err)
		defer sim.Close()

		payload := []byte("deadbeef")
		require.NoError(t, sim.Station().Transmit(payload))

		host.mu.Lock()
		defer host.mu.Unlock()
		require.Len(t, host.frames[wifisim.SinkName], 1)
		assert.Equal(t, payload, host.frames[wifisim.SinkName][0])
		assert.Empty(t, host.frames[wifisim.StationName])
	})

	t.Run("updates counters on both sides", func(t *testing.T) {
		host := newRecordingHost()
		sim, err := wifisim.New(&wifisim.Config{Host: host})
		require.NoError(t, err)
		defer sim.Close()

		payload := make([]byte, 100)
		require.NoError(t, sim.Station().Transmit(payload))

		assert.Equal(t, wifisim.Stats{
			TxPackets: 1,
			TxBytes:   100,
		}, sim.Station().Stats())
		assert.Equal(t, wifisim.Stats{
			RxPackets: 1,
			RxBytes:   100,
		}, sim.Sink().Stats())
	})

	t.Run("preserves FIFO ordering", func(t *testing.T) {
		host := newRecordingHost()
		sim, err := wifisim.New(&wifisim.Config{Host: host})
		require.NoError(t, err)
		defer sim.Close()

		for _, payload := range []string{"first", "second", "third"} {
			require.NoError(t, sim.Station().Transmit([]byte(payload)))
		}

		host.mu.Lock()
		defer host.mu.Unlock()
		frames := host.frames[wifisim.SinkName]
		require.Len(t, frames, 3)
		assert.Equal(t, "first", string(frames[0]))
		assert.Equal(t, "second", string(frames[1]))
		assert.Equal(t, "third", string(frames[2]))
	})

	t.Run("relays in both directions", func(t *testing.T) {
		host := newRecordingHost()
		sim, err := wifisim.New(&wifisim.Config{Host: host})
		require.NoError(t, err)
		defer sim.Close()

		require.NoError(t, sim.Sink().Transmit([]byte("pong")))

		host.mu.Lock()
		defer host.mu.Unlock()
		require.Len(t, host.frames[wifisim.StationName], 1)
		assert.Equal(t, "pong", string(host.frames[wifisim.StationName][0]))
	})

	t.Run("delivery failure increments the drop counter", func(t *testing.T) {
		host := newRecordingHost()
		host.deliverErr = errors.New("no buffer space available")
		sim, err := wifisim.New(&wifisim.Config{Host: host})
		require.NoError(t, err)
		defer sim.Close()

		// The sender still gets an ack and its tx counters
		// move: no backpressure flows back.
		require.NoError(t, sim.Station().Transmit([]byte("lost")))

		assert.Equal(t, wifisim.Stats{
			TxPackets: 1,
			TxBytes:   4,
		}, sim.Station().Stats())
		assert.Equal(t, wifisim.Stats{
			RxDropped: 1,
		}, sim.Sink().Stats())

		host.mu.Lock()
		defer host.mu.Unlock()
		assert.Empty(t, host.frames[wifisim.SinkName])
	})

	t.Run("caps the payload at the maximum frame size", func(t *testing.T) {
		host := newRecordingHost()
		sim, err := wifisim.New(&wifisim.Config{Host: host})
		require.NoError(t, err)
		defer sim.Close()

		payload := bytes.Repeat([]byte{0xaa}, frame.MaxPayload+200)
		require.NoError(t, sim.Station().Transmit(payload))

		assert.Equal(t, uint64(frame.MaxPayload), sim.Station().Stats().TxBytes)
		host.mu.Lock()
		defer host.mu.Unlock()
		require.Len(t, host.frames[wifisim.SinkName], 1)
		assert.Len(t, host.frames[wifisim.SinkName][0], frame.MaxPayload)
	})

	t.Run("transmit after close", func(t *testing.T) {
		host := newRecordingHost()
		sim, err := wifisim.New(&wifisim.Config{Host: host})
		require.NoError(t, err)
		require.NoError(t, sim.Close())
		assert.ErrorIs(t, sim.Station().Transmit([]byte("late")), net.ErrClosed)
	})
}

func TestInterfaceIdentity(t *testing.T) {
	host := newRecordingHost()
	sim, err := wifisim.New(&wifisim.Config{Host: host})
	require.NoError(t, err)
	defer sim.Close()

	assert.Equal(t, "sta0", sim.Station().Name())
	assert.Equal(t, "sta0sink", sim.Sink().Name())

	station := sim.Station().HardwareAddr()
	sink := sim.Sink().HardwareAddr()
	assert.Len(t, station, 6)
	assert.Len(t, sink, 6)
	assert.NotEqual(t, station.String(), sink.String())

	// The leading zero byte guarantees a unicast address.
	assert.Zero(t, station[0])
	assert.Zero(t, sink[0])
}

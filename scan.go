//
// SPDX-License-Identifier: GPL-3.0-or-later
//
// Scan request handler and deferred scan work.
//

package wifisim

import (
	"context"
	"log/slog"
	"math/rand/v2"
	"net"
	"time"

	"github.com/rbmk-project/common/runtimex"
	"github.com/rbmk-project/wifisim/apdir"
)

// Scan starts an asynchronous scan.
//
// The handle is opaque to the simulation: we store it for the
// lifetime of the scan and drop it when reporting completion.
//
// Scan returns immediately. After the scan delay elapses, a
// deferred task re-parses the SSID list, refreshes the directory,
// reports every known network through [Host.ReportFoundNetwork],
// and finally reports completion through [Host.ReportScanComplete]
// with aborted set to false.
//
// The possible errors are:
//
// 1. [EBUSY] when a scan is already pending (retry after
// observing the completion callback);
//
// 2. [EINTR] when ctx is done while waiting for the context lock
// (just retry);
//
// 3. [net.ErrClosed] after [Context.Close].
func (c *Context) Scan(ctx context.Context, handle any) error {
	if err := c.lockContext(ctx); err != nil {
		return err
	}
	if c.closed {
		c.unlock()
		return net.ErrClosed
	}
	if c.scanPending {
		c.unlock()
		return EBUSY
	}
	c.scanPending = true
	c.scanHandle = handle
	c.scanTimer = time.AfterFunc(c.scanDelay, c.scanTimerFired)
	c.unlock()

	if c.logger != nil {
		c.logger.InfoContext(
			ctx,
			"scanStart",
			slog.Duration("scanDelay", c.scanDelay),
		)
	}
	return nil
}

// scanTimerFired runs in the timer goroutine, which must not
// block nor allocate: it only stages the deferred scan work.
func (c *Context) scanTimerFired() {
	c.scanq.TrySchedule(c.scanWork)
}

// scanWork refreshes the access-point directory and reports the
// scan results. It runs on the scan work queue.
func (c *Context) scanWork() {
	c.lock()
	ssidList := c.ssidList
	c.unlock()

	// Refreshing may allocate and the directory has its own
	// synchronization, so we work outside the context lock.
	c.dir.Refresh(ssidList)

	var found int
	for rec := range c.dir.All() {
		c.host.ReportFoundNetwork(c.newFoundNetwork(rec))
		found++
	}

	c.lock()
	runtimex.Assert(c.scanPending, "scan work without a pending scan")
	c.scanPending = false
	c.scanHandle = nil
	c.scanTimer = nil
	c.unlock()

	c.host.ReportScanComplete(false)
	if c.logger != nil {
		c.logger.Info(
			"scanDone",
			slog.Bool("aborted", false),
			slog.Int("networksFound", found),
		)
	}
}

// newFoundNetwork fills a [*FoundNetwork] for the given record.
func (c *Context) newFoundNetwork(rec apdir.Record) *FoundNetwork {
	// SSID information element: element ID zero, length, bytes.
	ie := make([]byte, 0, len(rec.SSID)+2)
	ie = append(ie, 0, byte(len(rec.SSID)))
	ie = append(ie, rec.SSID...)

	return &FoundNetwork{
		BSSID:          rec.BSSID,
		SSIDElement:    ie,
		Channel:        Channel,
		FrequencyMHz:   ChannelFrequencyMHz,
		SignalMBM:      randomSignalMBM(),
		Capability:     CapabilityESS,
		BeaconInterval: BeaconInterval,
		Timestamp:      uint64(c.timeNow().Sub(c.t0).Microseconds()),
	}
}

// randomSignalMBM returns a signal strength drawn uniformly from
// the [SignalWeakestMBM, SignalStrongestMBM] range, in whole dBm
// steps, like a plausible indoor radio environment.
func randomSignalMBM() int32 {
	const steps = (SignalStrongestMBM-SignalWeakestMBM)/100 + 1
	return int32(SignalWeakestMBM + 100*rand.N(steps))
}

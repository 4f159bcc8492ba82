//
// SPDX-License-Identifier: GPL-3.0-or-later
//
// Connect and disconnect request handlers and deferred work.
//

package wifisim

import (
	"context"
	"log/slog"
	"net"

	"github.com/rbmk-project/wifisim/apdir"
)

// Connect starts an asynchronous connection attempt to the given
// SSID, truncated to [apdir.MaxSSIDLen] bytes.
//
// Connect returns immediately. A deferred task checks the SSID
// against the access-point directory: when present, it reports
// success for the station interface through
// [Host.ReportConnectSuccess] with [StatusSuccess]; when absent,
// it reports failure through [Host.ReportConnectFailure] with
// [TimeoutScan]. No actual negotiation takes place.
//
// The possible errors are:
//
// 1. [EBUSY] when a connect is already pending (retry after
// observing the completion callback);
//
// 2. [EINTR] when ctx is done while waiting for the context lock
// (just retry);
//
// 3. [net.ErrClosed] after [Context.Close].
func (c *Context) Connect(ctx context.Context, ssid string) error {
	if len(ssid) > apdir.MaxSSIDLen {
		ssid = ssid[:apdir.MaxSSIDLen]
	}
	bss, _ := c.dir.Lookup(ssid)

	if err := c.lockContext(ctx); err != nil {
		return err
	}
	if c.closed {
		c.unlock()
		return net.ErrClosed
	}
	if c.connPending {
		c.unlock()
		return EBUSY
	}
	c.connPending = true
	c.connSSID = ssid
	c.connBSSID = bss
	c.unlock()

	if !c.connectq.TrySchedule(c.connectWork) {
		// Staging fails either because the previous task is
		// still waiting to run or because the queue was closed
		// by a concurrent [Context.Close].
		c.lock()
		c.connPending = false
		c.connSSID = ""
		c.connBSSID = nil
		closed := c.closed
		c.unlock()
		if closed {
			return net.ErrClosed
		}
		return EBUSY
	}
	if c.logger != nil {
		c.logger.InfoContext(ctx, "connectStart", slog.String("ssid", ssid))
	}
	return nil
}

// connectWork completes a pending connection attempt. It runs on
// the connect work queue.
func (c *Context) connectWork() {
	c.lock()
	ssid, bss := c.connSSID, c.connBSSID
	c.unlock()

	// A scan may have refreshed the directory since the request
	// was staged, so retry the lookup before giving up.
	if bss == nil {
		bss, _ = c.dir.Lookup(ssid)
	}
	if bss == nil {
		c.host.ReportConnectFailure(c.station, TimeoutScan)
	} else {
		c.host.ReportConnectSuccess(c.station, bss, StatusSuccess)
	}
	c.clearConnectionAttempt()

	if c.logger != nil {
		c.logger.Info(
			"connectDone",
			slog.Bool("found", bss != nil),
			slog.String("ssid", ssid),
		)
	}
}

// clearConnectionAttempt clears the pending connection attempt.
func (c *Context) clearConnectionAttempt() {
	c.lock()
	c.connPending = false
	c.connSSID = ""
	c.connBSSID = nil
	c.unlock()
}

// Disconnect starts an asynchronous disconnection with the given
// 802.11 reason code.
//
// Disconnect returns immediately. A deferred task reports the
// disconnection for the station interface through
// [Host.ReportDisconnected] with the stored reason code.
//
// The possible errors are:
//
// 1. [EBUSY] when a disconnect is already pending (retry after
// observing the completion callback);
//
// 2. [EINTR] when ctx is done while waiting for the context lock
// (just retry);
//
// 3. [net.ErrClosed] after [Context.Close].
func (c *Context) Disconnect(ctx context.Context, reason uint16) error {
	if err := c.lockContext(ctx); err != nil {
		return err
	}
	if c.closed {
		c.unlock()
		return net.ErrClosed
	}
	if c.discPending {
		c.unlock()
		return EBUSY
	}
	c.discPending = true
	c.discReason = reason
	c.unlock()

	if !c.disconnectq.TrySchedule(c.disconnectWork) {
		c.lock()
		c.discPending = false
		c.discReason = 0
		closed := c.closed
		c.unlock()
		if closed {
			return net.ErrClosed
		}
		return EBUSY
	}
	if c.logger != nil {
		c.logger.InfoContext(
			ctx,
			"disconnectStart",
			slog.Int("reason", int(reason)),
		)
	}
	return nil
}

// disconnectWork completes a pending disconnection. It runs on
// the disconnect work queue.
func (c *Context) disconnectWork() {
	c.lock()
	reason := c.discReason
	c.unlock()

	c.host.ReportDisconnected(c.station, reason)

	c.lock()
	c.discPending = false
	c.discReason = 0
	c.unlock()

	if c.logger != nil {
		c.logger.Info("disconnectDone", slog.Int("reason", int(reason)))
	}
}

//
// SPDX-License-Identifier: GPL-3.0-or-later
//
// Simulation context and lifecycle.
//

package wifisim

import (
	"context"
	"log/slog"
	"net"
	"sync"
	"time"

	"github.com/rbmk-project/wifisim/apdir"
	"github.com/rbmk-project/wifisim/workqueue"
)

// Context is the process-wide simulation context.
//
// The zero value is not ready to use; construct using [New]. A
// program typically creates a single [*Context] at startup, uses
// it for its whole lifetime, and closes it at shutdown.
type Context struct {
	// dir is the access-point directory.
	dir *apdir.Directory

	// host is the embedding networking subsystem.
	host Host

	// logger optionally emits structured logs.
	logger *slog.Logger

	// scanDelay is the delay before scan results are reported.
	scanDelay time.Duration

	// sink is the sink interface.
	sink *Interface

	// station is the station interface.
	station *Interface

	// t0 is the reference instant for scan timestamps.
	t0 time.Time

	// timeNow is the time source.
	timeNow func() time.Time

	// connectq, disconnectq and scanq run the deferred tasks,
	// one queue per request kind.
	connectq    *workqueue.Queue
	disconnectq *workqueue.Queue
	scanq       *workqueue.Queue

	// closeOnce ensures we close just once.
	closeOnce sync.Once

	// lockCh implements the context lock: acquire by draining
	// the token, release by putting it back. Waiting on a
	// channel keeps the lock interruptible for request
	// handlers that carry a [context.Context].
	lockCh chan struct{}

	// The fields below are protected by the context lock.

	// closed reports whether the context is closed.
	closed bool

	// connBSSID is the BSSID of the pending connection attempt.
	connBSSID net.HardwareAddr

	// connPending reports whether a connect is in flight.
	connPending bool

	// connSSID is the SSID of the pending connection attempt.
	connSSID string

	// discPending reports whether a disconnect is in flight.
	discPending bool

	// discReason is the pending disconnect reason code.
	discReason uint16

	// scanHandle is the opaque handle of the pending scan.
	scanHandle any

	// scanPending reports whether a scan is in flight.
	scanPending bool

	// scanTimer is the armed scan timer, nil when no scan is
	// pending.
	scanTimer *time.Timer

	// ssidList is the current SSID list, re-parsed on every
	// scan.
	ssidList string
}

// New creates a [*Context] using the given configuration.
//
// The context owns the paired station and sink interfaces, the
// access-point directory, the three deferred-task queues, and the
// scan timer, which starts stopped. Use [*Context.Close] to tear
// everything down.
func New(config *Config) (*Context, error) {
	if err := config.validate(); err != nil {
		return nil, err
	}
	now := config.timeNow()
	ctx := &Context{
		dir:         apdir.New(),
		host:        config.Host,
		logger:      config.Logger,
		scanDelay:   config.scanDelay(),
		sink:        newInterface(SinkName, config.Host, config.Logger),
		station:     newInterface(StationName, config.Host, config.Logger),
		t0:          now(),
		timeNow:     now,
		connectq:    workqueue.New(),
		disconnectq: workqueue.New(),
		scanq:       workqueue.New(),
		closeOnce:   sync.Once{},
		lockCh:      make(chan struct{}, 1),
		ssidList:    config.ssidList(),
	}
	ctx.station.peer = ctx.sink
	ctx.sink.peer = ctx.station
	ctx.lockCh <- struct{}{} // make the lock available
	return ctx, nil
}

// Station returns the station interface.
func (c *Context) Station() *Interface {
	return c.station
}

// Sink returns the sink interface.
func (c *Context) Sink() *Interface {
	return c.sink
}

// Directory returns the access-point directory.
func (c *Context) Directory() *apdir.Directory {
	return c.dir
}

// SetSSIDList replaces the SSID list describing the simulated
// environment. The new list takes effect at the next scan.
func (c *Context) SetSSIDList(ssidList string) {
	c.lock()
	c.ssidList = ssidList
	c.unlock()
	if c.logger != nil {
		c.logger.Info("setSSIDList", slog.String("ssidList", ssidList))
	}
}

// lock acquires the context lock, waiting indefinitely. Only the
// deferred-task workers use this variant; request handlers use
// [Context.lockContext] so callers can interrupt the wait.
func (c *Context) lock() {
	<-c.lockCh
}

// lockContext acquires the context lock unless ctx is done first,
// in which case it returns [EINTR] and the caller should retry.
func (c *Context) lockContext(ctx context.Context) error {
	if ctx.Err() != nil {
		return EINTR
	}
	select {
	case <-c.lockCh:
		return nil
	case <-ctx.Done():
		return EINTR
	}
}

// unlock releases the context lock.
func (c *Context) unlock() {
	c.lockCh <- struct{}{}
}

// Close tears down the simulation context.
//
// We stop the scan timer first, then cancel and wait for the
// connect, disconnect, and scan workers in that order, so no task
// can observe a closed context, and finally close both
// interfaces. Close is idempotent and always returns nil.
func (c *Context) Close() error {
	c.closeOnce.Do(func() {
		c.lock()
		c.closed = true
		if c.scanTimer != nil {
			c.scanTimer.Stop()
			c.scanTimer = nil
		}
		c.unlock()
		c.connectq.Close()
		c.disconnectq.Close()
		c.scanq.Close()
		c.station.Close()
		c.sink.Close()
		if c.logger != nil {
			c.logger.Info("simClose")
		}
	})
	return nil
}

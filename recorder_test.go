//
// SPDX-License-Identifier: GPL-3.0-or-later
//
// Recording host used by the tests in this package.
//

package wifisim_test

import (
	"net"
	"sync"

	"github.com/rbmk-project/wifisim"
)

// connectResult records a connect-success callback.
type connectResult struct {
	ifp    *wifisim.Interface
	bssid  net.HardwareAddr
	status uint16
}

// disconnectResult records a disconnected callback.
type disconnectResult struct {
	ifp    *wifisim.Interface
	reason uint16
}

// recordingHost implements [wifisim.Host] by recording every
// callback. Tests wait on the notification channels and inspect
// the recorded slices afterwards.
type recordingHost struct {
	// mu protects all the fields below.
	mu sync.Mutex

	// closed is set by tests after closing the context; any
	// callback arriving afterwards bumps lateCalls.
	closed    bool
	lateCalls int

	// gate, when non-nil, blocks completion callbacks until
	// the channel is closed, keeping requests pending for as
	// long as a test needs.
	gate chan struct{}

	// deliverErr, when non-nil, is returned by DeliverFrame.
	deliverErr error

	// recorded callbacks.
	found        []*wifisim.FoundNetwork
	scanComplete []bool
	connSuccess  []connectResult
	connFailure  []wifisim.TimeoutReason
	disconnected []disconnectResult
	frames       map[string][][]byte

	// notification channels.
	scanCompletec chan bool
	connectc      chan struct{}
	disconnectc   chan struct{}
}

// newRecordingHost creates an empty [*recordingHost].
func newRecordingHost() *recordingHost {
	return &recordingHost{
		frames:        make(map[string][][]byte),
		scanCompletec: make(chan bool, 16),
		connectc:      make(chan struct{}, 16),
		disconnectc:   make(chan struct{}, 16),
	}
}

// markClosed tells the recorder the context has been closed.
func (h *recordingHost) markClosed() {
	h.mu.Lock()
	h.closed = true
	h.mu.Unlock()
}

// noteCallLocked bumps lateCalls when the context is closed. The
// caller must hold mu.
func (h *recordingHost) noteCallLocked() {
	if h.closed {
		h.lateCalls++
	}
}

// maybeWaitGate blocks until the gate, if any, is released.
func (h *recordingHost) maybeWaitGate() {
	h.mu.Lock()
	gate := h.gate
	h.mu.Unlock()
	if gate != nil {
		<-gate
	}
}

func (h *recordingHost) ReportFoundNetwork(info *wifisim.FoundNetwork) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.noteCallLocked()
	h.found = append(h.found, info)
}

func (h *recordingHost) ReportScanComplete(aborted bool) {
	h.maybeWaitGate()
	h.mu.Lock()
	h.noteCallLocked()
	h.scanComplete = append(h.scanComplete, aborted)
	h.mu.Unlock()
	h.scanCompletec <- aborted
}

func (h *recordingHost) ReportConnectSuccess(
	ifp *wifisim.Interface, bssid net.HardwareAddr, status uint16) {
	h.maybeWaitGate()
	h.mu.Lock()
	h.noteCallLocked()
	h.connSuccess = append(h.connSuccess, connectResult{ifp, bssid, status})
	h.mu.Unlock()
	h.connectc <- struct{}{}
}

func (h *recordingHost) ReportConnectFailure(
	ifp *wifisim.Interface, reason wifisim.TimeoutReason) {
	h.maybeWaitGate()
	h.mu.Lock()
	h.noteCallLocked()
	h.connFailure = append(h.connFailure, reason)
	h.mu.Unlock()
	h.connectc <- struct{}{}
}

func (h *recordingHost) ReportDisconnected(ifp *wifisim.Interface, reason uint16) {
	h.maybeWaitGate()
	h.mu.Lock()
	h.noteCallLocked()
	h.disconnected = append(h.disconnected, disconnectResult{ifp, reason})
	h.mu.Unlock()
	h.disconnectc <- struct{}{}
}

func (h *recordingHost) DeliverFrame(ifp *wifisim.Interface, payload []byte) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.noteCallLocked()
	if h.deliverErr != nil {
		return h.deliverErr
	}
	data := make([]byte, len(payload))
	copy(data, payload)
	h.frames[ifp.Name()] = append(h.frames[ifp.Name()], data)
	return nil
}

//
// SPDX-License-Identifier: GPL-3.0-or-later
//
// Host networking subsystem contract.
//

package wifisim

import "net"

// TimeoutReason says which stage of connecting timed out.
type TimeoutReason uint32

// String returns the string representation of the timeout reason.
func (r TimeoutReason) String() string {
	switch r {
	case TimeoutScan:
		return "scan"
	default:
		return "unspecified"
	}
}

const (
	// TimeoutUnspecified is the unspecified timeout reason.
	TimeoutUnspecified TimeoutReason = iota

	// TimeoutScan says the network was not found while scanning.
	TimeoutScan
)

// StatusSuccess is the 802.11 success status code.
const StatusSuccess uint16 = 0

// CapabilityESS is the capability bit advertising an ESS, which
// is what an infrastructure access point advertises.
const CapabilityESS uint16 = 1 << 0

const (
	// Channel is the only simulated channel (2.4 GHz channel 6).
	Channel = 6

	// ChannelFrequencyMHz is the center frequency of [Channel].
	ChannelFrequencyMHz = 2437

	// BeaconInterval is the advertised beacon interval in
	// 802.11 time units.
	BeaconInterval uint16 = 100
)

const (
	// SignalWeakestMBM is the weakest randomized signal level
	// reported for a found network, in mBm (100 * dBm).
	SignalWeakestMBM = -100 * 100

	// SignalStrongestMBM is the strongest randomized signal
	// level reported for a found network, in mBm.
	SignalStrongestMBM = -30 * 100
)

// FoundNetwork describes one access point discovered by a scan.
type FoundNetwork struct {
	// BSSID is the access-point hardware address.
	BSSID net.HardwareAddr

	// SSIDElement is the SSID information element: element ID
	// zero, one length byte, then the SSID bytes.
	SSIDElement []byte

	// Channel is the channel number.
	Channel int

	// FrequencyMHz is the channel center frequency.
	FrequencyMHz int

	// SignalMBM is the signal strength in mBm, randomized
	// within [SignalWeakestMBM, SignalStrongestMBM].
	SignalMBM int32

	// Capability contains the 802.11 capability bits.
	Capability uint16

	// BeaconInterval is the beacon interval in time units.
	BeaconInterval uint16

	// Timestamp is a boot-relative monotonic timestamp in
	// microseconds. Being monotonic, it is unaffected by
	// changes to the system time-of-day clock.
	Timestamp uint64
}

// Host is the networking subsystem embedding the simulation.
//
// The simulation core delivers every asynchronous outcome through
// these callbacks; implementations must be safe for concurrent
// use. Tests typically provide a recording implementation.
type Host interface {
	// ReportFoundNetwork reports one network found by a scan.
	ReportFoundNetwork(info *FoundNetwork)

	// ReportScanComplete reports that a scan finished. The
	// aborted flag is true when the scan did not run to
	// completion.
	ReportScanComplete(aborted bool)

	// ReportConnectSuccess reports that connecting through the
	// given interface succeeded with the given status code.
	ReportConnectSuccess(ifp *Interface, bssid net.HardwareAddr, status uint16)

	// ReportConnectFailure reports that connecting through the
	// given interface timed out.
	ReportConnectFailure(ifp *Interface, reason TimeoutReason)

	// ReportDisconnected reports that the given interface
	// disconnected with the given 802.11 reason code.
	ReportDisconnected(ifp *Interface, reason uint16)

	// DeliverFrame hands a received frame payload to the host
	// stack. A non-nil error means the host could not accept
	// the frame, which increments the interface drop counter.
	DeliverFrame(ifp *Interface, payload []byte) error
}

// SPDX-License-Identifier: GPL-3.0-or-later

/*
Package wifisim simulates a wireless network interface and its
access-point environment, allowing developers to exercise
wireless-stack software without real radio hardware.

# Usage and Features

The [New] function creates a simulation [*Context] from a [*Config]
that names the embedding [Host]. The context owns two permanently
paired virtual interfaces: a station (the simulated client radio)
and a sink (the other end of the radio link). A frame transmitted
on one interface is delivered immediately to the other through
[Host.DeliverFrame], with per-interface counters exposed via
[*Interface.Stats].

The context also answers scan, connect and disconnect requests the
way a radio driver reports to its host networking stack. A scan
arms a one-shot timer; when the timer fires, a deferred task
refreshes the access-point directory from the configured SSID list
and reports every known network through [Host.ReportFoundNetwork],
followed by a single [Host.ReportScanComplete]. Connect and
disconnect requests likewise return immediately and complete
through deferred tasks. At most one request per kind is in flight:
a second request of the same kind fails with [EBUSY] and the
caller retries after observing the completion callback.

The simulated environment is described by a bracket-delimited SSID
list (e.g. "[Net1][Net2]") that is re-parsed on every scan, so the
environment can change without recreating the context. Each SSID
maps to a deterministic BSSID (see [bssid.Derive]), stable across
scans and across process runs.

Use [*Context.Close] to tear the simulation down: it cancels and
awaits the scan timer and every deferred task before releasing the
interfaces, so no callback can observe a closed context.

Subpackages contain the building blocks: [apdir] is the
access-point directory, [bssid] the SSID hashing, [frame] the
relayed frame type, and [workqueue] the deferred-task executor.

# Design Documents

See DESIGN.md in the repository root.
*/
package wifisim

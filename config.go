//
// SPDX-License-Identifier: GPL-3.0-or-later
//
// Simulation configuration.
//

package wifisim

import (
	"fmt"
	"log/slog"
	"time"
)

// DefaultSSIDList is the SSID list used when [Config] does not
// specify one.
const DefaultSSIDList = "[MyHomeWiFi]"

// DefaultScanDelay is the delay between a scan request and the
// scan results being reported.
const DefaultScanDelay = 100 * time.Millisecond

// Config contains configuration for creating a [*Context].
type Config struct {
	// Host is the networking subsystem receiving reports and
	// received frames. The config is invalid without it.
	Host Host

	// SSIDList optionally describes the simulated access points
	// as bracket-delimited SSIDs (e.g. "[Net1][Net2]"). The
	// default is [DefaultSSIDList]. The list is re-parsed on
	// every scan; use [*Context.SetSSIDList] to change it while
	// the context is running.
	SSIDList string

	// ScanDelay optionally overrides [DefaultScanDelay].
	ScanDelay time.Duration

	// Logger optionally emits structured logs.
	Logger *slog.Logger

	// TimeNow optionally overrides [time.Now] for testing.
	TimeNow func() time.Time
}

// validate returns [EINVAL] if the configuration is not valid.
func (cfg *Config) validate() error {
	if cfg.Host == nil {
		return fmt.Errorf("%w: a host networking subsystem is required", EINVAL)
	}
	return nil
}

// ssidList returns the configured or default SSID list.
func (cfg *Config) ssidList() string {
	if cfg.SSIDList != "" {
		return cfg.SSIDList
	}
	return DefaultSSIDList
}

// scanDelay returns the configured or default scan delay.
func (cfg *Config) scanDelay() time.Duration {
	if cfg.ScanDelay > 0 {
		return cfg.ScanDelay
	}
	return DefaultScanDelay
}

// timeNow returns the configured or default time source.
func (cfg *Config) timeNow() func() time.Time {
	if cfg.TimeNow != nil {
		return cfg.TimeNow
	}
	return time.Now
}

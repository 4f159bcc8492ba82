// SPDX-License-Identifier: GPL-3.0-or-later

// Package apdir maintains the simulated access-point directory.
package apdir

import (
	"iter"
	"net"
	"strings"
	"sync"

	"github.com/rbmk-project/wifisim/bssid"
)

// MaxSSIDLen is the maximum SSID length in bytes. According to
// the 802.11 standard, an SSID has at most 32 bytes.
const MaxSSIDLen = 32

// Record describes a simulated access point.
type Record struct {
	// SSID is the network name (at most [MaxSSIDLen] bytes).
	SSID string

	// BSSID is the AP hardware address derived from the SSID.
	BSSID net.HardwareAddr
}

// Directory maps SSIDs to access-point records.
//
// The zero value is not ready to use; construct using [New].
//
// A [*Directory] tolerates concurrent readers along with a single
// writer: [*Directory.Refresh] takes a write lock, while lookups
// and enumerations take a read lock.
type Directory struct {
	// mu protects records and order.
	mu sync.RWMutex

	// records maps each SSID to its record.
	records map[string]Record

	// order remembers insertion order for stable enumeration.
	order []string
}

// New creates an empty [*Directory].
func New() *Directory {
	return &Directory{
		mu:      sync.RWMutex{},
		records: make(map[string]Record),
		order:   nil,
	}
}

// Refresh parses a bracket-delimited SSID list (e.g. "[Net1][Net2]")
// and inserts a [Record] for each SSID not already present. Tokens
// longer than [MaxSSIDLen] are truncated. Existing records are never
// modified nor removed, so the BSSID observed for an SSID stays the
// same across refreshes. Refreshing twice with the same list is a
// no-op.
func (d *Directory) Refresh(config string) {
	tokens := strings.FieldsFunc(config, func(r rune) bool {
		return r == '[' || r == ']'
	})
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, token := range tokens {
		if len(token) > MaxSSIDLen {
			token = token[:MaxSSIDLen]
		}
		if _, found := d.records[token]; found {
			continue
		}
		d.records[token] = Record{SSID: token, BSSID: bssid.Derive(token)}
		d.order = append(d.order, token)
	}
}

// Lookup returns the BSSID associated with the given SSID.
func (d *Directory) Lookup(ssid string) (net.HardwareAddr, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	rec, found := d.records[ssid]
	if !found {
		return nil, false
	}
	return rec.BSSID, true
}

// Len returns the number of records in the directory.
func (d *Directory) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.records)
}

// All returns an iterator over the records in insertion order.
//
// The iterator snapshots the directory under the read lock before
// yielding, so one can iterate while another goroutine refreshes
// the directory. Each call restarts from the first record.
func (d *Directory) All() iter.Seq[Record] {
	return func(yield func(Record) bool) {
		d.mu.RLock()
		snap := make([]Record, 0, len(d.order))
		for _, ssid := range d.order {
			snap = append(snap, d.records[ssid])
		}
		d.mu.RUnlock()
		for _, rec := range snap {
			if !yield(rec) {
				return
			}
		}
	}
}

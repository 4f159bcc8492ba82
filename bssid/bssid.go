// SPDX-License-Identifier: GPL-3.0-or-later

// Package bssid derives deterministic BSSIDs from SSIDs.
package bssid

import "net"

// Hash64 computes a 64-bit multiplicative hash of the given string.
//
// The mixing step is the murmur-inspired construction documented
// in https://stackoverflow.com/a/57960443.
func Hash64(s string) uint64 {
	h := uint64(525201411107845655)
	for idx := 0; idx < len(s); idx++ {
		h ^= uint64(s[idx])
		h *= 0x5bd1e9955bd1e995
		h ^= h >> 47
	}
	return h
}

// Derive maps an SSID onto a 6-byte hardware address.
//
// We spread the low 48 bits of [Hash64] over the address in big-endian
// order, then set the locally-administered bit and clear the multicast
// bit, so the result is always a valid unicast address. The mapping is
// a pure function of the SSID: the same SSID yields the same address
// across refreshes and across process runs.
func Derive(ssid string) net.HardwareAddr {
	h := Hash64(ssid)
	addr := net.HardwareAddr{
		byte(h >> 40),
		byte(h >> 32),
		byte(h >> 24),
		byte(h >> 16),
		byte(h >> 8),
		byte(h),
	}
	addr[0] &= 0xfe // clear multicast bit
	addr[0] |= 0x02 // set locally-administered bit
	return addr
}

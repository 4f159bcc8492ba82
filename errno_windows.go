//go:build windows

//
// SPDX-License-Identifier: GPL-3.0-or-later
//
// Windows errno definitions.
//

package wifisim

import "golang.org/x/sys/windows"

const (
	// EBUSY is the device or resource busy error.
	EBUSY = windows.ERROR_BUSY

	// EINTR is the interrupted call error.
	EINTR = windows.WSAEINTR

	// EINVAL is the invalid argument error.
	EINVAL = windows.WSAEINVAL
)

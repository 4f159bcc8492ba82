//go:build unix

//
// SPDX-License-Identifier: GPL-3.0-or-later
//
// UNIX errno definitions.
//

package wifisim

import "golang.org/x/sys/unix"

const (
	// EBUSY is the device or resource busy error.
	EBUSY = unix.EBUSY

	// EINTR is the interrupted call error.
	EINTR = unix.EINTR

	// EINVAL is the invalid argument error.
	EINVAL = unix.EINVAL
)

// Package memzero provides best-effort zeroing of sensitive byte slices.
package memzero

import "crypto/subtle"

// Zero overwrites b with zeros. Using subtle.ConstantTimeCopy discourages
// the compiler from eliding the write as dead code, the same trick the
// original identity store used for its KEK material.
func Zero(b []byte) {
	if len(b) == 0 {
		return
	}
	zero := make([]byte, len(b))
	subtle.ConstantTimeCopy(1, b, zero)
}

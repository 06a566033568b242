// Package randsource abstracts the per-attempt entropy source behind the
// mining engine and the packet builder: nonce draws, dejavu tags, and
// signature-slot filler bytes all come from a Source.
//
// The reference this module is built from fills these from a CPU-specific
// RDRAND instruction with its success flag ignored. That coupling is not
// something Go code should reach for inline asm to reproduce: this package
// instead reports RDRAND/RDSEED availability (an observability signal, via
// the github.com/klauspost/cpuid/v2 feature-detection library) and always
// fills through
// crypto/rand, which already prefers the hardware instruction on the
// platforms that have one and falls back safely where it doesn't.
package randsource

import (
	"crypto/rand"

	"github.com/klauspost/cpuid/v2"
)

// Source fills dst with cryptographically unpredictable bytes.
type Source interface {
	Fill(dst []byte) error
}

// Hardware is the production Source. It fills every request through
// crypto/rand.Reader; which hardware RNG instructions the running CPU
// advertises is reported separately by HasRDRAND and HasRDSEED and does not
// change how Hardware fills.
type Hardware struct{}

// NewHardware returns a Hardware source.
func NewHardware() Hardware {
	return Hardware{}
}

// Fill reads len(dst) unpredictable bytes into dst.
func (Hardware) Fill(dst []byte) error {
	_, err := rand.Read(dst)
	return err
}

// HasRDRAND reports whether the running CPU advertises the RDRAND
// instruction.
func HasRDRAND() bool {
	return cpuid.CPU.Has(cpuid.RDRAND)
}

// HasRDSEED reports whether the running CPU advertises the RDSEED
// instruction.
func HasRDSEED() bool {
	return cpuid.CPU.Has(cpuid.RDSEED)
}

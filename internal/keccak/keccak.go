// Package keccak implements the Keccak-p[1600,12] permutation: the
// reduced-round (12, not the standard 24) variant of the permutation at the
// core of SHA-3, TurboSHAKE, and KangarooTwelve.
//
// Every caller in this module shares this single permutation: the mining
// tape/link-table expander drives it directly as a bare sponge with no
// padding, while internal/kangarootwelve's node type wraps it with a
// rate and a domain-separation byte for the KT128 single-node
// construction.
package keccak

import (
	"encoding/binary"
	"math/bits"
)

// Rounds is the number of Keccak-f[1600] rounds this package applies.
// The canonical permutation runs 24 rounds; this reduced-round variant
// (also used by TurboSHAKE and KangarooTwelve) runs the last 12.
const Rounds = 12

// roundConstants are the 24 canonical Keccak round constants (ι step
// inputs), in round order. A 12-round permutation uses the last 12 of
// them, i.e. roundConstants[len-Rounds:].
var roundConstants = [24]uint64{
	0x0000000000000001, 0x0000000000008082, 0x800000000000808A, 0x8000000080008000,
	0x000000000000808B, 0x0000000080000001, 0x8000000080008081, 0x8000000000008009,
	0x000000000000008A, 0x0000000000000088, 0x0000000080008009, 0x000000008000000A,
	0x000000008000808B, 0x800000000000008B, 0x8000000000008089, 0x8000000000008003,
	0x8000000000008002, 0x8000000000000080, 0x000000000000800A, 0x800000008000000A,
	0x8000000080008081, 0x8000000000008080, 0x0000000080000001, 0x8000000080008008,
}

// rotationOffsets are the canonical ρ-step rotation amounts, indexed by
// lane = x + 5*y.
var rotationOffsets = [25]int{
	0, 1, 62, 28, 27,
	36, 44, 6, 55, 20,
	3, 10, 43, 25, 39,
	41, 45, 15, 21, 8,
	18, 2, 61, 56, 14,
}

// P1600 applies the Keccak-p[1600,12] permutation to state in place.
func P1600(state *[200]byte) {
	f1600Generic(state, Rounds)
}

// f1600Generic applies the Keccak-f[1600] permutation for the given number
// of rounds (the last `rounds` of the 24 canonical round functions).
func f1600Generic(state *[200]byte, rounds int) {
	var a [25]uint64
	for i := range a {
		a[i] = binary.LittleEndian.Uint64(state[i*8 : i*8+8])
	}

	keccakF1600(&a, rounds)

	for i := range a {
		binary.LittleEndian.PutUint64(state[i*8:i*8+8], a[i])
	}
}

func keccakF1600(a *[25]uint64, rounds int) {
	var c, d [5]uint64
	var b [25]uint64

	for round := len(roundConstants) - rounds; round < len(roundConstants); round++ {
		// θ
		for x := 0; x < 5; x++ {
			c[x] = a[x] ^ a[x+5] ^ a[x+10] ^ a[x+15] ^ a[x+20]
		}
		for x := 0; x < 5; x++ {
			d[x] = c[(x+4)%5] ^ bits.RotateLeft64(c[(x+1)%5], 1)
		}
		for x := 0; x < 5; x++ {
			for y := 0; y < 5; y++ {
				a[x+5*y] ^= d[x]
			}
		}

		// ρ and π combined: B[y, 2x+3y mod 5] = rot(A[x,y], r[x,y])
		for x := 0; x < 5; x++ {
			for y := 0; y < 5; y++ {
				b[y+5*((2*x+3*y)%5)] = bits.RotateLeft64(a[x+5*y], rotationOffsets[x+5*y])
			}
		}

		// χ
		for x := 0; x < 5; x++ {
			for y := 0; y < 5; y++ {
				a[x+5*y] = b[x+5*y] ^ (^b[(x+1)%5+5*y] & b[(x+2)%5+5*y])
			}
		}

		// ι
		a[0] ^= roundConstants[round]
	}
}

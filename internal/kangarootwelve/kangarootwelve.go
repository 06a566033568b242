// Package kangarootwelve implements KT128 (KangarooTwelve) as specified in
// RFC 9861, restricted to the single-node code path.
//
// Full KT128 splits messages larger than BlockSize into leaf chunks and
// hashes them in parallel with SIMD-accelerated Keccak permutations before
// combining the leaf chain values into a final node. Every call site in
// this module hashes at most 64 bytes — the packet gamma buffer and the
// public key — so that tree machinery never activates. This package
// implements only the single-node definition:
//
//	KT128(M, C, L) = TurboSHAKE128(M || C || right_encode(len(C)), 0x07, L)
//
// which RFC 9861 itself specifies as exactly equivalent to the general
// definition whenever len(M)+len(C)+lengthEncode(len(C)) <= BlockSize.
package kangarootwelve

// BlockSize is the KT128 chunk size in bytes. Inputs at or under this size
// (after the customization suffix is appended) take the single-node path
// this package implements.
const BlockSize = 8192

// singleNodeDS is the domain-separation byte for the single-node case.
const singleNodeDS = 0x07

// Sum computes KT128(msg, customization, outLen) and returns the result.
//
// It panics if the combined length of msg, customization, and the
// length-encoding of customization exceeds BlockSize; callers in this
// module never approach that limit (the largest input is the 64-byte
// packet gamma buffer), so this is a programmer-error guard, not a
// reachable runtime condition.
func Sum(msg, customization []byte, outLen int) []byte {
	suffix := lengthEncode(uint64(len(customization)))
	total := len(msg) + len(customization) + len(suffix)
	if total > BlockSize {
		panic("kangarootwelve: input exceeds single-node block size")
	}

	n := newNode(singleNodeDS)
	n.absorb(msg)
	n.absorb(customization)
	n.absorb(suffix)

	out := make([]byte, outLen)
	n.squeeze(out)
	return out
}

// lengthEncode encodes x as in KangarooTwelve: big-endian with no leading
// zeros, followed by a byte giving the length of the encoding.
func lengthEncode(x uint64) []byte {
	if x == 0 {
		return []byte{0x00}
	}

	n := 0
	for v := x; v > 0; v >>= 8 {
		n++
	}

	buf := make([]byte, n+1)
	for i := n - 1; i >= 0; i-- {
		buf[i] = byte(x)
		x >>= 8
	}
	buf[n] = byte(n)

	return buf
}

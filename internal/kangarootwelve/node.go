package kangarootwelve

import (
	"github.com/wk101/qiner-go/internal/keccak"
	"github.com/wk101/qiner-go/internal/mem"
)

// nodeRate is the sponge rate in bytes for a KT128 node under the
// single-node construction: 200 (the Keccak-p[1600] state) minus 32
// bytes of capacity, giving TurboSHAKE128's 168-byte rate (RFC 9861 §4).
const nodeRate = 168

// node is a single KT128 final-node computation: the sponge that
// absorbs `M || C || right_encode(len(C))` and squeezes the digest. It
// is the TurboSHAKE128 sponge construction (RFC 9861 §4) specialized to
// this package's exclusive use as KT128's single-node path — nothing
// else in this module hashes against a bare sponge, so it has no
// standalone package of its own.
type node struct {
	state     [200]byte
	pos       int
	ds        byte
	squeezing bool
}

// newNode returns a node ready to absorb, domain-separated by ds.
// singleNodeDS (0x07) is the only value production code here ever
// passes; ds stays a parameter so the RFC 9861 test vectors in node_test.go can
// exercise the sponge at the values the standard specifies.
func newNode(ds byte) node {
	return node{ds: ds}
}

// absorb folds p into the sponge state, permuting every time a full
// rate's worth of bytes has been XORed in.
func (n *node) absorb(p []byte) {
	for len(p) > 0 {
		w := min(nodeRate-n.pos, len(p))
		mem.XORInPlace(n.state[n.pos:n.pos+w], p[:w])
		n.pos += w
		p = p[w:]
		if n.pos == nodeRate {
			keccak.P1600(&n.state)
			n.pos = 0
		}
	}
}

// squeeze fills p with output bytes. The first call pads and permutes
// to finalize absorption; later calls continue squeezing in place.
func (n *node) squeeze(p []byte) {
	if !n.squeezing {
		n.state[n.pos] ^= n.ds
		n.state[nodeRate-1] ^= 0x80
		keccak.P1600(&n.state)
		n.pos = 0
		n.squeezing = true
	}
	for len(p) > 0 {
		if n.pos == nodeRate {
			keccak.P1600(&n.state)
			n.pos = 0
		}
		r := copy(p, n.state[n.pos:nodeRate])
		n.pos += r
		p = p[r:]
	}
}

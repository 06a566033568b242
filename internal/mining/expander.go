package mining

import (
	"encoding/binary"

	"github.com/wk101/qiner-go/internal/keccak"
)

// Expand fills out with a deterministic pseudo-random stream parameterised
// by key and nonce. It is used both to build the per-epoch MiningTape (key
// and nonce both set to the epoch seed) and the per-attempt LinkTable (key
// is the operator's public key, nonce is the attempt's nonce).
//
// The first four words of a 25-word Keccak state are loaded with key, the
// next four with nonce, and the remaining seventeen stay zero. out is then
// filled in chunks of up to 25 words, applying a 12-round Keccak-p[1600]
// permutation before each chunk is copied out of the state. The state is
// never re-absorbed between chunks: each chunk is squeezed successively
// from the same running permutation, which is why this is a distinct
// primitive from TurboSHAKE rather than a reuse of its sponge.
func Expand(key, nonce [4]uint64, out []uint64) {
	var state [StateSize64]uint64
	copy(state[0:4], key[:])
	copy(state[4:8], nonce[:])

	var buf [200]byte
	for len(out) > 0 {
		stateToBytes(&buf, &state)
		keccak.P1600(&buf)
		bytesToState(&state, &buf)

		n := min(StateSize64, len(out))
		copy(out[:n], state[:n])
		out = out[n:]
	}
}

func stateToBytes(buf *[200]byte, state *[StateSize64]uint64) {
	for i, w := range state {
		binary.LittleEndian.PutUint64(buf[i*8:i*8+8], w)
	}
}

func bytesToState(state *[StateSize64]uint64, buf *[200]byte) {
	for i := range state {
		state[i] = binary.LittleEndian.Uint64(buf[i*8 : i*8+8])
	}
}

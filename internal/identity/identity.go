// Package identity implements the 60-character operator identity codec: a
// bidirectional mapping to a 256-bit public key, with an 18-bit checksum
// over the last four characters computed by KangarooTwelve.
package identity

import (
	"errors"

	"github.com/wk101/qiner-go/internal/kangarootwelve"
	"github.com/wk101/qiner-go/internal/mining"
)

// Length is the number of characters in an identity string.
const Length = 60

const keyCharCount = 56
const limbCharCount = 14
const checksumCharCount = 4
const checksumMask = 0x3FFFF // 18 bits

// ErrInvalidAlphabet is returned when an identity string contains a byte
// outside 'A'..'Z'.
var ErrInvalidAlphabet = errors.New("identity: byte outside A-Z")

// ErrInvalidLength is returned when an identity string is not exactly
// Length characters.
var ErrInvalidLength = errors.New("identity: wrong length")

// ErrInvalidChecksum is returned by Verify when an identity's trailing
// checksum does not match its decoded public key.
var ErrInvalidChecksum = errors.New("identity: checksum mismatch")

// Decode parses the first 56 characters of id into a public key. Every
// character must be in 'A'..'Z', but the trailing 4-character checksum is
// not validated against the key; use Verify for that.
func Decode(id string) (mining.PublicKey, error) {
	var pub mining.PublicKey

	if len(id) != Length {
		return pub, ErrInvalidLength
	}
	for i := 0; i < len(id); i++ {
		if id[i] < 'A' || id[i] > 'Z' {
			return pub, ErrInvalidAlphabet
		}
	}

	for i := 0; i < 4; i++ {
		var limb uint64
		for j := limbCharCount - 1; j >= 0; j-- {
			c := id[i*limbCharCount+j]
			if c < 'A' || c > 'Z' {
				return mining.PublicKey{}, ErrInvalidAlphabet
			}
			limb = limb*26 + uint64(c-'A')
		}
		pub[i] = limb
	}

	return pub, nil
}

// Encode renders pub as a 60-character identity string: 56 base-26 digits
// (little-endian within each limb) followed by a 4-character checksum.
func Encode(pub mining.PublicKey) string {
	buf := make([]byte, Length)

	for i := 0; i < 4; i++ {
		frag := pub[i]
		for j := 0; j < limbCharCount; j++ {
			buf[i*limbCharCount+j] = 'A' + byte(frag%26)
			frag /= 26
		}
	}

	checksum := computeChecksum(pub)
	for i := 0; i < checksumCharCount; i++ {
		buf[keyCharCount+i] = 'A' + byte(checksum%26)
		checksum /= 26
	}

	return string(buf)
}

// Verify reports whether id's trailing checksum matches the one Encode
// would produce for its decoded public key.
func Verify(id string) (mining.PublicKey, error) {
	pub, err := Decode(id)
	if err != nil {
		return pub, err
	}
	if Encode(pub)[keyCharCount:] != id[keyCharCount:] {
		return mining.PublicKey{}, ErrInvalidChecksum
	}
	return pub, nil
}

// computeChecksum hashes the 32-byte public key with KangarooTwelve,
// reads 3 bytes of output, assembles a little-endian 24-bit integer, and
// masks it to 18 bits.
func computeChecksum(pub mining.PublicKey) uint32 {
	var keyBytes [32]byte
	for i, limb := range pub {
		for b := 0; b < 8; b++ {
			keyBytes[i*8+b] = byte(limb >> (8 * b))
		}
	}

	digest := kangarootwelve.Sum(keyBytes[:], nil, 3)
	checksum := uint32(digest[0]) | uint32(digest[1])<<8 | uint32(digest[2])<<16
	return checksum & checksumMask
}

// Package wire builds the fixed-layout broadcast packet and sends it over
// a retrying TCP connection to the coordinator.
package wire

import (
	"github.com/wk101/qiner-go/internal/kangarootwelve"
	"github.com/wk101/qiner-go/internal/mining"
	"github.com/wk101/qiner-go/internal/randsource"
)

// BroadcastMessage is the packet type byte for a solution broadcast.
const BroadcastMessage = 1

// Field sizes and offsets within the wire-encoded packet. The layout is
// position-dependent and has no padding: serialise byte by byte rather
// than relying on any struct-layout automation.
const (
	sizeOffset     = 0
	sizeLen        = 3
	protocolOffset = sizeOffset + sizeLen
	protocolLen    = 1
	dejavuOffset   = protocolOffset + protocolLen
	dejavuLen      = 3
	typeOffset     = dejavuOffset + dejavuLen
	typeLen        = 1
	srcPKOffset    = typeOffset + typeLen
	srcPKLen       = 32
	dstPKOffset    = srcPKOffset + srcPKLen
	dstPKLen       = 32
	gammingOffset  = dstPKOffset + dstPKLen
	gammingLen     = 32
	solutionOffset = gammingOffset + gammingLen
	solutionLen    = 32
	sigOffset      = solutionOffset + solutionLen
	sigLen         = 64

	// PacketSize is the total encoded size of a Packet, in bytes.
	PacketSize = sigOffset + sigLen
)

// Packet is the fixed-layout broadcast message: a header, an obfuscated
// solution nonce, and a signature slot this protocol variant fills with
// random bytes rather than a real signature.
type Packet [PacketSize]byte

// Build assembles a broadcast Packet carrying nonce, obfuscated by a gamma
// stream derived through rejection-sampled KangarooTwelve calls, destined
// for destPub. protocolMinor is the minor component of this build's
// version (the byte the reference writes into the protocol field).
func Build(destPub mining.PublicKey, nonce mining.Nonce, protocolMinor byte, source randsource.Source) (Packet, error) {
	var p Packet

	putUint24LE(p[sizeOffset:sizeOffset+sizeLen], PacketSize)
	p[protocolOffset] = protocolMinor

	if err := randomizeDejavu(p[dejavuOffset:dejavuOffset+dejavuLen], source); err != nil {
		return Packet{}, err
	}

	p[typeOffset] = BroadcastMessage

	// source_public_key is always zero for the broadcast-message type.
	putPublicKey(p[dstPKOffset:dstPKOffset+dstPKLen], destPub)

	gammingNonce, gamma, err := deriveGamma(source)
	if err != nil {
		return Packet{}, err
	}
	copy(p[gammingOffset:gammingOffset+gammingLen], gammingNonce[:])

	putSolutionNonce(p[solutionOffset:solutionOffset+solutionLen], nonce, gamma)

	if err := fillRandom(p[sigOffset:sigOffset+sigLen], source); err != nil {
		return Packet{}, err
	}

	return p, nil
}

func randomizeDejavu(dst []byte, source randsource.Source) error {
	var u32 [4]byte
	if err := source.Fill(u32[:]); err != nil {
		return err
	}
	copy(dst, u32[:3])
	if dst[0]|dst[1]|dst[2] == 0 {
		dst[0] = 1 // the dejavu tag is never zero on the wire
	}
	return nil
}

func putPublicKey(dst []byte, pub mining.PublicKey) {
	for i, limb := range pub {
		for b := 0; b < 8; b++ {
			dst[i*8+b] = byte(limb >> (8 * b))
		}
	}
}

func putUint24LE(dst []byte, v int) {
	dst[0] = byte(v)
	dst[1] = byte(v >> 8)
	dst[2] = byte(v >> 16)
}

// deriveGamma implements the two-stage gamma derivation: draw a random
// 32-byte nonce buffer, hash it (with a zeroed 32-byte shared key prefix)
// through KangarooTwelve to get a gamming key, and reject it if its first
// byte is zero — re-drawing the nonce buffer until it isn't. The gamma
// mask is then KT128(gammingKey). This resolves gamming_key[0]==0 as the
// rejection condition (loop back and redraw), matching the invariant that
// gamming_key[0] is never zero on any emitted packet.
func deriveGamma(source randsource.Source) (gammingNonce [32]byte, gamma [32]byte, err error) {
	var sharedKeyAndNonce [64]byte // first 32 bytes (shared key) stay zero

	for {
		if err := source.Fill(gammingNonce[:]); err != nil {
			return gammingNonce, gamma, err
		}
		copy(sharedKeyAndNonce[32:], gammingNonce[:])

		gammingKey := kangarootwelve.Sum(sharedKeyAndNonce[:], nil, 32)
		if gammingKey[0] == 0 {
			continue
		}

		copy(gamma[:], kangarootwelve.Sum(gammingKey, nil, 32))
		return gammingNonce, gamma, nil
	}
}

func putSolutionNonce(dst []byte, nonce mining.Nonce, gamma [32]byte) {
	var nonceBytes [32]byte
	for i, limb := range nonce {
		for b := 0; b < 8; b++ {
			nonceBytes[i*8+b] = byte(limb >> (8 * b))
		}
	}
	for i := range dst {
		dst[i] = nonceBytes[i] ^ gamma[i]
	}
}

func fillRandom(dst []byte, source randsource.Source) error {
	return source.Fill(dst)
}

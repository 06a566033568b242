// Package mining implements the neural-circuit proof-of-work search: the
// Keccak-based expander that turns (key, nonce) pairs into deterministic
// streams, the NAND-circuit scoring kernel, and the worker-pool supervisor
// that runs it across goroutines.
package mining

// NumberOfNeurons is the width of the NAND circuit evaluated per attempt.
const NumberOfNeurons = 4_194_304

// NumberOfNeurons64 is NumberOfNeurons expressed in 64-bit link words: two
// 32-bit neuron links are packed per u64, so the link table needs half as
// many u64 words as there are neurons.
const NumberOfNeurons64 = NumberOfNeurons / 2

// NeuronModBits masks a packed link word so that both of its unpacked
// 32-bit halves land in [0, NumberOfNeurons).
const NeuronModBits = uint64(NumberOfNeurons-1)<<32 | uint64(NumberOfNeurons-1)

// MiningDataLength is the number of u64 words in a MiningTape (65,536 bits).
const MiningDataLength = 1024

// StateSize64 is the width, in u64 words, of the Keccak-p[1600] state used
// by the expander in Expand.
const StateSize64 = 25

// Seed is the 256-bit epoch-constant value the mining tape is derived from.
type Seed [4]uint64

// PublicKey is the operator's 256-bit public key, derived once from the
// decoded identity string.
type PublicKey [4]uint64

// Nonce is a 256-bit per-attempt value drawn from the hardware RNG.
type Nonce [4]uint64

// MiningTape is the 65,536-bit epoch-constant bitstring the circuit is
// scored against. It is generated once at Miner construction and never
// mutated thereafter.
type MiningTape [MiningDataLength]uint64

// LinkTable is the per-nonce table of packed neuron links: two u32 link
// fields per u64 word, NumberOfNeurons64*2 words total.
type LinkTable [NumberOfNeurons64 * 2]uint64

// NeuronValues holds one byte per neuron. Only the low bit is semantically
// significant (0x00 or 0xFF after a NAND step), but every byte is written
// in full on each round; see score.
type NeuronValues [NumberOfNeurons]byte

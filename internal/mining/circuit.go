package mining

// buildMiningTape derives the epoch-constant MiningTape from seed, per
// §4.3 Step A-equivalent construction: Expand(seed, seed, tape).
func buildMiningTape(seed Seed) *MiningTape {
	var tape MiningTape
	Expand(seed, seed, tape[:])
	return &tape
}

// buildLinkTable derives the per-nonce neuron wiring from the operator's
// public key and the attempt nonce, then masks every packed link so both
// unpacked halves land in [0, NumberOfNeurons).
func buildLinkTable(pub PublicKey, nonce Nonce, table *LinkTable) {
	Expand(pub, nonce, table[:])
	for i := range table {
		table[i] &= NeuronModBits
	}
}

// resetNeuronValues sets every neuron byte to 0xFF, the circuit's initial
// state before the first scoring round.
func resetNeuronValues(values *NeuronValues) {
	for i := range values {
		values[i] = 0xFF
	}
}

// score runs the NAND-circuit scoring loop against tape using the given
// link table, returning the final score. values must already be reset to
// its initial all-0xFF state; it is mutated in place.
//
// Each round recomputes every neuron pair from its two linked predecessors,
// then classifies the round from whether the last two neurons (index N-1,
// N-2) toggled; see classifyRound.
func score(table *LinkTable, values *NeuronValues, tape *MiningTape) int {
	remaining := MiningDataLength
	s := 0

	for {
		prev0 := values[NumberOfNeurons-1]
		prev1 := values[NumberOfNeurons-2]

		for idx := 0; idx < NumberOfNeurons64; idx++ {
			lw := table[2*idx]
			rw := table[2*idx+1]

			a0 := uint32(lw)
			b0 := uint32(lw >> 32)
			a1 := uint32(rw)
			b1 := uint32(rw >> 32)

			values[2*idx] = ^(values[a0] & values[b0])
			values[2*idx+1] = ^(values[a1] & values[b1])
		}

		cur0 := values[NumberOfNeurons-1]
		cur1 := values[NumberOfNeurons-2]

		bit := (tape[s>>6] >> uint(s&63)) & 1

		advance, terminate := classifyRound(prev0, cur0, prev1, cur1, bit)
		if terminate {
			return s
		}
		if advance {
			s++
			continue
		}

		remaining--
		if remaining == 0 {
			return s
		}
	}
}

// classifyRound implements the per-round event classification from the
// scoring kernel: an A-event is neuron N-1 toggling alone, a B-event is
// neuron N-2 toggling alone. An A-event with bit 0, or a B-event with bit
// 1, terminates the loop (terminate=true). An A-event with bit 1, or a
// B-event with bit 0, advances the score (advance=true). Any other
// combination (both or neither toggled) is neither: the caller charges it
// against the remaining-iterations budget instead.
func classifyRound(prev0, cur0, prev1, cur1 byte, bit uint64) (advance, terminate bool) {
	switch {
	case cur0 != prev0 && cur1 == prev1: // A-event
		if bit == 0 {
			return false, true
		}
		return true, false
	case cur1 != prev1 && cur0 == prev0: // B-event
		if bit == 1 {
			return false, true
		}
		return true, false
	default:
		return false, false
	}
}

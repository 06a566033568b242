package mining

import (
	"context"
	"testing"

	"github.com/wk101/qiner-go/internal/randsource"
)

// zeroSource is a deterministic randsource.Source that always fills with
// zero bytes, used where tests need a Source but not real entropy.
type zeroSource struct{}

func (zeroSource) Fill(dst []byte) error {
	clear(dst)
	return nil
}

// TestMinerRunStopsOnCancel checks that Run returns promptly when its
// context is already canceled, without a worker ever attempting a scoring
// pass (which would otherwise dominate the test's running time at
// NumberOfNeurons scale).
func TestMinerRunStopsOnCancel(t *testing.T) {
	seed := Seed{1, 2, 3, 4}
	pub := PublicKey{5, 6, 7, 8}
	m := New(seed, pub, 2, 1, zeroSource{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	done := make(chan struct{})
	go func() {
		m.Run(ctx)
		close(done)
	}()

	<-done

	if got := m.Iterations(); got != 0 {
		t.Fatalf("Iterations() = %d, want 0 (workers should not have started an attempt)", got)
	}
	if got := m.Score(); got != 0 {
		t.Fatalf("Score() = %d, want 0", got)
	}
	if got := m.Drain(); got != nil {
		t.Fatalf("Drain() = %v, want nil", got)
	}
}

// TestMinerDrainFIFO checks that Drain returns staged nonces in commit
// order and empties the queue.
func TestMinerDrainFIFO(t *testing.T) {
	m := New(Seed{}, PublicKey{}, 1, 0, zeroSource{})

	m.foundQueue = append(m.foundQueue, Nonce{1}, Nonce{2}, Nonce{3})

	got := m.Drain()
	want := []Nonce{{1}, {2}, {3}}
	if len(got) != len(want) {
		t.Fatalf("Drain() returned %d nonces, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Drain()[%d] = %v, want %v", i, got[i], want[i])
		}
	}

	if again := m.Drain(); again != nil {
		t.Fatalf("second Drain() = %v, want nil (queue should be empty)", again)
	}
}

// TestDrawNonce checks that drawNonce packs a Source's bytes into a Nonce
// little-endian, word by word.
func TestDrawNonce(t *testing.T) {
	m := New(Seed{}, PublicKey{}, 1, 0, countingSource{})

	var nonce Nonce
	if err := m.drawNonce(&nonce); err != nil {
		t.Fatalf("drawNonce: %v", err)
	}

	want := Nonce{
		0x0706050403020100,
		0x0F0E0D0C0B0A0908,
		0x1716151413121110,
		0x1F1E1D1C1B1A1918,
	}
	if nonce != want {
		t.Fatalf("nonce = %#v, want %#v", nonce, want)
	}
}

// countingSource fills dst with 0, 1, 2, ... so byte-order bugs in
// drawNonce are easy to spot.
type countingSource struct{}

func (countingSource) Fill(dst []byte) error {
	for i := range dst {
		dst[i] = byte(i)
	}
	return nil
}

var _ randsource.Source = zeroSource{}
var _ randsource.Source = countingSource{}

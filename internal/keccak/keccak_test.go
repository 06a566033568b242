package keccak

import (
	"encoding/hex"
	"testing"
)

// TestP1600 checks the permutation against a frozen reference vector
// (Keccak-p[1600,12] applied to an all-zero 200-byte state). The same
// vector anchors internal/mining's Expand, since both build on this
// permutation with no intervening padding.
func TestP1600(t *testing.T) {
	var state [200]byte
	P1600(&state)

	got := hex.EncodeToString(state[:])
	want := "1786a7b938545e8e1ed059f2506acdd9351fa952c6e7b887c5e0e4cd67e09310455ad9f290ab33b0451adda8722fa7e09c2f6714aa8037c51d075100f547dd3ecc8a170c311da3b3a0aa5792a586b5799bf9b1b33d7c4abc93678ae66340876866250e2e33036c5cda30f0b90212aa9c9f7acf2b789a3b5f2379ae61e0c136e5ec873cb718b6e96dc28a9170f1d1be2ab724edda53bdab6a5ae12e2c6a41c1bfaf5209b936e0cfc6d76070dc17365045e47a9fc2b21156627a64302cdb7136d41ca02c22760dfdcf"
	if got != want {
		t.Errorf("P1600(0*200) = %s, want = %s", got, want)
	}
}

// TestF1600GenericRounds exercises the underlying permutation at both the
// reduced round count this package uses and the canonical 24, to pin down
// that Rounds selects "last 12", not "first 12".
func TestF1600GenericRounds(t *testing.T) {
	t.Run("12 rounds", func(t *testing.T) {
		var state [200]byte
		f1600Generic(&state, 12)

		got := hex.EncodeToString(state[:])
		want := "1786a7b938545e8e1ed059f2506acdd9351fa952c6e7b887c5e0e4cd67e09310455ad9f290ab33b0451adda8722fa7e09c2f6714aa8037c51d075100f547dd3ecc8a170c311da3b3a0aa5792a586b5799bf9b1b33d7c4abc93678ae66340876866250e2e33036c5cda30f0b90212aa9c9f7acf2b789a3b5f2379ae61e0c136e5ec873cb718b6e96dc28a9170f1d1be2ab724edda53bdab6a5ae12e2c6a41c1bfaf5209b936e0cfc6d76070dc17365045e47a9fc2b21156627a64302cdb7136d41ca02c22760dfdcf"
		if got != want {
			t.Errorf("f1600Generic(0*200, 12) = %s, want = %s", got, want)
		}
	})

	t.Run("24 rounds", func(t *testing.T) {
		var state [200]byte
		f1600Generic(&state, 24)

		got := hex.EncodeToString(state[:])
		want := "e7dde140798f25f18a47c033f9ccd584eea95aa61e2698d54d49806f304715bd57d05362054e288bd46f8e7f2da497ffc44746a4a0e5fe90762e19d60cda5b8c9c05191bf7a630ad64fc8fd0b75a933035d617233fa95aeb0321710d26e6a6a95f55cfdb167ca58126c84703cd31b8439f56a5111a2ff20161aed9215a63e505f270c98cf2febe641166c47b95703661cb0ed04f555a7cb8c832cf1c8ae83e8c14263aae22790c94e409c5a224f94118c26504e72635f5163ba1307fe944f67549a2ec5c7bfff1ea"
		if got != want {
			t.Errorf("f1600Generic(0*200, 24) = %s, want = %s", got, want)
		}
	})
}

func TestP1600Deterministic(t *testing.T) {
	var s1, s2 [200]byte
	for i := range s1 {
		s1[i] = byte(i)
		s2[i] = byte(i)
	}
	P1600(&s1)
	P1600(&s2)
	if s1 != s2 {
		t.Fatal("P1600 is not deterministic for identical inputs")
	}
}

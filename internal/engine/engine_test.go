package engine

import (
	"bytes"
	"errors"
	"testing"

	"github.com/shroud/shroud/internal/cipher"
	"github.com/shroud/shroud/internal/shuffle"
	"github.com/shroud/shroud/internal/types"
)

const sample = "func main() {\n\tfmt.Println(\"hello world\")\n}\n"

func TestRun_AllStageCombinations(t *testing.T) {
	in := []byte(sample)
	cases := []struct {
		name string
		cfg  Config
	}{
		{"none", Config{}},
		{"substitution", Config{Substitution: true, Key: 42}},
		{"shuffle", Config{Shuffle: true, Seed: 7}},
		{"both", Config{Substitution: true, Shuffle: true, Key: 42, Seed: 7}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res, err := Run(in, tc.cfg)
			if err != nil {
				t.Fatalf("Run: %v", err)
			}
			back, err := Reverse(res.Output, res.Manifest())
			if err != nil {
				t.Fatalf("Reverse: %v", err)
			}
			if !bytes.Equal(back, in) {
				t.Fatalf("round trip failed:\n got %q\nwant %q", back, in)
			}
			if Checksum(back) != res.InputSum {
				t.Fatal("restored checksum does not match recorded input sum")
			}
		})
	}
}

func TestRun_NoStagesIsNoOp(t *testing.T) {
	in := []byte(sample)
	res, err := Run(in, Config{})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !bytes.Equal(res.Output, in) {
		t.Fatal("no-op run must return the input unchanged")
	}
	if len(res.Stages) != 0 {
		t.Fatalf("no stages should be recorded, got %v", res.Stages)
	}
	if res.InputSum != res.OutputSum {
		t.Fatal("checksums must match for a no-op run")
	}
}

func TestRun_EmptyBuffer(t *testing.T) {
	res, err := Run(nil, Config{Substitution: true, Shuffle: true, Key: 3, Seed: 1})
	if err != nil {
		t.Fatalf("Run on empty buffer: %v", err)
	}
	if len(res.Output) != 0 {
		t.Fatalf("expected empty output, got %q", res.Output)
	}
	back, err := Reverse(res.Output, res.Manifest())
	if err != nil || len(back) != 0 {
		t.Fatalf("empty buffer must round-trip: %q, %v", back, err)
	}
}

func TestRun_StageOrderRecorded(t *testing.T) {
	res, err := Run([]byte(sample), Config{Substitution: true, Shuffle: true, Key: 1, Seed: 2})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	want := []types.Stage{types.StageSubstitution, types.StageShuffle}
	if len(res.Stages) != 2 || res.Stages[0] != want[0] || res.Stages[1] != want[1] {
		t.Fatalf("unexpected stage order: %v", res.Stages)
	}
}

// Reversing in the wrong order (substitution inverse before shuffle inverse)
// must not restore the original: the shuffle permutation is bound to the
// bytes the stage saw, which a premature deobfuscation changes.
func TestReverse_WrongOrderDoesNotRestore(t *testing.T) {
	in := []byte(sample)
	res, err := Run(in, Config{Substitution: true, Shuffle: true, Key: 42, Seed: 7})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	m := res.Manifest()

	c, err := cipher.New(cipher.Alphabet(m.Alphabet))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	desubbed := c.Deobfuscate(res.Output, *m.Key)
	wrong, err := shuffle.Deobfuscate(desubbed, *m.Shuffle)
	if err != nil {
		t.Fatalf("Deobfuscate: %v", err)
	}
	if bytes.Equal(wrong, in) {
		t.Fatal("wrong reversal order should not restore the original")
	}

	right, err := Reverse(res.Output, m)
	if err != nil {
		t.Fatalf("Reverse: %v", err)
	}
	if !bytes.Equal(right, in) {
		t.Fatal("correct reversal order must restore the original")
	}
}

func TestRun_KeyReducedConsistently(t *testing.T) {
	in := []byte(sample)
	a, err := Run(in, Config{Substitution: true, Key: 3})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	b, err := Run(in, Config{Substitution: true, Key: 29})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !bytes.Equal(a.Output, b.Output) {
		t.Fatal("keys 3 and 29 must reduce to the same shift")
	}
}

func TestRun_UnknownAlphabet(t *testing.T) {
	_, err := Run([]byte(sample), Config{Substitution: true, Key: 1, Alphabet: "rot13"})
	if !errors.Is(err, cipher.ErrUnknownAlphabet) {
		t.Fatalf("expected ErrUnknownAlphabet, got %v", err)
	}
}

func TestReverse_MissingKey(t *testing.T) {
	m := types.Manifest{Stages: []types.Stage{types.StageSubstitution}}
	if _, err := Reverse([]byte("khoor"), m); !errors.Is(err, ErrInvalidKey) {
		t.Fatalf("expected ErrInvalidKey, got %v", err)
	}
}

func TestReverse_MissingShuffleSpec(t *testing.T) {
	m := types.Manifest{Stages: []types.Stage{types.StageShuffle}}
	if _, err := Reverse([]byte("hello"), m); !errors.Is(err, shuffle.ErrInvalidSpec) {
		t.Fatalf("expected ErrInvalidSpec, got %v", err)
	}
}

func TestChecksum_Stable(t *testing.T) {
	if Checksum(nil) != "0000000000000000" {
		t.Fatal("empty checksum changed")
	}
	a := Checksum([]byte("hello"))
	b := Checksum([]byte("hello"))
	if a != b || len(a) != 16 {
		t.Fatalf("checksum not stable: %q vs %q", a, b)
	}
}

func TestDeriveSeed_Deterministic(t *testing.T) {
	if DeriveSeed([]byte("x")) != DeriveSeed([]byte("x")) {
		t.Fatal("derived seed must be deterministic")
	}
	if DeriveSeed([]byte("x")) == 0 {
		t.Fatal("derived seed must be non-zero")
	}
}

package engine

import (
	"fmt"
	"time"

	xxhash "github.com/cespare/xxhash/v2"
	"github.com/shroud/shroud/internal/cipher"
	"github.com/shroud/shroud/internal/shuffle"
	"github.com/shroud/shroud/internal/types"
)

// Config controls which stages run and with what parameters.
type Config struct {
	Substitution bool
	Shuffle      bool
	Key          int
	Seed         uint64
	Alphabet     cipher.Alphabet
}

// Result contains the transformed buffer plus everything needed to reverse
// the run.
type Result struct {
	Output    []byte
	Stages    []types.Stage
	Key       int
	Alphabet  cipher.Alphabet
	Shuffle   *types.ShuffleSpec
	InputSum  string
	OutputSum string
	Duration  time.Duration
}

// Manifest converts a Result into the persistable reversal metadata.
func (r Result) Manifest() types.Manifest {
	m := types.Manifest{
		Version:   manifestVersion,
		CreatedAt: time.Now().UTC(),
		Stages:    r.Stages,
		Shuffle:   r.Shuffle,
		InputSum:  r.InputSum,
		OutputSum: r.OutputSum,
	}
	for _, s := range r.Stages {
		if s == types.StageSubstitution {
			key := r.Key
			m.Key = &key
			m.Alphabet = string(r.Alphabet)
		}
	}
	return m
}

const manifestVersion = 1

// Run applies the enabled stages to buf in fixed order: substitution first,
// then shuffle. With neither stage enabled it is a no-op that still succeeds.
// Either the whole buffer is transformed or an error is returned with no
// output.
func Run(buf []byte, cfg Config) (Result, error) {
	started := time.Now()
	res := Result{
		Key:      cfg.Key,
		InputSum: Checksum(buf),
	}

	out := buf
	if cfg.Substitution {
		c, err := cipher.New(alphabetOrDefault(cfg.Alphabet))
		if err != nil {
			return Result{}, fmt.Errorf("substitution stage: %w", err)
		}
		res.Alphabet = c.Alphabet()
		out = c.Obfuscate(out, cfg.Key)
		res.Stages = append(res.Stages, types.StageSubstitution)
	}
	if cfg.Shuffle {
		shuffled, spec := shuffle.Obfuscate(out, cfg.Seed)
		out = shuffled
		res.Shuffle = &spec
		res.Stages = append(res.Stages, types.StageShuffle)
	}

	res.Output = out
	res.OutputSum = Checksum(out)
	res.Duration = time.Since(started)
	return res, nil
}

// Reverse restores a buffer obfuscated under the given manifest by applying
// stage inverses in reverse order. A manifest listing a stage without its
// parameters fails with ErrInvalidKey or shuffle.ErrInvalidSpec.
func Reverse(buf []byte, m types.Manifest) ([]byte, error) {
	out := buf
	for i := len(m.Stages) - 1; i >= 0; i-- {
		switch m.Stages[i] {
		case types.StageShuffle:
			if m.Shuffle == nil {
				return nil, fmt.Errorf("shuffle stage: %w", shuffle.ErrInvalidSpec)
			}
			restored, err := shuffle.Deobfuscate(out, *m.Shuffle)
			if err != nil {
				return nil, fmt.Errorf("shuffle stage: %w", err)
			}
			out = restored
		case types.StageSubstitution:
			if m.Key == nil {
				return nil, fmt.Errorf("substitution stage: %w", ErrInvalidKey)
			}
			c, err := cipher.New(alphabetOrDefault(cipher.Alphabet(m.Alphabet)))
			if err != nil {
				return nil, fmt.Errorf("substitution stage: %w", err)
			}
			out = c.Deobfuscate(out, *m.Key)
		default:
			return nil, fmt.Errorf("unknown stage %q", m.Stages[i])
		}
	}
	return out, nil
}

func alphabetOrDefault(a cipher.Alphabet) cipher.Alphabet {
	if a == "" {
		return cipher.Letters
	}
	return a
}

// Checksum returns a fixed-width hex digest of b used to verify that a
// reversal reproduced the original bytes.
func Checksum(b []byte) string {
	if len(b) == 0 {
		return "0000000000000000"
	}
	sum := xxhash.Sum64(b)
	var buf [16]byte
	const hex = "0123456789abcdef"
	for i := 15; i >= 0; i-- {
		buf[i] = hex[sum&0xF]
		sum >>= 4
	}
	return string(buf[:])
}

// DeriveSeed produces a reproducible shuffle seed from the input content, for
// callers that did not supply one.
func DeriveSeed(b []byte) uint64 {
	return xxhash.Sum64(b) | 1
}

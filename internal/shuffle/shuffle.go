// Package shuffle implements the reordering stage. Shuffling is line-scoped:
// the buffer is split on newlines and only the non-whitespace bytes within
// each line are permuted among themselves, so line count, newline positions,
// and indentation are identical before and after.
//
// Permutations come from a PCG generator (math/rand/v2) seeded from the
// recorded seed, the line index, and an order-insensitive digest of the
// line's bytes. The digest is computable from the shuffled line as well (the
// byte multiset is unchanged), which is what makes reversal possible — and it
// binds the permutation to the exact bytes the stage saw, so inverting stages
// in the wrong order produces garbage instead of silently wrong output.
package shuffle

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/shroud/shroud/internal/types"
)

// ErrInvalidSpec is returned when a shuffle spec does not match the buffer it
// is asked to reverse.
var ErrInvalidSpec = errors.New("shuffle spec does not match buffer")

const seedGamma = 0x9E3779B97F4A7C15

// Obfuscate permutes the non-whitespace bytes within each line of buf using
// permutations derived deterministically from seed. The same seed and buffer
// always produce the same output on every platform. The returned spec is
// sufficient to invert the shuffle via Deobfuscate.
func Obfuscate(buf []byte, seed uint64) ([]byte, types.ShuffleSpec) {
	out := make([]byte, len(buf))
	copy(out, buf)
	lines := eachLine(out, func(index int, line []byte) {
		permuteLine(line, seed, index, false)
	})
	return out, types.ShuffleSpec{Seed: seed, Length: len(buf), Lines: lines}
}

// Deobfuscate restores the original order of a buffer shuffled with the same
// spec. It fails with ErrInvalidSpec when the buffer shape does not match the
// one the spec was recorded for; no partial output is returned.
func Deobfuscate(buf []byte, spec types.ShuffleSpec) ([]byte, error) {
	if spec.Length != len(buf) {
		return nil, fmt.Errorf("%w: recorded length %d, buffer length %d", ErrInvalidSpec, spec.Length, len(buf))
	}
	out := make([]byte, len(buf))
	copy(out, buf)
	lines := eachLine(out, func(index int, line []byte) {
		permuteLine(line, spec.Seed, index, true)
	})
	if spec.Lines != lines {
		return nil, fmt.Errorf("%w: recorded %d lines, buffer has %d", ErrInvalidSpec, spec.Lines, lines)
	}
	return out, nil
}

// eachLine invokes fn on every newline-delimited segment of buf in order and
// returns the segment count. A trailing segment without a newline counts only
// when non-empty.
func eachLine(buf []byte, fn func(index int, line []byte)) int {
	count := 0
	start := 0
	for i, b := range buf {
		if b == '\n' {
			fn(count, buf[start:i])
			count++
			start = i + 1
		}
	}
	if start < len(buf) {
		fn(count, buf[start:])
		count++
	}
	return count
}

// permuteLine shuffles (or unshuffles) the non-whitespace bytes of line in
// place. Lines with fewer than two shufflable bytes are identities.
func permuteLine(line []byte, seed uint64, index int, invert bool) {
	var pos []int
	for i, b := range line {
		if !structural(b) {
			pos = append(pos, i)
		}
	}
	if len(pos) < 2 {
		return
	}
	perm := permutation(lineSeed(seed, index, line), len(pos))
	if invert {
		inv := make([]int, len(perm))
		for i, p := range perm {
			inv[p] = i
		}
		perm = inv
	}
	src := make([]byte, len(pos))
	for i, p := range pos {
		src[i] = line[p]
	}
	for i, p := range perm {
		line[pos[i]] = src[p]
	}
}

// structural reports whether b must keep its position so the buffer's layout
// survives shuffling.
func structural(b byte) bool {
	return b == ' ' || b == '\t' || b == '\r' || b == '\n'
}

// lineSeed combines the run seed, the line's index, and an order-insensitive
// digest of the line's bytes. The digest is a sum of per-byte mixes, so the
// shuffled line yields the same value as the original.
func lineSeed(seed uint64, index int, line []byte) uint64 {
	var digest uint64
	for _, b := range line {
		digest += mix64(uint64(b) + 1)
	}
	return seed ^ mix64(uint64(index)+1) ^ digest
}

// permutation returns a Fisher-Yates permutation of n elements drawn from a
// PCG stream, which is specified and stable across platforms.
func permutation(seed uint64, n int) []int {
	r := rand.New(rand.NewPCG(seed, seed^seedGamma))
	perm := make([]int, n)
	for i := range perm {
		perm[i] = i
	}
	for i := n - 1; i > 0; i-- {
		j := r.IntN(i + 1)
		perm[i], perm[j] = perm[j], perm[i]
	}
	return perm
}

// mix64 is the splitmix64 finalizer.
func mix64(x uint64) uint64 {
	x += seedGamma
	x = (x ^ (x >> 30)) * 0xBF58476D1CE4E5B9
	x = (x ^ (x >> 27)) * 0x94D049BB133111EB
	return x ^ (x >> 31)
}

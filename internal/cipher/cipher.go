// Package cipher implements the substitution stage: a fixed-shift character
// remapping keyed by an integer. Characters outside the chosen alphabet pass
// through untouched so line breaks and indentation survive obfuscation. This
// package is internal; external consumers should use the facade in pkg/core.
package cipher

import (
	"errors"
	"fmt"
)

// Alphabet selects which characters the cipher remaps.
type Alphabet string

const (
	// Letters shifts a-z and A-Z independently, preserving case. Digits,
	// punctuation, whitespace, and non-ASCII bytes are untouched.
	Letters Alphabet = "letters"
	// Printable shifts the visible ASCII range 0x21-0x7E. Space is excluded
	// so indentation and column alignment survive.
	Printable Alphabet = "printable"
)

const (
	letterSpan    = 26
	printableLo   = '!'
	printableHi   = '~'
	printableSpan = int(printableHi-printableLo) + 1
)

// ErrUnknownAlphabet is returned when an alphabet name is not recognised.
var ErrUnknownAlphabet = errors.New("unknown alphabet")

// ParseAlphabet maps a user-supplied name to an Alphabet. The empty string
// selects Letters.
func ParseAlphabet(s string) (Alphabet, error) {
	switch s {
	case "", string(Letters):
		return Letters, nil
	case string(Printable):
		return Printable, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownAlphabet, s)
}

// Cipher is a substitution cipher over a fixed alphabet. The zero value is
// not usable; construct with New.
type Cipher struct {
	alphabet Alphabet
}

// New returns a Cipher over the given alphabet.
func New(a Alphabet) (Cipher, error) {
	switch a {
	case Letters, Printable:
		return Cipher{alphabet: a}, nil
	}
	return Cipher{}, fmt.Errorf("%w: %q", ErrUnknownAlphabet, string(a))
}

// Alphabet returns the alphabet the cipher operates on.
func (c Cipher) Alphabet() Alphabet { return c.alphabet }

// Obfuscate shifts every in-alphabet byte forward by key positions. Any int
// key is accepted and reduced modulo the alphabet span, so key 0 (or any
// multiple of the span) is the identity. Deterministic: same buffer and key
// always produce the same output.
func (c Cipher) Obfuscate(buf []byte, key int) []byte {
	return c.shift(buf, key)
}

// Deobfuscate inverts Obfuscate by shifting backward by the same key, reduced
// modulo the alphabet span exactly as Obfuscate does.
func (c Cipher) Deobfuscate(buf []byte, key int) []byte {
	return c.shift(buf, -key)
}

func (c Cipher) shift(buf []byte, key int) []byte {
	out := make([]byte, len(buf))
	switch c.alphabet {
	case Printable:
		k := reduce(key, printableSpan)
		for i, b := range buf {
			if b >= printableLo && b <= printableHi {
				out[i] = printableLo + byte((int(b-printableLo)+k)%printableSpan)
			} else {
				out[i] = b
			}
		}
	default:
		k := reduce(key, letterSpan)
		for i, b := range buf {
			switch {
			case b >= 'a' && b <= 'z':
				out[i] = 'a' + byte((int(b-'a')+k)%letterSpan)
			case b >= 'A' && b <= 'Z':
				out[i] = 'A' + byte((int(b-'A')+k)%letterSpan)
			default:
				out[i] = b
			}
		}
	}
	return out
}

// reduce maps an arbitrary int key into [0, span).
func reduce(key, span int) int {
	k := key % span
	if k < 0 {
		k += span
	}
	return k
}

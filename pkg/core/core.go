package core

import (
	"github.com/shroud/shroud/internal/engine"
	"github.com/shroud/shroud/internal/types"
)

// Re-export selected internal types as a stable public API surface.
// These are type aliases so external consumers can depend on a stable path.
// We can replace these with decoupled structs later without breaking callers.
type Config = engine.Config
type Result = engine.Result
type Manifest = types.Manifest
type ShuffleSpec = types.ShuffleSpec
type Stage = types.Stage

// Obfuscate is the stable entrypoint for transforming a buffer. With neither
// stage enabled in cfg it returns the input unchanged.
func Obfuscate(buf []byte, cfg Config) (Result, error) {
	return engine.Run(buf, cfg)
}

// Deobfuscate restores a buffer using the manifest produced by Obfuscate.
func Deobfuscate(buf []byte, m Manifest) ([]byte, error) {
	return engine.Reverse(buf, m)
}

// Checksum exposes the digest used for manifest verification.
// This is exposed for convenience to avoid importing internals directly.
func Checksum(b []byte) string { return engine.Checksum(b) }

// Package core provides a small, stable facade over shroud's internal engine
// for external integrations. It deliberately re-exports a narrow API surface
// so other tools can obfuscate and restore buffers without depending on
// internal implementation packages.
//
// Example:
//
//	cfg := core.Config{Substitution: true, Shuffle: true, Key: 42, Seed: 7}
//	res, err := core.Obfuscate([]byte("hello\nworld\n"), cfg)
//	if err != nil { /* handle */ }
//	back, err := core.Deobfuscate(res.Output, res.Manifest())
package core

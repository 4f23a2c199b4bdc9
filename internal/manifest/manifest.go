// Package manifest persists the reversal metadata of an obfuscation run as a
// JSON sidecar next to the output file. The original content cannot be
// recovered without it when shuffling was used, so it is written before the
// run is reported as successful.
package manifest

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/shroud/shroud/internal/types"
)

// Suffix is appended to the output path to derive the sidecar path.
const Suffix = ".shroud.json"

// ErrChecksumMismatch is returned when a buffer does not match the checksum
// recorded in the manifest it is being verified against.
var ErrChecksumMismatch = errors.New("buffer does not match manifest checksum")

// PathFor derives the sidecar path for an output file.
func PathFor(output string) string {
	return output + Suffix
}

// Save writes the manifest to path with owner-only permissions; the key and
// seed inside are what make the output recoverable.
func Save(path string, m types.Manifest) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0600)
	if err != nil {
		return fmt.Errorf("failed to create manifest: %w", err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(m); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}
	return nil
}

// Load reads a manifest from path.
func Load(path string) (types.Manifest, error) {
	var m types.Manifest
	b, err := os.ReadFile(path)
	if err != nil {
		return m, fmt.Errorf("failed to open manifest: %w", err)
	}
	if err := json.Unmarshal(b, &m); err != nil {
		return m, fmt.Errorf("failed to parse manifest %s: %w", path, err)
	}
	if len(m.Stages) == 0 && m.InputSum == "" {
		return m, fmt.Errorf("manifest %s records no run", path)
	}
	return m, nil
}

// VerifyOutput checks that an obfuscated buffer's checksum matches the
// manifest's recorded output checksum.
func VerifyOutput(m types.Manifest, sum string) error {
	if m.OutputSum != "" && m.OutputSum != sum {
		return fmt.Errorf("%w: recorded %s, have %s", ErrChecksumMismatch, m.OutputSum, sum)
	}
	return nil
}

// VerifyInput checks that a restored buffer matches the manifest's recorded
// input checksum.
func VerifyInput(m types.Manifest, sum string) error {
	if m.InputSum != "" && m.InputSum != sum {
		return fmt.Errorf("%w: recorded %s, have %s", ErrChecksumMismatch, m.InputSum, sum)
	}
	return nil
}

package core

import (
	"encoding/json"
	"io"
)

// MarshalManifest pretty-prints a manifest as JSON for humans or pipelines.
func MarshalManifest(w io.Writer, m Manifest) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(m)
}

// UnmarshalManifest decodes manifest JSON, useful for ingestion tests.
func UnmarshalManifest(r io.Reader) (Manifest, error) {
	var m Manifest
	if err := json.NewDecoder(r).Decode(&m); err != nil {
		return Manifest{}, err
	}
	return m, nil
}

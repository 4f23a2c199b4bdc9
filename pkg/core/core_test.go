package core_test

import (
	"bytes"
	"testing"

	"github.com/shroud/shroud/pkg/core"
)

func TestObfuscateDeobfuscate_RoundTrip(t *testing.T) {
	in := []byte("#!/bin/sh\necho \"hello world\"\nexit 0\n")
	res, err := core.Obfuscate(in, core.Config{Substitution: true, Shuffle: true, Key: 42, Seed: 7})
	if err != nil {
		t.Fatalf("Obfuscate: %v", err)
	}
	if bytes.Equal(res.Output, in) {
		t.Fatal("output should differ from input")
	}
	back, err := core.Deobfuscate(res.Output, res.Manifest())
	if err != nil {
		t.Fatalf("Deobfuscate: %v", err)
	}
	if !bytes.Equal(back, in) {
		t.Fatalf("round trip failed: %q", back)
	}
}

func TestManifestJSON_RoundTrip(t *testing.T) {
	res, err := core.Obfuscate([]byte("alpha beta gamma\n"), core.Config{Shuffle: true, Seed: 3})
	if err != nil {
		t.Fatalf("Obfuscate: %v", err)
	}
	var buf bytes.Buffer
	if err := core.MarshalManifest(&buf, res.Manifest()); err != nil {
		t.Fatalf("MarshalManifest: %v", err)
	}
	m, err := core.UnmarshalManifest(&buf)
	if err != nil {
		t.Fatalf("UnmarshalManifest: %v", err)
	}
	back, err := core.Deobfuscate(res.Output, m)
	if err != nil {
		t.Fatalf("Deobfuscate: %v", err)
	}
	if !bytes.Equal(back, []byte("alpha beta gamma\n")) {
		t.Fatalf("round trip through JSON failed: %q", back)
	}
}

func TestChecksum(t *testing.T) {
	if core.Checksum([]byte("a")) == core.Checksum([]byte("b")) {
		t.Fatal("different buffers should have different checksums")
	}
}

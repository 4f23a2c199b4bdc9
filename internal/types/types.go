package types

import "time"

// Stage identifies one transformation applied to a buffer.
type Stage string

const (
	StageSubstitution Stage = "substitution"
	StageShuffle      Stage = "shuffle"
)

// ShuffleSpec records the parameters needed to invert a shuffle: the seed the
// permutations were derived from, plus the buffer shape they were derived for.
type ShuffleSpec struct {
	Seed   uint64 `json:"seed"`
	Length int    `json:"length"`
	Lines  int    `json:"lines"`
}

// Manifest describes one obfuscation run with everything required to reverse
// it: the stages in the order they were applied, the cipher key and alphabet,
// the shuffle spec, and checksums of the buffer before and after.
type Manifest struct {
	Version   int          `json:"version"`
	CreatedAt time.Time    `json:"created_at"`
	Input     string       `json:"input,omitempty"`
	Output    string       `json:"output,omitempty"`
	Stages    []Stage      `json:"stages"`
	Alphabet  string       `json:"alphabet,omitempty"`
	Key       *int         `json:"key,omitempty"`
	Shuffle   *ShuffleSpec `json:"shuffle,omitempty"`
	InputSum  string       `json:"input_sum"`
	OutputSum string       `json:"output_sum"`
}

// HasStage reports whether the manifest lists the given stage.
func (m Manifest) HasStage(s Stage) bool {
	for _, st := range m.Stages {
		if st == s {
			return true
		}
	}
	return false
}

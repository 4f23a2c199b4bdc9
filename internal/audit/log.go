// Package audit keeps an append-only JSONL history of obfuscation runs. The
// log never stores keys or seeds; reversal parameters live only in manifests.
package audit

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/shroud/shroud/internal/types"
)

// RunRecord summarizes one obfuscate or deobfuscate invocation.
type RunRecord struct {
	Timestamp time.Time     `json:"timestamp"`
	RunID     string        `json:"run_id"`
	Op        string        `json:"op"`
	Input     string        `json:"input"`
	Output    string        `json:"output"`
	Stages    []types.Stage `json:"stages"`
	Bytes     int           `json:"bytes"`
	Duration  string        `json:"duration"`
}

// RunLog appends and reads run records at a fixed path.
type RunLog struct {
	logPath string
}

// NewRunLog places the history file in dir, or under .git when dir is a
// repository root so the log does not pollute the working tree.
func NewRunLog(dir string) *RunLog {
	gitDir := filepath.Join(dir, ".git")
	logPath := filepath.Join(dir, ".shroud_history.jsonl")
	if st, err := os.Stat(gitDir); err == nil && st.IsDir() {
		logPath = filepath.Join(gitDir, "shroud_history.jsonl")
	}
	return &RunLog{logPath: logPath}
}

// LoadHistory returns all records, newest first. Unparseable lines are
// skipped rather than failing the whole read.
func (l *RunLog) LoadHistory() ([]RunRecord, error) {
	f, err := os.Open(l.logPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open run log: %w", err)
	}
	defer f.Close()

	// One record per line; a torn or corrupted line must not take the rest
	// of the log with it, so parse line-by-line instead of streaming one
	// decoder over the whole file.
	var records []RunRecord
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		var record RunRecord
		if err := json.Unmarshal(line, &record); err != nil {
			continue
		}
		records = append(records, record)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read run log: %w", err)
	}

	for i, j := 0, len(records)-1; i < j; i, j = i+1, j-1 {
		records[i], records[j] = records[j], records[i]
	}
	return records, nil
}

// Append writes one record to the end of the log.
func (l *RunLog) Append(record RunRecord) error {
	if record.RunID == "" {
		record.RunID = fmt.Sprintf("run_%d", time.Now().UnixNano())
	}
	if record.Timestamp.IsZero() {
		record.Timestamp = time.Now().UTC()
	}

	f, err := os.OpenFile(l.logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
	if err != nil {
		return fmt.Errorf("failed to open run log: %w", err)
	}
	defer f.Close()

	encoder := json.NewEncoder(f)
	if err := encoder.Encode(record); err != nil {
		return fmt.Errorf("failed to write run record: %w", err)
	}
	return nil
}

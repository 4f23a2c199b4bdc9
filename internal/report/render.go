// Package report renders manifests and run history for the terminal.
package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/shroud/shroud/internal/audit"
	"github.com/shroud/shroud/internal/types"
)

// PrintManifest renders the reversal metadata of one run as a field/value
// table. Key and seed are shown as present/absent only.
func PrintManifest(w io.Writer, m types.Manifest) error {
	table := tablewriter.NewWriter(w)
	table.Header("Field", "Value")

	rows := [][]string{
		{"version", fmt.Sprintf("%d", m.Version)},
		{"created", m.CreatedAt.Format(time.RFC3339)},
		{"stages", stageList(m.Stages)},
	}
	if m.Input != "" {
		rows = append(rows, []string{"input", m.Input})
	}
	if m.Output != "" {
		rows = append(rows, []string{"output", m.Output})
	}
	if m.HasStage(types.StageSubstitution) {
		rows = append(rows, []string{"alphabet", m.Alphabet})
		rows = append(rows, []string{"key", presence(m.Key != nil)})
	}
	if m.Shuffle != nil {
		rows = append(rows, []string{"shuffle lines", fmt.Sprintf("%d", m.Shuffle.Lines)})
		rows = append(rows, []string{"shuffle length", fmt.Sprintf("%d", m.Shuffle.Length)})
	}
	rows = append(rows, []string{"input checksum", m.InputSum})
	rows = append(rows, []string{"output checksum", m.OutputSum})

	for _, row := range rows {
		if err := table.Append(row); err != nil {
			return err
		}
	}
	return table.Render()
}

// PrintHistory renders run records, newest first, one row per run.
func PrintHistory(w io.Writer, recs []audit.RunRecord) error {
	if len(recs) == 0 {
		_, err := fmt.Fprintln(w, "No runs recorded.")
		return err
	}
	table := tablewriter.NewWriter(w)
	table.Header("Time", "Op", "Stages", "Input", "Output", "Bytes")
	for _, r := range recs {
		err := table.Append([]string{
			r.Timestamp.Format("2006-01-02 15:04:05"),
			r.Op,
			stageList(r.Stages),
			r.Input,
			r.Output,
			fmt.Sprintf("%d", r.Bytes),
		})
		if err != nil {
			return err
		}
	}
	return table.Render()
}

func stageList(stages []types.Stage) string {
	if len(stages) == 0 {
		return "none"
	}
	out := make([]string, len(stages))
	for i, s := range stages {
		out[i] = string(s)
	}
	return strings.Join(out, ",")
}

func presence(set bool) string {
	if set {
		return "recorded"
	}
	return "absent"
}

package shroud

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/shroud/shroud/internal/audit"
	"github.com/shroud/shroud/internal/engine"
	"github.com/shroud/shroud/internal/manifest"
)

var (
	flagDeobManifest string
	flagDeobKey      int
	flagForce        bool
)

func init() {
	cmd := &cobra.Command{
		Use:   "deobfuscate <input> <output>",
		Short: "Restore an obfuscated file",
		Long:  "Deobfuscate reads an obfuscated file and its manifest, applies the stage inverses in reverse order, verifies the restored content against the recorded checksum, and writes the original bytes.",
		Args:  cobra.ExactArgs(2),
		RunE:  runDeobfuscate,
	}
	rootCmd.AddCommand(cmd)

	cmd.Flags().StringVar(&flagDeobManifest, "manifest", "", "manifest path (default <input>"+manifest.Suffix+")")
	cmd.Flags().IntVarP(&flagDeobKey, "key", "k", 0, "override the substitution key recorded in the manifest")
	cmd.Flags().BoolVar(&flagForce, "force", false, "skip checksum verification")
}

func runDeobfuscate(cmd *cobra.Command, args []string) error {
	input, output := args[0], args[1]

	mpath := flagDeobManifest
	if mpath == "" {
		mpath = manifest.PathFor(input)
	}
	m, err := manifest.Load(mpath)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(input)
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	if !flagForce {
		if err := manifest.VerifyOutput(m, engine.Checksum(data)); err != nil {
			return fmt.Errorf("%s was modified after obfuscation (use --force to reverse anyway): %w", input, err)
		}
	}

	if cmd.Flags().Changed("key") {
		key := flagDeobKey
		m.Key = &key
		log.Debug().Msg("using substitution key from the command line")
	}

	restored, err := engine.Reverse(data, m)
	if err != nil {
		return err
	}
	if !flagForce {
		if err := manifest.VerifyInput(m, engine.Checksum(restored)); err != nil {
			return fmt.Errorf("restored content does not match the original: %w", err)
		}
	}

	if err := os.WriteFile(output, restored, 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	log.Info().Str("output", output).Msg("restored file saved")

	rec := audit.RunRecord{
		Op:     "deobfuscate",
		Input:  input,
		Output: output,
		Stages: m.Stages,
		Bytes:  len(restored),
	}
	if err := audit.NewRunLog(filepath.Dir(input)).Append(rec); err != nil {
		log.Debug().Err(err).Msg("could not record run history")
	}
	return nil
}

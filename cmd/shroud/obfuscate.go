package shroud

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/shroud/shroud/internal/audit"
	"github.com/shroud/shroud/internal/cipher"
	"github.com/shroud/shroud/internal/config"
	"github.com/shroud/shroud/internal/engine"
	"github.com/shroud/shroud/internal/manifest"
)

var (
	flagSubstitution bool
	flagShuffle      bool
	flagKey          int
	flagSeed         uint64
	flagAlphabet     string
	flagManifest     string
	flagStdout       bool
	flagNoHistory    bool
)

func init() {
	cmd := &cobra.Command{
		Use:   "obfuscate <input> <output>",
		Short: "Obfuscate a text file",
		Long:  "Obfuscate reads a file, applies the enabled stages (substitution cipher first, then character shuffling), writes the result, and records the reversal parameters in a manifest next to the output.",
		Args:  cobra.ExactArgs(2),
		RunE:  runObfuscate,
	}
	rootCmd.AddCommand(cmd)

	cmd.Flags().BoolVarP(&flagSubstitution, "substitution", "s", false, "enable the substitution cipher stage")
	cmd.Flags().BoolVarP(&flagShuffle, "shuffle", "r", false, "enable the character shuffling stage")
	cmd.Flags().IntVarP(&flagKey, "key", "k", 42, "substitution cipher key (any integer, reduced modulo the alphabet size)")
	cmd.Flags().Uint64Var(&flagSeed, "seed", 0, "shuffle seed (0 = derive a reproducible seed from the input content)")
	cmd.Flags().StringVar(&flagAlphabet, "alphabet", "", "substitution alphabet: letters|printable (default letters)")
	cmd.Flags().StringVar(&flagManifest, "manifest", "", "manifest path (default <output>"+manifest.Suffix+")")
	cmd.Flags().BoolVar(&flagStdout, "stdout", false, "also write the obfuscated content to stdout")
	cmd.Flags().BoolVar(&flagNoHistory, "no-history", false, "do not record the run in the history log")
}

func runObfuscate(cmd *cobra.Command, args []string) error {
	input, output := args[0], args[1]
	dir := filepath.Dir(input)

	// Load configs: CLI > local > global
	var gcfg, lcfg config.FileConfig
	if c, err := config.LoadGlobal(); err == nil {
		gcfg = c
	}
	if c, err := config.LoadLocal(dir); err == nil {
		lcfg = c
	}

	alpha, err := cipher.ParseAlphabet(pickString(flagAlphabet, lcfg.Alphabet, gcfg.Alphabet))
	if err != nil {
		return err
	}
	cfg := engine.Config{
		Substitution: pickBool(flagSubstitution, lcfg.Substitution, gcfg.Substitution),
		Shuffle:      pickBool(flagShuffle, lcfg.Shuffle, gcfg.Shuffle),
		Key:          pickInt(flagKey, cmd.Flags().Changed("key"), lcfg.Key, gcfg.Key),
		Seed:         pickUint64(flagSeed, lcfg.Seed, gcfg.Seed),
		Alphabet:     alpha,
	}

	data, err := os.ReadFile(input)
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	if len(data) == 0 {
		log.Warn().Str("input", input).Msg("input file is empty")
	}

	if !cfg.Substitution && !cfg.Shuffle {
		log.Warn().Msg("no stages enabled; output will equal the input (use -s and/or -r)")
	}
	if cfg.Shuffle && cfg.Seed == 0 {
		cfg.Seed = engine.DeriveSeed(data)
		log.Debug().Uint64("seed", cfg.Seed).Msg("derived shuffle seed from input content")
	}

	res, err := engine.Run(data, cfg)
	if err != nil {
		return err
	}
	for _, stage := range res.Stages {
		log.Info().Str("stage", string(stage)).Msg("applied stage")
	}

	if err := os.WriteFile(output, res.Output, 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	if flagStdout {
		if _, err := cmd.OutOrStdout().Write(res.Output); err != nil {
			return err
		}
	}

	mpath := flagManifest
	if mpath == "" {
		mpath = manifest.PathFor(output)
	}
	m := res.Manifest()
	m.Input = input
	m.Output = output
	if err := manifest.Save(mpath, m); err != nil {
		return err
	}
	log.Info().Str("output", output).Str("manifest", mpath).Dur("took", res.Duration).Msg("obfuscated file saved")

	if !flagNoHistory {
		rec := audit.RunRecord{
			Op:       "obfuscate",
			Input:    input,
			Output:   output,
			Stages:   res.Stages,
			Bytes:    len(data),
			Duration: res.Duration.String(),
		}
		if err := audit.NewRunLog(dir).Append(rec); err != nil {
			log.Debug().Err(err).Msg("could not record run history")
		}
	}
	return nil
}

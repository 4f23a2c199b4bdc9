package shroud

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/shroud/shroud/internal/config"
	"github.com/shroud/shroud/internal/logging"
)

var (
	flagLogLevel string

	log zerolog.Logger

	version = "0.1.0"
)

// rootCmd is the base Cobra command for the shroud CLI.
var rootCmd = &cobra.Command{
	Use:           "shroud",
	Short:         "Obfuscate text files reversibly",
	Long:          "Shroud makes the textual content of a file harder to casually read while keeping it byte-recoverable. It shifts characters with a keyed substitution cipher, shuffles them with a seeded reversible permutation, or both, and records the reversal parameters in a manifest.",
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the shroud CLI. It should be called by the main package.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(2)
	}
}

func init() {
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, _ []string) {
		log = logging.New(cmd.ErrOrStderr(), resolveLogLevel())
	}
	rootCmd.PersistentFlags().StringVarP(&flagLogLevel, "log-level", "l", "info", "log level: trace|debug|info|warn|error")
}

// resolveLogLevel applies the usual CLI > local > global precedence to the
// log level. The flag only wins by default value when no config file sets one.
func resolveLogLevel() string {
	if rootCmd.PersistentFlags().Changed("log-level") {
		return flagLogLevel
	}
	var gcfg, lcfg config.FileConfig
	if c, err := config.LoadGlobal(); err == nil {
		gcfg = c
	}
	if c, err := config.LoadLocal("."); err == nil {
		lcfg = c
	}
	if lvl := pickString("", lcfg.LogLevel, gcfg.LogLevel); lvl != "" {
		return lvl
	}
	return flagLogLevel
}

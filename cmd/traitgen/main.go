package main

import (
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"traitgen/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "traitgen",
	Short: "Trait synthesis planner for generated composite types",
	Long: `traitgen decides which behaviors (string conversion, hashing, equality,
ordering, conversions, serialization) to synthesize for each declared type,
without clobbering anything written by hand.`,
}

func main() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(planCmd)
	rootCmd.AddCommand(detectCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().Bool("timings", false, "show timing information")
	rootCmd.PersistentFlags().Int("max-diagnostics", 100, "maximum number of diagnostics to show")
	rootCmd.PersistentFlags().String("cpu-profile", "", "write a CPU profile to the given path")
	rootCmd.PersistentFlags().String("mem-profile", "", "write a heap profile to the given path")
	rootCmd.PersistentFlags().String("runtime-trace", "", "write a runtime execution trace to the given path")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// resolveColor applies the --color flag to the global color state and reports
// whether output should be colorized.
func resolveColor(cmd *cobra.Command) bool {
	mode, _ := cmd.Flags().GetString("color")
	switch mode {
	case "on":
		color.NoColor = false
	case "off":
		color.NoColor = true
	default:
		color.NoColor = !isTerminal(os.Stdout)
	}
	return !color.NoColor
}

func maxDiagnostics(cmd *cobra.Command) int {
	n, _ := cmd.Flags().GetInt("max-diagnostics")
	if n <= 0 {
		n = 100
	}
	return n
}

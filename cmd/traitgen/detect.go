package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"traitgen/internal/detect"
	"traitgen/internal/traits"
)

var detectCmd = &cobra.Command{
	Use:          "detect <manifest.toml>",
	Short:        "Show which traits each type already implements by hand",
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE:         runDetect,
}

func runDetect(cmd *cobra.Command, args []string) error {
	colorize := resolveColor(cmd)
	maxDiag := maxDiagnostics(cmd)

	_, shapes, bag, err := loadShapes(args[0], maxDiag)
	if err != nil {
		return err
	}

	head := color.New(color.Bold)
	dim := color.New(color.Faint)
	out := cmd.OutOrStdout()

	for _, s := range shapes {
		existing := detect.Detect(s)
		name := s.Ref.String()
		if colorize {
			name = head.Sprint(name)
		}
		if existing.Len() == 0 {
			none := "(none)"
			if colorize {
				none = dim.Sprint(none)
			}
			fmt.Fprintf(out, "%s  %s\n", name, none)
			continue
		}
		fmt.Fprintf(out, "%s  %s\n", name, joinTraits(existing.List()))
	}

	if bag.HasWarnings() {
		fmt.Fprintln(out)
		for _, d := range bag.Items() {
			fmt.Fprintf(out, "%s [%s] %s: %s\n", d.Severity, d.Code.ID(), d.Type, d.Message)
		}
	}
	return nil
}

func joinTraits(list []traits.Trait) string {
	s := ""
	for i, t := range list {
		if i > 0 {
			s += ", "
		}
		s += t.String()
	}
	return s
}

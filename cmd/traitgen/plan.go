package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"traitgen/internal/diag"
	"traitgen/internal/driver"
	"traitgen/internal/observ"
	"traitgen/internal/plan"
	"traitgen/internal/planfmt"
	"traitgen/internal/traits"
)

var (
	planFormat           string
	planJobs             int
	planNoWarnings       bool
	planWarningsAsErrors bool
	planDiskCache        bool
	planUI               string
	planShowDigest       bool
)

func init() {
	planCmd.Flags().StringVar(&planFormat, "format", "pretty", "output format (pretty|json)")
	planCmd.Flags().IntVar(&planJobs, "jobs", 0, "parallel workers (0 = number of CPUs)")
	planCmd.Flags().BoolVar(&planNoWarnings, "no-warnings", false, "hide warnings from output")
	planCmd.Flags().BoolVar(&planWarningsAsErrors, "warnings-as-errors", false, "exit non-zero when planning produced warnings")
	planCmd.Flags().BoolVar(&planDiskCache, "disk-cache", false, "persist plans to the user cache directory")
	planCmd.Flags().StringVar(&planUI, "ui", "off", "live progress display (auto|on|off)")
	planCmd.Flags().BoolVar(&planShowDigest, "digest", false, "include each type's shape digest")
}

var planCmd = &cobra.Command{
	Use:          "plan <manifest.toml>",
	Short:        "Decide which traits to synthesize for each declared type",
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE:         runPlan,
}

func runPlan(cmd *cobra.Command, args []string) error {
	stopProfiling, err := setupProfiling(cmd)
	if err != nil {
		return err
	}
	defer stopProfiling()

	colorize := resolveColor(cmd)
	quiet, _ := cmd.Flags().GetBool("quiet")
	timings, _ := cmd.Flags().GetBool("timings")
	maxDiag := maxDiagnostics(cmd)

	switch planFormat {
	case "pretty", "json":
	default:
		return fmt.Errorf("unsupported format %q (must be pretty or json)", planFormat)
	}
	uiMode, err := readUIMode(planUI)
	if err != nil {
		return err
	}

	in, shapes, loadBag, err := loadShapes(args[0], maxDiag)
	if err != nil {
		return err
	}

	opts := driver.Options{
		Jobs:           planJobs,
		MaxDiagnostics: maxDiag,
		Memo:           driver.NewMemo(),
	}
	if timings {
		opts.Timer = observ.NewTimer()
	}
	if planDiskCache {
		disk, err := driver.OpenDiskCache("traitgen")
		if err != nil {
			return fmt.Errorf("open disk cache: %w", err)
		}
		opts.Disk = disk
	}

	var results []driver.Result
	if shouldUseTUI(uiMode) && planFormat == "pretty" {
		results, err = runPlanWithUI(cmd.Context(), "planning", in, shapes, opts)
	} else {
		results, err = driver.PlanAll(cmd.Context(), in, shapes, opts)
	}
	if err != nil {
		return err
	}

	bag := driver.MergeBags(results, maxDiag)
	bag.Merge(loadBag)
	bag.Dedup()
	bag.Sort()
	if planNoWarnings {
		bag = dropWarnings(bag, maxDiag)
	}

	out := cmd.OutOrStdout()
	switch planFormat {
	case "json":
		if err := planfmt.JSON(out, results, bag, planfmt.JSONOpts{Max: maxDiag}); err != nil {
			return err
		}
	default:
		planfmt.Pretty(out, results, bag, planfmt.PrettyOpts{
			Color:       colorize,
			ShowMembers: !quiet,
			ShowRemedy:  !quiet,
			ShowDigest:  planShowDigest,
		})
	}

	if timings && opts.Timer != nil {
		fmt.Fprint(os.Stderr, opts.Timer.Summary())
	}

	if bag.HasErrors() {
		return fmt.Errorf("planning reported errors")
	}
	if planWarningsAsErrors && bag.HasWarnings() {
		return fmt.Errorf("planning reported warnings (treated as errors)")
	}
	return nil
}

// dropWarnings keeps only diagnostics at error severity and above.
func dropWarnings(bag *diag.Bag, maxDiag int) *diag.Bag {
	out := diag.NewBag(maxDiag)
	for _, d := range bag.Items() {
		if d.Severity >= diag.SevError {
			out.Add(d)
		}
	}
	return out
}

// refused reports whether any requested trait was refused.
func refused(p *plan.Plan) bool {
	for t := traits.Trait(0); t < traits.Count; t++ {
		if p.Decisions[t].Kind == plan.Refuse {
			return true
		}
	}
	return false
}

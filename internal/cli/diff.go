package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MuddySheep/Shamirs-Leak/internal/output"
	"github.com/MuddySheep/Shamirs-Leak/internal/zpubdiff"
)

// diffCmd scores how close a candidate zpub is to a target zpub, the
// same metric the search driver uses to rank dead ends during a run.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var diffCmd = &cobra.Command{
	Use:   "diff",
	Short: "Compare a candidate zpub against a target zpub",
	Long: `diff reports the shared prefix length, Hamming distance, and
similarity score between a candidate extended public key and the
target, the same metrics recorded in the attempt log during a search.

Example:
  shamirleak diff --candidate zpub6Abc... --target zpub6Xyz...`,
	RunE: runDiff,
}

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level flag variables
var (
	diffCandidate string
	diffTarget    string
)

func init() {
	rootCmd.AddCommand(diffCmd)

	flags := diffCmd.Flags()
	flags.StringVar(&diffCandidate, "candidate", "", "candidate zpub")
	flags.StringVar(&diffTarget, "target", "", "target zpub")

	_ = diffCmd.MarkFlagRequired("candidate")
	_ = diffCmd.MarkFlagRequired("target")
}

func runDiff(cmd *cobra.Command, _ []string) error {
	metrics := zpubdiff.Diff(diffCandidate, diffTarget)

	format := output.FormatText
	if formatter != nil {
		format = formatter.Format()
	}

	if format == output.FormatJSON {
		return formatter.Print(metrics)
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "Common prefix length: %d\n", metrics.PrefixLen)
	fmt.Fprintf(w, "Hamming distance:     %d\n", metrics.HammingDistance)
	fmt.Fprintf(w, "Similarity:           %.4f\n", metrics.Similarity)
	return nil
}

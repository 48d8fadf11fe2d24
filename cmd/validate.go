package main

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/gulfstar-ops/vesselkpi/internal/integrity"
	"github.com/gulfstar-ops/vesselkpi/internal/model"
)

var (
	validateJSON   bool
	validateStrict bool
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Run data-integrity checks over the spreadsheet exports",
	Long: `Runs the data-integrity checks (date anomalies, month collapse, unknown
allocation codes, unresolved locations, missing timestamps, negative measures)
over the loaded batch and prints the findings with an overall quality score.`,
	RunE: func(_ *cobra.Command, _ []string) error {
		reg, err := loadRegistry()
		if err != nil {
			return err
		}

		batch, stats, err := loadBatch()
		if err != nil {
			return err
		}

		report := integrity.NewValidator(reg).Validate(batch)

		if validateJSON {
			out, err := json.MarshalIndent(report, "", "  ")
			if err != nil {
				return eris.Wrap(err, "marshal report")
			}
			fmt.Println(string(out))
		} else {
			printReport(report, batch.Size(), stats.Skipped)
		}

		if validateStrict && report.HasErrors() {
			return eris.New("validation found error-severity issues")
		}
		return nil
	},
}

func printReport(report *model.Report, records, skipped int) {
	fmt.Printf("Records loaded: %d (skipped %d)\n", records, skipped)
	fmt.Printf("Quality score:  %.1f / 100\n\n", report.Score)

	if len(report.Issues) == 0 {
		fmt.Println("No issues found.")
		return
	}

	rank := map[model.Severity]int{
		model.SeverityError:   0,
		model.SeverityWarning: 1,
		model.SeverityInfo:    2,
	}
	issues := append([]model.Issue(nil), report.Issues...)
	sort.SliceStable(issues, func(i, j int) bool {
		return rank[issues[i].Severity] < rank[issues[j].Severity]
	})

	for _, is := range issues {
		fmt.Printf("[%s] %s: %s", is.Severity, is.Category, is.Message)
		if is.Count > 1 {
			fmt.Printf(" (%d occurrences)", is.Count)
		}
		fmt.Println()
	}
}

func init() {
	validateCmd.Flags().BoolVar(&validateJSON, "json", false, "emit JSON instead of text")
	validateCmd.Flags().BoolVar(&validateStrict, "strict", false, "exit non-zero when any error-severity issue is found")
	rootCmd.AddCommand(validateCmd)
}

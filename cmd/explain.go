package main

import (
	"encoding/json"
	"fmt"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/gulfstar-ops/vesselkpi/internal/integrity"
	"github.com/gulfstar-ops/vesselkpi/pkg/anthropic"
)

const explainSystemPrompt = `You are an offshore logistics data analyst. You are given
the JSON output of a data-integrity pass over supply vessel reporting
spreadsheets (voyage events, manifests, cost allocations, bulk fluid
transfers). Write a short plain-language briefing for an operations manager:
what the findings mean, which ones actually threaten the monthly KPI numbers,
and what to ask the reporting vendor to fix first. Be concrete and skip
pleasantries.`

var explainCmd = &cobra.Command{
	Use:   "explain",
	Short: "Summarize the integrity findings in plain language",
	Long: `Runs the data-integrity checks and asks the model for a short
plain-language briefing on what the findings mean for the KPI numbers.
Requires anthropic.key (or VESSELKPI_ANTHROPIC_KEY).`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		if cfg.Anthropic.Key == "" {
			return eris.New("explain: anthropic.key is not configured")
		}

		reg, err := loadRegistry()
		if err != nil {
			return err
		}
		batch, _, err := loadBatch()
		if err != nil {
			return err
		}

		report := integrity.NewValidator(reg).Validate(batch)
		payload, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return eris.Wrap(err, "marshal report")
		}

		client := anthropic.NewClient(cfg.Anthropic.Key)
		resp, err := client.CreateMessage(ctx, anthropic.MessageRequest{
			Model:     cfg.Anthropic.Model,
			MaxTokens: cfg.Anthropic.MaxTokens,
			System:    explainSystemPrompt,
			Messages: []anthropic.Message{
				{Role: "user", Content: string(payload)},
			},
		})
		if err != nil {
			return err
		}

		fmt.Println(resp.Text)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(explainCmd)
}

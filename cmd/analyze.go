package main

import (
	"fmt"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/justicejet/defensepack/internal/model"
)

var (
	analyzeFiles     []string
	analyzePageLimit string
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Produce a single combined defense analysis for local documents",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		p, err := initPipeline("analyze")
		if err != nil {
			return err
		}
		ex, err := initExtractor()
		if err != nil {
			return err
		}

		text, err := documentText(ctx, ex, analyzeFiles)
		if err != nil {
			return eris.Wrap(err, "analyze: extract documents")
		}

		content, err := p.Analyze(ctx, text, model.DepthForPageLimit(analyzePageLimit))
		if err != nil {
			return err
		}

		_, err = fmt.Fprintln(cmd.OutOrStdout(), content)
		return err
	},
}

func init() {
	analyzeCmd.Flags().StringSliceVarP(&analyzeFiles, "file", "f", nil, "case document to include (repeatable)")
	analyzeCmd.Flags().StringVar(&analyzePageLimit, "page-limit", model.DefaultPageLimit, "page limit selecting analysis depth: 10, 25 or 50")
	rootCmd.AddCommand(analyzeCmd)
}

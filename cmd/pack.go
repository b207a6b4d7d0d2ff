package main

import (
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/justicejet/defensepack/internal/model"
)

var (
	packFiles        []string
	packJurisdiction string
	packCaseType     string
	packOutput       string
)

var packCmd = &cobra.Command{
	Use:   "pack",
	Short: "Generate a defense pack for local case documents",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		p, err := initPipeline("pack")
		if err != nil {
			return err
		}
		ex, err := initExtractor()
		if err != nil {
			return err
		}

		text, err := documentText(ctx, ex, packFiles)
		if err != nil {
			return eris.Wrap(err, "pack: extract documents")
		}

		pack, err := p.Run(ctx, model.NewCaseRequest(text, packJurisdiction, packCaseType))
		if err != nil {
			return eris.Wrap(err, "pack: run")
		}

		zap.L().Info("defense pack complete",
			zap.String("pack_id", pack.ID),
			zap.Int("research_terms", len(pack.Research)),
			zap.Float64("estimated_cost_usd", pack.Usage.Cost),
		)

		return writeOutput(cmd.OutOrStdout(), packOutput, pack)
	},
}

func init() {
	packCmd.Flags().StringSliceVarP(&packFiles, "file", "f", nil, "case document to include (repeatable)")
	packCmd.Flags().StringVarP(&packJurisdiction, "jurisdiction", "j", "", "jurisdiction code (default CA)")
	packCmd.Flags().StringVarP(&packCaseType, "case-type", "c", "", "case type code (default EVICTION)")
	packCmd.Flags().StringVarP(&packOutput, "output", "o", "json", "output format: json or yaml")
	rootCmd.AddCommand(packCmd)
}

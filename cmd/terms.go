package main

import (
	"fmt"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/justicejet/defensepack/internal/model"
	"github.com/justicejet/defensepack/internal/prompt"
	"github.com/justicejet/defensepack/internal/research"
)

var (
	termsFiles        []string
	termsJurisdiction string
	termsCaseType     string
)

var termsCmd = &cobra.Command{
	Use:   "terms",
	Short: "Print the research terms derived for local documents",
	Long:  "Derives research terms exactly as a defense pack would, without calling any external API.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ex, err := initExtractor()
		if err != nil {
			return err
		}

		text, err := documentText(cmd.Context(), ex, termsFiles)
		if err != nil {
			return eris.Wrap(err, "terms: extract documents")
		}

		req := model.NewCaseRequest(prompt.Truncate(text, cfg.Pack.MaxInputChars), termsJurisdiction, termsCaseType)
		terms := research.DeriveTerms(req.DocumentText, req.Jurisdiction, req.CaseType,
			cfg.Research.MaxTerms, cfg.Research.MaxExtractedTerms)

		for _, term := range terms {
			if _, err := fmt.Fprintln(cmd.OutOrStdout(), term); err != nil {
				return err
			}
		}
		return nil
	},
}

func init() {
	termsCmd.Flags().StringSliceVarP(&termsFiles, "file", "f", nil, "case document to include (repeatable)")
	termsCmd.Flags().StringVarP(&termsJurisdiction, "jurisdiction", "j", "", "jurisdiction code (default CA)")
	termsCmd.Flags().StringVarP(&termsCaseType, "case-type", "c", "", "case type code (default EVICTION)")
	rootCmd.AddCommand(termsCmd)
}

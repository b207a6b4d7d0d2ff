package main

import (
	"github.com/spf13/cobra"

	"github.com/justicejet/defensepack/internal/model"
)

var (
	searchQuery        string
	searchJurisdiction string
	searchCaseType     string
	searchOutput       string
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Run a raw legal search across the expanded query variants",
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := initPipeline("search")
		if err != nil {
			return err
		}

		resp := p.Search(cmd.Context(), searchQuery,
			model.ParseJurisdiction(searchJurisdiction), model.ParseCaseType(searchCaseType))

		return writeOutput(cmd.OutOrStdout(), searchOutput, resp)
	},
}

func init() {
	searchCmd.Flags().StringVarP(&searchQuery, "query", "q", "", "search query (required)")
	searchCmd.Flags().StringVarP(&searchJurisdiction, "jurisdiction", "j", "", "jurisdiction code (default CA)")
	searchCmd.Flags().StringVarP(&searchCaseType, "case-type", "c", "", "case type code (default EVICTION)")
	searchCmd.Flags().StringVarP(&searchOutput, "output", "o", "json", "output format: json or yaml")
	_ = searchCmd.MarkFlagRequired("query")
	rootCmd.AddCommand(searchCmd)
}

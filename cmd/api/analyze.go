package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"alfredoptarigan/cv-analyzer/internal/models"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze a CV against a job description and print the Markdown report",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return analyze(cmd)
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().String("jd", "", "path to the job description PDF")
	analyzeCmd.Flags().String("cv", "", "path to the CV PDF")
	analyzeCmd.MarkFlagRequired("jd") //nolint:errcheck
	analyzeCmd.MarkFlagRequired("cv") //nolint:errcheck
}

func analyze(cmd *cobra.Command) error {
	_, log, p, err := bootstrap(cmd)
	if err != nil {
		return err
	}
	defer log.Sync() //nolint:errcheck

	jd, _ := cmd.Flags().GetString("jd")
	cv, _ := cmd.Flags().GetString("cv")

	resp, err := p.analyzer.Analyze(cmd.Context(), models.AnalyzeRequest{JDPath: jd, CVPath: cv})
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), resp.Analysis)
	return err
}

package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/emprendevoz/emprende-api/internal/domain/diagnostic"
)

var diagnosticCmd = &cobra.Command{
	Use:   "diagnostic",
	Short: "Diagnostic tools",
}

var diagnosticScoreCmd = &cobra.Command{
	Use:   "score a b c d e",
	Short: "Score five answers (0-3) without touching the database",
	Args:  cobra.ExactArgs(diagnostic.QuestionCount),
	RunE: func(cmd *cobra.Command, args []string) error {
		answers := make([]int, len(args))
		for i, a := range args {
			n, err := strconv.Atoi(a)
			if err != nil {
				return fmt.Errorf("answer %d: %w", i+1, err)
			}
			answers[i] = n
		}
		res, err := diagnostic.Score(answers)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "score %d/%d (%.2f%%) route=%s (%s) stage=%s (%s)\n",
			res.Score, res.MaxScore, res.Percentage, res.Route, res.RouteLabel, res.Stage, res.StageLabel)
		return nil
	},
}

func init() {
	diagnosticCmd.AddCommand(diagnosticScoreCmd)
}

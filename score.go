package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"text_differentiator/extract"
	"text_differentiator/readability"
)

// NewScoreCmd creates the score command.
func NewScoreCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "score [file|-]",
		Short: "Print the readability report of a text",
		Long: `Score prints the word count, average sentence length and Flesch Reading
Ease of a text file, a PDF/DOCX/ODT document, or standard input ("-").

Examples:
  textdiff score lesson.txt
  echo "The cat sat." | textdiff score -
  textdiff score --json worksheet.pdf`,
		Args: cobra.ExactArgs(1),
		RunE: runScoreCmd,
	}

	cmd.Flags().BoolP("json", "j", false, "Output the report as JSON")

	return cmd
}

func runScoreCmd(cmd *cobra.Command, args []string) error {
	loader := extract.Loader{Stdin: cmd.InOrStdin()}
	text, err := loader.Load(args[0])
	if err != nil {
		return err
	}
	report, ok := readability.Score(text)

	w := cmd.OutOrStdout()
	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		var v *readability.Report
		if ok {
			v = &report
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(struct {
			Report *readability.Report `json:"report"`
		}{v})
	}

	if !ok {
		fmt.Fprintln(w, "not enough text to analyze")
		return nil
	}
	fmt.Fprintf(w, "Words:               %d\n", report.WordCount)
	fmt.Fprintf(w, "Avg sentence length: %.1f\n", report.AvgSentenceLength)
	fmt.Fprintf(w, "Reading ease:        %.1f\n", report.ReadingEase)
	return nil
}

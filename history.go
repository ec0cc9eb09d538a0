package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"text_differentiator/export"
	"text_differentiator/generator"
	"text_differentiator/history"
)

// NewHistoryCmd creates the history command.
func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List or export saved adaptations",
		Long: `History lists the adaptations saved in the history database, newest first.

Examples:
  # Show the last 10 adaptations
  textdiff history

  # Export the last 50 as a markdown document
  textdiff history --limit 50 --markdown --output history.md

  # Print the complete text package of entry 3
  textdiff history --show 3

  # Delete all saved adaptations
  textdiff history --clear`,
		Args: cobra.NoArgs,
		RunE: runHistoryCmd,
	}

	cmd.Flags().IntP("limit", "n", 10, "Maximum number of entries (0 for all)")
	cmd.Flags().BoolP("markdown", "m", false, "Output a markdown document (mutually exclusive with --html)")
	cmd.Flags().Bool("html", false, "Output an HTML document (mutually exclusive with --markdown)")
	cmd.Flags().StringP("output", "o", "", "Write the document to the given file")
	cmd.Flags().Int64("show", 0, "Print the complete text package of the entry with this ID")
	cmd.Flags().Bool("clear", false, "Delete all saved adaptations")
	cmd.MarkFlagsMutuallyExclusive("markdown", "html")

	return cmd
}

func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	limit, _ := cmd.Flags().GetInt("limit")
	if limit < 0 {
		return fmt.Errorf("--limit must not be negative, got %d", limit)
	}

	store, err := openHistory(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	if wipe, _ := cmd.Flags().GetBool("clear"); wipe {
		if err := store.Clear(cmd.Context()); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "History cleared.")
		return nil
	}

	if id, _ := cmd.Flags().GetInt64("show"); id > 0 {
		e, err := store.Get(cmd.Context(), id)
		if err != nil {
			return fmt.Errorf("entry %d: %w", id, err)
		}
		_, err = io.WriteString(cmd.OutOrStdout(), export.Package(e.Adaptation(), e.CreatedAt))
		return err
	}

	entries, err := store.List(cmd.Context(), limit)
	if err != nil {
		return err
	}
	total, err := store.Count(cmd.Context())
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if path, _ := cmd.Flags().GetString("output"); path != "" {
		f, err := os.Create(path) //nolint:gosec // user-provided output path is intentional
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}

	asMarkdown, _ := cmd.Flags().GetBool("markdown")
	asHTML, _ := cmd.Flags().GetBool("html")
	switch {
	case asMarkdown:
		return export.HistoryMarkdown(w, records(entries))
	case asHTML:
		return export.HistoryHTML(w, records(entries))
	}
	return printEntries(w, entries, total)
}

func records(entries []history.Entry) []generator.Record {
	out := make([]generator.Record, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Record())
	}
	return out
}

func printEntries(w io.Writer, entries []history.Entry, total int) error {
	if len(entries) == 0 {
		_, err := fmt.Fprintln(w, "No history yet. Run an adaptation first.")
		return err
	}
	fmt.Fprintf(w, "Showing %d of %d saved adaptations\n\n", len(entries), total)
	for _, e := range entries {
		r := e.Record()
		fmt.Fprintf(w, "#%d  %s  %s  %s\n", e.ID, r.Timestamp, r.Grade, e.Model)
		if e.Before != nil && e.After != nil {
			c := export.NewComparison(*e.Before, *e.After)
			fmt.Fprintf(w, "    words %d→%d  ease %.1f→%.1f", c.Original.WordCount, c.Adapted.WordCount, c.Original.ReadingEase, c.Adapted.ReadingEase)
			if c.HasReduction {
				fmt.Fprintf(w, "  reduction %d%%", c.Reduction)
			}
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "    original: %s\n", r.Original)
		fmt.Fprintf(w, "    adapted:  %s\n", r.Adapted)
	}
	return nil
}

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"text_differentiator/config"
	"text_differentiator/export"
	"text_differentiator/extract"
	"text_differentiator/generator"
	"text_differentiator/history"
)

// NewAdaptCmd creates the adapt command.
func NewAdaptCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "adapt [file...]",
		Short: "Adapt text files for a target grade level",
		Long: `Adapt rewrites each input for the target grade level and writes a complete
text package (original, adapted text and questions) per input.

Inputs may be plain text, PDF, DOCX or ODT files; "-" reads standard input.
Several inputs are adapted concurrently, up to --batch at a time.

Examples:
  # Adapt one lesson for 4th grade
  textdiff adapt --grade 4th lesson.txt

  # Adapt a folder of worksheets for a student profile
  textdiff adapt --profile "Ava – IEP 4th Grade" --out adapted/ worksheets/*.pdf

  # Print the package instead of writing a file
  textdiff adapt --out - < lesson.txt`,
		Args: cobra.MinimumNArgs(1),
		RunE: runAdaptCmd,
	}

	cmd.Flags().StringP("grade", "g", "", "Target grade level, e.g. K, 4, 4th or \"4th Grade\" (default: default_grade)")
	cmd.Flags().StringP("profile", "p", "", "Student profile whose options replace the flags")
	cmd.Flags().StringP("model", "m", "", "Model name (default: llm.model)")
	cmd.Flags().StringP("out", "o", ".", "Output directory, or - for standard output")
	cmd.Flags().IntP("batch", "b", 0, "Number of concurrent adaptations (default: batch_size)")
	cmd.Flags().Bool("no-questions", false, "Do not generate comprehension questions")
	cmd.Flags().Bool("no-simplify", false, "Keep the original vocabulary")
	cmd.Flags().Bool("no-definitions", false, "Do not add in-text definitions")
	cmd.Flags().Bool("no-short-paragraphs", false, "Keep the original paragraph length")
	cmd.Flags().Bool("visual-breaks", false, "Add headings and bullet lists")
	cmd.Flags().Bool("no-history", false, "Do not save adaptations to the history database")

	return cmd
}

// adaptJob is one input of a batch.
type adaptJob struct {
	path  string
	opts  generator.Options
	model string
}

func runAdaptCmd(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger := setupLogger(cmd, cfg)

	opts, err := adaptOptions(cmd, cfg)
	if err != nil {
		return err
	}
	model, _ := cmd.Flags().GetString("model")
	if !cfg.AllowsModel(model) {
		return fmt.Errorf("model %q is not in llm.models", model)
	}
	if model == "" {
		model = cfg.Model()
	}
	out, _ := cmd.Flags().GetString("out")
	if out == "-" && len(args) > 1 {
		return errors.New("--out - takes exactly one input")
	}
	if batch, _ := cmd.Flags().GetInt("batch"); batch > 0 {
		cfg.BatchSize = batch
	}

	agent, closeLLM, err := newAgent(cmd.Context(), cfg, logger)
	if err != nil {
		return err
	}
	defer closeLLM() //nolint:errcheck

	var store *history.Store
	if noHistory, _ := cmd.Flags().GetBool("no-history"); !noHistory {
		if store, err = openHistory(cfg); err != nil {
			return err
		}
		defer store.Close()
	}

	if out != "-" {
		if err := os.MkdirAll(out, 0o750); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	jobs := make([]adaptJob, 0, len(args))
	for _, path := range args {
		jobs = append(jobs, adaptJob{path: path, opts: opts, model: model})
	}
	b := &batch{
		agent:  agent,
		loader: extract.Loader{Stdin: cmd.InOrStdin(), Logger: logger},
		store:  store,
		out:    out,
		w:      cmd.OutOrStdout(),
		logger: logger,
	}
	return b.run(cmd.Context(), jobs, cfg.BatchSize)
}

// adaptOptions merges default_grade, the option flags and --profile.
func adaptOptions(cmd *cobra.Command, cfg *config.Config) (generator.Options, error) {
	opts := cfg.BaseOptions()
	if g, _ := cmd.Flags().GetString("grade"); g != "" {
		grade, err := generator.ParseGrade(g)
		if err != nil {
			return opts, err
		}
		opts.Grade = grade
	}
	flags := []struct {
		name  string
		field *bool
		value bool
	}{
		{"no-questions", &opts.GenerateQuestions, false},
		{"no-simplify", &opts.SimplifyVocab, false},
		{"no-definitions", &opts.InTextDefinitions, false},
		{"no-short-paragraphs", &opts.ShortParagraphs, false},
		{"visual-breaks", &opts.VisualBreaks, true},
	}
	for _, f := range flags {
		if on, _ := cmd.Flags().GetBool(f.name); on {
			*f.field = f.value
		}
	}

	profile, _ := cmd.Flags().GetString("profile")
	resolved, ok := generator.NewProfiles(cfg.Profiles...).Resolve(profile, opts)
	if !ok {
		return opts, fmt.Errorf("unknown profile %q", profile)
	}
	return resolved, nil
}

// batch adapts several inputs concurrently and writes one package per input.
type batch struct {
	agent  *generator.Agent
	loader extract.Loader
	store  *history.Store
	out    string
	logger *slog.Logger

	mu sync.Mutex
	w  io.Writer
}

func (b *batch) run(ctx context.Context, jobs []adaptJob, limit int) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for _, job := range jobs {
		g.Go(func() error {
			if err := b.adapt(ctx, job); err != nil {
				return fmt.Errorf("%s: %w", job.path, err)
			}
			return nil
		})
	}
	return g.Wait()
}

func (b *batch) adapt(ctx context.Context, job adaptJob) error {
	text, err := b.loader.Load(job.path)
	if err != nil {
		return err
	}
	b.logger.Debug("adapting input", "path", job.path, "grade", job.opts.Grade.String(), "chars", len(text))

	res, err := b.agent.Adapt(ctx, text, job.opts, job.model)
	if err != nil {
		return err
	}
	if b.store != nil {
		if _, err := b.store.Save(ctx, history.NewEntry(res)); err != nil {
			b.logger.Warn("failed to save history", "path", job.path, "error", err)
		}
	}

	pkg := export.Package(res, res.CreatedAt)
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.out == "-" {
		_, err := io.WriteString(b.w, pkg)
		return err
	}
	dest := filepath.Join(b.out, packageName(job.path, res))
	if err := os.WriteFile(dest, []byte(pkg), 0o600); err != nil {
		return err
	}
	fmt.Fprintf(b.w, "%s -> %s%s\n", job.path, dest, summary(res))
	return nil
}

// packageName prefixes the package file name with the input's base name so
// that a batch written in the same minute does not collide.
func packageName(path string, res generator.Adaptation) string {
	stem := "stdin"
	if path != "-" {
		base := filepath.Base(path)
		stem = strings.TrimSuffix(base, filepath.Ext(base))
	}
	return stem + "_" + export.Filename(export.KindPackage, res.Grade, res.CreatedAt)
}

func summary(res generator.Adaptation) string {
	c, ok := export.Compare(res.Original, res.Adapted)
	if !ok {
		return ""
	}
	return fmt.Sprintf(" (words %d→%d, ease %.1f→%.1f)",
		c.Original.WordCount, c.Adapted.WordCount, c.Original.ReadingEase, c.Adapted.ReadingEase)
}

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"slices"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"text_differentiator/config"
	"text_differentiator/generator"
	"text_differentiator/logging"
	"text_differentiator/server"
)

const shutdownTimeout = 10 * time.Second

// NewServeCmd creates the serve command.
func NewServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the web page and JSON API",
		Long: `Serve starts the Text Differentiator web page and its JSON API.

Each browser gets its own session with the current adaptation and a history
of earlier ones. Adaptations are also saved to the history database unless
--no-history is given.

Examples:
  # Listen on the configured address (default :8080)
  textdiff serve

  # Try the page offline with the mock model
  textdiff serve --provider mock --addr 127.0.0.1:9000`,
		Args: cobra.NoArgs,
		RunE: runServeCmd,
	}

	cmd.Flags().StringP("addr", "a", "", "HTTP listen address (overrides server_addr)")
	cmd.Flags().String("provider", "", "LLM provider: openai, deepseek, gemini or mock (overrides llm.provider)")
	cmd.Flags().Bool("no-history", false, "Do not save adaptations to the history database")
	cmd.Flags().Bool("log-json", false, "Write logs as JSON")

	return cmd
}

func runServeCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if p, _ := cmd.Flags().GetString("provider"); p != "" {
		cfg.LLM.Provider = p
	}
	if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
		cfg.ServerAddr = addr
	}
	logger := setupLogger(cmd, cfg)
	if asJSON, _ := cmd.Flags().GetBool("log-json"); asJSON {
		logger = logging.NewJSON(cmd.ErrOrStderr(), getVerboseFlag(cmd) || cfg.Verbose)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	agent, closeLLM, err := newAgent(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeLLM() //nolint:errcheck

	opts := server.Options{
		Models:       serverModels(cfg),
		DefaultModel: cfg.Model(),
		Profiles:     generator.NewProfiles(cfg.Profiles...),
		Base:         cfg.BaseOptions(),
		Timeout:      cfg.RequestTimeout,
		Logger:       logger,
	}
	if noHistory, _ := cmd.Flags().GetBool("no-history"); !noHistory {
		store, err := openHistory(cfg)
		if err != nil {
			return err
		}
		defer store.Close()
		opts.Store = store
		logger.Debug("history database opened", "path", store.Path())
	}

	srv, err := server.New(agent, opts)
	if err != nil {
		return err
	}
	httpSrv := &http.Server{
		Addr:              cfg.ServerAddr,
		Handler:           srv.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- httpSrv.ListenAndServe()
	}()
	fmt.Fprintf(cmd.OutOrStdout(), "Serving Text Differentiator on %s\n", cfg.ServerAddr)

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		logger.Info("received shutdown signal, stopping server")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return httpSrv.Shutdown(shutdownCtx)
}

// serverModels lists the selectable models with the default first.
func serverModels(cfg *config.Config) []string {
	first := cfg.Model()
	models := slices.DeleteFunc(cfg.Models(), func(m string) bool { return m == first })
	return append([]string{first}, models...)
}

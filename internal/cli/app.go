package cli

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/roach88/giftcycle/internal/config"
	"github.com/roach88/giftcycle/internal/engine"
	"github.com/roach88/giftcycle/internal/store"
)

// app is what a command needs once configuration is resolved.
type app struct {
	cfg    config.Config
	store  *store.Store
	engine *engine.Engine
	logger *slog.Logger
	out    *OutputFormatter
}

func newFormatter(opts *RootOptions, cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(), // Verbose logs go to stderr to avoid corrupting JSON
		Verbose:   opts.Verbose,
	}
}

// openApp loads configuration, installs the slog handler and opens the store.
// The caller must Close the returned app.
func openApp(opts *RootOptions, cmd *cobra.Command) (*app, error) {
	out := newFormatter(opts, cmd)

	cfg, err := config.Load()
	if err != nil {
		return nil, out.Fail("failed to load configuration", err)
	}
	if opts.Database != "" {
		cfg.DBPath = opts.Database
	}

	// Configure logging based on verbose flag
	logLevel := cfg.SlogLevel()
	if opts.Verbose {
		logLevel = slog.LevelDebug
	}
	handler := slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
		Level: logLevel,
	})
	logger := slog.New(handler)
	slog.SetDefault(logger)

	logger.Debug("opening database", "path", cfg.DBPath)
	var storeOpts []store.Option
	if opts.IDs != nil {
		storeOpts = append(storeOpts, store.WithIDGenerator(opts.IDs))
	}
	st, err := store.Open(cfg.DBPath, storeOpts...)
	if err != nil {
		return nil, out.Fail("failed to open database", err)
	}

	engOpts := []engine.Option{
		engine.WithLogger(logger),
		engine.WithSamplerOptions(cfg.SamplerOptions()),
	}
	if opts.Source != nil {
		engOpts = append(engOpts, engine.WithSource(opts.Source))
	}

	return &app{
		cfg:    cfg,
		store:  st,
		engine: engine.New(st, engOpts...),
		logger: logger,
		out:    out,
	}, nil
}

func (a *app) Close() {
	if err := a.store.Close(); err != nil {
		a.logger.Error("error closing database", "error", err)
	}
}

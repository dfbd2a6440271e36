package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofrs/flock"
	"github.com/spf13/cobra"

	"recette/internal/deps"
	"recette/internal/notifications"
	"recette/internal/pipeline"
	"recette/internal/store"
	"recette/internal/web"
)

func newServeCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the review web server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger := ctx.ensureLogger()

			// One serving instance per data directory.
			lock := flock.New(cfg.LockPath())
			locked, err := lock.TryLock()
			if err != nil {
				return fmt.Errorf("acquire lock: %w", err)
			}
			if !locked {
				return errors.New("another recette serve instance is already running")
			}
			defer func() {
				_ = lock.Unlock()
			}()

			statuses := deps.CheckBinaries(deps.Requirements(cfg))
			if missing := deps.MissingRequired(statuses); len(missing) > 0 {
				warnLine(cmd.ErrOrStderr(), "missing external tools: %v (extraction will fail until installed)", missing)
			}

			st, err := store.Open(cfg)
			if err != nil {
				return err
			}
			defer st.Close()

			runner := pipeline.New(cfg, logger)
			notifier := notifications.NewService(cfg)
			srv, err := web.New(cfg, logger, st, runner, notifier)
			if err != nil {
				return err
			}

			sigCtx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			fmt.Fprintf(cmd.OutOrStdout(), "Serving on http://%s\n", cfg.Paths.WebBind)
			return srv.ListenAndServe(sigCtx)
		},
	}
}

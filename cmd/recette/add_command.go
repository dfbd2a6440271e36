package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"recette/internal/notifications"
	"recette/internal/pipeline"
	"recette/internal/store"
)

func newAddCommand(ctx *commandContext) *cobra.Command {
	var save bool

	cmd := &cobra.Command{
		Use:   "add <video-url>",
		Short: "Run the extraction pipeline for a video",
		Long: "Downloads the audio track, transcribes it, and extracts a structured " +
			"recipe. Prints the result for review; pass --save to persist it as-is.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger := ctx.ensureLogger()
			out := cmd.OutOrStdout()

			videoURL := strings.TrimSpace(args[0])
			runner := pipeline.New(cfg, logger)
			outcome, err := runner.Run(cmd.Context(), videoURL)
			if err != nil {
				if notifyErr := notifications.NewService(cfg).NotifyPipelineError(cmd.Context(), err, videoURL); notifyErr != nil {
					logger.Warn("error notification failed", "error", notifyErr)
				}
				return err
			}

			if outcome.Degraded {
				warnLine(cmd.ErrOrStderr(), "automatic extraction degraded; the steps field holds the raw text")
			}

			rows := [][2]string{
				{"Title", outcome.Normalized.Title},
				{"URL", outcome.Normalized.VideoURL},
				{"Ingredients", outcome.Normalized.IngredientsText},
				{"Steps", outcome.Normalized.StepsText},
				{"Utensils", outcome.Normalized.UtensilsText},
				{"Cook time", outcome.Normalized.CookTime},
				{"Prep time", outcome.Normalized.PrepTime},
			}
			fmt.Fprintln(out, renderFields("Field", rows))

			if !save {
				fmt.Fprintln(out, "Not saved. Re-run with --save, or use the web UI to review and edit first.")
				return nil
			}

			st, err := store.Open(cfg)
			if err != nil {
				return err
			}
			defer st.Close()

			id, err := st.Insert(cmd.Context(), outcome.Normalized)
			if err != nil {
				return err
			}
			if notifyErr := notifications.NewService(cfg).NotifyRecipeSaved(cmd.Context(), outcome.Normalized.Title, id); notifyErr != nil {
				logger.Warn("saved notification failed", "error", notifyErr)
			}
			fmt.Fprintf(out, "Saved recipe #%d\n", id)
			return nil
		},
	}

	cmd.Flags().BoolVar(&save, "save", false, "Persist the extracted recipe without review")
	return cmd
}

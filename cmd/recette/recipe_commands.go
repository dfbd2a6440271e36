package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"recette/internal/store"
)

func newListCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored recipes",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			st, err := store.Open(cfg)
			if err != nil {
				return err
			}
			defer st.Close()

			summaries, err := st.List(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(summaries) == 0 {
				fmt.Fprintln(out, "No recipes stored yet.")
				return nil
			}

			fmt.Fprintln(out, renderRecipeList(summaries))
			return nil
		},
	}
}

func newShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one stored recipe",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseRecipeID(args[0])
			if err != nil {
				return err
			}
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			st, err := store.Open(cfg)
			if err != nil {
				return err
			}
			defer st.Close()

			rec, err := st.GetByID(cmd.Context(), id)
			if err != nil {
				return err
			}
			if rec == nil {
				return fmt.Errorf("recipe %d not found", id)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "#%d %s\n%s\n\n", rec.ID, rec.Title, rec.VideoURL)
			fmt.Fprintf(out, "Ingredients:\n%s\n\n", rec.Recipe.IngredientsText)
			fmt.Fprintf(out, "Steps:\n%s\n\n", rec.Recipe.StepsText)
			if rec.Recipe.UtensilsText != "" {
				fmt.Fprintf(out, "Utensils: %s\n", rec.Recipe.UtensilsText)
			}
			fmt.Fprintf(out, "Cook time: %s\nPrep time: %s\n", rec.Recipe.CookTime, rec.Recipe.PrepTime)
			return nil
		},
	}
}

func newDeleteCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a stored recipe",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseRecipeID(args[0])
			if err != nil {
				return err
			}
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			st, err := store.Open(cfg)
			if err != nil {
				return err
			}
			defer st.Close()

			existed, err := st.Delete(cmd.Context(), id)
			if err != nil {
				return err
			}
			if !existed {
				return fmt.Errorf("recipe %d not found", id)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted recipe #%d\n", id)
			return nil
		},
	}
}

func parseRecipeID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid recipe id %q", arg)
	}
	return id, nil
}

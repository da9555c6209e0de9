package commands

import (
	"errors"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"securepass/internal/models"
)

func categoriesCmd(v *vault) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "categories",
		Aliases: []string{"category"},
		Short:   "List and manage categories",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cats := v.categories.List(ctx)
			if len(cats) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No categories.")
				return nil
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME\tCOLOR\tICON\tPASSWORDS")
			for _, c := range cats {
				n := len(v.passwords.ListByCategory(ctx, c.Name))
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\n", c.ID, c.Name, c.Color, c.Icon, n)
			}
			return tw.Flush()
		},
	}
	cmd.AddCommand(categoryAddCmd(v), categoryRenameCmd(v), categoryDeleteCmd(v))
	return cmd
}

func categoryAddCmd(v *vault) *cobra.Command {
	d := models.CategoryDraft{}
	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Create a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d.Name = strings.TrimSpace(args[0])
			if d.Name == "" {
				return errors.New("name is required")
			}
			c, err := v.categories.Add(cmd.Context(), d)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created %s (%s)\n", c.ID, c.Name)
			return nil
		},
	}
	cmd.Flags().StringVar(&d.Color, "color", "#6b7280", "hex color")
	cmd.Flags().StringVar(&d.Icon, "icon", "📁", "icon")
	return cmd
}

func categoryRenameCmd(v *vault) *cobra.Command {
	return &cobra.Command{
		Use:   "rename <id> <name>",
		Short: "Rename a category and refile its passwords",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if v.categories.Find(ctx, args[0]) == nil {
				return fmt.Errorf("no category with id %s", args[0])
			}
			name := strings.TrimSpace(args[1])
			if name == "" {
				return errors.New("name is required")
			}
			if err := v.categories.Update(ctx, args[0], models.CategoryPatch{Name: &name}); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Renamed %s to %s\n", args[0], name)
			return nil
		},
	}
}

func categoryDeleteCmd(v *vault) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a category; its passwords become uncategorized",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := v.categories.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", args[0])
			return nil
		},
	}
}

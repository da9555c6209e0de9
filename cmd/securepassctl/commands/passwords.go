// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package commands

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"text/tabwriter"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"securepass/internal/generator"
	"securepass/internal/models"
	"securepass/internal/stats"
	"securepass/internal/store"
)

func listCmd(v *vault) *cobra.Command {
	var (
		q   store.Query
		asc bool
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List saved passwords",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			switch q.Sort {
			case store.SortNone, store.SortDate, store.SortStrength, store.SortLabel:
			default:
				return fmt.Errorf("--sort must be one of date, strength, label")
			}
			q.Desc = !asc

			recs := v.passwords.Query(cmd.Context(), q)
			if len(recs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No passwords saved.")
				return nil
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tLABEL\tSTRENGTH\tCATEGORY\tCREATED")
			for _, r := range recs {
				category := r.Category
				if category == "" {
					category = "-"
				}
				fmt.Fprintf(tw, "%s\t%s\t%d (%s)\t%s\t%s\n",
					r.ID, r.Label, r.Strength, stats.TierOf(r.Strength), category,
					r.CreatedAt.Local().Format("2006-01-02 15:04"))
			}
			return tw.Flush()
		},
	}

	f := cmd.Flags()
	f.StringVarP(&q.Search, "search", "s", "", "match labels containing this text")
	f.StringVar(&q.Strength, "strength", "", "weak, fair, good or strong")
	f.StringVar(&q.Category, "category", "", "category name, or uncategorized")
	f.StringVar((*string)(&q.Sort), "sort", "", "date, strength or label")
	f.BoolVar(&asc, "asc", false, "sort ascending")
	return cmd
}

func addCmd(v *vault) *cobra.Command {
	var (
		d        models.PasswordDraft
		generate bool
		length   int
	)
	cmd := &cobra.Command{
		Use:   "add <label>",
		Short: "Save a password",
		Long:  "Save a password under a label. Pass --password, or --generate for a random one.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d.Label = strings.TrimSpace(args[0])
			if d.Label == "" {
				return errors.New("label is required")
			}

			d.Settings = models.DefaultSettings()
			switch {
			case generate && d.Password != "":
				return errors.New("use either --password or --generate")
			case generate:
				pwd, err := generator.Generate(length, d.Settings)
				if err != nil {
					return err
				}
				d.Password = pwd
			case d.Password == "":
				return errors.New("--password or --generate is required")
			}
			d.Strength = generator.Strength(d.Password)
			d.Length = utf8.RuneCountInString(d.Password)

			rec, err := v.passwords.Save(cmd.Context(), d)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Saved %s (%s, strength %d)\n", rec.ID, rec.Label, rec.Strength)
			if generate {
				fmt.Fprintln(out, rec.Password)
			}
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVarP(&d.Password, "password", "p", "", "password to save")
	f.StringVarP(&d.Category, "category", "c", "", "category name")
	f.BoolVarP(&generate, "generate", "g", false, "generate a random password")
	f.IntVarP(&length, "length", "n", generator.DefaultLength, "generated password length")
	return cmd
}

func deleteCmd(v *vault) *cobra.Command {
	var all bool
	cmd := &cobra.Command{
		Use:   "delete <id>...",
		Short: "Delete passwords by id, or every password with --all",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if all {
				if len(args) > 0 {
					return errors.New("--all takes no ids")
				}
				if err := v.passwords.ClearAll(ctx); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Deleted all passwords.")
				return nil
			}
			if len(args) == 0 {
				return errors.New("at least one id is required")
			}
			for _, id := range args {
				if v.passwords.Find(ctx, id) == nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "No password with id %s\n", id)
					continue
				}
				if err := v.passwords.Delete(ctx, id); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", id)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "delete every password")
	return cmd
}

func statsCmd(v *vault) *cobra.Command {
	var byCategory bool
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show the strength breakdown",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			recs := v.passwords.List(ctx)

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "\tTOTAL\tWEAK\tFAIR\tGOOD\tSTRONG")
			row := func(name string, b stats.Breakdown) {
				fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%d\t%d\n", name, b.Total, b.Weak, b.Fair, b.Good, b.Strong)
			}

			row("All", stats.Summarize(recs))
			if byCategory {
				cats := v.categories.List(ctx)
				buckets := stats.ByCategory(recs, cats)
				seen := make(map[string]bool, len(cats))
				for _, c := range cats {
					row(c.Name, buckets[c.Name])
					seen[c.Name] = true
				}
				var orphans []string
				for name := range buckets {
					if !seen[name] && name != models.Uncategorized {
						orphans = append(orphans, name)
					}
				}
				slices.Sort(orphans)
				for _, name := range orphans {
					row(name, buckets[name])
				}
				row(models.Uncategorized, buckets[models.Uncategorized])
			}
			return tw.Flush()
		},
	}
	cmd.Flags().BoolVar(&byCategory, "by-category", false, "add one row per category")
	return cmd
}

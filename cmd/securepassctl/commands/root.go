// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package commands implements the securepassctl subcommands. Every command
// opens the vault in --data-dir through the file backend.
package commands

import (
	"github.com/spf13/cobra"

	"securepass/internal/persist"
	"securepass/internal/store"
)

// vault is the state shared by every subcommand once the root command has
// opened the data directory.
type vault struct {
	passwords  *store.PasswordStore
	categories *store.CategoryStore
}

// Execute runs the CLI with os.Args.
func Execute() error {
	return NewRoot().Execute()
}

// NewRoot builds the command tree.
func NewRoot() *cobra.Command {
	var (
		dataDir string
		v       vault
	)

	root := &cobra.Command{
		Use:          "securepassctl",
		Short:        "Manage a local SecurePass vault",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			b, err := persist.NewFile(dataDir)
			if err != nil {
				return err
			}
			v.passwords = store.NewPasswordStore(b)
			v.categories = store.NewCategoryStore(b, v.passwords)
			return nil
		},
	}

	root.PersistentFlags().StringVar(&dataDir, "data-dir", "~/.securepass", "vault directory")

	root.AddCommand(
		listCmd(&v),
		addCmd(&v),
		deleteCmd(&v),
		statsCmd(&v),
		categoriesCmd(&v),
		exportCmd(&v),
		importCmd(&v),
		generateCmd(),
	)
	return root
}

package commands

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"securepass/internal/transfer"
)

// nowFunc stamps backup filenames.
var nowFunc = time.Now

func exportCmd(v *vault) *cobra.Command {
	var (
		format string
		opts   transfer.ExportOptions
		out    string
	)
	cmd := &cobra.Command{
		Use:   "export [id]...",
		Short: "Write a backup of all passwords, or only the given ids",
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := transfer.ParseFormat(format)
			if err != nil {
				return err
			}
			opts.Format = f
			if len(args) > 0 {
				opts.SelectedIDs = args
			}

			data, err := transfer.NewExporter().Export(v.passwords.List(cmd.Context()), opts)
			if err != nil {
				return err
			}

			if out == "" || out == "-" {
				_, err := cmd.OutOrStdout().Write(append(data, '\n'))
				return err
			}
			if strings.HasSuffix(out, string(os.PathSeparator)) {
				if err := os.MkdirAll(out, 0o700); err != nil {
					return err
				}
				out += transfer.BackupFilename(f, nowFunc())
			}
			if err := os.WriteFile(out, data, 0o600); err != nil {
				return fmt.Errorf("write backup: %w", err)
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %s\n", out)
			return nil
		},
	}

	fl := cmd.Flags()
	fl.StringVarP(&format, "format", "f", "json", "json, csv or txt")
	fl.BoolVar(&opts.IncludePasswords, "include-passwords", false, "include plaintext passwords")
	fl.BoolVar(&opts.IncludeMetadata, "include-metadata", false, "include category and generation settings")
	fl.StringVarP(&out, "out", "o", "", "output file, or a directory ending in / (default stdout)")
	return cmd
}

func importCmd(v *vault) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Merge a JSON backup into the vault",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			content, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read backup: %w", err)
			}

			res := transfer.NewImporter(v.passwords).Import(cmd.Context(), string(content))
			for _, msg := range res.Errors {
				fmt.Fprintln(cmd.ErrOrStderr(), msg)
			}
			if !res.Success {
				return fmt.Errorf("import failed")
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d, skipped %d duplicates\n", res.Imported, res.Skipped)
			return nil
		},
	}
}

package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"securepass/internal/generator"
	"securepass/internal/models"
	"securepass/internal/stats"
)

func generateCmd() *cobra.Command {
	var (
		length                     int
		noUpper, noLower, noDigits bool
		noSymbols, excludeSimilar  bool
		count                      int
	)
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Print random passwords without saving them",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings := models.GenerationSettings{
				IncludeUppercase: !noUpper,
				IncludeLowercase: !noLower,
				IncludeNumbers:   !noDigits,
				IncludeSymbols:   !noSymbols,
				ExcludeSimilar:   excludeSimilar,
			}
			for range count {
				pwd, err := generator.Generate(length, settings)
				if err != nil {
					return err
				}
				score := generator.Strength(pwd)
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%d (%s)\n", pwd, score, stats.TierOf(score))
			}
			return nil
		},
	}

	f := cmd.Flags()
	f.IntVarP(&length, "length", "n", generator.DefaultLength, "password length (4-128)")
	f.IntVarP(&count, "count", "c", 1, "how many passwords to print")
	f.BoolVar(&noUpper, "no-upper", false, "omit uppercase letters")
	f.BoolVar(&noLower, "no-lower", false, "omit lowercase letters")
	f.BoolVar(&noDigits, "no-numbers", false, "omit digits")
	f.BoolVar(&noSymbols, "no-symbols", false, "omit symbols")
	f.BoolVar(&excludeSimilar, "exclude-similar", false, "omit look-alike characters (il1Lo0O)")
	return cmd
}

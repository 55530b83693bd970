package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/mrled/suns/titlesym/internal/model"
	"github.com/mrled/suns/titlesym/internal/usecase/check"
	"github.com/spf13/cobra"
)

func newCheckCmd() *cobra.Command {
	var flags struct {
		PersistenceFlags
		ShowNormalized bool
		ExitCode       bool
	}

	cmd := &cobra.Command{
		Use:     "check <title> [title...]",
		Short:   "Check whether titles are symmetrical",
		GroupID: "check",
		Long: `Check whether each title reads the same forwards and backwards.

Space characters are removed and letter case is ignored before comparing.
Every other character, including punctuation, digits and tabs, is compared as-is.

Examples:
  # Check a single title
  titlesym check "A Santa at NASA"

  # Check several titles and show their normalized forms
  titlesym check --normalized "Taco cat" "Social Media"

  # Fail with exit code 2 if any title is not symmetrical
  titlesym check --exit-code "Social Media"

  # Store results in a JSON file
  titlesym check --file ./checks.json "Taco cat"`,
		Args: usageArgs(cobra.MinimumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			var repo model.CheckRepository
			if flags.configured() && !flags.DryRun {
				var err error
				repo, err = flags.openRepository(ctx)
				if err != nil {
					return err
				}
			}

			return runCheck(ctx, cmd.OutOrStdout(), repo, args, flags.ShowNormalized, flags.ExitCode)
		},
	}

	addPersistenceFlags(cmd, &flags.PersistenceFlags, true)
	cmd.Flags().BoolVarP(&flags.ShowNormalized, "normalized", "n", false, "Also print the normalized form of each title")
	cmd.Flags().BoolVar(&flags.ExitCode, "exit-code", false, "Exit with code 2 if any title is not symmetrical")

	return cmd
}

// runCheck checks titles in order and prints one verdict line per title.
// Titles checked before a storage failure are still printed.
func runCheck(ctx context.Context, out io.Writer, repo model.CheckRepository, titles []string, showNormalized, exitCode bool) error {
	useCase := check.NewCheckUseCase(repo, nil)
	records, checkErr := useCase.CheckAll(ctx, titles)

	asymmetrical := 0
	for _, record := range records {
		if !record.Symmetrical {
			asymmetrical++
		}
		if showNormalized {
			fmt.Fprintf(out, "%q (%q): %t\n", record.Title, record.Normalized, record.Symmetrical)
		} else {
			fmt.Fprintf(out, "%q: %t\n", record.Title, record.Symmetrical)
		}
	}

	if checkErr != nil {
		return ExitWithCode(1, checkErr)
	}
	if exitCode && asymmetrical > 0 {
		return ExitWithCode(2, fmt.Errorf("%d of %d titles are not symmetrical", asymmetrical, len(records)))
	}
	return nil
}

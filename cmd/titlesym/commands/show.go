package commands

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/mrled/suns/titlesym/internal/model"
	"github.com/mrled/suns/titlesym/internal/presenter"
	"github.com/spf13/cobra"
)

func newShowCmd() *cobra.Command {
	var flags struct {
		PersistenceFlags
		Titles      []string
		Symmetrical string
		Format      string
		SortBy      string
	}

	cmd := &cobra.Command{
		Use:     "show",
		Short:   "Show records from the data store",
		GroupID: "records",
		Long: `Display stored check records, optionally filtered by title or verdict.

If no filters are specified, all records are displayed.

Examples:
  # Show all records
  titlesym show --file ./checks.json

  # Show records for specific titles (case-insensitive)
  titlesym show --file ./checks.json --title "taco cat" --title "social media"

  # Show only symmetrical titles, most recently checked first
  titlesym show --file ./checks.json --symmetrical true --sort check-time

  # Show records in compact format
  titlesym show --file ./checks.json --format compact`,
		Args: usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			if !flags.configured() {
				return &UsageError{fmt.Errorf("one of --file or --dynamodb-table is required")}
			}

			filter := model.RecordFilter{Titles: flags.Titles}
			switch flags.Symmetrical {
			case "":
			case "true", "false":
				symmetrical := flags.Symmetrical == "true"
				filter.Symmetrical = &symmetrical
			default:
				return &UsageError{fmt.Errorf("invalid --symmetrical value %q, must be true or false", flags.Symmetrical)}
			}

			switch flags.Format {
			case "detailed", "compact":
			default:
				return &UsageError{fmt.Errorf("invalid --format value %q, must be detailed or compact", flags.Format)}
			}

			repo, err := flags.openRepository(ctx)
			if err != nil {
				return err
			}

			allRecords, err := repo.List(ctx)
			if err != nil {
				return fmt.Errorf("failed to list records: %w", err)
			}

			records := model.FilterRecords(allRecords, filter)
			model.SortRecords(records, flags.SortBy)

			out := cmd.OutOrStdout()
			if len(records) == 0 {
				fmt.Fprintln(out, "No records found matching the specified criteria.")
				return nil
			}

			now := time.Now()
			if flags.Format == "compact" {
				displayRecordsCompact(out, records, now)
			} else {
				displayRecordsDetailed(out, records, now)
			}

			fmt.Fprintf(out, "\nTotal records: %d\n", len(records))
			return nil
		},
	}

	addPersistenceFlags(cmd, &flags.PersistenceFlags, false)
	cmd.Flags().StringArrayVar(&flags.Titles, "title", nil, "Filter by title (repeatable)")
	cmd.Flags().StringVar(&flags.Symmetrical, "symmetrical", "", "Filter by verdict: true or false")
	cmd.Flags().StringVar(&flags.Format, "format", "detailed", "Output format: detailed or compact")
	cmd.Flags().StringVar(&flags.SortBy, "sort", "", "Sort by: title, check-time, or verdict")

	return cmd
}

// displayRecordsDetailed displays records in detailed format
func displayRecordsDetailed(out io.Writer, records []*model.CheckRecord, now time.Time) {
	fmt.Fprintln(out, "=== Check Records ===")

	for _, record := range records {
		fmt.Fprintf(out, "\nTitle: %q\n", record.Title)
		fmt.Fprintf(out, "Normalized: %q\n", record.Normalized)
		fmt.Fprintf(out, "Verdict: %s\n", record.Verdict())
		fmt.Fprintf(out, "Checked: %s (rev: %d)\n", presenter.FormatTimeSince(record.CheckTime, now), record.Rev)
		fmt.Fprintf(out, "ID: %s\n", record.ID)
	}
}

// displayRecordsCompact displays records in compact format
func displayRecordsCompact(out io.Writer, records []*model.CheckRecord, now time.Time) {
	fmt.Fprintf(out, "%-40s %-14s %-5s %s\n", "Title", "Verdict", "Rev", "Last Checked")
	fmt.Fprintln(out, strings.Repeat("-", 80))

	for _, record := range records {
		fmt.Fprintf(out, "%-40s %-14s %-5d %s\n",
			presenter.TruncateString(record.Title, 38),
			record.Verdict(),
			record.Rev,
			presenter.FormatTimeSinceCompact(record.CheckTime, now))
	}
}

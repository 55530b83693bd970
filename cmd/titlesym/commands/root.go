package commands

import (
	"github.com/mrled/suns/titlesym/internal/logger"
	"github.com/spf13/cobra"
)

// NewRootCmd builds the titlesym command tree
func NewRootCmd() *cobra.Command {
	var logLevel string

	rootCmd := &cobra.Command{
		Use:           "titlesym",
		Short:         "Titlesym checks whether titles read the same in both directions",
		Long:          `A command-line tool for checking whether titles are palindromes, ignoring spaces and letter case.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			log := logger.NewLogger(logger.Config{
				Level:  logLevel,
				Format: "text",
				Output: cmd.ErrOrStderr(),
			})
			logger.SetDefault(logger.WithExecutable(log, "titlesym"))
		},
	}

	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "Log level: debug, info, warn, or error")
	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return &UsageError{err}
	})

	rootCmd.AddGroup(
		&cobra.Group{ID: "check", Title: "Checking titles:"},
		&cobra.Group{ID: "records", Title: "Stored records:"},
	)
	rootCmd.AddCommand(newCheckCmd())
	rootCmd.AddCommand(newDemoCmd())
	rootCmd.AddCommand(newShowCmd())
	rootCmd.AddCommand(newPublishCmd(openS3))

	return rootCmd
}

// Execute runs the root command
func Execute() error {
	return NewRootCmd().Execute()
}

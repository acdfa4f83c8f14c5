package cli

import (
	"os"

	"github.com/fabricgen-labs/fabricgen/internal/branding"
	"github.com/fabricgen-labs/fabricgen/internal/config"
	"github.com/fabricgen-labs/fabricgen/internal/tree"
	"github.com/fabricgen-labs/fabricgen/internal/ui"
	"github.com/spf13/cobra"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string
)

var rootCmd = &cobra.Command{
	Use:   branding.CLIName(),
	Short: branding.Description(),
	Long: branding.DisplayName() + ` creates a new Fabric mod by cloning the example mod template and
renaming its package, mod id, entry point, author, and description.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		config.Load()
	},
}

// Execute runs the root command with build info injected via ldflags.
// Errors are reported on stderr as their kind and message.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date

	err := rootCmd.Execute()
	if err != nil {
		reportError(ui.New(os.Stderr), err)
	}
	return err
}

func reportError(p *ui.Printer, err error) {
	p.Failure("An error occurred!", tree.KindOf(err).String(), err.Error())
}

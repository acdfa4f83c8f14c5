package cli

import (
	"fmt"
	"io"

	"github.com/fabricgen-labs/fabricgen/internal/ui"
	"github.com/fabricgen-labs/fabricgen/internal/versions"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(versionsCmd)
}

var versionsCmd = &cobra.Command{
	Use:   "versions",
	Short: "List the Minecraft versions the template supports",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		printVersions(ui.New(cmd.OutOrStdout()), cmd.OutOrStdout())
		return nil
	},
}

func printVersions(p *ui.Printer, w io.Writer) {
	fmt.Fprintln(w, "Available versions:")
	latest := versions.Latest()
	for _, v := range versions.Known() {
		if v == latest {
			fmt.Fprintf(w, "%s %s %s\n", p.Dim("-"), p.Accent(v), p.Dim("(Latest)"))
			continue
		}
		fmt.Fprintln(w, p.Dim("- "+v))
	}
}

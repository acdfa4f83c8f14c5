package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fabricgen-labs/fabricgen/internal/branding"
	"github.com/fabricgen-labs/fabricgen/internal/versions"
	"github.com/spf13/cobra"
)

var (
	versionShort bool
	versionJSON  bool
)

func init() {
	versionCmd.Flags().BoolVar(&versionShort, "short", false, "Print version number only")
	versionCmd.Flags().BoolVar(&versionJSON, "json", false, "Print version info as JSON")
	rootCmd.AddCommand(versionCmd)
}

// buildInfo describes this binary and the newest Minecraft version it knows.
type buildInfo struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	Date      string `json:"date"`
	Minecraft string `json:"minecraft"`
}

func currentBuild() buildInfo {
	return buildInfo{
		Version:   buildVersion,
		Commit:    buildCommit,
		Date:      buildDate,
		Minecraft: versions.Latest(),
	}
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return writeVersion(cmd.OutOrStdout(), currentBuild())
	},
}

func writeVersion(w io.Writer, info buildInfo) error {
	switch {
	case versionShort:
		fmt.Fprintln(w, info.Version)
	case versionJSON:
		data, err := json.MarshalIndent(info, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling version info: %w", err)
		}
		fmt.Fprintln(w, string(data))
	default:
		fmt.Fprintf(w, "%s version %s (commit: %s, built: %s, minecraft up to %s)\n",
			branding.CLIName(), info.Version, info.Commit, info.Date, info.Minecraft)
	}
	return nil
}

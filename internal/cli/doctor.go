package cli

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"sort"

	"github.com/fabricgen-labs/fabricgen/internal/config"
	"github.com/fabricgen-labs/fabricgen/internal/manifest"
	"github.com/fabricgen-labs/fabricgen/internal/template"
	"github.com/fabricgen-labs/fabricgen/internal/tree"
	"github.com/spf13/cobra"
)

var checkManifest string

func init() {
	doctorCmd.Flags().StringVar(&checkManifest, "check-manifest", "", "Validate a fabric.mod.json at the given path")
	rootCmd.AddCommand(doctorCmd)
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check that mods can be generated",
	Long:  `Run diagnostic checks on the tools and settings "new" depends on.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		if checkManifest != "" {
			return runManifestCheck(out, checkManifest)
		}
		runAllChecks(out)
		return nil
	},
}

func runAllChecks(w io.Writer) {
	fmt.Fprintln(w, "Tools:")
	checkBinary(w, "git")
	checkBinary(w, "java")

	fmt.Fprintln(w, "Settings:")
	if _, err := os.Stat(config.FilePath()); err != nil {
		fmt.Fprintf(w, "  [INFO] %s not found, using defaults\n", config.FilePath())
	} else {
		fmt.Fprintf(w, "  [ OK ] %s\n", config.FilePath())
	}
	fmt.Fprintf(w, "  [INFO] template: %s\n", template.RepoURL())
	if author := config.Get(config.KeyAuthor); author != "" {
		fmt.Fprintf(w, "  [INFO] default author: %s\n", author)
	}
}

func checkBinary(w io.Writer, name string) {
	path, err := exec.LookPath(name)
	if err != nil {
		fmt.Fprintf(w, "  [MISS] %s not found\n", name)
		return
	}
	fmt.Fprintf(w, "  [ OK ] %s found at %s\n", name, path)
}

func runManifestCheck(w io.Writer, path string) error {
	fmt.Fprintf(w, "Manifest validation: %s\n", path)

	result, err := manifest.ValidateFile(path)
	if err != nil {
		fmt.Fprintf(w, "  [FAIL] %v\n", err)
		return fmt.Errorf("manifest validation failed: %w", err)
	}

	if result.Valid {
		m, err := manifest.ParseFile(path)
		if err != nil {
			fmt.Fprintln(w, "  [ OK ] Valid manifest")
			return nil
		}
		fmt.Fprintf(w, "  [ OK ] Valid mod manifest: %s (v%s)\n", m.ID, m.Version)
		names := make([]string, 0, len(m.Entrypoints))
		for name := range m.Entrypoints {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			for _, e := range m.Entrypoints[name] {
				fmt.Fprintf(w, "         %s entrypoint: %s\n", name, e)
			}
		}
		return nil
	}

	fmt.Fprintf(w, "  [FAIL] %d validation issue(s):\n", len(result.Issues))
	for _, issue := range result.Issues {
		fmt.Fprintf(w, "    - %s\n", issue)
	}
	return fmt.Errorf("%w: manifest %s has %d validation issue(s)", tree.ErrInvalidData, path, len(result.Issues))
}

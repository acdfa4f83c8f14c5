package cli

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/fabricgen-labs/fabricgen/internal/config"
	"github.com/fabricgen-labs/fabricgen/internal/scaffold"
	"github.com/fabricgen-labs/fabricgen/internal/template"
	"github.com/fabricgen-labs/fabricgen/internal/ui"
	"github.com/fabricgen-labs/fabricgen/internal/versions"
	"github.com/spf13/cobra"
)

var (
	newVersion      string
	newName         string
	newDescription  string
	newAuthor       string
	newPackage      string
	newModID        string
	newEntryPoint   string
	newOutputDir    string
	newTemplateRepo string
	newKeepGit      bool
)

// fetchTemplate is swapped out in tests.
var fetchTemplate scaffold.Fetcher = template.Clone

func init() {
	newCmd.Flags().StringVar(&newVersion, "mc-version", "", "Minecraft version or template commit")
	newCmd.Flags().StringVar(&newName, "name", "", "Mod display name")
	newCmd.Flags().StringVar(&newDescription, "description", "", "Mod description")
	newCmd.Flags().StringVar(&newAuthor, "author", "", "Mod author (default: config key \"author\")")
	newCmd.Flags().StringVar(&newPackage, "package", "", "Java package, e.g. com.example.coolmod")
	newCmd.Flags().StringVar(&newModID, "modid", "", "Mod ID, e.g. coolmod")
	newCmd.Flags().StringVar(&newEntryPoint, "entry-point", "", "Entry point class name, e.g. CoolMod")
	newCmd.Flags().StringVar(&newOutputDir, "output-dir", "", "Output directory (default: ./<modid>)")
	newCmd.Flags().StringVar(&newTemplateRepo, "template-repo", "", "Template git repository (default: config key \"template_repo\")")
	newCmd.Flags().BoolVar(&newKeepGit, "keep-git", false, "Keep the template's .git directory")
	rootCmd.AddCommand(newCmd)
}

var newCmd = &cobra.Command{
	Use:   "new",
	Short: "Create a new Fabric mod from the example template",
	Long: `Clone the Fabric example mod and rename it for a new mod.

Values not given as flags are prompted for on stdin.

Examples:
  fabricgen new
  fabricgen new --mc-version 1.19 --name "Cool Mod" --description "Adds cool things" \
    --author Steve --package com.steve.coolmod --modid coolmod --entry-point CoolMod`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		p := ui.New(out)

		projectArgs, err := collectArgs(cmd.InOrStdin(), out, p)
		if err != nil {
			return err
		}

		outDir := newOutputDir
		if outDir == "" {
			outDir = projectArgs.ModID
		}
		outDir, err = filepath.Abs(outDir)
		if err != nil {
			return fmt.Errorf("resolving output directory: %w", err)
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		p.Title(fmt.Sprintf("Creating %s (%s)", projectArgs.Name, projectArgs.ModID))
		progress := ui.New(cmd.ErrOrStderr())
		result, err := scaffold.Generate(ctx, projectArgs, scaffold.Options{
			OutputDir: outDir,
			RepoURL:   newTemplateRepo,
			KeepGit:   newKeepGit,
			Fetch:     fetchTemplate,
			Progress:  progress.Progress,
		})
		if err != nil {
			return err
		}

		printResult(p, out, result)
		return nil
	},
}

// collectArgs fills in values missing from flags, prompting in the order a
// user would answer them.
func collectArgs(in io.Reader, out io.Writer, p *ui.Printer) (*scaffold.ProjectArgs, error) {
	if newAuthor == "" {
		newAuthor = config.Get(config.KeyAuthor)
	}

	pr := newPrompter(in, out)
	if newVersion == "" {
		printVersions(p, out)
	}
	fields := []struct {
		dst   *string
		label string
	}{
		{&newVersion, "Minecraft version"},
		{&newName, "Name"},
		{&newDescription, "Description"},
		{&newAuthor, "Author"},
		{&newPackage, "Java package"},
		{&newModID, "Mod ID"},
		{&newEntryPoint, "Entry point name"},
	}
	for _, f := range fields {
		if err := pr.fill(f.dst, f.label); err != nil {
			return nil, err
		}
	}

	if note := versionNote(newVersion); note != "" {
		fmt.Fprintln(out, p.Dim(note))
	}

	return scaffold.NewProjectArgs(newVersion, newName, newDescription, newAuthor, newPackage, newModID, newEntryPoint), nil
}

// versionNote explains how an unlisted version will be used.
func versionNote(v string) string {
	if versions.IsKnown(v) || versions.IsCommit(v) {
		return ""
	}
	if c, err := versions.Compare(v, versions.Latest()); err == nil && c > 0 {
		return fmt.Sprintf("Note: %s is newer than %s; using it as a template branch.", v, versions.Latest())
	}
	return fmt.Sprintf("Note: %s is not a listed version; using it as a template branch.", v)
}

func printResult(p *ui.Printer, w io.Writer, result *scaffold.Result) {
	fmt.Fprintf(w, "Created mod at %s/\n", result.OutputDir)
	for _, f := range result.Files {
		fmt.Fprintf(w, "  %s\n", f)
	}
	if len(result.Warnings) > 0 {
		fmt.Fprintln(w, "\nWarnings:")
		for _, warning := range result.Warnings {
			fmt.Fprintf(w, "  - %s\n", warning)
		}
	}
	p.Success("Done!")
}

package scaffold

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/fabricgen-labs/fabricgen/internal/manifest"
	"github.com/fabricgen-labs/fabricgen/internal/rewrite"
	"github.com/fabricgen-labs/fabricgen/internal/template"
	"github.com/fabricgen-labs/fabricgen/internal/tree"
	"github.com/fabricgen-labs/fabricgen/internal/versions"
)

// Literals the example mod template ships with.
const (
	templatePackage     = "net.fabricmc.example"
	templateModID       = "modid"
	templateEntryPoint  = "ExampleMod"
	templateName        = "Example Mod"
	templateAuthor      = "Me!"
	templateDescription = "This is an example description! Tell everyone what your mod is about!"
	templateGroup       = "com.example"
	templateArchive     = "fabric-example-mod"
	mixinsSuffix        = ".mixins.json"
)

// ProjectArgs holds the user's answers for a new mod.
type ProjectArgs struct {
	Version         string // Minecraft version or 40-char template commit
	Name            string // Display name, e.g. "Cool Mod"
	Description     string
	Author          string
	Package         string // Java package, e.g. "com.acme.coolmod"
	ModID           string // e.g. "coolmod"
	EntryPoint      string // Main class name, e.g. "CoolMod"
	VersionIsCommit bool   // Derived: Version is a commit SHA
}

// NewProjectArgs creates ProjectArgs with derived fields populated.
func NewProjectArgs(version, name, description, author, pkg, modID, entryPoint string) *ProjectArgs {
	return &ProjectArgs{
		Version:         version,
		Name:            name,
		Description:     description,
		Author:          author,
		Package:         pkg,
		ModID:           modID,
		EntryPoint:      entryPoint,
		VersionIsCommit: versions.IsCommit(version),
	}
}

// Missing returns the names of required fields that are still empty.
func (a *ProjectArgs) Missing() []string {
	var missing []string
	for _, f := range []struct {
		name, value string
	}{
		{"version", a.Version},
		{"name", a.Name},
		{"description", a.Description},
		{"author", a.Author},
		{"package", a.Package},
		{"modid", a.ModID},
		{"entry point", a.EntryPoint},
	} {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	return missing
}

// Branch returns the template branch for the requested version.
func (a *ProjectArgs) Branch() string {
	return versions.Branch(a.Version)
}

// Fetcher materializes the template into opts.Dir.
type Fetcher func(ctx context.Context, opts template.Options) error

// Options controls Generate.
type Options struct {
	OutputDir string // absolute path of the new project; must not exist
	RepoURL   string // template repository; empty uses template.RepoURL()
	KeepGit   bool
	Fetch     Fetcher          // defaults to template.Clone
	Progress  func(msg string) // optional progress reporting
}

// Result holds the outcome of a project generation.
type Result struct {
	OutputDir string
	Files     []string // rewritten or renamed files, relative to OutputDir
	Warnings  []string
}

// Generate creates a new mod project from the template. Steps run in order
// and the first failure aborts; a partially generated project is left in
// place for inspection.
func Generate(ctx context.Context, args *ProjectArgs, opts Options) (*Result, error) {
	if missing := args.Missing(); len(missing) > 0 {
		return nil, fmt.Errorf("%w: missing %s", tree.ErrInvalidArgument, strings.Join(missing, ", "))
	}
	if !filepath.IsAbs(opts.OutputDir) {
		return nil, fmt.Errorf("%w: output directory %q must be absolute", tree.ErrInvalidArgument, opts.OutputDir)
	}

	fetch := opts.Fetch
	if fetch == nil {
		fetch = template.Clone
	}
	progress := opts.Progress
	if progress == nil {
		progress = func(string) {}
	}

	root := filepath.Clean(opts.OutputDir)
	g := &generator{args: args, root: root, result: &Result{OutputDir: root}}

	fetchOpts := template.Options{
		RepoURL: opts.RepoURL,
		Branch:  args.Branch(),
		Dir:     root,
		KeepGit: opts.KeepGit,
	}
	if args.VersionIsCommit {
		fetchOpts.Commit = args.Version
	}
	progress(fmt.Sprintf("Cloning template (branch %s) into %s...", fetchOpts.Branch, root))
	if err := fetch(ctx, fetchOpts); err != nil {
		return nil, fmt.Errorf("fetching template: %w", err)
	}

	progress("Changing files...")
	steps := []struct {
		name string
		run  func() error
	}{
		{"changing gradle.properties", g.changeGradleProperties},
		{"changing package", g.changePackage},
		{"changing mod jsons", g.changeModJSONs},
	}
	for _, s := range steps {
		if err := s.run(); err != nil {
			return g.result, fmt.Errorf("%s: %w", s.name, err)
		}
	}

	g.validateManifest()
	sort.Strings(g.result.Files)
	return g.result, nil
}

type generator struct {
	args   *ProjectArgs
	root   string
	result *Result
}

func (g *generator) srcMain() string   { return filepath.Join(g.root, "src", "main") }
func (g *generator) resources() string { return filepath.Join(g.srcMain(), "resources") }

func (g *generator) touched(path string) {
	rel, err := filepath.Rel(g.root, path)
	if err != nil {
		rel = path
	}
	g.result.Files = append(g.result.Files, filepath.ToSlash(rel))
}

// SplitPackage splits a Java package at its last dot into the Maven group
// and the archive base name. A package without dots is used for both.
func SplitPackage(pkg string) (group, base string) {
	i := strings.LastIndex(pkg, ".")
	if i < 0 {
		return pkg, pkg
	}
	return pkg[:i], pkg[i+1:]
}

func (g *generator) changeGradleProperties() error {
	path := filepath.Join(g.root, "gradle.properties")
	group, base := SplitPackage(g.args.Package)
	rules := rewrite.Rules{
		{Old: templateGroup, New: group},
		{Old: templateArchive, New: base},
	}
	if err := rewrite.RewriteFile(path, rules); err != nil {
		return err
	}
	g.touched(path)
	return nil
}

// JavaRules are applied, in order, to every Java source in the package.
func JavaRules(args *ProjectArgs) rewrite.Rules {
	return rewrite.Rules{
		{Old: templatePackage, New: args.Package},
		{Old: templateModID, New: args.ModID},
		{Old: templateEntryPoint, New: args.EntryPoint},
	}
}

func (g *generator) changePackage() error {
	javaRoot := filepath.Join(g.srcMain(), "java")
	oldPkg := filepath.Join(append([]string{javaRoot}, strings.Split(templatePackage, ".")...)...)
	newPkg := filepath.Join(append([]string{javaRoot}, packageDirs(g.args.Package)...)...)

	if oldPkg != newPkg {
		if err := tree.Relocate(oldPkg, newPkg); err != nil {
			return err
		}
	}

	assets := filepath.Join(g.resources(), "assets")
	if g.args.ModID != templateModID {
		oldAssets := filepath.Join(assets, templateModID)
		if _, err := os.Stat(oldAssets); err == nil {
			if err := os.Rename(oldAssets, filepath.Join(assets, g.args.ModID)); err != nil {
				return &tree.PathError{Op: "rename", Path: oldAssets, Err: err}
			}
		}
	}

	return tree.Walk(newPkg, rewrite.Handler(rewrite.Options{
		Filter:   rewrite.HasExt(".java"),
		Renames:  map[string]string{templateEntryPoint + ".java": g.args.EntryPoint + ".java"},
		Rules:    JavaRules(g.args),
		OnChange: g.touched,
	}))
}

// ModJSONRules are applied, in order, to fabric.mod.json.
func ModJSONRules(args *ProjectArgs) rewrite.Rules {
	return rewrite.Rules{
		{Old: templateModID, New: args.ModID},
		{Old: templateName, New: args.Name},
		{Old: templateDescription, New: args.Description},
		{Old: templateAuthor, New: args.Author},
		{Old: templatePackage, New: args.Package},
		{Old: templateEntryPoint, New: args.EntryPoint},
	}
}

func (g *generator) changeModJSONs() error {
	resources := g.resources()

	modJSON := filepath.Join(resources, manifest.FileName)
	if err := rewrite.RewriteFile(modJSON, ModJSONRules(g.args)); err != nil {
		return err
	}
	g.touched(modJSON)

	// Newer templates ship a client mixins file next to the common one.
	entries, err := os.ReadDir(resources)
	if err != nil {
		return &tree.PathError{Op: "read", Path: resources, Err: err}
	}
	mixinRules := rewrite.Rules{{Old: templatePackage, New: g.args.Package}}
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasPrefix(name, templateModID+".") || !strings.HasSuffix(name, mixinsSuffix) {
			continue
		}
		path := filepath.Join(resources, name)
		newPath, err := rewrite.RenameFile(path, g.args.ModID+strings.TrimPrefix(name, templateModID))
		if err != nil {
			return err
		}
		if err := rewrite.RewriteFile(newPath, mixinRules); err != nil {
			return err
		}
		g.touched(newPath)
	}
	return nil
}

func (g *generator) validateManifest() {
	path := filepath.Join(g.resources(), manifest.FileName)
	res, err := manifest.ValidateFile(path)
	if err != nil {
		g.result.Warnings = append(g.result.Warnings,
			fmt.Sprintf("Could not validate %s: %v", manifest.FileName, err))
		return
	}
	for _, issue := range res.Issues {
		g.result.Warnings = append(g.result.Warnings, manifest.FileName+" "+issue.String())
	}
}

// packageDirs splits a dotted Java package into directory names.
func packageDirs(pkg string) []string {
	var dirs []string
	for _, p := range strings.Split(pkg, ".") {
		if p != "" {
			dirs = append(dirs, p)
		}
	}
	return dirs
}

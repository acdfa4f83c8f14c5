// Package versions knows which Minecraft versions the example mod template
// provides and maps a requested version to the template branch to clone.
package versions

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// DefaultBranch is the template's main branch.
const DefaultBranch = "master"

// known lists the versions the template has branches for.
var known = []string{"1.16", "1.17", "1.18", "1.19"}

// masterRange holds the versions that live on the default branch rather
// than a branch of their own.
var masterRange = mustConstraint("~1.16")

var commitPattern = regexp.MustCompile(`^[0-9a-fA-F]{40}$`)

// Known returns the supported versions, newest first.
func Known() []string {
	vs := make([]*semver.Version, 0, len(known))
	for _, k := range known {
		vs = append(vs, semver.MustParse(k))
	}
	sort.Sort(sort.Reverse(semver.Collection(vs)))

	out := make([]string, len(vs))
	for i, v := range vs {
		out[i] = v.Original()
	}
	return out
}

// Latest returns the newest supported version.
func Latest() string {
	return Known()[0]
}

// IsCommit reports whether v is a full 40-character commit SHA.
func IsCommit(v string) bool {
	return commitPattern.MatchString(v)
}

// IsKnown reports whether v is one of the supported versions.
func IsKnown(v string) bool {
	for _, k := range known {
		if k == v {
			return true
		}
	}
	return false
}

// Branch returns the template branch to clone for the requested version.
// Commits are cloned from the default branch and checked out afterwards.
// Anything that is not a parsable version is used verbatim as a branch name.
func Branch(v string) string {
	v = strings.TrimSpace(v)
	if IsCommit(v) {
		return DefaultBranch
	}
	if sv, err := parseSemver(v); err == nil && masterRange.Check(sv) {
		return DefaultBranch
	}
	return v
}

// Compare compares two version strings using semver.
// Returns -1 if a < b, 0 if equal, 1 if a > b.
func Compare(a, b string) (int, error) {
	av, err := parseSemver(a)
	if err != nil {
		return 0, fmt.Errorf("parsing version %q: %w", a, err)
	}
	bv, err := parseSemver(b)
	if err != nil {
		return 0, fmt.Errorf("parsing version %q: %w", b, err)
	}
	return av.Compare(bv), nil
}

// parseSemver strips a leading "v" and parses the version string.
func parseSemver(version string) (*semver.Version, error) {
	version = strings.TrimPrefix(version, "v")
	return semver.NewVersion(version)
}

func mustConstraint(c string) *semver.Constraints {
	cs, err := semver.NewConstraint(c)
	if err != nil {
		panic(err)
	}
	return cs
}

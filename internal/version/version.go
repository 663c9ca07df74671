// Package version reports the assetbridge release and build provenance.
package version

import (
	_ "embed"
	"fmt"
	"runtime/debug"
	"strings"
)

// Name is the program name used in generator stamps.
const Name = "assetbridge"

//go:embed VERSION
var versionFile string

// Set via:
//
//	go build -ldflags "-X github.com/leefowlercu/assetbridge/internal/version.gitCommit=VALUE"
var (
	gitCommit string
	buildDate string
)

// Info holds version and build information.
type Info struct {
	Version   string
	GitCommit string
	BuildDate string
}

// String formats Info for the version command.
func (i Info) String() string {
	return fmt.Sprintf("%s %s\nGit Commit: %s\nBuild Date: %s",
		Name, i.Version, i.GitCommit, i.BuildDate)
}

// Generator returns the stamp written into export manifests, e.g. "assetbridge/0.1.0 (abc1234)".
// The commit is omitted when unknown.
func (i Info) Generator() string {
	if i.GitCommit == "" || i.GitCommit == "unknown" {
		return Name + "/" + i.Version
	}
	return fmt.Sprintf("%s/%s (%s)", Name, i.Version, i.GitCommit)
}

// Get returns the populated Info for this binary.
func Get() Info {
	revision, dirty := readBuildInfo()
	return Info{
		Version:   strings.TrimSpace(versionFile),
		GitCommit: resolveCommit(gitCommit, revision, dirty),
		BuildDate: orUnknown(buildDate),
	}
}

// Generator is shorthand for Get().Generator().
func Generator() string {
	return Get().Generator()
}

// resolveCommit prefers the linker value, then VCS build info.
func resolveCommit(linker, revision string, dirty bool) string {
	switch {
	case linker != "":
		return linker
	case revision == "":
		return "unknown"
	case dirty:
		return revision + "-dirty"
	default:
		return revision
	}
}

func orUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}

// readBuildInfo returns the short VCS revision and whether the tree was modified.
func readBuildInfo() (revision string, dirty bool) {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "", false
	}

	for _, setting := range info.Settings {
		switch setting.Key {
		case "vcs.revision":
			revision = setting.Value
			if len(revision) > 7 {
				revision = revision[:7]
			}
		case "vcs.modified":
			dirty = setting.Value == "true"
		}
	}

	return revision, dirty
}

package report

import (
	"os"
	"path/filepath"

	"github.com/leefowlercu/assetbridge/internal/fsutil"
)

// Problem is one manifest entry whose artifact is not as recorded.
type Problem struct {
	Asset  string
	Path   string
	Reason string
}

// Verification is the result of Verify.
type Verification struct {
	Checked  int
	Problems []Problem
}

// OK reports whether every artifact checked out.
func (v Verification) OK() bool {
	return len(v.Problems) == 0
}

// Verify checks that every artifact and dependent texture listed in m exists
// and, where a checksum is recorded, still matches. Relative paths are
// resolved against the session's export path.
func Verify(m *Manifest) Verification {
	var v Verification

	check := func(name, path, checksum string) {
		v.Checked++
		resolved := filepath.FromSlash(path)
		if !filepath.IsAbs(resolved) && m.ExportSession.ExportPath != "" {
			resolved = filepath.Join(m.ExportSession.ExportPath, resolved)
		}

		info, err := os.Stat(resolved)
		if err != nil {
			v.Problems = append(v.Problems, Problem{Asset: name, Path: path, Reason: "missing"})
			return
		}
		if info.IsDir() {
			v.Problems = append(v.Problems, Problem{Asset: name, Path: path, Reason: "is a directory"})
			return
		}
		if checksum == "" {
			return
		}

		sum, err := fsutil.HashFile(resolved)
		if err != nil {
			v.Problems = append(v.Problems, Problem{Asset: name, Path: path, Reason: "unreadable: " + err.Error()})
			return
		}
		if sum != checksum {
			v.Problems = append(v.Problems, Problem{Asset: name, Path: path, Reason: "checksum mismatch"})
		}
	}

	for _, a := range m.Assets {
		check(a.Name, a.Path, a.Checksum)
		for _, tex := range a.Textures {
			check(a.Name+"."+tex.Parameter, tex.Path, "")
		}
	}

	return v
}

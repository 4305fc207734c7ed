// Package manifest expands a `.src` manifest file (spec.md §6) into the
// ordered list of source files a compilation run loads, and loads both
// manifests and single files into a source.Database. This sits outside
// the core's scope per spec.md §1 ("File I/O and the source-manifest
// expansion ... provides byte buffers and path identifiers") but the
// core needs a concrete collaborator to drive it from the CLI, so it is
// implemented here rather than left as an unfulfilled interface.
package manifest

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/cwbudde/daedalus-dc/internal/source"
)

// Error reports a fatal I/O or manifest-syntax failure (spec.md §7
// family 1): unable to open/read a file, or a manifest referencing no
// matching files for one of its lines.
type Error struct {
	Path   string
	Reason string
}

func (e *Error) Error() string {
	return fmt.Sprintf("manifest: %s: %s", e.Path, e.Reason)
}

// ExpandPaths reads a `.src` manifest file and returns the ordered,
// glob-expanded list of source paths it names, each joined onto the
// manifest's directory unless already absolute, per spec.md §6:
// one path per non-empty line, CRLF or LF, paths relative to the
// manifest's directory, lines starting with `//` or blank are ignored,
// and paths may contain glob characters (`*`, `?`). The order of paths
// in the returned slice defines collection order for duplicate-name
// tie-breaking (spec.md §4.4 "Collisions").
func ExpandPaths(manifestPath string) ([]string, error) {
	f, err := os.Open(manifestPath)
	if err != nil {
		return nil, &Error{Path: manifestPath, Reason: err.Error()}
	}
	defer f.Close()

	dir := filepath.Dir(manifestPath)
	var paths []string

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "//") {
			continue
		}

		pattern := line
		if !filepath.IsAbs(pattern) {
			pattern = filepath.Join(dir, pattern)
		}

		if strings.ContainsAny(line, "*?") {
			matches, err := filepath.Glob(pattern)
			if err != nil {
				return nil, &Error{Path: manifestPath, Reason: fmt.Sprintf("invalid glob %q: %v", line, err)}
			}
			if len(matches) == 0 {
				return nil, &Error{Path: manifestPath, Reason: fmt.Sprintf("glob %q matched no files", line)}
			}
			paths = append(paths, matches...)
			continue
		}

		paths = append(paths, pattern)
	}
	if err := scanner.Err(); err != nil {
		return nil, &Error{Path: manifestPath, Reason: err.Error()}
	}
	return paths, nil
}

// LoadInto reads each of paths and registers it in db, in order, and
// returns the matching FileIds. A read failure anywhere is fatal to the
// run (spec.md §7 family 1): no further phases are attempted.
func LoadInto(db *source.Database, paths []string) ([]source.FileId, error) {
	ids := make([]source.FileId, 0, len(paths))
	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			return nil, &Error{Path: p, Reason: err.Error()}
		}
		ids = append(ids, db.Add(p, data))
	}
	return ids, nil
}

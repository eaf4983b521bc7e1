// Package writer places generated units next to their declarations and
// removes output that is no longer produced.
package writer

import (
	"bytes"
	"cmp"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/teranos/notifygen/emit"
	"github.com/teranos/notifygen/errors"
	"github.com/teranos/notifygen/logger"
)

// FilePermissions is the mode of written files.
const FilePermissions = 0o644

// Op is what applying a change does to a file.
type Op int

const (
	OpUnchanged Op = iota
	OpCreate
	OpUpdate
	OpRemove
)

func (o Op) String() string {
	switch o {
	case OpCreate:
		return "create"
	case OpUpdate:
		return "update"
	case OpRemove:
		return "remove"
	default:
		return "unchanged"
	}
}

// Change is the planned state of one generated file.
type Change struct {
	Path string
	Op   Op
	Old  []byte
	New  []byte
}

// Writer plans and applies changes on a file system.
type Writer struct {
	fs     afero.Fs
	prefix string
	logger *zap.SugaredLogger
}

// New returns a Writer for files starting with prefix.
func New(fs afero.Fs, prefix string) *Writer {
	if prefix == "" {
		prefix = emit.DefaultFilePrefix
	}
	return &Writer{fs: fs, prefix: prefix, logger: logger.ComponentLogger("writer")}
}

// Plan compares units with the files on disk. dirs maps the import path of
// every scanned package to its directory; generated files in those
// directories that no unit produces are planned for removal. Changes are
// sorted by path.
func (w *Writer) Plan(units []emit.Unit, dirs map[string]string) ([]Change, error) {
	want := make(map[string][]byte, len(units))
	for _, u := range units {
		dir, ok := dirs[u.PackagePath]
		if !ok {
			return nil, errors.Newf("no directory known for package %s", u.PackagePath)
		}
		if !strings.HasPrefix(u.FileName, w.prefix) {
			return nil, errors.Newf("unit %s: file %s lacks prefix %q", u.Identity, u.FileName, w.prefix)
		}
		path := filepath.Join(dir, u.FileName)
		if _, dup := want[path]; dup {
			return nil, errors.Newf("unit %s: %s is produced twice", u.Identity, path)
		}
		want[path] = u.Source
	}

	var changes []Change
	for path, src := range want {
		old, err := afero.ReadFile(w.fs, path)
		switch {
		case errors.Is(err, os.ErrNotExist):
			changes = append(changes, Change{Path: path, Op: OpCreate, New: src})
		case err != nil:
			return nil, errors.Wrapf(err, "failed to read %s", path)
		case bytes.Equal(old, src):
			changes = append(changes, Change{Path: path, Op: OpUnchanged, Old: old, New: src})
		default:
			changes = append(changes, Change{Path: path, Op: OpUpdate, Old: old, New: src})
		}
	}

	for _, dir := range uniqueDirs(dirs) {
		existing, err := afero.Glob(w.fs, filepath.Join(dir, w.prefix+"*.go"))
		if err != nil {
			return nil, errors.Wrapf(err, "failed to list %s", dir)
		}
		for _, path := range existing {
			if _, ok := want[path]; ok {
				continue
			}
			old, err := afero.ReadFile(w.fs, path)
			if err != nil {
				return nil, errors.Wrapf(err, "failed to read %s", path)
			}
			changes = append(changes, Change{Path: path, Op: OpRemove, Old: old})
		}
	}

	slices.SortFunc(changes, func(a, b Change) int {
		return cmp.Compare(a.Path, b.Path)
	})
	return changes, nil
}

func uniqueDirs(dirs map[string]string) []string {
	out := make([]string, 0, len(dirs))
	for _, d := range dirs {
		if d != "" && !slices.Contains(out, d) {
			out = append(out, d)
		}
	}
	slices.Sort(out)
	return out
}

// Apply performs the changes and returns how many files were touched.
func (w *Writer) Apply(changes []Change) (int, error) {
	n := 0
	for _, c := range changes {
		switch c.Op {
		case OpCreate, OpUpdate:
			if err := afero.WriteFile(w.fs, c.Path, c.New, FilePermissions); err != nil {
				return n, errors.Wrapf(err, "failed to write %s", c.Path)
			}
		case OpRemove:
			if err := w.fs.Remove(c.Path); err != nil && !errors.Is(err, os.ErrNotExist) {
				return n, errors.Wrapf(err, "failed to remove %s", c.Path)
			}
		default:
			continue
		}
		n++
		w.logger.Debugw("Applied change", logger.FieldFile, c.Path, "op", c.Op.String())
	}
	return n, nil
}

// Write plans and applies in one step.
func (w *Writer) Write(units []emit.Unit, dirs map[string]string) ([]Change, error) {
	changes, err := w.Plan(units, dirs)
	if err != nil {
		return nil, err
	}
	if _, err := w.Apply(changes); err != nil {
		return nil, err
	}
	return changes, nil
}

// Pending returns the changes that would modify the file system.
func Pending(changes []Change) []Change {
	var out []Change
	for _, c := range changes {
		if c.Op != OpUnchanged {
			out = append(out, c)
		}
	}
	return out
}

// Diff renders the pending changes as a unified diff with paths relative
// to root. It returns an empty string when nothing would change.
func Diff(changes []Change, root string) (string, error) {
	var sb strings.Builder
	for _, c := range Pending(changes) {
		name := c.Path
		if rel, err := filepath.Rel(root, c.Path); err == nil {
			name = filepath.ToSlash(rel)
		}
		from, to := "a/"+name, "b/"+name
		switch c.Op {
		case OpCreate:
			from = "/dev/null"
		case OpRemove:
			to = "/dev/null"
		}
		text, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
			A:        splitLines(c.Old),
			B:        splitLines(c.New),
			FromFile: from,
			ToFile:   to,
			Context:  3,
		})
		if err != nil {
			return "", errors.Wrapf(err, "failed to diff %s", c.Path)
		}
		sb.WriteString(text)
	}
	return sb.String(), nil
}

func splitLines(b []byte) []string {
	if len(b) == 0 {
		return nil
	}
	return difflib.SplitLines(string(b))
}

// Package loader builds host snapshots from Go packages.
//
// Packages are loaded and type-checked with go/packages. Output written by
// earlier runs is replaced by an empty file of the same package before type
// checking, so stale generated members never count as hand-written
// capabilities.
package loader

import (
	"bytes"
	"context"
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"golang.org/x/tools/go/packages"

	"github.com/teranos/notifygen/emit"
	"github.com/teranos/notifygen/errors"
	"github.com/teranos/notifygen/host"
	"github.com/teranos/notifygen/logger"
)

// Config controls package loading.
type Config struct {
	// Dir is the directory patterns are resolved in. Empty means the
	// working directory.
	Dir string
	// BuildTags are passed to the build system.
	BuildTags []string
	// Exclude holds doublestar patterns matched against package directories
	// relative to Dir.
	Exclude []string
	// GeneratedPrefix is the file name prefix of generated output.
	GeneratedPrefix string
}

// Package is a loaded package that contributed to the snapshot.
type Package struct {
	Path string
	Name string
	Dir  string
}

// Result is the snapshot of the loaded packages.
type Result struct {
	Snapshot *host.Snapshot
	// Packages are keyed by import path.
	Packages map[string]Package
}

const loadMode = packages.NeedName |
	packages.NeedFiles |
	packages.NeedSyntax |
	packages.NeedTypes |
	packages.NeedTypesInfo |
	packages.NeedImports

// Load type-checks the packages matching patterns and scans them.
//
// Type errors do not fail the load: hand-written code commonly calls
// generated accessors, which are hidden while loading.
func Load(ctx context.Context, cfg Config, patterns ...string) (*Result, error) {
	log := logger.ComponentLogger("loader")
	if cfg.GeneratedPrefix == "" {
		cfg.GeneratedPrefix = emit.DefaultFilePrefix
	}
	if len(patterns) == 0 {
		patterns = []string{"./..."}
	}
	dir := cfg.Dir
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, errors.Wrap(err, "failed to resolve working directory")
		}
		dir = wd
	}
	dir, err := filepath.Abs(dir)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to resolve %s", dir)
	}
	for _, pattern := range cfg.Exclude {
		if !doublestar.ValidatePattern(pattern) {
			return nil, errors.WithHintf(errors.Newf("invalid exclude pattern %q", pattern),
				"exclude patterns use doublestar syntax, e.g. \"internal/**\"")
		}
	}

	overlay, err := blankGenerated(dir, cfg.GeneratedPrefix)
	if err != nil {
		return nil, err
	}

	pcfg := &packages.Config{
		Context: ctx,
		Mode:    loadMode,
		Dir:     dir,
		Overlay: overlay,
	}
	if len(cfg.BuildTags) > 0 {
		pcfg.BuildFlags = []string{"-tags=" + strings.Join(cfg.BuildTags, ",")}
	}

	pkgs, err := packages.Load(pcfg, patterns...)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, errors.Wrap(errors.Wrap(errors.ErrLoad, err.Error()), "failed to load packages")
	}

	res := &Result{Snapshot: &host.Snapshot{}, Packages: make(map[string]Package)}
	for _, pkg := range pkgs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := checkErrors(pkg); err != nil {
			return nil, err
		}
		for _, e := range pkg.Errors {
			log.Debugw("Ignoring type error", logger.FieldPackage, pkg.PkgPath, logger.FieldError, e.Msg)
		}
		if pkg.Types == nil || pkg.TypesInfo == nil {
			continue
		}

		pkgDir := packageDir(pkg)
		if excluded(cfg.Exclude, dir, pkgDir) {
			log.Debugw("Excluded package", logger.FieldPackage, pkg.PkgPath, logger.FieldDir, pkgDir)
			continue
		}

		found, err := Scan(pkg.Fset, pkg.Syntax, pkg.Types, pkg.TypesInfo, cfg.GeneratedPrefix)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to scan %s", pkg.PkgPath)
		}
		res.Packages[pkg.PkgPath] = Package{Path: pkg.PkgPath, Name: pkg.Name, Dir: pkgDir}
		res.Snapshot.Types = append(res.Snapshot.Types, found...)
	}
	log.Debugw("Loaded packages",
		"packages", len(res.Packages),
		logger.FieldCount, len(res.Snapshot.Types))
	return res, nil
}

// checkErrors fails on errors that leave the package unusable.
func checkErrors(pkg *packages.Package) error {
	for _, e := range pkg.Errors {
		if e.Kind == packages.TypeError {
			continue
		}
		return errors.Wrapf(errors.Wrap(errors.ErrLoad, e.Error()), "package %s", pkg.PkgPath)
	}
	return nil
}

func packageDir(pkg *packages.Package) string {
	if len(pkg.GoFiles) > 0 {
		return filepath.Dir(pkg.GoFiles[0])
	}
	return ""
}

func excluded(patterns []string, root, dir string) bool {
	if len(patterns) == 0 || dir == "" {
		return false
	}
	rel, err := filepath.Rel(root, dir)
	if err != nil {
		return false
	}
	rel = filepath.ToSlash(rel)
	for _, p := range patterns {
		if ok, _ := doublestar.Match(p, rel); ok {
			return true
		}
	}
	return false
}

// blankGenerated maps every generated file below dir to a file holding only
// its package clause.
func blankGenerated(dir, prefix string) (map[string][]byte, error) {
	matches, err := doublestar.Glob(os.DirFS(dir), "**/"+prefix+"*.go")
	if err != nil {
		return nil, errors.Wrapf(err, "failed to find generated files in %s", dir)
	}
	overlay := make(map[string][]byte, len(matches))
	fset := token.NewFileSet()
	for _, m := range matches {
		path := filepath.Join(dir, filepath.FromSlash(m))
		f, err := parser.ParseFile(fset, path, nil, parser.PackageClauseOnly)
		if err != nil {
			// left for the build system to report
			continue
		}
		var buf bytes.Buffer
		buf.WriteString("package ")
		buf.WriteString(f.Name.Name)
		buf.WriteString("\n")
		overlay[path] = buf.Bytes()
	}
	return overlay, nil
}

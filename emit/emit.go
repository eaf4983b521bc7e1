// Package emit renders an observable type declaration into Go source.
//
// Output for a declaration is fully determined by the declaration: the same
// model always yields byte-identical source.
package emit

import (
	"bytes"
	"context"
	"path"
	"strings"

	"github.com/dave/jennifer/jen"

	"github.com/teranos/notifygen/errors"
	"github.com/teranos/notifygen/internal/util"
	"github.com/teranos/notifygen/model"
	"github.com/teranos/notifygen/version"
)

const (
	// RuntimePath is the import path of the package generated code uses.
	RuntimePath = "github.com/teranos/notifygen/notify"

	// DefaultFilePrefix starts the name of every generated file.
	DefaultFilePrefix = "zz_generated.notify."
)

// ErrNoFields is returned for a declaration without fields. The pipeline
// reports such types and never emits them.
var ErrNoFields = errors.New("observable type has no fields")

// Unit is the generated source for one observable type.
type Unit struct {
	// Identity is the declaration's cache key.
	Identity string
	// PackagePath is the import path of the declaring package.
	PackagePath string
	FileName    string
	Source      []byte
}

// Emitter renders units.
type Emitter struct {
	filePrefix  string
	runtimePath string
}

// Option configures an Emitter.
type Option func(*Emitter)

// WithFilePrefix sets the generated file name prefix.
func WithFilePrefix(prefix string) Option {
	return func(e *Emitter) {
		if prefix != "" {
			e.filePrefix = prefix
		}
	}
}

// New returns an Emitter.
func New(opts ...Option) *Emitter {
	e := &Emitter{filePrefix: DefaultFilePrefix, runtimePath: RuntimePath}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// FilePrefix returns the generated file name prefix.
func (e *Emitter) FilePrefix() string {
	return e.filePrefix
}

// FileName returns the unit file name for decl.
func (e *Emitter) FileName(decl model.ObservableType) string {
	return e.filePrefix + util.FileStem(decl.Name) + ".go"
}

// registerImports tells jennifer the name each descriptor uses for a
// package. Names that differ from the last path element are written as
// explicit aliases.
func registerImports(f *jen.File, imports []model.Import) {
	for _, imp := range imports {
		if path.Base(imp.Path) == imp.Name {
			f.ImportName(imp.Path, imp.Name)
		} else {
			f.ImportAlias(imp.Path, imp.Name)
		}
	}
}

// PackagePath returns the import path recorded for decl.
func PackagePath(decl model.ObservableType) string {
	return strings.Join(decl.Scope, "/")
}

// Emit renders decl. Cancellation is checked between fields.
func (e *Emitter) Emit(ctx context.Context, decl model.ObservableType) (Unit, error) {
	if len(decl.Fields) == 0 {
		return Unit{}, errors.Wrapf(ErrNoFields, "%s", decl.Identity())
	}

	f := jen.NewFilePathName(PackagePath(decl), decl.PackageName)
	f.HeaderComment("Code generated by " + version.Generator() + ". DO NOT EDIT.")
	f.ImportName(e.runtimePath, "notify")
	for _, fld := range decl.Fields {
		registerImports(f, fld.Imports)
	}
	for _, tp := range decl.TypeParams {
		registerImports(f, tp.Imports)
	}

	r, err := newRenderer(decl, e.runtimePath)
	if err != nil {
		return Unit{}, err
	}

	// 1-2: event surfaces
	if !decl.ProvidesNotifier {
		r.changedEvent(f)
	}
	if decl.GeneratesChanging() {
		r.changingEvent(f)
	}

	// 3: suppression state
	if decl.Suppressable {
		r.alwaysNotifySet(f)
	}

	// 4: accessors
	for i := range decl.Fields {
		if err := ctx.Err(); err != nil {
			return Unit{}, err
		}
		r.getter(f, i)
		r.setter(f, i)
	}

	// 5-6: raising routines
	if !decl.ProvidesNotifier {
		r.onChanged(f)
	}
	if decl.GeneratesChanging() {
		r.onChanging(f)
	}

	// 7: hook declarations
	for i := range decl.Fields {
		r.hooks(f, i)
	}

	// 8: suppression API
	if decl.Suppressable {
		r.suppression(f)
	}

	var buf bytes.Buffer
	if err := f.Render(&buf); err != nil {
		return Unit{}, errors.Wrapf(err, "failed to render %s", decl.Identity())
	}

	return Unit{
		Identity:    decl.Identity(),
		PackagePath: PackagePath(decl),
		FileName:    e.FileName(decl),
		Source:      buf.Bytes(),
	}, nil
}

package extract

import (
	"context"
	"slices"
	"strings"

	"github.com/teranos/notifygen/host"
	"github.com/teranos/notifygen/internal/util"
	"github.com/teranos/notifygen/marker"
	"github.com/teranos/notifygen/model"
)

// AccessorName derives the public accessor for a storage field: the Rename
// value when present, otherwise the name without its prefix and with the
// first character upper-cased.
func AccessorName(f host.Field) string {
	if r, ok := f.Markers.Rename(); ok {
		return r.Name()
	}
	return util.UpperFirst(strings.TrimPrefix(f.Name, StoragePrefix))
}

var setterLevels = map[marker.Level]model.SetterVisibility{
	marker.LevelPublic:               model.SetterDefault,
	marker.LevelProtected:            model.SetterProtected,
	marker.LevelInternal:             model.SetterInternal,
	marker.LevelPrivate:              model.SetterPrivate,
	marker.LevelProtectedOrInternal:  model.SetterProtectedOrInternal,
	marker.LevelProtectedAndInternal: model.SetterProtectedAndInternal,
}

// BuildField derives the model of one eligible field.
func BuildField(f host.Field) model.Field {
	setter := model.SetterDefault
	if s, ok := f.Markers.Setter(); ok {
		setter = setterLevels[s.Level]
	}
	return model.Field{
		StorageName:     f.Name,
		AccessorName:    AccessorName(f),
		Type:            f.Type.Display,
		Imports:         slices.Clone(f.Type.Imports),
		Nullable:        f.Type.Nullable,
		Primitive:       f.Type.Kind.Primitive(),
		AlsoNotify:      nonEmpty(f.Markers.AlsoNotify()),
		RefreshCommands: nonEmpty(f.Markers.RefreshCommands()),
		Setter:          setter,
	}
}

// nonEmpty drops empty values and keeps order and duplicates.
func nonEmpty(in []string) []string {
	var out []string
	for _, s := range in {
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

// Build derives the declaration of t from its eligible fields.
func Build(ctx context.Context, t host.Type, eligible []host.Field) (model.ObservableType, error) {
	obs, _ := t.Markers.Observable()
	sup, suppressable := t.Markers.Suppressable()

	visibility := model.Unexported
	if t.Exported {
		visibility = model.Exported
	}

	decl := model.ObservableType{
		Scope:             slices.Clone(t.Scope),
		PackageName:       t.PackageName,
		Name:              t.Name,
		TypeParams:        slices.Clone(t.TypeParams),
		Visibility:        visibility,
		ProvidesNotifier:  t.ProvidesNotifier,
		ProvidesChanging:  t.ProvidesChanging,
		ImplementChanging: obs.ImplementChanging,
		Suppressable:      suppressable,
		AlwaysNotify:      nonEmpty(sup.AlwaysNotify),
	}
	for _, f := range eligible {
		if err := ctx.Err(); err != nil {
			return model.ObservableType{}, err
		}
		decl.Fields = append(decl.Fields, BuildField(f))
	}
	return decl, nil
}

package diag

import (
	"github.com/teranos/notifygen/extract"
	"github.com/teranos/notifygen/host"
	"github.com/teranos/notifygen/marker"
)

// Check evaluates the rules for one Observable-marked type. eligible must be
// the classifier's result for t. The boolean reports whether a unit should
// be emitted.
func Check(t host.Type, eligible []host.Field) ([]Diagnostic, bool) {
	if !t.Extensible {
		return []Diagnostic{NotExtensible(t)}, false
	}

	var ds []Diagnostic
	for _, f := range t.Fields {
		if !extract.ConventionMatch(f.Name) || f.Markers.Has(marker.KindIgnore) {
			continue
		}
		switch {
		case f.Static || f.Const:
			ds = append(ds, StaticField(t, f))
		case f.ReadOnly:
			ds = append(ds, ReadOnlyField(t, f))
		}
	}

	if len(eligible) == 0 {
		return append(ds, NoEligibleFields(t)), false
	}

	accessors := make(map[string]bool, len(eligible))
	for _, f := range eligible {
		accessors[extract.AccessorName(f)] = true
	}
	for _, f := range eligible {
		for _, target := range f.Markers.AlsoNotify() {
			if target == "" || accessors[target] || t.HasMember(target) {
				continue
			}
			ds = append(ds, UnknownDependent(t, f, target))
		}
	}
	return ds, true
}

// NotExtensible reports an Observable-marked type that cannot be extended.
func NotExtensible(t host.Type) Diagnostic {
	return newDiagnostic(CodeNotExtensible, t, t.Pos,
		"type %s is marked observable but cannot be extended; embed notify.Extension", t.Name)
}

// NoEligibleFields reports an observable type without storage fields.
func NoEligibleFields(t host.Type) Diagnostic {
	return newDiagnostic(CodeNoEligibleFields, t, t.Pos,
		"type %s is marked observable but has no eligible fields; storage fields must be unexported and start with %q",
		t.Name, extract.StoragePrefix)
}

// UnknownDependent reports an AlsoNotify target that names nothing.
func UnknownDependent(t host.Type, f host.Field, target string) Diagnostic {
	d := newDiagnostic(CodeUnknownDependent, t, f.Pos,
		"field %s of %s notifies %q, which is neither a member of %s nor a generated accessor",
		f.Name, t.Name, target, t.Name)
	d.Field = f.Name
	return d
}

// StaticField reports a convention-matching static or constant field.
func StaticField(t host.Type, f host.Field) Diagnostic {
	d := newDiagnostic(CodeStaticField, t, f.Pos,
		"field %s of %s is static or constant and is not observable", f.Name, t.Name)
	d.Field = f.Name
	return d
}

// ReadOnlyField reports a convention-matching read-only field.
func ReadOnlyField(t host.Type, f host.Field) Diagnostic {
	d := newDiagnostic(CodeReadOnlyField, t, f.Pos,
		"field %s of %s is read-only and is not observable", f.Name, t.Name)
	d.Field = f.Name
	return d
}

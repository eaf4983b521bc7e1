// Package extract turns host declarations into generation models: it
// decides which fields are observable storage and derives everything the
// emitter needs from them.
package extract

import (
	"context"
	"strings"

	"github.com/teranos/notifygen/host"
	"github.com/teranos/notifygen/marker"
)

// StoragePrefix starts every storage field name.
const StoragePrefix = "_"

// ConventionMatch reports whether name follows the storage naming
// convention: the prefix followed by at least one character.
func ConventionMatch(name string) bool {
	return len(name) > len(StoragePrefix) && strings.HasPrefix(name, StoragePrefix)
}

// Eligible reports whether f is observable storage.
func Eligible(f host.Field) bool {
	return f.Accessibility == host.Private &&
		!f.Static &&
		!f.Const &&
		!f.ReadOnly &&
		ConventionMatch(f.Name) &&
		!f.Markers.Has(marker.KindIgnore)
}

// Classify returns the eligible fields in declaration order.
func Classify(ctx context.Context, fields []host.Field) ([]host.Field, error) {
	var eligible []host.Field
	for _, f := range fields {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if Eligible(f) {
			eligible = append(eligible, f)
		}
	}
	return eligible, nil
}

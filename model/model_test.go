package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func person() ObservableType {
	return ObservableType{
		Scope:       []string{"example.com/app/people"},
		PackageName: "people",
		Name:        "Person",
		Visibility:  Exported,
		Fields: []Field{
			{StorageName: "_name", AccessorName: "Name", Type: "string", AlsoNotify: []string{"Greeting"}},
			{StorageName: "_age", AccessorName: "Age", Type: "int", Primitive: true},
		},
	}
}

func TestEqual(t *testing.T) {
	base := person()

	tests := []struct {
		name   string
		mutate func(*ObservableType)
		equal  bool
	}{
		{"identical", func(*ObservableType) {}, true},
		{"field order", func(o *ObservableType) { o.Fields[0], o.Fields[1] = o.Fields[1], o.Fields[0] }, false},
		{"second field type", func(o *ObservableType) { o.Fields[1].Type = "int64" }, false},
		{"dependent appended", func(o *ObservableType) { o.Fields[0].AlsoNotify = append(o.Fields[0].AlsoNotify, "X") }, false},
		{"changing requested", func(o *ObservableType) { o.ImplementChanging = true }, false},
		{"setter", func(o *ObservableType) { o.Fields[1].Setter = SetterPrivate }, false},
		{"type param constraint", func(o *ObservableType) { o.TypeParams = []TypeParam{{Name: "T", Constraint: "any"}} }, false},
		{"exemption", func(o *ObservableType) { o.AlwaysNotify = []string{"Age"} }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			other := person()
			tt.mutate(&other)
			assert.Equal(t, tt.equal, base.Equal(other))
			assert.Equal(t, tt.equal, other.Equal(base))
			if tt.equal {
				assert.Equal(t, base.Hash(), other.Hash())
			}
		})
	}
}

func TestHashConsistentWithEqual(t *testing.T) {
	a, b := person(), person()
	assert.True(t, a.Equal(b))
	assert.Equal(t, a.Hash(), b.Hash())
	assert.Equal(t, a.Fields[0].Hash(), b.Fields[0].Hash())

	// Only the first element of a sequence feeds the hash, so a change deep in
	// the field list collides while Equal still tells the values apart.
	b.Fields[1].Type = "uint"
	assert.Equal(t, a.Hash(), b.Hash())
	assert.False(t, a.Equal(b))

	b = person()
	b.Name = "Human"
	assert.NotEqual(t, a.Hash(), b.Hash())
}

func TestIdentity(t *testing.T) {
	p := person()
	assert.Equal(t, "example.com/app/people.Person", p.Identity())

	p.TypeParams = []TypeParam{{Name: "K", Constraint: "comparable"}, {Name: "V", Constraint: "any"}}
	assert.Equal(t, "example.com/app/people.Person[2]", p.Identity())

	assert.Equal(t, "Orphan", ObservableType{Name: "Orphan"}.Identity())
}

func TestChangingFlags(t *testing.T) {
	tests := []struct {
		requested, provided bool
		active, generates   bool
	}{
		{false, false, false, false},
		{true, false, true, true},
		{false, true, true, false},
		{true, true, true, false},
	}
	for _, tt := range tests {
		o := ObservableType{ImplementChanging: tt.requested, ProvidesChanging: tt.provided}
		assert.Equal(t, tt.active, o.ChangingActive())
		assert.Equal(t, tt.generates, o.GeneratesChanging())
	}
}

func TestAccessors(t *testing.T) {
	assert.Equal(t, []string{"Name", "Age"}, person().Accessors())
	assert.True(t, SetterInternal.Restricted())
	assert.False(t, SetterDefault.Restricted())
	assert.Equal(t, "protectedAndInternal", SetterProtectedAndInternal.String())
}

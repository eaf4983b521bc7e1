package marker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/notifygen/errors"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		text string
		want Marker
	}{
		{"observable", "// +notify:observable", Observable{}},
		{"observable changing", "+notify:observable:implementChanging=true", Observable{ImplementChanging: true}},
		{"case insensitive", "//+notify:Observable:ImplementChanging=TRUE", Observable{ImplementChanging: true}},
		{"ignore", "+notify:ignore", Ignore{}},
		{"rename", "+notify:rename=FullName", Rename{name: "FullName"}},
		{"also notify", "+notify:alsoNotify=Greeting", AlsoNotify{Target: "Greeting"}},
		{"also notify empty", "+notify:alsoNotify=", AlsoNotify{}},
		{"refresh command", "+notify:refreshCommand=SaveCommand", RefreshCommand{Target: "SaveCommand"}},
		{"setter", "+notify:setter=protectedOrInternal", SetterVisibility{Level: LevelProtectedOrInternal}},
		{"suppressable", "+notify:suppressable", Suppressable{}},
		{"suppressable exempt", "+notify:suppressable:alwaysNotify=IsLoading, IsBusy,", Suppressable{AlwaysNotify: []string{"IsLoading", "IsBusy"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok, err := Parse(tt.text)
			require.NoError(t, err)
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseNotADirective(t *testing.T) {
	for _, text := range []string{"", "// Person is a person.", "+build linux", "// +kubebuilder:object:root=true"} {
		m, ok, err := Parse(text)
		assert.NoError(t, err)
		assert.False(t, ok)
		assert.Nil(t, m)
	}
}

func TestParseInvalid(t *testing.T) {
	tests := []struct {
		name string
		text string
		msg  string
	}{
		{"unknown", "+notify:bogus", `unknown directive "bogus"`},
		{"empty rename", "+notify:rename=", "rename requires a non-empty name"},
		{"bad level", "+notify:setter=friend", `unknown setter level "friend"`},
		{"bad bool", "+notify:observable:implementChanging=maybe", "not a boolean"},
		{"unknown option", "+notify:observable:sealed=true", `unknown option "sealed"`},
		{"option without value", "+notify:suppressable:alwaysNotify", "is not key=value"},
		{"value on flag", "+notify:ignore=yes", "takes no value"},
		{"rename with space", "+notify:rename=Full Name", `rename: "Full Name" is not a Go identifier`},
		{"rename with dot", "+notify:rename=p.Name", `"p.Name" is not a Go identifier`},
		{"rename keyword", "+notify:rename=func", `"func" is not a Go identifier`},
		{"also notify call", "+notify:alsoNotify=Total()", `alsoNotify: "Total()" is not a Go identifier`},
		{"refresh command with space", "+notify:refreshCommand=Save Command", `refreshCommand: "Save Command" is not a Go identifier`},
		{"always notify entry", "+notify:suppressable:alwaysNotify=IsBusy,Is Loading", `alwaysNotify: "Is Loading" is not a Go identifier`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok, err := Parse(tt.text)
			require.Error(t, err)
			assert.True(t, ok)
			assert.True(t, errors.IsInvalidMarker(err))
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}

func TestDirectiveRoundTrip(t *testing.T) {
	rename, err := NewRename("Title")
	require.NoError(t, err)

	set := Set{
		Observable{ImplementChanging: true},
		Suppressable{AlwaysNotify: []string{"IsBusy"}},
		rename,
		AlsoNotify{Target: "A"},
		AlsoNotify{Target: "A"},
		RefreshCommand{Target: "Save"},
		SetterVisibility{Level: LevelPrivate},
		Ignore{},
	}
	parsed, err := ParseAll(set.Directives())
	require.NoError(t, err)
	assert.Equal(t, set, parsed)
}

func TestSetLookups(t *testing.T) {
	set, err := ParseAll([]string{
		"// Order is an order.",
		"// +notify:alsoNotify=Total",
		"// +notify:refreshCommand=Submit",
		"// +notify:alsoNotify=",
		"// +notify:alsoNotify=Total",
		"// +notify:setter=internal",
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"Total", "", "Total"}, set.AlsoNotify())
	assert.Equal(t, []string{"Submit"}, set.RefreshCommands())
	assert.True(t, set.Has(KindSetter))
	assert.False(t, set.Has(KindIgnore))

	s, ok := set.Setter()
	assert.True(t, ok)
	assert.Equal(t, LevelInternal, s.Level)

	_, ok = set.Observable()
	assert.False(t, ok)
	_, ok = set.Rename()
	assert.False(t, ok)
}

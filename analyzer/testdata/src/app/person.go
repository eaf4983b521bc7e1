package app

import "github.com/teranos/notifygen/notify"

// +notify:observable
type Settings struct { // want `NOTIFY002: type Settings is marked observable but has no eligible fields`
	notify.Extension
	Value int
}

// +notify:observable:implementChanging=true
type Person struct {
	notify.Extension

	// +notify:alsoNotify=Greeting
	// +notify:alsoNotify=Initials
	// +notify:alsoNotify=Nope
	_name string // want `NOTIFY003: field _name of Person notifies "Nope"`

	// +notify:refreshCommand=Save
	_age int

	Save notify.Command
}

func (p *Person) Greeting() string { return "hello" }

func (p *Person) Initials() string { return "" }

// Unmarked types are not checked.
type Other struct {
	_value int
}

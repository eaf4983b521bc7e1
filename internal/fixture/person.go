// Package fixture holds an observable type next to its generated members so
// that tests exercise the code notifygen actually emits.
package fixture

import "github.com/teranos/notifygen/notify"

//go:generate go run ../../cmd/notifygen generate .

// Person raises the pre-change signal and supports suppression. Busy is
// never deferred.
//
// +notify:observable:implementChanging=true
// +notify:suppressable:alwaysNotify=Busy
type Person struct {
	notify.Extension

	// +notify:alsoNotify=Greeting
	// +notify:refreshCommand=Save
	_name  string
	_age   int
	_email string
	_busy  bool
	_rank  *int

	Save notify.Command

	// Trace records the name hooks in call order.
	Trace []string
}

// Greeting is computed from the name.
func (p *Person) Greeting() string {
	return "Hello, " + p._name
}

func (p *Person) onNameChanging(oldValue, newValue string) {
	p.Trace = append(p.Trace, "changing "+oldValue+" to "+newValue)
}

func (p *Person) onNameChanged() {
	p.Trace = append(p.Trace, "changed to "+p._name)
}

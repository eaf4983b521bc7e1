// Package notify is the runtime support imported by code generated with
// notifygen.
//
// An observable type embeds Extension and marks its storage fields:
//
//	// +notify:observable
//	type Person struct {
//		notify.Extension
//
//		_name string
//		// +notify:alsoNotify=Greeting
//		_age int
//	}
//
// The generator then emits accessors, setters and the PropertyChanged event
// into zz_generated.notify.person.go next to the declaration.
package notify

import "reflect"

// Notifier is implemented by types that raise PropertyChanged.
type Notifier interface {
	PropertyChanged() *Event[PropertyChangedEventArgs]
	OnPropertyChanged(name string)
}

// ChangingNotifier is implemented by types that raise PropertyChanging
// before a value is replaced.
type ChangingNotifier interface {
	PropertyChanging() *Event[PropertyChangingEventArgs]
	OnPropertyChanging(name string)
}

// Command is an object whose executability depends on observable state.
type Command interface {
	NotifyCanExecuteChanged()
}

// Extension marks a struct as extensible by generated code and carries the
// per-instance notification state. It must be embedded, not named.
type Extension struct {
	state State
}

// NotifyState returns the state shared by the generated members.
func (x *Extension) NotifyState() *State {
	return &x.state
}

// State is the per-instance notification state.
type State struct {
	Changed  Event[PropertyChangedEventArgs]
	Changing Event[PropertyChangingEventArgs]

	// Deferred counts open suppression scopes.
	Deferred int
	// Pending holds names whose change signals were deferred.
	Pending PendingNames
}

// Suppressed reports whether change signals are currently being deferred.
func (s *State) Suppressed() bool {
	return s.Deferred > 0
}

// PendingNames is an insertion-ordered set of accessor names.
type PendingNames struct {
	order []string
	seen  map[string]struct{}
}

// Add records name and reports whether it was not already pending.
func (p *PendingNames) Add(name string) bool {
	if _, ok := p.seen[name]; ok {
		return false
	}
	if p.seen == nil {
		p.seen = make(map[string]struct{})
	}
	p.seen[name] = struct{}{}
	p.order = append(p.order, name)
	return true
}

// Len reports the number of pending names.
func (p *PendingNames) Len() int {
	return len(p.order)
}

// Drain returns the pending names in first-recorded order and clears the set.
func (p *PendingNames) Drain() []string {
	names := p.order
	p.order = nil
	p.seen = nil
	return names
}

// Equal reports whether a and b hold the same value. Types with an
// Equal(T) bool method (time.Time, decimal.Decimal) decide for themselves;
// everything else is compared with reflect.DeepEqual.
func Equal[T any](a, b T) bool {
	if eq, ok := any(a).(interface{ Equal(T) bool }); ok {
		return eq.Equal(b)
	}
	return reflect.DeepEqual(a, b)
}

// PointeeEqual compares optional values by what they point to. Two nil
// pointers are equal; nil never equals a non-nil pointer.
func PointeeEqual[T comparable](a, b *T) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

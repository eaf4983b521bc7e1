package marker

// Set holds the markers attached to one declaration in declaration order.
// Repeatable markers keep their duplicates.
type Set []Marker

// Has reports whether any marker of kind k is present.
func (s Set) Has(k Kind) bool {
	for _, m := range s {
		if m.Kind() == k {
			return true
		}
	}
	return false
}

// Observable returns the first Observable marker.
func (s Set) Observable() (Observable, bool) {
	for _, m := range s {
		if o, ok := m.(Observable); ok {
			return o, true
		}
	}
	return Observable{}, false
}

// Suppressable returns the first Suppressable marker.
func (s Set) Suppressable() (Suppressable, bool) {
	for _, m := range s {
		if o, ok := m.(Suppressable); ok {
			return o, true
		}
	}
	return Suppressable{}, false
}

// Rename returns the first Rename marker.
func (s Set) Rename() (Rename, bool) {
	for _, m := range s {
		if r, ok := m.(Rename); ok {
			return r, true
		}
	}
	return Rename{}, false
}

// Setter returns the first SetterVisibility marker.
func (s Set) Setter() (SetterVisibility, bool) {
	for _, m := range s {
		if v, ok := m.(SetterVisibility); ok {
			return v, true
		}
	}
	return SetterVisibility{}, false
}

// AlsoNotify returns every AlsoNotify target in order.
func (s Set) AlsoNotify() []string {
	var out []string
	for _, m := range s {
		if a, ok := m.(AlsoNotify); ok {
			out = append(out, a.Target)
		}
	}
	return out
}

// RefreshCommands returns every RefreshCommand target in order.
func (s Set) RefreshCommands() []string {
	var out []string
	for _, m := range s {
		if r, ok := m.(RefreshCommand); ok {
			out = append(out, r.Target)
		}
	}
	return out
}

// Directives renders the set back to comment text.
func (s Set) Directives() []string {
	out := make([]string, len(s))
	for i, m := range s {
		out[i] = m.Directive()
	}
	return out
}

package marker

import (
	"strconv"
	"strings"

	"github.com/teranos/notifygen/errors"
)

// Parse reads one directive. The text may carry its comment slashes. The
// boolean is false when text is not a notify directive at all.
func Parse(text string) (Marker, bool, error) {
	text = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(text), "//"))
	if !strings.HasPrefix(text, Prefix) {
		return nil, false, nil
	}
	body := strings.TrimSpace(text[len(Prefix):])

	segments := strings.Split(body, ":")
	name, value, hasValue := strings.Cut(segments[0], "=")
	name = strings.TrimSpace(name)
	value = strings.TrimSpace(value)

	opts := make(map[string]string, len(segments)-1)
	for _, seg := range segments[1:] {
		k, v, ok := strings.Cut(seg, "=")
		if !ok || strings.TrimSpace(k) == "" {
			return nil, true, errors.NewInvalidMarkerError("%s: option %q is not key=value", text, seg)
		}
		opts[strings.ToLower(strings.TrimSpace(k))] = strings.TrimSpace(v)
	}

	m, err := build(name, value, hasValue, opts)
	if err != nil {
		return nil, true, errors.Wrapf(err, "%s", text)
	}
	return m, true, nil
}

func build(name, value string, hasValue bool, opts map[string]string) (Marker, error) {
	allow := func(keys ...string) error {
		for k := range opts {
			known := false
			for _, want := range keys {
				if strings.EqualFold(k, want) {
					known = true
				}
			}
			if !known {
				return errors.NewInvalidMarkerError("unknown option %q for %s", k, name)
			}
		}
		return nil
	}
	noValue := func() error {
		if hasValue {
			return errors.NewInvalidMarkerError("%s takes no value", name)
		}
		return nil
	}

	switch {
	case strings.EqualFold(name, KindObservable.String()):
		if err := noValue(); err != nil {
			return nil, err
		}
		if err := allow("implementChanging"); err != nil {
			return nil, err
		}
		m := Observable{}
		if v, ok := opts["implementchanging"]; ok {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return nil, errors.NewInvalidMarkerError("implementChanging: %q is not a boolean", v)
			}
			m.ImplementChanging = b
		}
		return m, nil

	case strings.EqualFold(name, KindIgnore.String()):
		if err := noValue(); err != nil {
			return nil, err
		}
		return Ignore{}, allow()

	case strings.EqualFold(name, KindRename.String()):
		if err := allow(); err != nil {
			return nil, err
		}
		r, err := NewRename(value)
		if err != nil {
			return nil, err
		}
		return r, nil

	case strings.EqualFold(name, KindAlsoNotify.String()):
		if err := allow(); err != nil {
			return nil, err
		}
		m, err := NewAlsoNotify(value)
		if err != nil {
			return nil, err
		}
		return m, nil

	case strings.EqualFold(name, KindRefreshCommand.String()):
		if err := allow(); err != nil {
			return nil, err
		}
		m, err := NewRefreshCommand(value)
		if err != nil {
			return nil, err
		}
		return m, nil

	case strings.EqualFold(name, KindSetter.String()):
		if err := allow(); err != nil {
			return nil, err
		}
		level, err := ParseLevel(value)
		if err != nil {
			return nil, err
		}
		return SetterVisibility{Level: level}, nil

	case strings.EqualFold(name, KindSuppressable.String()):
		if err := noValue(); err != nil {
			return nil, err
		}
		if err := allow("alwaysNotify"); err != nil {
			return nil, err
		}
		m, err := NewSuppressable(strings.Split(opts["alwaysnotify"], ",")...)
		if err != nil {
			return nil, err
		}
		return m, nil
	}

	return nil, errors.NewInvalidMarkerError("unknown directive %q", name)
}

// ParseAll parses every directive among lines, ignoring other text.
func ParseAll(lines []string) (Set, error) {
	var set Set
	for _, line := range lines {
		m, ok, err := Parse(line)
		if err != nil {
			return nil, err
		}
		if ok {
			set = append(set, m)
		}
	}
	return set, nil
}

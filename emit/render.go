package emit

import (
	"slices"
	"strings"

	"github.com/dave/jennifer/jen"

	"github.com/teranos/notifygen/errors"
	"github.com/teranos/notifygen/internal/util"
	"github.com/teranos/notifygen/model"
)

// renderer holds the per-declaration naming used across the unit. Every
// helper returns a fresh statement; jennifer statements are appended to in
// place and must not be shared.
type renderer struct {
	decl  model.ObservableType
	rt    string
	recv  string
	lower string

	fieldTypes  []typeSource
	constraints []typeSource
}

type typeSource struct {
	display string
	imports []model.Import
}

func (s typeSource) code() *jen.Statement {
	c, err := typeCode(s.display, s.imports)
	if err != nil {
		// validated in newRenderer
		return jen.Id(s.display)
	}
	return jen.Add(c)
}

func newRenderer(decl model.ObservableType, runtimePath string) (*renderer, error) {
	r := &renderer{
		decl:  decl,
		rt:    runtimePath,
		recv:  util.ReceiverName(decl.Name),
		lower: util.HelperPrefix(decl.Name),
	}
	for _, f := range decl.Fields {
		if _, err := typeCode(f.Type, f.Imports); err != nil {
			return nil, errors.Wrapf(err, "field %s", f.StorageName)
		}
		r.fieldTypes = append(r.fieldTypes, typeSource{display: f.Type, imports: f.Imports})
	}
	for _, tp := range decl.TypeParams {
		constraint := tp.Constraint
		if constraint == "" {
			constraint = "any"
		}
		if _, err := typeCode(constraint, tp.Imports); err != nil {
			return nil, errors.Wrapf(err, "type parameter %s", tp.Name)
		}
		r.constraints = append(r.constraints, typeSource{display: constraint, imports: tp.Imports})
	}
	return r, nil
}

// Names

func (r *renderer) alwaysNotifyVar() string { return r.lower + "AlwaysNotify" }

func (r *renderer) scopeType() string { return r.decl.Name + "NotificationScope" }

func (r *renderer) accessor(i int) string { return r.decl.Fields[i].AccessorName }

func (r *renderer) setterName(i int) string {
	name := util.UpperFirst(r.accessor(i))
	if r.decl.Fields[i].Setter.Restricted() {
		return "set" + name
	}
	return "Set" + name
}

func (r *renderer) changingHook(i int) string { return r.lower + util.UpperFirst(r.accessor(i)) + "ChangingHook" }

func (r *renderer) changedHook(i int) string { return r.lower + util.UpperFirst(r.accessor(i)) + "ChangedHook" }

func (r *renderer) changingHookMethod(i int) string { return "on" + util.UpperFirst(r.accessor(i)) + "Changing" }

func (r *renderer) changedHookMethod(i int) string { return "on" + util.UpperFirst(r.accessor(i)) + "Changed" }

// Type references

func (r *renderer) typeParams() []jen.Code {
	out := make([]jen.Code, len(r.decl.TypeParams))
	for i, tp := range r.decl.TypeParams {
		out[i] = jen.Id(tp.Name).Add(r.constraints[i].code())
	}
	return out
}

func (r *renderer) typeArgs() []jen.Code {
	out := make([]jen.Code, len(r.decl.TypeParams))
	for i, tp := range r.decl.TypeParams {
		out[i] = jen.Id(tp.Name)
	}
	return out
}

func (r *renderer) generic(name string) *jen.Statement {
	return jen.Id(name).Types(r.typeArgs()...)
}

func (r *renderer) method(name string) *jen.Statement {
	return jen.Func().Params(jen.Id(r.recv).Op("*").Add(r.generic(r.decl.Name))).Id(name)
}

func (r *renderer) self() *jen.Statement { return jen.Id(r.recv) }

func (r *renderer) state() *jen.Statement {
	return r.self().Dot("NotifyState").Call()
}

func (r *renderer) storage(i int) *jen.Statement {
	return r.self().Dot(r.decl.Fields[i].StorageName)
}

func (r *renderer) raise(name string) *jen.Statement {
	return r.self().Dot("OnPropertyChanged").Call(jen.Lit(name))
}

func add(f *jen.File, comment string, code jen.Code) {
	f.Line()
	if comment != "" {
		for _, line := range strings.Split(comment, "\n") {
			f.Comment(line)
		}
	}
	f.Add(code)
}

// Members

func (r *renderer) changedEvent(f *jen.File) {
	add(f, "PropertyChanged returns the event raised after an accessor's value changes.",
		r.method("PropertyChanged").Params().
			Op("*").Qual(r.rt, "Event").Types(jen.Qual(r.rt, "PropertyChangedEventArgs")).
			Block(jen.Return(jen.Op("&").Add(r.state()).Dot("Changed"))))
}

func (r *renderer) changingEvent(f *jen.File) {
	add(f, "PropertyChanging returns the event raised before an accessor's value changes.",
		r.method("PropertyChanging").Params().
			Op("*").Qual(r.rt, "Event").Types(jen.Qual(r.rt, "PropertyChangingEventArgs")).
			Block(jen.Return(jen.Op("&").Add(r.state()).Dot("Changing"))))
}

func (r *renderer) alwaysNotifySet(f *jen.File) {
	names := slices.Clone(r.decl.AlwaysNotify)
	slices.Sort(names)
	names = slices.Compact(names)

	dict := jen.Dict{}
	for _, n := range names {
		dict[jen.Lit(n)] = jen.True()
	}
	add(f, r.alwaysNotifyVar()+" lists accessors whose change signals are never deferred.",
		jen.Var().Id(r.alwaysNotifyVar()).Op("=").Map(jen.String()).Bool().Values(dict))
}

func (r *renderer) getter(f *jen.File, i int) {
	fld := r.decl.Fields[i]
	add(f, fld.AccessorName+" returns the value of "+fld.StorageName+".",
		r.method(fld.AccessorName).Params().Add(r.fieldTypes[i].code()).
			Block(jen.Return(r.storage(i))))
}

func (r *renderer) setter(f *jen.File, i int) {
	fld := r.decl.Fields[i]
	var body []jen.Code

	// equality guard
	switch {
	case fld.Primitive && fld.Nullable && strings.HasPrefix(fld.Type, "*"):
		body = append(body, jen.If(jen.Qual(r.rt, "PointeeEqual").Call(r.storage(i), jen.Id("value"))).Block(jen.Return()))
	case fld.Primitive:
		body = append(body, jen.If(r.storage(i).Op("==").Id("value")).Block(jen.Return()))
	default:
		body = append(body, jen.If(jen.Qual(r.rt, "Equal").Call(r.storage(i), jen.Id("value"))).Block(jen.Return()))
	}

	if r.decl.ChangingActive() {
		body = append(body, r.self().Dot("OnPropertyChanging").Call(jen.Lit(fld.AccessorName)))
	}

	body = append(body,
		jen.If(
			jen.List(jen.Id("hook"), jen.Id("ok")).Op(":=").Id("any").Call(r.self()).Assert(r.generic(r.changingHook(i))),
			jen.Id("ok"),
		).Block(jen.Id("hook").Dot(r.changingHookMethod(i)).Call(r.storage(i), jen.Id("value"))),
		r.storage(i).Op("=").Id("value"),
		r.raise(fld.AccessorName),
	)

	for _, dep := range fld.AlsoNotify {
		body = append(body, r.raise(dep))
	}
	for _, cmd := range fld.RefreshCommands {
		body = append(body, jen.If(r.self().Dot(cmd).Op("!=").Nil()).Block(
			r.self().Dot(cmd).Dot("NotifyCanExecuteChanged").Call(),
		))
	}

	body = append(body,
		jen.If(
			jen.List(jen.Id("hook"), jen.Id("ok")).Op(":=").Id("any").Call(r.self()).Assert(r.generic(r.changedHook(i))),
			jen.Id("ok"),
		).Block(jen.Id("hook").Dot(r.changedHookMethod(i)).Call()),
	)

	add(f, r.setterName(i)+" updates "+fld.StorageName+" and raises the change signals when the value differs.",
		r.method(r.setterName(i)).Params(jen.Id("value").Add(r.fieldTypes[i].code())).Block(body...))
}

func (r *renderer) onChanged(f *jen.File) {
	args := jen.Qual(r.rt, "PropertyChangedEventArgs").Values(jen.Dict{jen.Id("PropertyName"): jen.Id("name")})

	var body []jen.Code
	if r.decl.Suppressable {
		body = []jen.Code{
			jen.Id("state").Op(":=").Add(r.state()),
			jen.If(jen.Id("state").Dot("Suppressed").Call().Op("&&").Op("!").Id(r.alwaysNotifyVar()).Index(jen.Id("name"))).Block(
				jen.Id("state").Dot("Pending").Dot("Add").Call(jen.Id("name")),
				jen.Return(),
			),
			jen.Id("state").Dot("Changed").Dot("Raise").Call(r.self(), args),
		}
	} else {
		body = []jen.Code{r.state().Dot("Changed").Dot("Raise").Call(r.self(), args)}
	}

	add(f, "OnPropertyChanged raises PropertyChanged for name.",
		r.method("OnPropertyChanged").Params(jen.Id("name").String()).Block(body...))
}

func (r *renderer) onChanging(f *jen.File) {
	args := jen.Qual(r.rt, "PropertyChangingEventArgs").Values(jen.Dict{jen.Id("PropertyName"): jen.Id("name")})
	add(f, "OnPropertyChanging raises PropertyChanging for name.",
		r.method("OnPropertyChanging").Params(jen.Id("name").String()).Block(
			r.state().Dot("Changing").Dot("Raise").Call(r.self(), args),
		))
}

func (r *renderer) hooks(f *jen.File, i int) {
	add(f, "",
		jen.Type().Id(r.changingHook(i)).Types(r.typeParams()...).Interface(
			jen.Id(r.changingHookMethod(i)).Params(jen.List(jen.Id("oldValue"), jen.Id("newValue")).Add(r.fieldTypes[i].code())),
		))
	add(f, "",
		jen.Type().Id(r.changedHook(i)).Types(r.typeParams()...).Interface(
			jen.Id(r.changedHookMethod(i)).Params(),
		))
}

func (r *renderer) suppression(f *jen.File) {
	scope := r.scopeType()

	add(f, scope+" ends a SuppressNotifications block when released.",
		jen.Type().Id(scope).Types(r.typeParams()...).Struct(
			jen.Id("owner").Op("*").Add(r.generic(r.decl.Name)),
			jen.Id("released").Bool(),
		))

	add(f, "Release resumes notifications. Only the first call has an effect.",
		jen.Func().Params(jen.Id("scope").Op("*").Add(r.generic(scope))).Id("Release").Params().Block(
			jen.If(jen.Id("scope").Dot("released")).Block(jen.Return()),
			jen.Id("scope").Dot("released").Op("=").True(),
			jen.Id("scope").Dot("owner").Dot("resumeNotifications").Call(),
		))

	add(f, "SuppressNotifications defers change signals until the returned scope is released.\n"+
		"Scopes nest; each deferred accessor is signalled once when the outermost scope ends.",
		r.method("SuppressNotifications").Params().Op("*").Add(r.generic(scope)).Block(
			r.state().Dot("Deferred").Op("++"),
			jen.Return(jen.Op("&").Add(r.generic(scope)).Values(jen.Dict{jen.Id("owner"): r.self()})),
		))

	add(f, "",
		r.method("resumeNotifications").Params().Block(
			jen.Id("state").Op(":=").Add(r.state()),
			jen.If(jen.Id("state").Dot("Deferred").Op("==").Lit(0)).Block(jen.Return()),
			jen.Id("state").Dot("Deferred").Op("--"),
			jen.If(jen.Id("state").Dot("Deferred").Op(">").Lit(0)).Block(jen.Return()),
			jen.For(jen.List(jen.Id("_"), jen.Id("name")).Op(":=").Range().Add(jen.Id("state").Dot("Pending").Dot("Drain").Call())).Block(
				r.self().Dot("OnPropertyChanged").Call(jen.Id("name")),
			),
		))
}

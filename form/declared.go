package form

// declaredClass is the reference Class implementation built from a
// flat field list.
type declaredClass struct {
	fields []Field

	// instanceInitial derives display defaults from a bound instance.
	instanceInitial func(instance any) map[string]any
}

// ClassOption customizes a declared class.
type ClassOption func(*declaredClass)

// WithInstanceInitial teaches the class how to derive initial values
// from a persistent instance (the ModelForm analog). The returned map
// is keyed by bare field name and only consulted for unbound forms
// that were bound with a non-nil Instance.
func WithInstanceInitial(fn func(instance any) map[string]any) ClassOption {
	return func(c *declaredClass) { c.instanceInitial = fn }
}

// Declare builds a Class from a field list.
func Declare(fields []Field, opts ...ClassOption) Class {
	c := &declaredClass{fields: fields}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseFields implements Class.
func (c *declaredClass) BaseFields() []Field {
	return c.fields
}

// Bind implements Class.
func (c *declaredClass) Bind(args BindArgs) Form {
	return &declaredForm{class: c, args: args}
}

// declaredForm is a bound (or unbound) instance of a declaredClass.
// Validation runs lazily on the first IsValid call.
type declaredForm struct {
	class *declaredClass
	args  BindArgs

	validated bool
	valid     bool
	cleaned   map[string]any
	errs      map[string][]string
}

var _ Form = (*declaredForm)(nil)

// Prefix implements Form.
func (f *declaredForm) Prefix() string { return f.args.Prefix }

// Bound reports whether the form was constructed with submitted data.
func (f *declaredForm) Bound() bool { return f.args.Data != nil }

// Instance returns the persistent object the form was bound with, nil
// when none.
func (f *declaredForm) Instance() any { return f.args.Instance }

// Initial returns the display default for the bare field name,
// preferring explicit initial values over instance-derived ones.
func (f *declaredForm) Initial(name string) any {
	if v, ok := f.args.Initial[name]; ok {
		return v
	}
	if f.args.Instance != nil && f.class.instanceInitial != nil {
		if v, ok := f.class.instanceInitial(f.args.Instance)[name]; ok {
			return v
		}
	}
	return nil
}

// fieldKey returns the submitted-data key for the bare field name.
func (f *declaredForm) fieldKey(name string) string {
	if f.args.Prefix == "" {
		return name
	}
	return f.args.Prefix + "-" + name
}

// IsValid implements Form. Unbound forms are never valid and carry no
// errors.
func (f *declaredForm) IsValid() bool {
	if f.validated {
		return f.valid
	}
	f.validated = true
	f.cleaned = make(map[string]any, len(f.class.fields))
	f.errs = make(map[string][]string)

	if !f.Bound() {
		f.valid = false
		return false
	}

	for _, field := range f.class.fields {
		key := f.fieldKey(field.Name)
		raw := f.args.Data.Get(key)
		present := f.args.Data.Has(key)
		file := f.args.Files[key]

		value, err := field.clean(raw, present, file)
		if err != nil {
			f.errs[field.Name] = append(f.errs[field.Name], err.Error())
			continue
		}
		f.cleaned[field.Name] = value
	}

	f.valid = len(f.errs) == 0
	return f.valid
}

// CleanedData implements Form.
func (f *declaredForm) CleanedData() map[string]any {
	f.IsValid()
	return f.cleaned
}

// Errors implements Form.
func (f *declaredForm) Errors() map[string][]string {
	f.IsValid()
	return f.errs
}

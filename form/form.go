// Package form defines the form capability consumed by the wizard
// controllers: field introspection, binding, validation, and file
// handling. It also ships a declarative reference implementation
// (Declare) and formset support so wizards can be assembled without an
// external form layer.
package form

import (
	"context"
	"io"
)

// Values holds submitted field values, keyed by the fully prefixed
// field name. The same shape as url.Values so web adapters can pass
// request form data through unchanged.
type Values map[string][]string

// Get returns the first value for key, or "" if absent.
func (v Values) Get(key string) string {
	if len(v[key]) == 0 {
		return ""
	}
	return v[key][0]
}

// Set replaces the values for key.
func (v Values) Set(key, value string) {
	v[key] = []string{value}
}

// Has reports whether key is present.
func (v Values) Has(key string) bool {
	_, ok := v[key]
	return ok
}

// Clone returns a deep copy of v. A nil receiver returns nil so that
// "unbound" survives cloning.
func (v Values) Clone() Values {
	if v == nil {
		return nil
	}
	out := make(Values, len(v))
	for k, vals := range v {
		out[k] = append([]string(nil), vals...)
	}
	return out
}

// FileRef is a durable reference to an uploaded file that has been
// persisted into a FileStorage. Only the reference is stored in wizard
// state; the bytes live in the FileStorage.
type FileRef struct {
	// Key is the storage key assigned by the FileStorage.
	Key string `json:"key"`
	// Name is the original client-supplied filename.
	Name string `json:"name"`
	// ContentType is the declared MIME type.
	ContentType string `json:"content_type,omitempty"`
	// Size is the file size in bytes.
	Size int64 `json:"size"`
}

// IsZero reports whether the reference is empty.
func (f FileRef) IsZero() bool { return f.Key == "" && f.Name == "" }

// Files maps fully prefixed field names to uploaded file references.
type Files map[string]FileRef

// Clone returns a copy of f, nil in, nil out.
func (f Files) Clone() Files {
	if f == nil {
		return nil
	}
	out := make(Files, len(f))
	for k, ref := range f {
		out[k] = ref
	}
	return out
}

// FileStorage persists uploaded file content. A wizard whose forms
// declare file fields must be configured with one; construction fails
// otherwise.
type FileStorage interface {
	// Save stores the content read from r under a new key and returns
	// a durable reference to it.
	Save(ctx context.Context, name, contentType string, r io.Reader) (FileRef, error)

	// Open returns the content for a previously saved reference.
	Open(ctx context.Context, ref FileRef) (io.ReadCloser, error)

	// Delete removes previously saved content. Deleting an unknown
	// reference is not an error.
	Delete(ctx context.Context, ref FileRef) error
}

// BindArgs carries everything a Class needs to construct a bound (or
// unbound) form instance.
type BindArgs struct {
	// Data is the submitted field values. A nil map produces an
	// unbound form (rendered empty, never valid, no errors shown).
	Data Values

	// Files is the submitted file references, nil when none.
	Files Files

	// Prefix namespaces every field of this instance. Field keys in
	// Data/Files are "<prefix>-<field name>" when Prefix is non-empty.
	Prefix string

	// Initial provides display defaults for unbound forms, keyed by
	// bare field name.
	Initial map[string]any

	// Instance is an optional persistent object backing the form
	// (the ModelForm analog). Classes that don't support instance
	// binding ignore it.
	Instance any
}

// Class constructs form instances and exposes the field layout for
// registration-time introspection.
type Class interface {
	// BaseFields returns the declared fields. Used at wizard build
	// time to detect file fields before any request is served.
	BaseFields() []Field

	// Bind constructs a form instance from args.
	Bind(args BindArgs) Form
}

// Form is a constructed form instance. Instances are ephemeral: the
// wizard creates them fresh per request and persists only the raw
// values and file references that validated.
type Form interface {
	// IsValid runs validation (once) and reports whether the form is
	// bound and every field cleaned without error.
	IsValid() bool

	// CleanedData returns the typed, validated values keyed by bare
	// field name. Only meaningful after IsValid returned true.
	CleanedData() map[string]any

	// Errors returns field name to error messages. Empty until
	// IsValid has run, and empty for unbound forms.
	Errors() map[string][]string

	// Prefix returns the field-name prefix this instance was bound with.
	Prefix() string
}

// SetClass is implemented by formset classes. The wizard uses ItemClass
// for the registration-time file-field pass while binding the set itself.
type SetClass interface {
	Class

	// ItemClass returns the class of the repeated member form.
	ItemClass() Class
}

package form

import (
	"fmt"
	"strconv"
	"strings"
)

// FieldKind discriminates the built-in field types.
type FieldKind int

const (
	// KindText is a free-text field cleaned to string.
	KindText FieldKind = iota
	// KindInteger is cleaned to int.
	KindInteger
	// KindBoolean is a checkbox-style field cleaned to bool.
	KindBoolean
	// KindChoice restricts the value to a declared set.
	KindChoice
	// KindFile is an upload field. Declaring one anywhere in a wizard
	// requires a FileStorage on the controller.
	KindFile
)

// Field describes one declared form field. Fields are required by
// default; use Optional to relax that.
type Field struct {
	Name      string
	Kind      FieldKind
	Required  bool
	MaxLength int      // KindText only, 0 means unlimited
	Choices   []string // KindChoice only

	// Validate, when set, runs against the cleaned value after the
	// kind-specific checks pass.
	Validate func(value any) error
}

// FieldOption customizes a declared field.
type FieldOption func(*Field)

// Optional marks the field as not required.
func Optional() FieldOption {
	return func(f *Field) { f.Required = false }
}

// MaxLength caps the accepted length of a text field.
func MaxLength(n int) FieldOption {
	return func(f *Field) { f.MaxLength = n }
}

// Validator attaches a custom check run after kind validation.
func Validator(fn func(value any) error) FieldOption {
	return func(f *Field) { f.Validate = fn }
}

// Text declares a required free-text field.
func Text(name string, opts ...FieldOption) Field {
	return build(Field{Name: name, Kind: KindText, Required: true}, opts)
}

// Integer declares a required integer field.
func Integer(name string, opts ...FieldOption) Field {
	return build(Field{Name: name, Kind: KindInteger, Required: true}, opts)
}

// Boolean declares a required checkbox field. A required boolean must
// be submitted truthy; use Optional for plain checkboxes.
func Boolean(name string, opts ...FieldOption) Field {
	return build(Field{Name: name, Kind: KindBoolean, Required: true}, opts)
}

// Choice declares a required field restricted to the given values.
func Choice(name string, choices []string, opts ...FieldOption) Field {
	return build(Field{Name: name, Kind: KindChoice, Required: true, Choices: choices}, opts)
}

// File declares a required upload field.
func File(name string, opts ...FieldOption) Field {
	return build(Field{Name: name, Kind: KindFile, Required: true}, opts)
}

func build(f Field, opts []FieldOption) Field {
	for _, opt := range opts {
		opt(&f)
	}
	return f
}

// truthy values accepted for boolean fields.
var truthy = map[string]bool{"on": true, "true": true, "1": true}

// clean validates one submitted value against the field definition and
// returns the typed value. raw is the first submitted string value
// ("" when absent); file is the uploaded reference for KindFile.
func (f Field) clean(raw string, present bool, file FileRef) (any, error) {
	var value any

	switch f.Kind {
	case KindText:
		if raw == "" {
			if f.Required {
				return nil, fmt.Errorf("field %q is required", f.Name)
			}
			value = ""
			break
		}
		if f.MaxLength > 0 && len(raw) > f.MaxLength {
			return nil, fmt.Errorf("field %q exceeds %d characters", f.Name, f.MaxLength)
		}
		value = raw

	case KindInteger:
		if raw == "" {
			if f.Required {
				return nil, fmt.Errorf("field %q is required", f.Name)
			}
			value = 0
			break
		}
		n, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			return nil, fmt.Errorf("field %q: not a whole number", f.Name)
		}
		value = n

	case KindBoolean:
		b := present && truthy[strings.ToLower(raw)]
		if f.Required && !b {
			return nil, fmt.Errorf("field %q must be checked", f.Name)
		}
		value = b

	case KindChoice:
		if raw == "" {
			if f.Required {
				return nil, fmt.Errorf("field %q is required", f.Name)
			}
			value = ""
			break
		}
		ok := false
		for _, c := range f.Choices {
			if c == raw {
				ok = true
				break
			}
		}
		if !ok {
			return nil, fmt.Errorf("field %q: %q is not a valid choice", f.Name, raw)
		}
		value = raw

	case KindFile:
		if file.IsZero() {
			if f.Required {
				return nil, fmt.Errorf("field %q requires a file", f.Name)
			}
			value = FileRef{}
			break
		}
		value = file

	default:
		return nil, fmt.Errorf("field %q: unknown kind %d", f.Name, f.Kind)
	}

	if f.Validate != nil {
		if err := f.Validate(value); err != nil {
			return nil, err
		}
	}
	return value, nil
}

package formwizard

import (
	"fmt"
	"strconv"

	"github.com/xraph/formwizard/form"
)

// StepKind discriminates the closed set of step shapes. The shape is
// resolved once at build time, never re-inspected per request.
type StepKind int

const (
	// KindSingle is a step holding one form.
	KindSingle StepKind = iota
	// KindGroup is a step holding several tagged forms validated
	// together.
	KindGroup
	// KindFormSet is a step holding one formset.
	KindFormSet
)

// TaggedClass pairs a sub-form tag with its class inside a grouped
// step. Tags are unique within the step and identify each validated
// form in the final result.
type TaggedClass struct {
	Tag   string
	Class form.Class
}

// Tagged declares one member of a grouped step.
func Tagged(tag string, class form.Class) TaggedClass {
	return TaggedClass{Tag: tag, Class: class}
}

// StepDecl is one entry of the declared form list. Use Step, NamedStep,
// or GroupStep to construct one.
type StepDecl struct {
	name   string
	single form.Class
	group  []TaggedClass
}

// Step declares an unnamed single-form step. Unnamed steps are named
// by their zero-based position in the list.
func Step(class form.Class) StepDecl {
	return StepDecl{single: class}
}

// NamedStep declares a named single-form step. A formset class makes
// the step a formset step.
func NamedStep(name string, class form.Class) StepDecl {
	return StepDecl{name: name, single: class}
}

// GroupStep declares a step holding several tagged forms. Declaration
// order is preserved through to the rendered form list.
func GroupStep(name string, forms ...TaggedClass) StepDecl {
	return StepDecl{name: name, group: forms}
}

// StepSpec is the resolved descriptor for one step.
type StepSpec struct {
	Name   string
	Kind   StepKind
	Single form.Class    // KindSingle and KindFormSet
	Group  []TaggedClass // KindGroup
}

// stepCollection is the ordered name-to-spec mapping, built once at
// controller construction and immutable afterwards.
type stepCollection struct {
	order []string
	specs map[string]*StepSpec
}

// buildSteps normalizes the declared list and performs all
// registration-time validation: non-empty input, unique names and
// tags, and the file-field pass that requires a file storage before
// any request is served.
func buildSteps(decls []StepDecl, hasFileStorage bool) (*stepCollection, error) {
	if len(decls) == 0 {
		return nil, ErrNoSteps
	}

	sc := &stepCollection{specs: make(map[string]*StepSpec, len(decls))}

	for i, decl := range decls {
		name := decl.name
		if name == "" {
			name = strconv.Itoa(i)
		}
		if _, exists := sc.specs[name]; exists {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateStep, name)
		}

		spec := &StepSpec{Name: name}
		switch {
		case len(decl.group) > 0:
			spec.Kind = KindGroup
			seen := make(map[string]bool, len(decl.group))
			for _, tc := range decl.group {
				if seen[tc.Tag] {
					return nil, fmt.Errorf("%w: step %q tag %q", ErrDuplicateTag, name, tc.Tag)
				}
				seen[tc.Tag] = true
			}
			spec.Group = decl.group
		case decl.single != nil:
			spec.Single = decl.single
			if _, ok := decl.single.(form.SetClass); ok {
				spec.Kind = KindFormSet
			} else {
				spec.Kind = KindSingle
			}
		default:
			return nil, fmt.Errorf("formwizard: step %q declares no form", name)
		}

		if err := checkFileFields(spec, hasFileStorage); err != nil {
			return nil, err
		}

		sc.order = append(sc.order, name)
		sc.specs[name] = spec
	}

	return sc, nil
}

// checkFileFields fails fast when any form in the step declares a file
// field and no file storage is configured. For formsets the member
// class is inspected.
func checkFileFields(spec *StepSpec, hasFileStorage bool) error {
	var classes []form.Class
	switch spec.Kind {
	case KindGroup:
		for _, tc := range spec.Group {
			classes = append(classes, tc.Class)
		}
	case KindFormSet:
		classes = append(classes, spec.Single.(form.SetClass).ItemClass())
	default:
		classes = append(classes, spec.Single)
	}

	for _, class := range classes {
		for _, field := range class.BaseFields() {
			if field.Kind == form.KindFile && !hasFileStorage {
				return fmt.Errorf("%w: step %q field %q", ErrNoFileStorage, spec.Name, field.Name)
			}
		}
	}
	return nil
}

// spec returns the descriptor for a step name.
func (sc *stepCollection) spec(name string) (*StepSpec, bool) {
	s, ok := sc.specs[name]
	return s, ok
}

// names returns the step names in declaration order.
func (sc *stepCollection) names() []string {
	return sc.order
}

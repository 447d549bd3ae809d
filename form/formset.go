package form

import (
	"fmt"
	"strconv"
)

// totalSuffix is the per-set count field carried in submitted data.
const totalSuffix = "-total"

// SetOption customizes a formset class.
type SetOption func(*setClass)

// MinItems sets the minimum number of member forms (default 1).
func MinItems(n int) SetOption {
	return func(s *setClass) { s.min = n }
}

// MaxItems caps the number of member forms (default unlimited).
func MaxItems(n int) SetOption {
	return func(s *setClass) { s.max = n }
}

// NewSet builds a formset class repeating the given item class. The
// bound instance reads "<prefix>-total" from submitted data to size the
// set and binds each member with prefix "<prefix>-<index>".
func NewSet(item Class, opts ...SetOption) SetClass {
	s := &setClass{item: item, min: 1}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type setClass struct {
	item Class
	min  int
	max  int // 0 means unlimited
}

var _ SetClass = (*setClass)(nil)

// ItemClass implements SetClass.
func (s *setClass) ItemClass() Class { return s.item }

// BaseFields returns the member form's fields. File detection at
// wizard build time inspects the item class through ItemClass, so this
// is only informational.
func (s *setClass) BaseFields() []Field { return s.item.BaseFields() }

// Bind implements Class. Instance, when set, must be a []any with one
// entry per member form (the queryset analog); extra members bind with
// a nil instance.
func (s *setClass) Bind(args BindArgs) Form {
	instances, _ := args.Instance.([]any)

	count := s.min
	if n := len(instances); n > count {
		count = n
	}
	bound := args.Data != nil
	if bound {
		if raw := args.Data.Get(args.Prefix + totalSuffix); raw != "" {
			if n, err := strconv.Atoi(raw); err == nil {
				count = n
			}
		}
	}
	if s.max > 0 && count > s.max {
		count = s.max
	}

	set := &setForm{class: s, args: args, count: count}
	for i := 0; i < count; i++ {
		var instance any
		if i < len(instances) {
			instance = instances[i]
		}
		set.items = append(set.items, s.item.Bind(BindArgs{
			Data:     args.Data,
			Files:    args.Files,
			Prefix:   fmt.Sprintf("%s-%d", args.Prefix, i),
			Initial:  args.Initial,
			Instance: instance,
		}))
	}
	return set
}

// setForm is a bound formset: a fixed slice of member forms validated
// together.
type setForm struct {
	class *setClass
	args  BindArgs
	count int
	items []Form

	validated bool
	valid     bool
	errs      map[string][]string
}

var _ Form = (*setForm)(nil)

// Prefix implements Form.
func (s *setForm) Prefix() string { return s.args.Prefix }

// Items returns the member forms in order.
func (s *setForm) Items() []Form { return s.items }

// IsValid implements Form: the set is valid when bound, within the
// size bounds, and every member validates.
func (s *setForm) IsValid() bool {
	if s.validated {
		return s.valid
	}
	s.validated = true
	s.errs = make(map[string][]string)

	if s.args.Data == nil {
		s.valid = false
		return false
	}
	if s.count < s.class.min {
		s.errs["_set"] = append(s.errs["_set"],
			fmt.Sprintf("at least %d entries are required", s.class.min))
	}

	ok := true
	for i, item := range s.items {
		if !item.IsValid() {
			ok = false
			for name, msgs := range item.Errors() {
				key := fmt.Sprintf("%d.%s", i, name)
				s.errs[key] = append(s.errs[key], msgs...)
			}
		}
	}
	s.valid = ok && len(s.errs) == 0
	return s.valid
}

// CleanedData implements Form: {"items": []map[string]any} in member
// order.
func (s *setForm) CleanedData() map[string]any {
	s.IsValid()
	items := make([]map[string]any, 0, len(s.items))
	for _, item := range s.items {
		items = append(items, item.CleanedData())
	}
	return map[string]any{"items": items}
}

// Errors implements Form. Member errors are keyed "<index>.<field>".
func (s *setForm) Errors() map[string][]string {
	s.IsValid()
	return s.errs
}

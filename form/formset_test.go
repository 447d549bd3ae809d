package form

import "testing"

func itemClass() Class {
	return Declare([]Field{Text("title")})
}

func TestFormSetBindCount(t *testing.T) {
	set := NewSet(itemClass())

	f := set.Bind(BindArgs{
		Data: Values{
			"s-total":   {"2"},
			"s-0-title": {"first"},
			"s-1-title": {"second"},
		},
		Prefix: "s",
	}).(*setForm)

	if len(f.Items()) != 2 {
		t.Fatalf("items = %d, want 2", len(f.Items()))
	}
	if !f.IsValid() {
		t.Fatalf("IsValid = false, errors: %v", f.Errors())
	}

	items := f.CleanedData()["items"].([]map[string]any)
	if items[0]["title"] != "first" || items[1]["title"] != "second" {
		t.Fatalf("cleaned items = %v", items)
	}
}

func TestFormSetMemberErrors(t *testing.T) {
	set := NewSet(itemClass())

	f := set.Bind(BindArgs{
		Data: Values{
			"s-total":   {"2"},
			"s-0-title": {"ok"},
		},
		Prefix: "s",
	})

	if f.IsValid() {
		t.Fatal("set with an invalid member reported valid")
	}
	if len(f.Errors()["1.title"]) == 0 {
		t.Fatalf("member error not keyed by index: %v", f.Errors())
	}
}

func TestFormSetBounds(t *testing.T) {
	set := NewSet(itemClass(), MinItems(2), MaxItems(3))

	// Below min: the declared total wins for binding but validation
	// rejects the set.
	f := set.Bind(BindArgs{
		Data:   Values{"s-total": {"1"}, "s-0-title": {"only"}},
		Prefix: "s",
	})
	if f.IsValid() {
		t.Fatal("set below min items reported valid")
	}
	if len(f.Errors()["_set"]) == 0 {
		t.Fatalf("missing set-level error: %v", f.Errors())
	}

	// Above max: the count is clamped.
	f = set.Bind(BindArgs{
		Data:   Values{"s-total": {"5"}},
		Prefix: "s",
	})
	if n := len(f.(*setForm).Items()); n != 3 {
		t.Fatalf("items = %d, want 3 (clamped)", n)
	}
}

func TestFormSetInstances(t *testing.T) {
	set := NewSet(Declare(
		[]Field{Text("title")},
		WithInstanceInitial(func(instance any) map[string]any {
			return map[string]any{"title": instance.(string)}
		}),
	))

	f := set.Bind(BindArgs{
		Prefix:   "s",
		Instance: []any{"one", "two"},
	}).(*setForm)

	if len(f.Items()) != 2 {
		t.Fatalf("items = %d, want 2 (sized by instances)", len(f.Items()))
	}
	first := f.Items()[0].(*declaredForm)
	if got := first.Initial("title"); got != "one" {
		t.Fatalf("Initial(title) = %v, want one", got)
	}
}

func TestFormSetUnbound(t *testing.T) {
	set := NewSet(itemClass())
	f := set.Bind(BindArgs{Prefix: "s"})

	if f.IsValid() {
		t.Fatal("unbound set reported valid")
	}
	if n := len(f.(*setForm).Items()); n != 1 {
		t.Fatalf("items = %d, want 1 (min)", n)
	}
}

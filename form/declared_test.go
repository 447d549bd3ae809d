package form

import "testing"

func personClass() Class {
	return Declare([]Field{
		Text("name"),
		Integer("age"),
	})
}

func TestDeclaredFormValid(t *testing.T) {
	f := personClass().Bind(BindArgs{
		Data: Values{
			"p-name": {"alice"},
			"p-age":  {"30"},
		},
		Prefix: "p",
	})

	if !f.IsValid() {
		t.Fatalf("IsValid = false, errors: %v", f.Errors())
	}
	cleaned := f.CleanedData()
	if cleaned["name"] != "alice" {
		t.Fatalf("name = %v, want alice", cleaned["name"])
	}
	if cleaned["age"] != 30 {
		t.Fatalf("age = %v, want 30", cleaned["age"])
	}
}

func TestDeclaredFormErrors(t *testing.T) {
	f := personClass().Bind(BindArgs{
		Data:   Values{"p-age": {"not a number"}},
		Prefix: "p",
	})

	if f.IsValid() {
		t.Fatal("IsValid = true for invalid data")
	}
	errs := f.Errors()
	if len(errs["name"]) == 0 {
		t.Fatal("missing required-field error for name")
	}
	if len(errs["age"]) == 0 {
		t.Fatal("missing parse error for age")
	}
}

func TestDeclaredFormUnbound(t *testing.T) {
	f := personClass().Bind(BindArgs{Prefix: "p"})

	if f.IsValid() {
		t.Fatal("unbound form reported valid")
	}
	if len(f.Errors()) != 0 {
		t.Fatalf("unbound form carries errors: %v", f.Errors())
	}
}

func TestDeclaredFormPrefixIsolation(t *testing.T) {
	// Same data, two prefixes: only the matching one binds values.
	data := Values{
		"a-name": {"alice"},
		"a-age":  {"30"},
	}
	a := personClass().Bind(BindArgs{Data: data, Prefix: "a"})
	b := personClass().Bind(BindArgs{Data: data, Prefix: "b"})

	if !a.IsValid() {
		t.Fatalf("prefix a invalid: %v", a.Errors())
	}
	if b.IsValid() {
		t.Fatal("prefix b validated against prefix a's data")
	}
}

type account struct {
	Name string
}

func TestInstanceInitial(t *testing.T) {
	class := Declare(
		[]Field{Text("name")},
		WithInstanceInitial(func(instance any) map[string]any {
			return map[string]any{"name": instance.(*account).Name}
		}),
	)

	f := class.Bind(BindArgs{
		Instance: &account{Name: "stored"},
	}).(*declaredForm)

	if got := f.Initial("name"); got != "stored" {
		t.Fatalf("Initial(name) = %v, want stored", got)
	}

	// Explicit initial wins over the instance-derived value.
	f = class.Bind(BindArgs{
		Initial:  map[string]any{"name": "explicit"},
		Instance: &account{Name: "stored"},
	}).(*declaredForm)
	if got := f.Initial("name"); got != "explicit" {
		t.Fatalf("Initial(name) = %v, want explicit", got)
	}
}

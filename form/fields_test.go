package form

import (
	"errors"
	"strings"
	"testing"
)

func TestTextClean(t *testing.T) {
	f := Text("name", MaxLength(5))

	v, err := f.clean("alice", true, FileRef{})
	if err != nil {
		t.Fatalf("clean: %v", err)
	}
	if v != "alice" {
		t.Fatalf("value = %v, want alice", v)
	}

	if _, err := f.clean("", false, FileRef{}); err == nil {
		t.Fatal("required text accepted empty value")
	}
	if _, err := f.clean("toolong", true, FileRef{}); err == nil {
		t.Fatal("max length not enforced")
	}

	opt := Text("nick", Optional())
	v, err = opt.clean("", false, FileRef{})
	if err != nil {
		t.Fatalf("optional text rejected empty: %v", err)
	}
	if v != "" {
		t.Fatalf("value = %v, want empty string", v)
	}
}

func TestIntegerClean(t *testing.T) {
	f := Integer("age")

	v, err := f.clean(" 42 ", true, FileRef{})
	if err != nil {
		t.Fatalf("clean: %v", err)
	}
	if v != 42 {
		t.Fatalf("value = %v, want 42", v)
	}

	if _, err := f.clean("nope", true, FileRef{}); err == nil {
		t.Fatal("non-numeric value accepted")
	}
	if _, err := f.clean("", false, FileRef{}); err == nil {
		t.Fatal("required integer accepted empty value")
	}
}

func TestBooleanClean(t *testing.T) {
	f := Boolean("agree")

	for _, raw := range []string{"on", "true", "1", "TRUE"} {
		v, err := f.clean(raw, true, FileRef{})
		if err != nil {
			t.Fatalf("clean(%q): %v", raw, err)
		}
		if v != true {
			t.Fatalf("clean(%q) = %v, want true", raw, v)
		}
	}

	if _, err := f.clean("", false, FileRef{}); err == nil {
		t.Fatal("required boolean accepted unchecked")
	}

	opt := Boolean("newsletter", Optional())
	v, err := opt.clean("", false, FileRef{})
	if err != nil {
		t.Fatalf("optional boolean: %v", err)
	}
	if v != false {
		t.Fatalf("value = %v, want false", v)
	}
}

func TestChoiceClean(t *testing.T) {
	f := Choice("color", []string{"red", "blue"})

	v, err := f.clean("red", true, FileRef{})
	if err != nil {
		t.Fatalf("clean: %v", err)
	}
	if v != "red" {
		t.Fatalf("value = %v, want red", v)
	}
	if _, err := f.clean("green", true, FileRef{}); err == nil {
		t.Fatal("invalid choice accepted")
	}
}

func TestFileClean(t *testing.T) {
	f := File("avatar")

	ref := FileRef{Key: "k1", Name: "a.png", Size: 3}
	v, err := f.clean("", false, ref)
	if err != nil {
		t.Fatalf("clean: %v", err)
	}
	if v != ref {
		t.Fatalf("value = %v, want %v", v, ref)
	}
	if _, err := f.clean("", false, FileRef{}); err == nil {
		t.Fatal("required file accepted missing upload")
	}
}

func TestCustomValidator(t *testing.T) {
	errBad := errors.New("must start with a")
	f := Text("name", Validator(func(v any) error {
		if !strings.HasPrefix(v.(string), "a") {
			return errBad
		}
		return nil
	}))

	if _, err := f.clean("alice", true, FileRef{}); err != nil {
		t.Fatalf("clean: %v", err)
	}
	if _, err := f.clean("bob", true, FileRef{}); !errors.Is(err, errBad) {
		t.Fatalf("err = %v, want %v", err, errBad)
	}
}

package id

import "testing"

func TestNewTraversal(t *testing.T) {
	a := NewTraversal()
	b := NewTraversal()

	if a.IsNil() {
		t.Fatal("fresh ID is nil")
	}
	if a.Prefix() != PrefixTraversal {
		t.Fatalf("prefix = %q, want %q", a.Prefix(), PrefixTraversal)
	}
	if a.String() == b.String() {
		t.Fatalf("two generated IDs collided: %s", a)
	}
}

func TestParseRoundTrip(t *testing.T) {
	orig := NewTraversal()

	parsed, err := ParseTraversal(orig.String())
	if err != nil {
		t.Fatalf("ParseTraversal: %v", err)
	}
	if parsed.String() != orig.String() {
		t.Fatalf("parsed = %s, want %s", parsed, orig)
	}
}

func TestParseRejectsGarbage(t *testing.T) {
	for _, s := range []string{"", "not an id", "wiz_"} {
		if _, err := Parse(s); err == nil {
			t.Fatalf("Parse(%q) accepted invalid input", s)
		}
	}
}

func TestParseTraversalRejectsWrongPrefix(t *testing.T) {
	other := New("usr")
	if _, err := ParseTraversal(other.String()); err == nil {
		t.Fatal("wrong prefix accepted")
	}
}

func TestNilID(t *testing.T) {
	if !Nil.IsNil() {
		t.Fatal("Nil.IsNil() = false")
	}
	if Nil.String() != "" {
		t.Fatalf("Nil.String() = %q", Nil.String())
	}
	if Nil.Prefix() != "" {
		t.Fatalf("Nil.Prefix() = %q", Nil.Prefix())
	}
}

func TestTextMarshalling(t *testing.T) {
	orig := NewTraversal()

	raw, err := orig.MarshalText()
	if err != nil {
		t.Fatalf("MarshalText: %v", err)
	}
	var back ID
	if err := back.UnmarshalText(raw); err != nil {
		t.Fatalf("UnmarshalText: %v", err)
	}
	if back.String() != orig.String() {
		t.Fatalf("round trip = %s, want %s", back, orig)
	}

	var zero ID
	if err := zero.UnmarshalText(nil); err != nil {
		t.Fatalf("UnmarshalText(nil): %v", err)
	}
	if !zero.IsNil() {
		t.Fatal("empty text did not produce Nil")
	}
}

package ident

import (
	"testing"

	"engagegov/internal/core/records"

	"github.com/google/uuid"
)

func TestGenerate_Deterministic(t *testing.T) {
	a := Generate(records.SourceCamara, "204554")
	b := Generate(records.SourceCamara, "204554")
	if a != b {
		t.Fatalf("Generate not stable: %q vs %q", a, b)
	}
	if len(a) != 36 {
		t.Fatalf("len(id) = %d, want 36", len(a))
	}
	u, err := uuid.Parse(string(a))
	if err != nil {
		t.Fatalf("id %q is not a uuid: %v", a, err)
	}
	if u.Version() != 5 {
		t.Fatalf("uuid version = %d, want 5", u.Version())
	}
}

func TestGenerate_Distinct(t *testing.T) {
	cases := []struct {
		name string
		a, b records.ID
	}{
		{"different external id", Generate(records.SourceCamara, "1"), Generate(records.SourceCamara, "2")},
		{"different source", Generate(records.SourceCamara, "999"), Generate(records.SourceSenado, "999")},
		{"separator ambiguity", Generate("cam", "ara:1"), Generate("camara", ":1")},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if tc.a == tc.b {
				t.Fatalf("ids collide: %q", tc.a)
			}
		})
	}
}

func TestGenerate_EmptyExternalID(t *testing.T) {
	// total: blank input still yields a well-formed id
	if got := Generate(records.SourceSenado, ""); len(got) != 36 {
		t.Fatalf("Generate(senado, \"\") = %q", got)
	}
}

func TestSynthesize(t *testing.T) {
	if got := Synthesize("", "  "); got != "" {
		t.Fatalf("Synthesize(blank) = %q, want empty", got)
	}
	a := Synthesize("PL", "123", "2024")
	b := Synthesize(" pl ", "123", "2024")
	if a != b {
		t.Fatalf("Synthesize not case/space insensitive: %q vs %q", a, b)
	}
	if !IsSynthetic(a) {
		t.Fatalf("IsSynthetic(%q) = false", a)
	}
	if Synthesize("PL", "1231", "2024") == Synthesize("PL", "123", "12024") {
		t.Fatalf("Synthesize ignores part boundaries")
	}
	if IsSynthetic("204554") {
		t.Fatalf("IsSynthetic(real id) = true")
	}
}

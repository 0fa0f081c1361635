package compose

import (
	"errors"
	"testing"

	"rep-lookup/internal/representative"
)

func TestDeriveEmail(t *testing.T) {
	cases := map[string]string{
		"Jane Doe":                   "jane.doe@parl.gc.ca",
		"Hélène Laverdière":          "helene.laverdiere@parl.gc.ca",
		"  JEAN-PIERRE   Blackburn ": "jean-pierre.blackburn@parl.gc.ca",
		"Mary Ann O'Neil":            "mary.oneil@parl.gc.ca",
		"Dr. Kirsty Duncan":          "dr.duncan@parl.gc.ca",
		"Søren Ågård":                "soren.agard@parl.gc.ca",
		"Łukasz Weiß":                "lukasz.weiss@parl.gc.ca",
		"Æsa Þórsdóttir":             "aesa.thorsdottir@parl.gc.ca",
	}
	for name, want := range cases {
		got, err := DeriveEmail(name, "")
		if err != nil {
			t.Fatalf("DeriveEmail(%q): unexpected error: %v", name, err)
		}
		if got != want {
			t.Fatalf("DeriveEmail(%q): expected %q, got %q", name, want, got)
		}
	}
}

func TestDeriveEmail_CustomDomain(t *testing.T) {
	got, err := DeriveEmail("Jane Doe", "example.org")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "jane.doe@example.org" {
		t.Fatalf("unexpected address %q", got)
	}
}

func TestDeriveEmail_Undeterminable(t *testing.T) {
	for _, name := range []string{"", "   ", "Cher", "Jane 123", "!!! Doe", "李 明"} {
		if _, err := DeriveEmail(name, ""); !errors.Is(err, ErrUndeterminable) {
			t.Fatalf("DeriveEmail(%q): expected ErrUndeterminable, got %v", name, err)
		}
	}
}

func TestRecipientFor(t *testing.T) {
	got, err := RecipientFor(representative.Record{Name: "Jane Doe", Email: " jane@x.ca "}, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Address != "jane@x.ca" || got.Derived {
		t.Fatalf("expected upstream address, got %+v", got)
	}

	got, err = RecipientFor(representative.Record{Name: "Jane Doe"}, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Address != "jane.doe@parl.gc.ca" || !got.Derived {
		t.Fatalf("expected derived address, got %+v", got)
	}

	got, err = RecipientFor(representative.Record{Name: "Madonna"}, "")
	if !errors.Is(err, ErrUndeterminable) {
		t.Fatalf("expected ErrUndeterminable, got %v", err)
	}
	if got.Name != "Madonna" || got.Address != "" {
		t.Fatalf("expected name without address, got %+v", got)
	}
}

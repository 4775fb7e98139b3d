package app_test

import (
	"testing"

	"flex_reviews/internal/app"
)

func TestResolver_KnownListings(t *testing.T) {
	r := app.NewResolver()
	cases := map[string]string{
		"2B N1 A - 29 Shoreditch Heights": "29-shoreditch-heights",
		"1B N2 B - 15 Camden Square":      "15-camden-square",
		"Studio N3 C - 42 King's Cross":   "42-kings-cross",
		"3B N4 D - 88 Notting Hill":       "88-notting-hill",
	}
	for name, want := range cases {
		if got := r.Resolve(name); got != want {
			t.Fatalf("Resolve(%q) = %q, want %q", name, got, want)
		}
	}
}

func TestResolver_SlugFallback(t *testing.T) {
	r := app.NewResolver()
	cases := map[string]string{
		"Some New Place!!":        "some-new-place",
		"Penthouse at St. Paul's": "penthouse-at-st-pauls",
		"Café Münchën 12":         "caf-mnchn-12",
		"  Spaced   Out  Flat ":   "-spaced-out-flat-",
		"!!!":                     "",
	}
	for name, want := range cases {
		if got := r.Resolve(name); got != want {
			t.Fatalf("Resolve(%q) = %q, want %q", name, got, want)
		}
	}
}

func TestResolver_RegisterRename(t *testing.T) {
	r := app.NewResolver()
	r.Register("29 Shoreditch Heights Deluxe", "29-shoreditch-heights")

	if got := r.Resolve("29 Shoreditch Heights Deluxe"); got != "29-shoreditch-heights" {
		t.Fatalf("new name: %q", got)
	}
	// old name keeps resolving
	if got := r.Resolve("2B N1 A - 29 Shoreditch Heights"); got != "29-shoreditch-heights" {
		t.Fatalf("old name: %q", got)
	}
}

package naming_test

import (
	"strings"
	"testing"

	"mediastore/internal/naming"
)

func TestEncodeFolderReplacesUnsafeRunes(t *testing.T) {
	got := naming.EncodeFolder("u1", "Amy/Star")
	if got != "u1_Amy_Star" {
		t.Fatalf("EncodeFolder = %q, want u1_Amy_Star", got)
	}
}

func TestEncodeFolderTruncatesLongNames(t *testing.T) {
	got := naming.EncodeFolder("u1", "Amy ☆☆☆ Long Name Exceeding Limit")
	want := "u1_Amy_Long_Name_Exceed"
	if got != want {
		t.Fatalf("EncodeFolder = %q, want %q", got, want)
	}
	name := strings.TrimPrefix(got, "u1_")
	if len([]rune(name)) > naming.MaxNameLen {
		t.Fatalf("sanitized name %q exceeds %d runes", name, naming.MaxNameLen)
	}
}

func TestEncodeFolderDeterministicAndMatchable(t *testing.T) {
	cases := []struct {
		ownerID string
		name    string
	}{
		{"u1", "Amy Star"},
		{"provider-42", "José Núñez"},
		{"u9", `a<b>c:d"e|f?g*h\i`},
		{"owner_7", ""},
		{"u2", "   "},
		{"u3", "☆☆☆"},
	}
	for _, tc := range cases {
		first := naming.EncodeFolder(tc.ownerID, tc.name)
		second := naming.EncodeFolder(tc.ownerID, tc.name)
		if first != second {
			t.Fatalf("encode not deterministic for %q: %q vs %q", tc.name, first, second)
		}
		if !naming.MatchesOwner(first, tc.ownerID) {
			t.Fatalf("MatchesOwner(%q, %q) = false", first, tc.ownerID)
		}
	}
}

func TestSanitizeOutputIsPathSafe(t *testing.T) {
	inputs := []string{
		`slash/back\colon:star*q?quote"lt<gt>pipe|`,
		"tabs\tand\nnewlines",
		"many     spaces   here",
		"émigré café",
	}
	for _, input := range inputs {
		got := naming.Sanitize(input, naming.MaxNameLen)
		if strings.ContainsAny(got, `<>:"|?*\/`) {
			t.Fatalf("Sanitize(%q) = %q contains unsafe characters", input, got)
		}
		if strings.ContainsAny(got, " \t\n") {
			t.Fatalf("Sanitize(%q) = %q contains raw whitespace", input, got)
		}
		if strings.Contains(got, "__") {
			t.Fatalf("Sanitize(%q) = %q contains an underscore run", input, got)
		}
	}
}

func TestSanitizeStripsAccents(t *testing.T) {
	got := naming.Sanitize("José Núñez", naming.MaxNameLen)
	if got != "Jose_Nunez" {
		t.Fatalf("Sanitize = %q, want Jose_Nunez", got)
	}
}

func TestSanitizeEmptyFallsBack(t *testing.T) {
	for _, input := range []string{"", "   ", "☆☆☆", "///"} {
		if got := naming.Sanitize(input, naming.MaxNameLen); got != "unknown" {
			t.Fatalf("Sanitize(%q) = %q, want unknown", input, got)
		}
	}
}

func TestMatchesOwnerRejectsOtherOwners(t *testing.T) {
	token := naming.EncodeFolder("u1", "Amy")
	if naming.MatchesOwner(token, "u") {
		t.Fatal("prefix of an owner id must not match")
	}
	if naming.MatchesOwner(token, "u11") {
		t.Fatal("different owner must not match")
	}
	if naming.MatchesOwner(token, "") {
		t.Fatal("empty owner must not match")
	}
}

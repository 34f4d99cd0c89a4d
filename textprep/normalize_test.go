package textprep

import (
	"strings"
	"testing"
)

func TestIsUrduRune(t *testing.T) {
	for _, r := range "ایک بچہ تھا" {
		if r == ' ' {
			continue
		}
		if !IsUrduRune(r) {
			t.Errorf("expected %q to be Urdu", r)
		}
	}
	for _, r := range "abcXYZ123" {
		if IsUrduRune(r) {
			t.Errorf("expected %q not to be Urdu", r)
		}
	}
}

func TestNormalizeStripsNoise(t *testing.T) {
	in := "ایک بار https://example.com/story ایک بچہ <div>ad</div> someone@mail.com تھا"
	got := Normalize(in)

	for _, bad := range []string{"http", "example", "div", "mail", "@"} {
		if strings.Contains(got, bad) {
			t.Errorf("noise %q survived: %q", bad, got)
		}
	}
	for _, word := range []string{"ایک", "بار", "بچہ", "تھا"} {
		if !strings.Contains(got, word) {
			t.Errorf("urdu word %q lost: %q", word, got)
		}
	}
}

func TestNormalizeStandardizesPunctuation(t *testing.T) {
	got := Normalize("کیا؟ ہاں, ٹھیک; اچھا...")
	for _, want := range []string{"؟", "،", "؛", "۔"} {
		if !strings.Contains(got, want) {
			t.Errorf("expected %q in %q", want, got)
		}
	}
	for _, bad := range []string{",", ";", ".."} {
		if strings.Contains(got, bad) {
			t.Errorf("unstandardized %q left in %q", bad, got)
		}
	}

	if got := Normalize("ختم."); !strings.Contains(got, "۔") || strings.Contains(got, ".") {
		t.Errorf("single dot not standardized: %q", got)
	}
}

func TestNormalizeCollapsesWhitespace(t *testing.T) {
	got := Normalize("ایک    بار\n\n\n\nدوسرا")
	if strings.Contains(got, "  ") {
		t.Errorf("space run survived: %q", got)
	}
	if strings.Contains(got, "\n\n\n") {
		t.Errorf("blank-line run survived: %q", got)
	}
}

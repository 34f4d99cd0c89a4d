package textprep

import (
	"strings"
	"testing"

	"github.com/djeday123/storylm/tokenizer"
)

func TestInjectMarkers(t *testing.T) {
	in := "ایک جملہ ہے۔ دوسرا جملہ؟\n\nنیا پیراگراف۔"
	got := InjectMarkers(in)

	if n := strings.Count(got, string(RuneEOS)); n != 3 {
		t.Errorf("expected 3 sentence markers, got %d in %q", n, got)
	}
	if n := strings.Count(got, string(RuneEOP)); n != 1 {
		t.Errorf("expected 1 paragraph marker, got %d in %q", n, got)
	}
	if !strings.HasSuffix(got, string(RuneEOT)) {
		t.Errorf("expected trailing story marker in %q", got)
	}
}

func TestInjectMarkersIdempotentStoryEnd(t *testing.T) {
	got := InjectMarkers(InjectMarkers("کہانی ختم۔"))
	if n := strings.Count(got, string(RuneEOT)); n != 1 {
		t.Errorf("expected exactly one story marker, got %d", n)
	}
}

func TestMarkVisible(t *testing.T) {
	in := "تھا۔" + string(RuneEOS) + string(RuneEOP) + "ختم۔" + string(RuneEOS) + string(RuneEOT)
	got := MarkVisible(in)

	for _, tok := range []string{tokenizer.EosToken, tokenizer.EopToken, tokenizer.EotToken} {
		if !strings.Contains(got, " "+tok+" ") {
			t.Errorf("expected %s as a standalone word in %q", tok, got)
		}
	}
	for _, r := range []rune{RuneEOS, RuneEOP, RuneEOT} {
		if strings.ContainsRune(got, r) {
			t.Errorf("private-use marker %U survived in %q", r, got)
		}
	}
}

func TestPrepareEndsWithStoryToken(t *testing.T) {
	fields := strings.Fields(Prepare("ایک بار ایک بچہ تھا۔"))
	if len(fields) == 0 {
		t.Fatal("prepare produced no words")
	}
	if last := fields[len(fields)-1]; last != tokenizer.EotToken {
		t.Errorf("expected trailing %s, got %q", tokenizer.EotToken, last)
	}
}

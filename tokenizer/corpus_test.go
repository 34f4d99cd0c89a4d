package tokenizer

import (
	"reflect"
	"testing"
)

func TestSplitSymbols(t *testing.T) {
	tests := []struct {
		word string
		want []string
	}{
		{"ایک", []string{"ا", "ی", "ک", EndOfWord}},
		{"ab", []string{"a", "b", EndOfWord}},
		{EosToken, []string{EosToken}},
		{EotToken, []string{EotToken}},
		{UnkToken, []string{UnkToken}},
	}
	for _, tt := range tests {
		if got := SplitSymbols(tt.word); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("SplitSymbols(%q) = %v, want %v", tt.word, got, tt.want)
		}
	}
}

func TestBuildCorpusDedupAndOrder(t *testing.T) {
	units := BuildCorpus("ایک بار ایک " + EotToken)

	if len(units) != 3 {
		t.Fatalf("expected 3 distinct word units, got %d", len(units))
	}
	if units[0].Freq != 2 {
		t.Errorf("expected first unit freq 2, got %d", units[0].Freq)
	}
	if units[1].Freq != 1 || units[2].Freq != 1 {
		t.Errorf("expected remaining units freq 1, got %d and %d", units[1].Freq, units[2].Freq)
	}
	// first-appearance order: ایک, بار, <EOT>
	if units[0].Symbols[0] != "ا" {
		t.Errorf("expected first unit to start with ا, got %q", units[0].Symbols[0])
	}
	if !reflect.DeepEqual(units[2].Symbols, []string{EotToken}) {
		t.Errorf("expected marker unit to stay atomic, got %v", units[2].Symbols)
	}
}

func TestBuildCorpusEmpty(t *testing.T) {
	if units := BuildCorpus("   \n\t "); len(units) != 0 {
		t.Errorf("expected no units for blank text, got %d", len(units))
	}
}

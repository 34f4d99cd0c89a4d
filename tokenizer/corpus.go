package tokenizer

import "strings"

// ============================================================================
// Symbol layout (shared across the storylm pipeline):
//
//   single runes:  ordinary corpus characters
//   </w>:          end-of-word marker appended to every decomposed word
//   <EOS>/<EOP>/<EOT>: structural markers injected by text preparation
//                  (sentence / paragraph / story boundaries), kept atomic
//   <UNK>:         designated marker for symbols unseen during training
//
// Symbols are interned as plain strings; identity is string equality.
// ============================================================================

const (
	EndOfWord = "</w>"

	PadToken = "<PAD>"
	UnkToken = "<UNK>"
	BosToken = "<BOS>"
	EosToken = "<EOS>" // end of sentence
	EopToken = "<EOP>" // end of paragraph
	EotToken = "<EOT>" // end of text (story)
)

// markerTokens are the reserved tokens that may appear in corpus text as
// standalone words and must never be split into characters.
var markerTokens = map[string]bool{
	PadToken: true,
	UnkToken: true,
	BosToken: true,
	EosToken: true,
	EopToken: true,
	EotToken: true,
}

// IsMarker reports whether tok is one of the reserved marker symbols
// (structural tokens or the end-of-word marker).
func IsMarker(tok string) bool {
	return markerTokens[tok] || tok == EndOfWord
}

// WordUnit is one whitespace-delimited word decomposed into symbols plus a
// trailing end-of-word marker. Freq is how many times the word occurs in the
// corpus; identical words share a single unit so a merge pass touches each
// distinct spelling once. The symbol slice is compacted in place during
// training, so units handed to the trainer must not be reused by the caller.
type WordUnit struct {
	Symbols []string
	Freq    int
}

// SplitSymbols decomposes a single word into its symbol sequence.
// Marker tokens stay atomic; everything else becomes one symbol per rune
// followed by the end-of-word marker.
func SplitSymbols(word string) []string {
	if markerTokens[word] {
		return []string{word}
	}
	runes := []rune(word)
	syms := make([]string, 0, len(runes)+1)
	for _, r := range runes {
		syms = append(syms, string(r))
	}
	return append(syms, EndOfWord)
}

// BuildCorpus turns whitespace-delimited text into word units ordered by
// first appearance. Encounter order is load-bearing: it fixes the tie-break
// order of training, so two runs over the same text see the same sequence.
func BuildCorpus(text string) []*WordUnit {
	words := strings.Fields(text)
	index := make(map[string]*WordUnit, len(words))
	units := make([]*WordUnit, 0, len(words))
	for _, w := range words {
		if u, ok := index[w]; ok {
			u.Freq++
			continue
		}
		u := &WordUnit{Symbols: SplitSymbols(w), Freq: 1}
		index[w] = u
		units = append(units, u)
	}
	return units
}

package tokenizer

import "strings"

// CharTokenizer is the simplest possible tokenizer — each character is a
// token, words end with the end-of-word marker. No subword merging.
// Useful as a compression baseline next to a trained BPE.
type CharTokenizer struct{}

// NewCharTokenizer returns a character-level tokenizer.
func NewCharTokenizer() *CharTokenizer { return &CharTokenizer{} }

// Encode converts whitespace-delimited text to character symbols.
func (t *CharTokenizer) Encode(text string) []string {
	var out []string
	for _, w := range strings.Fields(text) {
		out = append(out, SplitSymbols(w)...)
	}
	return out
}

// Decode converts character symbols back to text.
func (t *CharTokenizer) Decode(tokens []string) string {
	var sb strings.Builder
	for _, tok := range tokens {
		if tok == EndOfWord {
			sb.WriteByte(' ')
			continue
		}
		sb.WriteString(tok)
	}
	return strings.TrimSpace(sb.String())
}

// VocabSize is unbounded for a character tokenizer; report zero.
func (t *CharTokenizer) VocabSize() int { return 0 }

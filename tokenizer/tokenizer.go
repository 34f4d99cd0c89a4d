package tokenizer

// Tokenizer is the common interface for tokenizers in storylm.
// BPE implements this over the trained subword vocabulary.
type Tokenizer interface {
	Encode(text string) []string
	Decode(tokens []string) string
	VocabSize() int
}

var (
	_ Tokenizer = (*BPE)(nil)
	_ Tokenizer = (*CharTokenizer)(nil)
)

package lm

// Counts holds raw n-gram frequencies for a tokenized corpus. Keys are
// structured token tuples, never joined strings, so lookups are O(1) and no
// separator can collide with token contents. Pure aggregation; smoothing
// happens in the scorer.
type Counts struct {
	Unigram map[string]int
	Bigram  map[[2]string]int
	Trigram map[[3]string]int
	Total   int
}

// NewCounts returns empty, ready-to-fill tables.
func NewCounts() *Counts {
	return &Counts{
		Unigram: make(map[string]int),
		Bigram:  make(map[[2]string]int),
		Trigram: make(map[[3]string]int),
	}
}

// Count tallies unigrams, bigrams and trigrams over the token stream in a
// single linear pass. Word boundaries ride along as the end-of-word marker,
// sentence/paragraph/story boundaries as their structural tokens; the counter
// does not treat any token specially.
func Count(tokens []string) *Counts {
	c := NewCounts()
	for i, tok := range tokens {
		c.Unigram[tok]++
		c.Total++
		if i+1 < len(tokens) {
			c.Bigram[[2]string{tok, tokens[i+1]}]++
		}
		if i+2 < len(tokens) {
			c.Trigram[[3]string{tok, tokens[i+1], tokens[i+2]}]++
		}
	}
	return c
}

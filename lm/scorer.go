package lm

import "sort"

// Score returns the interpolated probability of w3 following the two-token
// context (w1, w2):
//
//	P = λ3·P_tri(w3|w1,w2) + λ2·P_bi(w3|w2) + λ1·P_uni(w3)
//
// An unobserved trigram or bigram context contributes zero. An unobserved w3
// falls back to the uniform 1/|vocab| at the unigram level, so no token ever
// scores exactly zero.
func (m *Model) Score(w1, w2, w3 string) float64 {
	var tri, bi float64
	ctx := bigramKey{w1, w2}
	if tot := m.triTot[ctx]; tot > 0 {
		tri = float64(m.tri[ctx][w3]) / float64(tot)
	}
	if tot := m.biTot[w2]; tot > 0 {
		bi = float64(m.bi[w2][w3]) / float64(tot)
	}
	return m.weights.Trigram*tri + m.weights.Bigram*bi + m.weights.Unigram*m.unigramProb(w3)
}

func (m *Model) unigramProb(tok string) float64 {
	if n, ok := m.uni[tok]; ok && m.total > 0 {
		return float64(n) / float64(m.total)
	}
	return 1.0 / float64(len(m.vocab))
}

// Distribution builds the full next-token distribution for the context.
// Candidates are every token observed as a successor at any order: trigram
// successors of (w1,w2), bigram successors of w2, and every unigram-observed
// token. Only a completely empty model falls back to the whole vocabulary.
// Candidates are returned in sorted order so that sampling with a fixed seed
// is reproducible, and probabilities are normalized to sum to one.
func (m *Model) Distribution(w1, w2 string) ([]string, []float64) {
	seen := make(map[string]bool)
	var cands []string
	add := func(tok string) {
		if !seen[tok] {
			seen[tok] = true
			cands = append(cands, tok)
		}
	}
	for tok := range m.tri[bigramKey{w1, w2}] {
		add(tok)
	}
	for tok := range m.bi[w2] {
		add(tok)
	}
	for tok := range m.uni {
		add(tok)
	}
	if len(cands) == 0 {
		for _, tok := range m.vocab {
			add(tok)
		}
	}
	sort.Strings(cands)

	probs := make([]float64, len(cands))
	sum := 0.0
	for i, tok := range cands {
		p := m.Score(w1, w2, tok)
		probs[i] = p
		sum += p
	}
	if sum > 0 {
		for i := range probs {
			probs[i] /= sum
		}
	}
	return cands, probs
}

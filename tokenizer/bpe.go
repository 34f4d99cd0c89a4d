package tokenizer

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrEmptyCorpus is returned when training is attempted on a corpus with no
// word units; the initial alphabet cannot be bootstrapped from nothing.
var ErrEmptyCorpus = errors.New("empty corpus")

// DefaultVocabSize is the target vocabulary size used when none is given.
const DefaultVocabSize = 250

// symPair is an adjacent symbol pair. Comparable, so it keys maps directly.
type symPair struct {
	Left, Right string
}

// MergeRule is one learned merge: the adjacent pair (Left, Right) collapses
// into the concatenated symbol. Its rank is its index in the merge list
// (rank 0 = first learned); encoding always prefers the lowest rank.
type MergeRule struct {
	Left, Right string
}

// Merged returns the composite symbol this rule produces.
func (m MergeRule) Merged() string { return m.Left + m.Right }

// BPE holds the trained vocabulary and ordered merge rules. Immutable once
// training or loading completes, and therefore safe for concurrent use.
//
// Invariants maintained:
//   - tokens[i] was the i-th symbol introduced (alphabet first, then one new
//     composite symbol per merge), so len(tokens) = alphabet + len(merges).
//   - pairRank[{L,R}] = r  iff  merges[r] = {L,R}.
//   - ids is a dense mapping over the sorted vocabulary, idList its inverse.
type BPE struct {
	tokens   []string
	tokenSet map[string]bool
	merges   []MergeRule
	pairRank map[symPair]int
	target   int

	ids    map[string]int
	idList []string
}

// pairStat tracks one adjacent pair across the whole corpus. firstSeen is the
// position in the global left-to-right scan at which the pair was first
// created; equal-frequency ties resolve toward the lower firstSeen.
type pairStat struct {
	count     int
	firstSeen int
}

// TrainBPE learns merge rules from the corpus until the vocabulary reaches
// targetVocab symbols or no adjacent pair occurs more than once. Stopping
// early with a smaller vocabulary is normal; VocabSize reports the achieved
// size. The word units are mutated during training.
func TrainBPE(units []*WordUnit, targetVocab int) (*BPE, error) {
	if targetVocab <= 0 {
		targetVocab = DefaultVocabSize
	}
	if len(units) == 0 {
		return nil, ErrEmptyCorpus
	}

	b := &BPE{
		tokenSet: make(map[string]bool),
		pairRank: make(map[symPair]int),
		target:   targetVocab,
	}

	// Base alphabet: the unknown marker, then every distinct symbol in
	// corpus-scan order. Training order is what the vocab file preserves.
	b.addToken(UnkToken)
	for _, u := range units {
		for _, s := range u.Symbols {
			b.addToken(s)
		}
	}

	// Adjacency stats for the whole corpus, updated incrementally after each
	// merge instead of rescanning every unit.
	stats := make(map[symPair]*pairStat)
	seq := 0
	bump := func(p symPair, delta int) {
		st := stats[p]
		if st == nil {
			if delta <= 0 {
				return
			}
			st = &pairStat{firstSeen: seq}
			seq++
			stats[p] = st
		}
		st.count += delta
	}
	for _, u := range units {
		for i := 0; i+1 < len(u.Symbols); i++ {
			bump(symPair{u.Symbols[i], u.Symbols[i+1]}, u.Freq)
		}
	}

	numMerges := targetVocab - len(b.tokens)
	fmt.Printf("BPE training: %d word units, alphabet %d → %d merges\n",
		len(units), len(b.tokens), numMerges)

	for len(b.tokens) < targetVocab {
		best, st := bestPair(stats)
		if st == nil || st.count <= 1 {
			fmt.Printf("  stopped at merge %d: no repeated pair left\n", len(b.merges))
			break
		}

		merged := best.Left + best.Right
		if b.tokenSet[merged] {
			// a different merge path already produced this composite; accepting
			// the rule would stop vocab growth from tracking the rule count
			st.count = 0
			continue
		}
		freq := st.count
		b.pairRank[best] = len(b.merges)
		b.merges = append(b.merges, MergeRule{best.Left, best.Right})
		b.addToken(merged)

		for _, u := range units {
			mergeUnit(u, best, merged, bump)
		}
		for p, s := range stats {
			if s.count <= 0 {
				delete(stats, p)
			}
		}

		if n := len(b.merges); n%10 == 0 || n <= 5 {
			fmt.Printf("  merge %3d/%d  %q + %q → %q  freq=%d\n",
				n, numMerges, best.Left, best.Right, merged, freq)
		}
	}

	fmt.Printf("BPE done: vocab=%d merges=%d\n", len(b.tokens), len(b.merges))
	b.finalizeIDs()
	return b, nil
}

// bestPair selects the highest-count pair; ties go to the pair first created
// in the global scan. (count, firstSeen) is unique per live pair, so the
// selection does not depend on map iteration order.
func bestPair(stats map[symPair]*pairStat) (symPair, *pairStat) {
	var best symPair
	var bestStat *pairStat
	for p, st := range stats {
		if st.count <= 0 {
			continue
		}
		if bestStat == nil || st.count > bestStat.count ||
			(st.count == bestStat.count && st.firstSeen < bestStat.firstSeen) {
			best, bestStat = p, st
		}
	}
	return best, bestStat
}

// mergeUnit replaces every non-overlapping occurrence of the pair, left to
// right, inside one word unit, keeping the adjacency stats in sync. The
// symbol slice is compacted in place; no new backing array is allocated.
// Decrements leave zero-count entries behind so that a pair surviving the
// rewrite keeps its original firstSeen; the caller purges dead entries.
func mergeUnit(u *WordUnit, p symPair, merged string, bump func(symPair, int)) {
	syms := u.Symbols
	found := false
	for i := 0; i+1 < len(syms); i++ {
		if syms[i] == p.Left && syms[i+1] == p.Right {
			found = true
			break
		}
	}
	if !found {
		return
	}

	for i := 0; i+1 < len(syms); i++ {
		bump(symPair{syms[i], syms[i+1]}, -u.Freq)
	}
	w := 0
	for i := 0; i < len(syms); {
		if i+1 < len(syms) && syms[i] == p.Left && syms[i+1] == p.Right {
			syms[w] = merged
			i += 2
		} else {
			syms[w] = syms[i]
			i++
		}
		w++
	}
	u.Symbols = syms[:w]
	for i := 0; i+1 < w; i++ {
		bump(symPair{syms[i], syms[i+1]}, u.Freq)
	}
}

func (b *BPE) addToken(tok string) {
	if !b.tokenSet[tok] {
		b.tokenSet[tok] = true
		b.tokens = append(b.tokens, tok)
	}
}

// finalizeIDs builds the dense token↔ID mapping over the sorted vocabulary.
func (b *BPE) finalizeIDs() {
	b.idList = append([]string(nil), b.tokens...)
	sort.Strings(b.idList)
	b.ids = make(map[string]int, len(b.idList))
	for i, tok := range b.idList {
		b.ids[tok] = i
	}
}

// ============================================================================
// Encode / Decode
// ============================================================================

// EncodeSymbols reduces a symbol sequence by repeatedly applying the
// lowest-rank merge rule matching any adjacent pair, leftmost occurrence
// first, until no rule applies. This reproduces the segmentation training
// produced, independent of corpus history. Symbols that end up outside the
// vocabulary are emitted as the unknown marker.
func (b *BPE) EncodeSymbols(syms []string) []string {
	out := append([]string(nil), syms...)
	for {
		bestRank, bestPos := -1, -1
		for i := 0; i+1 < len(out); i++ {
			if r, ok := b.pairRank[symPair{out[i], out[i+1]}]; ok && (bestRank < 0 || r < bestRank) {
				bestRank, bestPos = r, i
			}
		}
		if bestPos < 0 {
			break
		}
		out[bestPos] = b.merges[bestRank].Merged()
		out = append(out[:bestPos+1], out[bestPos+2:]...)
	}
	for i, s := range out {
		if !b.tokenSet[s] {
			out[i] = UnkToken
		}
	}
	return out
}

// EncodeWord tokenizes a single word. Marker tokens pass through unchanged.
func (b *BPE) EncodeWord(word string) []string {
	if markerTokens[word] {
		return []string{word}
	}
	return b.EncodeSymbols(SplitSymbols(word))
}

// Encode tokenizes whitespace-delimited text.
func (b *BPE) Encode(text string) []string {
	var out []string
	for _, w := range strings.Fields(text) {
		out = append(out, b.EncodeWord(w)...)
	}
	return out
}

// Decode converts a token sequence back to text: symbols are concatenated,
// end-of-word markers become spaces, sentence markers vanish, paragraph
// markers become blank lines and the story marker is dropped.
func (b *BPE) Decode(tokens []string) string {
	var sb strings.Builder
	for _, tok := range tokens {
		sb.WriteString(tok)
	}
	text := sb.String()
	text = strings.ReplaceAll(text, EndOfWord, " ")
	text = strings.ReplaceAll(text, EosToken, "")
	text = strings.ReplaceAll(text, EopToken, "\n\n")
	text = strings.ReplaceAll(text, EotToken, "")
	return strings.TrimSpace(text)
}

// TokenIDs maps tokens to integer IDs over the sorted vocabulary. Tokens
// outside the vocabulary map to the unknown marker's ID.
func (b *BPE) TokenIDs(tokens []string) []int {
	out := make([]int, len(tokens))
	for i, tok := range tokens {
		id, ok := b.ids[tok]
		if !ok {
			id = b.ids[UnkToken]
		}
		out[i] = id
	}
	return out
}

// IDTokens maps integer IDs back to tokens; out-of-range IDs become the
// unknown marker.
func (b *BPE) IDTokens(ids []int) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		if id < 0 || id >= len(b.idList) {
			out[i] = UnkToken
			continue
		}
		out[i] = b.idList[id]
	}
	return out
}

// ============================================================================
// Accessors
// ============================================================================

// VocabSize returns the achieved vocabulary size, which may be smaller than
// the requested target when training ran out of repeated pairs.
func (b *BPE) VocabSize() int { return len(b.tokens) }

// TargetSize returns the vocabulary size training was asked for.
func (b *BPE) TargetSize() int { return b.target }

// NumMerges returns the number of learned merge rules.
func (b *BPE) NumMerges() int { return len(b.merges) }

// Tokens returns the vocabulary in training order.
func (b *BPE) Tokens() []string {
	return append([]string(nil), b.tokens...)
}

// Merges returns the learned merge rules in rank order.
func (b *BPE) Merges() []MergeRule {
	return append([]MergeRule(nil), b.merges...)
}

// InVocab reports whether tok is part of the trained vocabulary.
func (b *BPE) InVocab(tok string) bool { return b.tokenSet[tok] }

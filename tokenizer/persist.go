package tokenizer

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/pkg/errors"
)

// ============================================================================
// Save / Load
//
// Vocabulary file: one token per line, in training order. Order encodes
// insertion provenance (alphabet first, merges after, rank order) and must
// survive a round-trip byte for byte.
//
// Merges file: one "left right" pair per line, rank = line index. Symbols
// never contain whitespace, so a plain space separator is unambiguous.
// Lines starting with '#' are headers and ignored on load.
// ============================================================================

// SaveVocab writes the vocabulary file.
func (b *BPE) SaveVocab(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	fmt.Fprintf(w, "# storylm vocab v1\n")
	fmt.Fprintf(w, "# size %d\n", len(b.tokens))
	for _, tok := range b.tokens {
		fmt.Fprintln(w, tok)
	}
	return w.Flush()
}

// SaveMerges writes the merge-rules file.
func (b *BPE) SaveMerges(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	fmt.Fprintf(w, "# storylm merges v1\n")
	fmt.Fprintf(w, "# count %d\n", len(b.merges))
	for _, m := range b.merges {
		fmt.Fprintf(w, "%s %s\n", m.Left, m.Right)
	}
	return w.Flush()
}

// Load reconstructs a tokenizer from its vocabulary and merges files.
// Every merge must produce a symbol present in the vocabulary; anything else
// means the two files do not belong together.
func Load(vocabPath, mergesPath string) (*BPE, error) {
	tokens, err := readLines(vocabPath)
	if err != nil {
		return nil, errors.Wrapf(err, "reading vocab %s", vocabPath)
	}
	if len(tokens) == 0 {
		return nil, errors.Errorf("vocab file %s holds no tokens", vocabPath)
	}

	b := &BPE{
		tokenSet: make(map[string]bool, len(tokens)),
		pairRank: make(map[symPair]int),
	}
	for _, tok := range tokens {
		if b.tokenSet[tok] {
			return nil, errors.Errorf("duplicate token %q in vocab %s", tok, vocabPath)
		}
		b.addToken(tok)
	}
	b.target = len(b.tokens)

	lines, err := readLines(mergesPath)
	if err != nil {
		return nil, errors.Wrapf(err, "reading merges %s", mergesPath)
	}
	for rank, line := range lines {
		parts := strings.Fields(line)
		if len(parts) != 2 {
			return nil, errors.Errorf("merges %s line %d: want two symbols, got %q", mergesPath, rank+1, line)
		}
		rule := MergeRule{Left: parts[0], Right: parts[1]}
		if !b.tokenSet[rule.Merged()] {
			return nil, errors.Errorf("merges %s line %d: merged symbol %q not in vocab", mergesPath, rank+1, rule.Merged())
		}
		b.pairRank[symPair{rule.Left, rule.Right}] = rank
		b.merges = append(b.merges, rule)
	}

	b.finalizeIDs()
	return b, nil
}

// readLines returns the non-empty, non-comment lines of a file in order.
func readLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r\n")
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}

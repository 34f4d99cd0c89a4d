package lm

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/pkg/errors"
)

// weightTolerance is the floating-point slack allowed on the weight sum.
const weightTolerance = 1e-9

// Weights are the linear-interpolation coefficients for the three orders.
// They must be non-negative and sum to one.
type Weights struct {
	Trigram float64 `json:"trigram" yaml:"trigram"`
	Bigram  float64 `json:"bigram" yaml:"bigram"`
	Unigram float64 `json:"unigram" yaml:"unigram"`
}

// DefaultWeights returns the standard 0.70 / 0.20 / 0.10 blend.
func DefaultWeights() Weights {
	return Weights{Trigram: 0.70, Bigram: 0.20, Unigram: 0.10}
}

// Validate rejects weights that are negative or do not sum to one.
func (w Weights) Validate() error {
	if w.Trigram < 0 || w.Bigram < 0 || w.Unigram < 0 {
		return fmt.Errorf("%w: negative weight in %+v", ErrInvalidSmoothingWeights, w)
	}
	sum := w.Trigram + w.Bigram + w.Unigram
	if diff := sum - 1; diff > weightTolerance || diff < -weightTolerance {
		return fmt.Errorf("%w: sum %g, want 1", ErrInvalidSmoothingWeights, sum)
	}
	return nil
}

// bigramKey is a two-token context. Comparable, so it keys maps directly.
type bigramKey [2]string

// Model is the immutable language-model bundle: n-gram tables regrouped by
// context, the token vocabulary, smoothing weights. Constructed once at
// training or load time and shared read-only by every scorer and generator
// call; nothing here is mutated after New returns, so concurrent use needs
// no coordination.
type Model struct {
	uni    map[string]int
	bi     map[string]map[string]int   // w2 -> w3 -> count(w2, w3)
	tri    map[bigramKey]map[string]int // (w1, w2) -> w3 -> count
	biTot  map[string]int
	triTot map[bigramKey]int
	total  int

	vocab   []string
	weights Weights
}

// New assembles a model from raw counts, the token vocabulary and smoothing
// weights. Construction is all-or-nothing: any validation failure returns
// before a model exists.
func New(c *Counts, vocab []string, weights Weights) (*Model, error) {
	if err := weights.Validate(); err != nil {
		return nil, err
	}
	if c == nil {
		return nil, fmt.Errorf("%w: nil counts", ErrCorruptModel)
	}
	if len(vocab) == 0 {
		return nil, fmt.Errorf("%w: empty vocabulary", ErrCorruptModel)
	}

	m := &Model{
		uni:     make(map[string]int, len(c.Unigram)),
		bi:      make(map[string]map[string]int),
		tri:     make(map[bigramKey]map[string]int),
		biTot:   make(map[string]int),
		triTot:  make(map[bigramKey]int),
		total:   c.Total,
		vocab:   append([]string(nil), vocab...),
		weights: weights,
	}

	for tok, n := range c.Unigram {
		if n < 0 {
			return nil, fmt.Errorf("%w: negative unigram count for %q", ErrCorruptModel, tok)
		}
		m.uni[tok] = n
	}
	for key, n := range c.Bigram {
		if n < 0 {
			return nil, fmt.Errorf("%w: negative bigram count for %v", ErrCorruptModel, key)
		}
		succ := m.bi[key[0]]
		if succ == nil {
			succ = make(map[string]int)
			m.bi[key[0]] = succ
		}
		succ[key[1]] = n
		m.biTot[key[0]] += n
	}
	for key, n := range c.Trigram {
		if n < 0 {
			return nil, fmt.Errorf("%w: negative trigram count for %v", ErrCorruptModel, key)
		}
		ctx := bigramKey{key[0], key[1]}
		succ := m.tri[ctx]
		if succ == nil {
			succ = make(map[string]int)
			m.tri[ctx] = succ
		}
		succ[key[2]] = n
		m.triTot[ctx] += n
	}

	// A context's trigram successors cannot outnumber its bigram occurrences.
	for ctx, tot := range m.triTot {
		if biCount := m.bi[ctx[0]][ctx[1]]; tot > biCount {
			return nil, fmt.Errorf("%w: trigram successors of %v sum to %d, bigram count is %d",
				ErrCorruptModel, ctx, tot, biCount)
		}
	}

	return m, nil
}

// TotalTokens returns the number of tokens the counter processed.
func (m *Model) TotalTokens() int { return m.total }

// VocabSize returns the size of the token vocabulary.
func (m *Model) VocabSize() int { return len(m.vocab) }

// Vocab returns a copy of the token vocabulary.
func (m *Model) Vocab() []string {
	return append([]string(nil), m.vocab...)
}

// Weights returns the smoothing weights the model scores with.
func (m *Model) Weights() Weights { return m.weights }

// ============================================================================
// Save / Load
//
// On disk the model table is JSON: unigram and bigram as nested objects, the
// trigram context joined with a reserved separator, plus a metadata block with
// the total token count and vocabulary size. In memory the keys stay
// structured; the separator exists only in the file.
// ============================================================================

// ctxSeparator joins the two context tokens of a trigram key on disk. It is a
// private-use rune: text normalization never emits one, the structural markers
// are rewritten to their visible forms before tokenization, so no token can
// contain it. Visible punctuation like "|" would collide, since tokens may
// legally contain it.
const ctxSeparator = ""

type modelMeta struct {
	TotalTokens int `json:"total_tokens"`
	VocabSize   int `json:"vocab_size"`
}

type modelFile struct {
	Metadata *modelMeta                `json:"metadata"`
	Unigram  map[string]int            `json:"unigram"`
	Bigram   map[string]map[string]int `json:"bigram"`
	Trigram  map[string]map[string]int `json:"trigram"`
}

// Save writes the model table to path.
func (m *Model) Save(path string) error {
	file := modelFile{
		Metadata: &modelMeta{TotalTokens: m.total, VocabSize: len(m.vocab)},
		Unigram:  m.uni,
		Bigram:   m.bi,
		Trigram:  make(map[string]map[string]int, len(m.tri)),
	}
	for ctx, succ := range m.tri {
		if strings.Contains(ctx[0], ctxSeparator) || strings.Contains(ctx[1], ctxSeparator) {
			return fmt.Errorf("context token in %v contains the reserved separator %q", ctx, ctxSeparator)
		}
		file.Trigram[ctx[0]+ctxSeparator+ctx[1]] = succ
	}

	data, err := json.MarshalIndent(&file, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// LoadModel reads a model table from path and assembles it with the given
// vocabulary and weights. Any structural defect fails with ErrCorruptModel
// before a model is constructed.
func LoadModel(path string, vocab []string, weights Weights) (*Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading model table %s", path)
	}

	var file modelFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, errors.Wrapf(ErrCorruptModel, "model table %s: %v", path, err)
	}
	if file.Metadata == nil {
		return nil, errors.Wrapf(ErrCorruptModel, "model table %s: missing metadata block", path)
	}
	if file.Unigram == nil {
		return nil, errors.Wrapf(ErrCorruptModel, "model table %s: missing unigram table", path)
	}
	if file.Bigram == nil {
		return nil, errors.Wrapf(ErrCorruptModel, "model table %s: missing bigram table", path)
	}
	if file.Trigram == nil {
		return nil, errors.Wrapf(ErrCorruptModel, "model table %s: missing trigram table", path)
	}
	if len(vocab) != file.Metadata.VocabSize {
		return nil, errors.Wrapf(ErrCorruptModel, "model table %s: metadata vocab size %d, loaded vocab has %d tokens",
			path, file.Metadata.VocabSize, len(vocab))
	}

	c := NewCounts()
	sum := 0
	for tok, n := range file.Unigram {
		c.Unigram[tok] = n
		sum += n
	}
	if sum != file.Metadata.TotalTokens {
		return nil, errors.Wrapf(ErrCorruptModel, "model table %s: unigram counts sum to %d, metadata says %d",
			path, sum, file.Metadata.TotalTokens)
	}
	c.Total = file.Metadata.TotalTokens
	for w2, succ := range file.Bigram {
		for w3, n := range succ {
			c.Bigram[[2]string{w2, w3}] = n
		}
	}
	for key, succ := range file.Trigram {
		parts := strings.Split(key, ctxSeparator)
		if len(parts) != 2 {
			return nil, errors.Wrapf(ErrCorruptModel, "model table %s: malformed trigram context %q", path, key)
		}
		for w3, n := range succ {
			c.Trigram[[3]string{parts[0], parts[1], w3}] = n
		}
	}

	m, err := New(c, vocab, weights)
	if err != nil {
		return nil, errors.Wrapf(err, "model table %s", path)
	}
	return m, nil
}

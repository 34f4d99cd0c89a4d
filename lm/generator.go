package lm

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/djeday123/storylm/tokenizer"
)

// State is the terminal condition of a generation run.
type State int

const (
	Generating State = iota
	DoneEOT           // the end-of-text token was emitted
	DoneMaxLen        // the token budget was reached
)

func (s State) String() string {
	switch s {
	case Generating:
		return "generating"
	case DoneEOT:
		return "done_eot"
	case DoneMaxLen:
		return "done_maxlen"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// Result carries the generated continuation (the prefix is not included and
// does not count against the budget) and the terminal state.
type Result struct {
	Tokens []string
	State  State
}

// Generate samples up to maxTokens tokens starting from the two-token prefix.
// Prefix tokens outside the vocabulary are fine; they score through the
// unigram fallback. Each step builds the full smoothed distribution, applies
// temperature scaling (p^(1/T), renormalized; T<1 sharpens, T>1 flattens)
// and draws from the caller's random source. The model is read-only and each
// call owns its rng, so concurrent calls are safe; a fixed seed reproduces
// the output exactly. maxTokens of zero returns an empty result immediately.
func (m *Model) Generate(prefix [2]string, maxTokens int, temperature float64, rng *rand.Rand) (*Result, error) {
	if temperature <= 0 {
		return nil, fmt.Errorf("temperature must be positive, got %g", temperature)
	}
	if maxTokens < 0 {
		return nil, fmt.Errorf("max tokens must be non-negative, got %d", maxTokens)
	}

	w1, w2 := prefix[0], prefix[1]
	res := &Result{Tokens: make([]string, 0, maxTokens), State: Generating}
	for len(res.Tokens) < maxTokens {
		cands, probs := m.Distribution(w1, w2)
		if len(cands) == 0 {
			return nil, fmt.Errorf("sampling after %v: %w", [2]string{w1, w2}, ErrDegenerateDistribution)
		}
		scaled, err := applyTemperature(probs, temperature)
		if err != nil {
			return nil, fmt.Errorf("sampling after %v: %w", [2]string{w1, w2}, err)
		}
		tok := sample(cands, scaled, rng)
		res.Tokens = append(res.Tokens, tok)
		if tok == tokenizer.EotToken {
			res.State = DoneEOT
			return res, nil
		}
		w1, w2 = w2, tok
	}
	res.State = DoneMaxLen
	return res, nil
}

// applyTemperature rescales each probability to p^(1/T) and renormalizes.
// T=1 is a no-op up to rounding; T→0 approaches a one-hot at the arg-max,
// T→∞ approaches uniform.
func applyTemperature(probs []float64, t float64) ([]float64, error) {
	out := make([]float64, len(probs))
	inv := 1.0 / t
	sum := 0.0
	for i, p := range probs {
		if p > 0 {
			out[i] = math.Pow(p, inv)
		}
		sum += out[i]
	}
	if sum <= 0 || math.IsNaN(sum) || math.IsInf(sum, 0) {
		return nil, ErrDegenerateDistribution
	}
	for i := range out {
		out[i] /= sum
	}
	return out, nil
}

// sample draws one candidate by inverse transform over the cumulative
// distribution. The final candidate absorbs floating-point slack.
func sample(cands []string, probs []float64, rng *rand.Rand) string {
	r := rng.Float64()
	cum := 0.0
	for i, p := range probs {
		cum += p
		if r < cum {
			return cands[i]
		}
	}
	return cands[len(cands)-1]
}

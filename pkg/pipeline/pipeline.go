package pipeline

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"

	"github.com/djeday123/storylm/lm"
	"github.com/djeday123/storylm/pkg/config"
	"github.com/djeday123/storylm/textprep"
	"github.com/djeday123/storylm/tokenizer"
)

// Pipeline orchestrates the story model system: text preparation, tokenizer
// training, n-gram counting and model assembly. A trained or loaded model is
// handed out as an immutable Handle.
type Pipeline struct {
	cfg *config.Config
}

// New creates a new Pipeline instance.
func New(cfg *config.Config) (*Pipeline, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Pipeline{cfg: cfg}, nil
}

// Handle bundles a trained tokenizer and language model. It is constructed
// once, never mutated afterwards, and shared by reference across concurrent
// generation and scoring calls.
type Handle struct {
	Tok   *tokenizer.BPE
	Model *lm.Model
}

// Train runs the full offline pipeline over raw story text: cleanup and
// marker injection, BPE training, corpus encoding and n-gram counting.
func (p *Pipeline) Train(ctx context.Context, rawText string) (*Handle, error) {
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	prepared := textprep.Prepare(rawText)
	units := tokenizer.BuildCorpus(prepared)
	tok, err := tokenizer.TrainBPE(units, p.cfg.Tokenizer.VocabSize)
	if err != nil {
		return nil, fmt.Errorf("tokenizer training failed: %w", err)
	}

	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	// Re-encode the prepared corpus with the trained rules; training mutated
	// its word units, so the token stream comes from a fresh pass.
	stream := tok.Encode(prepared)
	counts := lm.Count(stream)
	model, err := lm.New(counts, tok.Tokens(), p.cfg.Model.Smoothing)
	if err != nil {
		return nil, fmt.Errorf("model assembly failed: %w", err)
	}

	return &Handle{Tok: tok, Model: model}, nil
}

// Save writes the three persisted artifacts: vocabulary, merge rules and the
// model table, at the paths the configuration names.
func (p *Pipeline) Save(h *Handle) error {
	for _, path := range []string{p.cfg.Tokenizer.VocabPath, p.cfg.Tokenizer.MergesPath, p.cfg.Model.Path} {
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("creating artifact dir %s: %w", dir, err)
			}
		}
	}
	if err := h.Tok.SaveVocab(p.cfg.Tokenizer.VocabPath); err != nil {
		return fmt.Errorf("saving vocab: %w", err)
	}
	if err := h.Tok.SaveMerges(p.cfg.Tokenizer.MergesPath); err != nil {
		return fmt.Errorf("saving merges: %w", err)
	}
	if err := h.Model.Save(p.cfg.Model.Path); err != nil {
		return fmt.Errorf("saving model table: %w", err)
	}
	return nil
}

// Load reconstructs a Handle from the persisted artifacts. This happens once,
// before any inference request is served.
func (p *Pipeline) Load() (*Handle, error) {
	tok, err := tokenizer.Load(p.cfg.Tokenizer.VocabPath, p.cfg.Tokenizer.MergesPath)
	if err != nil {
		return nil, fmt.Errorf("loading tokenizer: %w", err)
	}
	model, err := lm.LoadModel(p.cfg.Model.Path, tok.Tokens(), p.cfg.Model.Smoothing)
	if err != nil {
		return nil, fmt.Errorf("loading model: %w", err)
	}
	return &Handle{Tok: tok, Model: model}, nil
}

// Generate encodes the raw prefix text, keeps its last two tokens as the
// context and samples a continuation, returning the detokenized text. A
// prefix shorter than two tokens is left-padded with the begin marker.
func (h *Handle) Generate(ctx context.Context, prefix string, maxTokens int, temperature float64, rng *rand.Rand) (string, error) {
	if ctx.Err() != nil {
		return "", ctx.Err()
	}

	toks := h.Tok.Encode(textprep.MarkVisible(prefix))
	ctxPair := [2]string{tokenizer.BosToken, tokenizer.BosToken}
	if n := len(toks); n >= 2 {
		ctxPair = [2]string{toks[n-2], toks[n-1]}
	} else if n == 1 {
		ctxPair[1] = toks[0]
	}

	res, err := h.Model.Generate(ctxPair, maxTokens, temperature, rng)
	if err != nil {
		return "", err
	}
	return h.Tok.Decode(append(toks, res.Tokens...)), nil
}

// Score returns the smoothed probability of candidate following the
// two-token context. Unknown tokens are fine; they ride the unigram
// fallback.
func (h *Handle) Score(ctx context.Context, w1, w2, candidate string) (float64, error) {
	if ctx.Err() != nil {
		return 0, ctx.Err()
	}
	return h.Model.Score(w1, w2, candidate), nil
}

package lm

import "errors"

var (
	// ErrCorruptModel flags a persisted model table that cannot be trusted:
	// missing tables or metadata, negative or inconsistent counts. Loading
	// fails fast; no partially constructed model is ever returned.
	ErrCorruptModel = errors.New("corrupt model")

	// ErrInvalidSmoothingWeights flags interpolation weights that do not sum
	// to one within tolerance.
	ErrInvalidSmoothingWeights = errors.New("invalid smoothing weights")

	// ErrDegenerateDistribution flags a sampling step whose total probability
	// mass rounds to zero. The unigram fallback should make this unreachable;
	// the generator still refuses to produce an undefined token.
	ErrDegenerateDistribution = errors.New("degenerate distribution")
)

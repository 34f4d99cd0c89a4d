package lm

import (
	"math"
	"testing"
)

// scenarioModel reproduces the worked interpolation example: trigram context
// ("ایک","بار") with successor "ایک" 5 out of 5, bigram ("بار","ایک") 8 out
// of 10, unigram "ایک" 50 out of 1000.
func scenarioModel(t *testing.T) *Model {
	t.Helper()
	c := NewCounts()
	c.Unigram["ایک"] = 50
	c.Unigram["بار"] = 500
	c.Unigram["تھا"] = 450
	c.Total = 1000
	c.Bigram[[2]string{"ایک", "بار"}] = 5
	c.Bigram[[2]string{"بار", "ایک"}] = 8
	c.Bigram[[2]string{"بار", "تھا"}] = 2
	c.Trigram[[3]string{"ایک", "بار", "ایک"}] = 5

	m, err := New(c, []string{"ایک", "بار", "تھا", "<EOT>"}, DefaultWeights())
	if err != nil {
		t.Fatal(err)
	}
	return m
}

func TestScoreInterpolation(t *testing.T) {
	m := scenarioModel(t)

	// 0.70·1.0 + 0.20·0.8 + 0.10·0.05 = 0.875
	got := m.Score("ایک", "بار", "ایک")
	if math.Abs(got-0.875) > 1e-12 {
		t.Errorf("score = %.12f, want 0.875", got)
	}
}

func TestScoreUnseenContextContributesNothing(t *testing.T) {
	m := scenarioModel(t)

	// context never observed at trigram or bigram order: only unigram remains
	got := m.Score("تھا", "تھا", "ایک")
	want := 0.10 * 0.05
	if math.Abs(got-want) > 1e-12 {
		t.Errorf("score = %g, want %g", got, want)
	}
}

func TestScoreUnseenTokenUniformFallback(t *testing.T) {
	m := scenarioModel(t)

	got := m.Score("تھا", "تھا", "никогда")
	want := 0.10 * (1.0 / 4.0) // uniform over the 4-token vocabulary
	if math.Abs(got-want) > 1e-12 {
		t.Errorf("score = %g, want %g", got, want)
	}
	if got == 0 {
		t.Error("unseen token must never score exactly zero")
	}
}

func TestScoreNormalization(t *testing.T) {
	stream := []string{"ا", "ی", "ک", "</w>", "ب", "ا", "ر", "</w>", "<EOS>", "ا", "ی", "ک", "</w>", "<EOT>"}
	c := Count(stream)
	m, err := New(c, []string{"ا", "ی", "ک", "ب", "ر", "</w>", "<EOS>", "<EOT>"}, DefaultWeights())
	if err != nil {
		t.Fatal(err)
	}

	// contexts observed at every order: the raw interpolated scores over the
	// observed vocabulary must already sum to one
	for _, ctx := range [][2]string{{"ا", "ی"}, {"<EOS>", "ا"}} {
		sum := 0.0
		for tok := range c.Unigram {
			sum += m.Score(ctx[0], ctx[1], tok)
		}
		if math.Abs(sum-1.0) > 1e-6 {
			t.Errorf("context %v: scores sum to %.9f, want 1", ctx, sum)
		}
	}

	// contexts missing at higher orders keep less raw mass; the sampling
	// distribution restores it by renormalizing
	for _, ctx := range [][2]string{{"never", "seen"}, {"ک", "never"}} {
		_, probs := m.Distribution(ctx[0], ctx[1])
		sum := 0.0
		for _, p := range probs {
			sum += p
		}
		if math.Abs(sum-1.0) > 1e-6 {
			t.Errorf("context %v: distribution sums to %.9f, want 1", ctx, sum)
		}
	}
}

func TestDistributionNormalized(t *testing.T) {
	m := scenarioModel(t)

	cands, probs := m.Distribution("ایک", "بار")
	if len(cands) != len(probs) {
		t.Fatalf("length mismatch: %d candidates, %d probs", len(cands), len(probs))
	}
	sum := 0.0
	for _, p := range probs {
		if p < 0 || p > 1 {
			t.Errorf("probability out of range: %g", p)
		}
		sum += p
	}
	if math.Abs(sum-1.0) > 1e-6 {
		t.Errorf("distribution sums to %.9f, want 1", sum)
	}

	// trigram successors must not be the only reachable candidates
	if len(cands) < 3 {
		t.Errorf("distribution truncated to trigram successors: %v", cands)
	}
}

func TestDistributionEmptyModelFallsBackToVocab(t *testing.T) {
	m, err := New(NewCounts(), []string{"a", "b", "c", "d"}, DefaultWeights())
	if err != nil {
		t.Fatal(err)
	}
	cands, probs := m.Distribution("x", "y")
	if len(cands) != 4 {
		t.Fatalf("expected full-vocabulary fallback, got %v", cands)
	}
	for _, p := range probs {
		if math.Abs(p-0.25) > 1e-9 {
			t.Errorf("expected uniform 0.25, got %v", probs)
		}
	}
}

func TestDistributionDeterministicOrder(t *testing.T) {
	m := scenarioModel(t)
	a, _ := m.Distribution("ایک", "بار")
	b, _ := m.Distribution("ایک", "بار")
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("candidate order unstable: %v vs %v", a, b)
		}
	}
}

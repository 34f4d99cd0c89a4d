package lm

import "testing"

func TestCountLinearPass(t *testing.T) {
	stream := []string{"a", "b", "a", "b", "c"}
	c := Count(stream)

	if c.Total != 5 {
		t.Errorf("total = %d, want 5", c.Total)
	}
	if c.Unigram["a"] != 2 || c.Unigram["b"] != 2 || c.Unigram["c"] != 1 {
		t.Errorf("unexpected unigram counts: %v", c.Unigram)
	}
	if c.Bigram[[2]string{"a", "b"}] != 2 {
		t.Errorf("bigram (a,b) = %d, want 2", c.Bigram[[2]string{"a", "b"}])
	}
	if c.Bigram[[2]string{"b", "a"}] != 1 {
		t.Errorf("bigram (b,a) = %d, want 1", c.Bigram[[2]string{"b", "a"}])
	}
	if c.Trigram[[3]string{"a", "b", "a"}] != 1 {
		t.Errorf("trigram (a,b,a) = %d, want 1", c.Trigram[[3]string{"a", "b", "a"}])
	}
	if c.Trigram[[3]string{"a", "b", "c"}] != 1 {
		t.Errorf("trigram (a,b,c) = %d, want 1", c.Trigram[[3]string{"a", "b", "c"}])
	}

	// total unigram mass equals the number of tokens processed
	sum := 0
	for _, n := range c.Unigram {
		sum += n
	}
	if sum != c.Total {
		t.Errorf("unigram sum %d != total %d", sum, c.Total)
	}
}

func TestCountShortStreams(t *testing.T) {
	if c := Count(nil); c.Total != 0 || len(c.Unigram) != 0 {
		t.Errorf("empty stream produced counts: %+v", c)
	}
	c := Count([]string{"x"})
	if c.Total != 1 || len(c.Bigram) != 0 || len(c.Trigram) != 0 {
		t.Errorf("single token stream produced higher-order counts: %+v", c)
	}
}

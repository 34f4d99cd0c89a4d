package main

import (
	"fmt"
	"math/rand"

	"github.com/djeday123/storylm/lm"
	"github.com/djeday123/storylm/textprep"
	"github.com/djeday123/storylm/tokenizer"
)

func main() {
	fmt.Println("=== StoryLM Smoke Test ===")
	fmt.Println()

	corpus := `ایک بار ایک بچہ تھا۔ وہ روز سکول جاتا تھا۔

ایک بار ایک باغ تھا۔ باغ بہت اچھا تھا۔

کہانی ختم ہوئی۔`

	// Test 1: Text preparation
	fmt.Println("--- Test 1: Text preparation ---")
	prepared := textprep.Prepare(corpus)
	fmt.Println("prepared:", prepared)

	// Test 2: BPE training
	fmt.Println("\n--- Test 2: BPE training ---")
	units := tokenizer.BuildCorpus(prepared)
	fmt.Println("word units:", len(units))
	bpe, err := tokenizer.TrainBPE(units, 60)
	if err != nil {
		panic(err)
	}
	fmt.Println("vocab size:", bpe.VocabSize())
	fmt.Println("merges learned:", bpe.NumMerges())

	// Test 3: Encode / Decode roundtrip
	fmt.Println("\n--- Test 3: Encode/Decode ---")
	toks := bpe.Encode(textprep.Prepare("ایک بار ایک بچہ تھا۔"))
	fmt.Println("tokens:", toks)
	fmt.Println("decoded:", bpe.Decode(toks))

	// Test 4: Trigram counts
	fmt.Println("\n--- Test 4: Trigram counts ---")
	full := bpe.Encode(prepared)
	counts := lm.Count(full)
	fmt.Printf("unigrams=%d bigrams=%d trigrams=%d total=%d\n",
		len(counts.Unigram), len(counts.Bigram), len(counts.Trigram), counts.Total)

	// Test 5: Smoothed scoring
	fmt.Println("\n--- Test 5: Smoothed scoring ---")
	model, err := lm.New(counts, bpe.Tokens(), lm.DefaultWeights())
	if err != nil {
		panic(err)
	}
	if len(full) >= 3 {
		p := model.Score(full[0], full[1], full[2])
		fmt.Printf("P(%s | %s %s) = %.4f\n", full[2], full[0], full[1], p)
	}
	cands, probs := model.Distribution(full[0], full[1])
	sum := 0.0
	for _, p := range probs {
		sum += p
	}
	fmt.Printf("distribution: %d candidates, sum = %.6f (should be 1.0)\n", len(cands), sum)

	// Test 6: Generation
	fmt.Println("\n--- Test 6: Generation ---")
	rng := rand.New(rand.NewSource(7))
	res, err := model.Generate([2]string{full[0], full[1]}, 30, 0.8, rng)
	if err != nil {
		panic(err)
	}
	fmt.Println("state:", res.State)
	fmt.Println("generated:", bpe.Decode(res.Tokens))

	fmt.Println("\n=== All tests passed! ===")
}

package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/pkoukk/tiktoken-go"

	"github.com/djeday123/storylm/textprep"
	"github.com/djeday123/storylm/tokenizer"
)

// tokbench trains a BPE on the given corpus and compares its compression
// against the character baseline and tiktoken's cl100k_base.
func main() {
	corpusPath := flag.String("corpus", "", "Corpus file (required)")
	vocabSize := flag.Int("vocab-size", tokenizer.DefaultVocabSize, "Target vocabulary size")
	flag.Parse()

	fmt.Println("=== storylm tokenizer bench ===")

	if *corpusPath == "" {
		fmt.Fprintln(os.Stderr, "Usage: tokbench --corpus <file> [--vocab-size N]")
		os.Exit(1)
	}
	raw, err := os.ReadFile(*corpusPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	prepared := textprep.Prepare(string(raw))
	fmt.Printf("Corpus: %d bytes raw, %d bytes prepared\n\n", len(raw), len(prepared))

	// --- Train ---
	fmt.Println("--- Training ---")
	start := time.Now()
	bpe, err := tokenizer.TrainBPE(tokenizer.BuildCorpus(prepared), *vocabSize)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Time: %v\n\n", time.Since(start))

	// --- Compression comparison ---
	fmt.Println("--- Compression ---")
	benches := []struct {
		name string
		tok  tokenizer.Tokenizer
	}{
		{"char baseline", tokenizer.NewCharTokenizer()},
		{fmt.Sprintf("storylm bpe (%d)", bpe.VocabSize()), bpe},
	}
	for _, b := range benches {
		report(b.name, prepared, len(b.tok.Encode(prepared)))
	}

	if enc, err := tiktoken.GetEncoding("cl100k_base"); err == nil {
		report("tiktoken cl100k", prepared, len(enc.Encode(prepared, nil, nil)))
	} else {
		fmt.Printf("  tiktoken unavailable: %v\n", err)
	}

	// --- Roundtrip spot check ---
	fmt.Println("\n--- Roundtrip ---")
	probe := "ایک بار ایک بچہ تھا۔"
	toks := bpe.Encode(textprep.MarkVisible(textprep.InjectMarkers(probe)))
	fmt.Printf("  %q → %d tokens → %q\n", probe, len(toks), bpe.Decode(toks))
}

func report(name, text string, numToks int) {
	ratio := 0.0
	if numToks > 0 {
		ratio = float64(len([]rune(text))) / float64(numToks)
	}
	fmt.Printf("  %-20s %8d tokens  (%.2f chars/token)\n", name, numToks, ratio)
}

package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/djeday123/storylm/pkg/config"
	"github.com/djeday123/storylm/pkg/pipeline"
)

func main() {
	corpusPath := flag.String("corpus", "", "Corpus file or directory of .txt story files (required)")
	configPath := flag.String("config", "", "YAML config file (optional)")
	vocabSize := flag.Int("vocab-size", 0, "Override target vocabulary size")
	flag.Parse()

	if *corpusPath == "" {
		fmt.Fprintln(os.Stderr, "Usage: train --corpus <file-or-dir> [--config <path>] [--vocab-size N]")
		flag.PrintDefaults()
		os.Exit(1)
	}

	cfg := config.DefaultConfig()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		cfg = loaded
	}
	if *vocabSize > 0 {
		cfg.Tokenizer.VocabSize = *vocabSize
	}

	raw, err := readCorpus(*corpusPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("[train] corpus: %d bytes\n", len(raw))

	p, err := pipeline.New(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	start := time.Now()
	h, err := p.Train(context.Background(), raw)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("[train] done in %v: vocab=%d merges=%d tokens=%d\n",
		time.Since(start), h.Tok.VocabSize(), h.Tok.NumMerges(), h.Model.TotalTokens())

	if err := p.Save(h); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("[train] artifacts written: %s %s %s\n",
		cfg.Tokenizer.VocabPath, cfg.Tokenizer.MergesPath, cfg.Model.Path)
}

// readCorpus reads a single file, or concatenates every .txt file of a
// directory in name order with blank lines between stories.
func readCorpus(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", err
	}
	if !info.IsDir() {
		data, err := os.ReadFile(path)
		return string(data), err
	}

	files, err := filepath.Glob(filepath.Join(path, "*.txt"))
	if err != nil {
		return "", err
	}
	if len(files) == 0 {
		return "", fmt.Errorf("no .txt files in %s", path)
	}
	var sb strings.Builder
	for _, f := range files {
		data, err := os.ReadFile(f)
		if err != nil {
			return "", err
		}
		sb.Write(data)
		sb.WriteString("\n\n")
	}
	return sb.String(), nil
}

package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/djeday123/storylm/pkg/config"
	"github.com/djeday123/storylm/pkg/pipeline"
)

func main() {
	configPath := flag.String("config", "", "YAML config file (optional)")
	prefix := flag.String("prefix", "", "Prefix text to continue (required)")
	maxTokens := flag.Int("max-tokens", 0, "Maximum tokens to generate (0 = config default)")
	temperature := flag.Float64("temp", 0, "Sampling temperature (0 = config default)")
	seed := flag.Int64("seed", 0, "Random seed (0 = time-based)")
	flag.Parse()

	if *prefix == "" {
		fmt.Fprintln(os.Stderr, "Usage: generate --prefix <text> [--max-tokens N] [--temp T] [--seed S]")
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
	if *maxTokens > 0 {
		cfg.Generation.MaxTokens = *maxTokens
	}
	if *temperature > 0 {
		cfg.Generation.Temperature = *temperature
	}

	p, err := pipeline.New(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	h, err := p.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	s := *seed
	if s == 0 {
		s = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(s))

	text, err := h.Generate(context.Background(), *prefix,
		cfg.Generation.MaxTokens, cfg.Generation.Temperature, rng)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(text)
}

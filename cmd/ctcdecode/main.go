package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	nemo "github.com/ethanhe42/NeMo"
)

func main() {
	logitsPath := flag.String("logits", "", "path to JSON logits file: [batch][frame][vocab] floats")
	blank := flag.Int("blank", 0, "blank label id")
	initLen := flag.Int("init-length", 16, "initial accumulator capacity per item")
	confidence := flag.Bool("confidence", false, "compute and print per-frame confidence")
	verbose := flag.Bool("v", false, "verbose output")

	flag.Parse()

	if *logitsPath == "" {
		fmt.Fprintln(os.Stderr, "Usage: ctcdecode -logits FILE")
		flag.PrintDefaults()
		os.Exit(1)
	}

	data, err := os.ReadFile(*logitsPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: read logits: %v\n", err)
		os.Exit(1)
	}
	var logits [][][]float64
	if err := json.Unmarshal(data, &logits); err != nil {
		fmt.Fprintf(os.Stderr, "Error: parse logits: %v\n", err)
		os.Exit(1)
	}

	dec := nemo.New(
		nemo.WithBlankID(int32(*blank)),
		nemo.WithInitLength(*initLen),
		nemo.WithConfidence(*confidence),
	)
	results, err := dec.DecodeCTC(logits)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	for b, h := range results {
		labels := make([]string, len(h.YSequence))
		for i, l := range h.YSequence {
			labels[i] = fmt.Sprint(l)
		}
		fmt.Printf("%d\t%s\n", b, strings.Join(labels, " "))

		if *verbose {
			fmt.Fprintf(os.Stderr, "item %d: score %.4f\n", b, h.Score)
			for i, l := range h.YSequence {
				fmt.Fprintf(os.Stderr, "  [frame %d] label %d\n", h.Timesteps[i], l)
			}
		}
		if *confidence {
			for i, c := range h.NonBlankFrameConfidence() {
				fmt.Fprintf(os.Stderr, "  label %d confidence %.4f\n", h.YSequence[i], c)
			}
		}
	}
}

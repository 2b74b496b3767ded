package main

import (
	"flag"
	"fmt"
	"log"

	"solobot/internal/soilgen"
)

func main() {
	var out string
	var perClass int
	var seed uint64
	flag.StringVar(&out, "out", "Solos.csv", "Output CSV path")
	flag.IntVar(&perClass, "samples-per-class", 33334, "Samples to synthesize per fertility class")
	flag.Uint64Var(&seed, "seed", 42, "Random seed for reproducibility")
	flag.Parse()

	rows := soilgen.Generate(soilgen.Config{
		SamplesPerClass: perClass,
		Seed:            seed,
	})
	if err := soilgen.WriteCSV(out, rows); err != nil {
		log.Fatalf("failed to write dataset: %v", err)
	}
	fmt.Printf("Dataset sintético salvo em %s (%d amostras)\n", out, len(rows))
}

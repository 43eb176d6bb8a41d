package model

import (
	"fmt"
	"strings"
)

// Algorithm names a frequent itemset mining strategy.
type Algorithm string

// Supported strategies.
const (
	AlgorithmBruteForce Algorithm = "bruteforce"
	AlgorithmApriori    Algorithm = "apriori"
	AlgorithmFPGrowth   Algorithm = "fpgrowth"
)

// Algorithms lists every strategy in comparison order; brute force comes first as the oracle.
func Algorithms() []Algorithm {
	return []Algorithm{AlgorithmBruteForce, AlgorithmApriori, AlgorithmFPGrowth}
}

// ParseAlgorithm resolves a user-supplied name, accepting a few common spellings.
func ParseAlgorithm(name string) (Algorithm, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "bruteforce", "brute-force", "brute_force", "brute":
		return AlgorithmBruteForce, nil
	case "apriori":
		return AlgorithmApriori, nil
	case "fpgrowth", "fp-growth", "fp_growth":
		return AlgorithmFPGrowth, nil
	default:
		return "", fmt.Errorf("unknown algorithm %q (want bruteforce, apriori or fpgrowth)", name)
	}
}

// DisplayName returns the heading used in reports.
func (a Algorithm) DisplayName() string {
	switch a {
	case AlgorithmBruteForce:
		return "Brute Force"
	case AlgorithmApriori:
		return "Apriori"
	case AlgorithmFPGrowth:
		return "FP-Growth"
	default:
		return string(a)
	}
}

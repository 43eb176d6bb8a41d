package model

import "time"

// Run is the archived outcome of mining one dataset with one strategy.
type Run struct {
	CreatedAt        time.Time
	Dataset          string
	SourcePath       string
	Algorithm        Algorithm
	Itemsets         []FrequentItemset
	Rules            Rules
	MineDuration     time.Duration
	RuleDuration     time.Duration
	MinSupport       float64
	MinConfidence    float64
	ID               int64
	TransactionCount int
}

// NewRun captures a finished result for archiving.
func NewRun(dataset, sourcePath string, algorithm Algorithm, minSupport, minConfidence float64,
	table *FrequentItemsetTable, rules Rules) *Run {
	return &Run{
		Dataset:          dataset,
		SourcePath:       sourcePath,
		Algorithm:        algorithm,
		MinSupport:       minSupport,
		MinConfidence:    minConfidence,
		TransactionCount: table.TransactionCount(),
		Itemsets:         table.Entries(),
		Rules:            rules,
		CreatedAt:        time.Now(),
	}
}

// RunSummary is an archived run without its itemsets and rules.
type RunSummary struct {
	CreatedAt        time.Time
	Dataset          string
	Algorithm        Algorithm
	MinSupport       float64
	MinConfidence    float64
	ID               int64
	TransactionCount int
	ItemsetCount     int
	RuleCount        int
}

// Package testutil provides shared fixtures for package tests.
package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/Veraticus/cooccur/internal/model"
	"github.com/Veraticus/cooccur/internal/storage"
)

// SetupTestDB creates a migrated in-memory archive that is closed when the test ends.
func SetupTestDB(t *testing.T) *storage.SQLiteStorage {
	t.Helper()

	store, err := storage.NewSQLiteStorage(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	if err := store.Migrate(context.Background()); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	t.Cleanup(func() {
		_ = store.Close()
	})

	return store
}

// SampleRun is the archived result of mining the four grocery baskets
// {A,B} {A,B,C} {A} {B,C} at support 0.5 and confidence 0.6.
func SampleRun() *model.Run {
	return &model.Run{
		CreatedAt:        time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
		Dataset:          "Grocery",
		SourcePath:       "data/grocery_transactions.csv",
		Algorithm:        model.AlgorithmBruteForce,
		MinSupport:       0.5,
		MinConfidence:    0.6,
		TransactionCount: 4,
		MineDuration:     1500 * time.Microsecond,
		RuleDuration:     200 * time.Microsecond,
		Itemsets: []model.FrequentItemset{
			{Itemset: model.NewItemset("A"), Support: 0.75},
			{Itemset: model.NewItemset("B"), Support: 0.75},
			{Itemset: model.NewItemset("C"), Support: 0.5},
			{Itemset: model.NewItemset("A", "B"), Support: 0.5},
			{Itemset: model.NewItemset("B", "C"), Support: 0.5},
		},
		Rules: model.Rules{
			{Antecedent: model.NewItemset("C"), Consequent: model.NewItemset("B"), Support: 0.5, Confidence: 1, Lift: 4.0 / 3},
			{Antecedent: model.NewItemset("A"), Consequent: model.NewItemset("B"), Support: 0.5, Confidence: 2.0 / 3, Lift: 8.0 / 9},
			{Antecedent: model.NewItemset("B"), Consequent: model.NewItemset("A"), Support: 0.5, Confidence: 2.0 / 3, Lift: 8.0 / 9},
			{Antecedent: model.NewItemset("B"), Consequent: model.NewItemset("C"), Support: 0.5, Confidence: 2.0 / 3, Lift: 4.0 / 3},
		},
	}
}

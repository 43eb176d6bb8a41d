package mining

import (
	"context"
	"testing"
)

func benchmarkMiner(b *testing.B, m Miner) {
	transactions := randomTransactions(42, 500, 14, 0.3)
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := m.Mine(ctx, transactions, 0.05); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkBruteForce(b *testing.B) { benchmarkMiner(b, &BruteForce{}) }
func BenchmarkApriori(b *testing.B)    { benchmarkMiner(b, &Apriori{}) }
func BenchmarkFPGrowth(b *testing.B)   { benchmarkMiner(b, &FPGrowth{}) }

func BenchmarkGenerateRules(b *testing.B) {
	table, err := (&FPGrowth{}).Mine(context.Background(), randomTransactions(42, 500, 14, 0.3), 0.05)
	if err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, _, err := GenerateRules(table, 0.3); err != nil {
			b.Fatal(err)
		}
	}
}

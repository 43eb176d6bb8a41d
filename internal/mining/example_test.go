package mining_test

import (
	"context"
	"fmt"

	"github.com/Veraticus/cooccur/internal/mining"
	"github.com/Veraticus/cooccur/internal/model"
)

func ExampleGenerateRules() {
	transactions := []model.Transaction{
		model.NewTransaction("1", "A", "B"),
		model.NewTransaction("2", "A", "B", "C"),
		model.NewTransaction("3", "A"),
		model.NewTransaction("4", "B", "C"),
	}

	table, err := (&mining.BruteForce{}).Mine(context.Background(), transactions, 0.5)
	if err != nil {
		fmt.Println(err)
		return
	}

	rules, _, err := mining.GenerateRules(table, 0.6)
	if err != nil {
		fmt.Println(err)
		return
	}

	fmt.Println("Rule 1:", rules.Top())
	// Output: Rule 1: [{'C'}, {'B'}, 1]
}

// Package mining finds frequent itemsets in transaction logs and derives
// association rules from them.
//
// Three strategies share one contract (Miner):
//
//   - BruteForce enumerates every k-combination of the item universe, level by
//     level, and keeps those whose support meets the threshold. It never prunes
//     candidates and stops only when a whole level yields nothing frequent. It is
//     the reference oracle the other strategies are checked against.
//   - Apriori joins frequent (k-1)-itemsets into k-candidates and drops any
//     candidate with an infrequent subset before counting.
//   - FPGrowth compresses the transactions into a prefix tree and mines it through
//     conditional pattern bases without generating candidates.
//
// All strategies return a *model.FrequentItemsetTable whose supports are fractions
// of the full transaction count, so tables from different strategies compare
// exactly. GenerateRules turns any such table into ranked rules.
//
// Support is monotone: if A ⊆ B then support(A) ≥ support(B). The level-wise
// stopping rule of BruteForce and the pruning of Apriori both rely on it.
//
// Mining is single-threaded. Transactions and candidates are encoded as bitsets
// over the sorted item universe, so a support count is a superset test per
// transaction.
package mining

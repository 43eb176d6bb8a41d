package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Veraticus/cooccur/internal/common"
	"github.com/Veraticus/cooccur/internal/model"
)

// RunArchive stores finished runs. Miners never read from it.
type RunArchive interface {
	SaveRun(ctx context.Context, run *model.Run) (int64, error)
	ListRuns(ctx context.Context, limit int) ([]model.RunSummary, error)
	GetRun(ctx context.Context, id int64) (*model.Run, error)
	DeleteRun(ctx context.Context, id int64) error
}

var _ RunArchive = (*SQLiteStorage)(nil)

// SaveRun archives run with its itemsets and rules in one transaction and
// returns the new run id, which is also set on run.
func (s *SQLiteStorage) SaveRun(ctx context.Context, run *model.Run) (int64, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}
	if err := validateRun(run); err != nil {
		return 0, err
	}

	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx, `
		INSERT INTO runs (dataset, source_path, algorithm, min_support, min_confidence,
			transaction_count, mine_ns, rule_ns, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.Dataset, run.SourcePath, string(run.Algorithm), run.MinSupport, run.MinConfidence,
		run.TransactionCount, run.MineDuration.Nanoseconds(), run.RuleDuration.Nanoseconds(),
		run.CreatedAt.UTC())
	if err != nil {
		return 0, fmt.Errorf("failed to insert run: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get run id: %w", err)
	}

	if err := saveItemsetsTx(ctx, tx, id, run.Itemsets); err != nil {
		return 0, err
	}
	if err := saveRulesTx(ctx, tx, id, run.Rules); err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit run: %w", err)
	}

	run.ID = id
	return id, nil
}

func saveItemsetsTx(ctx context.Context, tx *sql.Tx, runID int64, itemsets []model.FrequentItemset) error {
	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO run_itemsets (run_id, position, items, size, support)
		VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare itemset insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for i, fi := range itemsets {
		items, err := encodeItems(fi.Itemset)
		if err != nil {
			return err
		}
		if _, err := stmt.ExecContext(ctx, runID, i, items, fi.Len(), fi.Support); err != nil {
			return fmt.Errorf("failed to insert itemset %d: %w", i, err)
		}
	}
	return nil
}

func saveRulesTx(ctx context.Context, tx *sql.Tx, runID int64, rules model.Rules) error {
	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO run_rules (run_id, position, antecedent, consequent, support, confidence, lift)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare rule insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for i, r := range rules {
		antecedent, err := encodeItems(r.Antecedent)
		if err != nil {
			return err
		}
		consequent, err := encodeItems(r.Consequent)
		if err != nil {
			return err
		}
		if _, err := stmt.ExecContext(ctx, runID, i, antecedent, consequent, r.Support, r.Confidence, r.Lift); err != nil {
			return fmt.Errorf("failed to insert rule %d: %w", i, err)
		}
	}
	return nil
}

// ListRuns returns the most recent runs first. A non-positive limit lists everything.
func (s *SQLiteStorage) ListRuns(ctx context.Context, limit int) ([]model.RunSummary, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = -1
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT r.id, r.dataset, r.algorithm, r.min_support, r.min_confidence,
			r.transaction_count, r.created_at,
			(SELECT COUNT(*) FROM run_itemsets i WHERE i.run_id = r.id),
			(SELECT COUNT(*) FROM run_rules u WHERE u.run_id = r.id)
		FROM runs r
		ORDER BY r.created_at DESC, r.id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var summaries []model.RunSummary
	for rows.Next() {
		var sum model.RunSummary
		var algorithm string
		if err := rows.Scan(&sum.ID, &sum.Dataset, &algorithm, &sum.MinSupport, &sum.MinConfidence,
			&sum.TransactionCount, &sum.CreatedAt, &sum.ItemsetCount, &sum.RuleCount); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		sum.Algorithm = model.Algorithm(algorithm)
		summaries = append(summaries, sum)
	}
	return summaries, rows.Err()
}

// GetRun loads a run with its itemsets and rules in stored order.
func (s *SQLiteStorage) GetRun(ctx context.Context, id int64) (*model.Run, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	run := &model.Run{ID: id}
	var algorithm string
	var mineNS, ruleNS int64
	err := s.db.QueryRowContext(ctx, `
		SELECT dataset, source_path, algorithm, min_support, min_confidence,
			transaction_count, mine_ns, rule_ns, created_at
		FROM runs WHERE id = ?`, id).Scan(
		&run.Dataset, &run.SourcePath, &algorithm, &run.MinSupport, &run.MinConfidence,
		&run.TransactionCount, &mineNS, &ruleNS, &run.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: run %d", common.ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query run: %w", err)
	}
	run.Algorithm = model.Algorithm(algorithm)
	run.MineDuration = time.Duration(mineNS)
	run.RuleDuration = time.Duration(ruleNS)

	if run.Itemsets, err = s.loadItemsets(ctx, id); err != nil {
		return nil, err
	}
	if run.Rules, err = s.loadRules(ctx, id); err != nil {
		return nil, err
	}
	return run, nil
}

func (s *SQLiteStorage) loadItemsets(ctx context.Context, runID int64) ([]model.FrequentItemset, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT items, support FROM run_itemsets WHERE run_id = ? ORDER BY position`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query itemsets: %w", err)
	}
	defer func() { _ = rows.Close() }()

	itemsets := []model.FrequentItemset{}
	for rows.Next() {
		var raw string
		var fi model.FrequentItemset
		if err := rows.Scan(&raw, &fi.Support); err != nil {
			return nil, fmt.Errorf("failed to scan itemset: %w", err)
		}
		if fi.Itemset, err = decodeItems(raw); err != nil {
			return nil, err
		}
		itemsets = append(itemsets, fi)
	}
	return itemsets, rows.Err()
}

func (s *SQLiteStorage) loadRules(ctx context.Context, runID int64) (model.Rules, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT antecedent, consequent, support, confidence, lift
		FROM run_rules WHERE run_id = ? ORDER BY position`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query rules: %w", err)
	}
	defer func() { _ = rows.Close() }()

	rules := model.Rules{}
	for rows.Next() {
		var antecedent, consequent string
		var r model.Rule
		if err := rows.Scan(&antecedent, &consequent, &r.Support, &r.Confidence, &r.Lift); err != nil {
			return nil, fmt.Errorf("failed to scan rule: %w", err)
		}
		if r.Antecedent, err = decodeItems(antecedent); err != nil {
			return nil, err
		}
		if r.Consequent, err = decodeItems(consequent); err != nil {
			return nil, err
		}
		rules = append(rules, r)
	}
	return rules, rows.Err()
}

// DeleteRun removes a run and everything archived with it.
func (s *SQLiteStorage) DeleteRun(ctx context.Context, id int64) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, query := range []string{
		`DELETE FROM run_itemsets WHERE run_id = ?`,
		`DELETE FROM run_rules WHERE run_id = ?`,
	} {
		if _, err := tx.ExecContext(ctx, query, id); err != nil {
			return fmt.Errorf("failed to delete run contents: %w", err)
		}
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM runs WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete run: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check deleted rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: run %d", common.ErrNotFound, id)
	}

	return tx.Commit()
}

func encodeItems(s model.Itemset) (string, error) {
	b, err := json.Marshal(s.Items())
	if err != nil {
		return "", fmt.Errorf("failed to encode itemset: %w", err)
	}
	return string(b), nil
}

func decodeItems(raw string) (model.Itemset, error) {
	var items []string
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return model.Itemset{}, fmt.Errorf("failed to decode itemset %q: %w", raw, err)
	}
	return model.NewItemset(items...), nil
}

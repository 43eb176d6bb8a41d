// Package report renders mining results for the terminal, as JSON or YAML
// documents, and as CSV files on disk.
package report

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/Veraticus/cooccur/internal/cli"
	"github.com/Veraticus/cooccur/internal/compare"
	"github.com/Veraticus/cooccur/internal/filter"
	"github.com/Veraticus/cooccur/internal/model"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// Messages printed in place of empty sections.
const (
	NoItemsetsMessage = "(no frequent itemsets)"
	NoRulesMessage    = "No association rules at these thresholds."
)

// DefaultTop is the number of itemsets shown per table.
const DefaultTop = 20

// Printer writes human-readable sections to a terminal.
type Printer struct {
	w      io.Writer
	filter *filter.RuleFilter
	top    int
}

// NewPrinter creates a printer showing at most top itemsets per table. Rules
// are narrowed by f before the top rule is picked; f may be nil.
func NewPrinter(w io.Writer, top int, f *filter.RuleFilter) *Printer {
	if top <= 0 {
		top = DefaultTop
	}
	return &Printer{w: w, top: top, filter: f}
}

// PrintResult prints the itemset table and the top rule of one strategy.
func (p *Printer) PrintResult(res compare.Result) error {
	name := res.Algorithm.DisplayName()

	rules, err := p.filter.Apply(res.Rules)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintf(p.w, "\n%s\n%s\n\n%s\n%s\n",
		cli.TitleStyle.UnsetMargins().Render("== "+name+" Frequent Itemsets =="),
		ItemsetTable(res.Table.TopN(p.top)),
		cli.TitleStyle.UnsetMargins().Render("== "+name+" Association Rule =="),
		RuleLine(rules))
	if err != nil {
		return err
	}

	if skipped := res.Stats.Skipped(); skipped > 0 {
		_, err = fmt.Fprintln(p.w, cli.FormatWarning(fmt.Sprintf("%d rule candidates skipped (missing or inconsistent subset support)", skipped)))
	}
	return err
}

// PrintReport prints every strategy, the timing table, agreement with brute
// force and a hint when nothing was found.
func (p *Printer) PrintReport(r *compare.Report) error {
	if _, err := fmt.Fprintf(p.w, "\nParameters → min_support = %v, min_confidence = %v\n",
		r.MinSupport, r.MinConfidence); err != nil {
		return err
	}

	for _, res := range r.Results {
		if err := p.PrintResult(res); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintf(p.w, "\n%s\n%s\n", cli.BoldStyle.Render(cli.TimerIcon+" Timings"), TimingTable(r)); err != nil {
		return err
	}

	agreements := r.Agreements()
	for _, res := range r.Results {
		d, ok := agreements[res.Algorithm]
		if !ok {
			continue
		}
		line := fmt.Sprintf("%s %s", res.Algorithm.DisplayName(), d)
		if d.Agrees() {
			line = cli.FormatSuccess(line)
		} else {
			line = cli.FormatError(line)
		}
		if _, err := fmt.Fprintln(p.w, line); err != nil {
			return err
		}
	}

	if hint := r.Hint(); hint != "" {
		if _, err := fmt.Fprintf(p.w, "\n%s\n", cli.FormatHint(hint)); err != nil {
			return err
		}
	}
	return nil
}

// ItemsetTable renders entries as an itemset/support table.
func ItemsetTable(entries []model.FrequentItemset) string {
	if len(entries) == 0 {
		return NoItemsetsMessage
	}

	rows := make([][]string, 0, len(entries))
	for _, fi := range entries {
		rows = append(rows, []string{fi.Itemset.String(), formatFloat(fi.Support)})
	}
	return newTable("itemset", "support").Rows(rows...).Render()
}

// RulesTable renders rules with their metrics.
func RulesTable(rules model.Rules) string {
	if len(rules) == 0 {
		return NoRulesMessage
	}

	rows := make([][]string, 0, len(rules))
	for _, r := range rules {
		rows = append(rows, []string{
			r.Antecedent.String(),
			r.Consequent.String(),
			formatFloat(r.Support),
			formatFloat(r.Confidence),
			formatFloat(r.Lift),
		})
	}
	return newTable("antecedent", "consequent", "support", "confidence", "lift").Rows(rows...).Render()
}

// RuleLine shows the strongest rule as "Rule 1: [{'A'}, {'B'}, conf]".
func RuleLine(rules model.Rules) string {
	top := rules.Top()
	if top == nil {
		return NoRulesMessage
	}
	return "Rule 1: " + top.String()
}

// TimingTable summarises counts and durations per strategy.
func TimingTable(r *compare.Report) string {
	rows := make([][]string, 0, len(r.Results))
	for _, res := range r.Results {
		rows = append(rows, []string{
			res.Algorithm.DisplayName(),
			strconv.Itoa(res.Table.Len()),
			strconv.Itoa(len(res.Rules)),
			formatDuration(res.MineDuration),
			formatDuration(res.RuleDuration),
		})
	}
	return newTable("algorithm", "itemsets", "rules", "mining", "rule generation").Rows(rows...).Render()
}

// HistoryTable lists archived runs, newest first.
func HistoryTable(runs []model.RunSummary) string {
	if len(runs) == 0 {
		return "(no archived runs)"
	}

	rows := make([][]string, 0, len(runs))
	for _, r := range runs {
		rows = append(rows, []string{
			strconv.FormatInt(r.ID, 10),
			r.CreatedAt.Local().Format("2006-01-02 15:04"),
			r.Dataset,
			r.Algorithm.DisplayName(),
			formatFloat(r.MinSupport),
			formatFloat(r.MinConfidence),
			strconv.Itoa(r.TransactionCount),
			strconv.Itoa(r.ItemsetCount),
			strconv.Itoa(r.RuleCount),
		})
	}
	return newTable("id", "created", "dataset", "algorithm", "min support", "min confidence",
		"transactions", "itemsets", "rules").Rows(rows...).Render()
}

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(cli.SubtleStyle).
		Headers(headers...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return cli.BoldStyle.Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		})
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func formatDuration(d time.Duration) string {
	if d < time.Millisecond {
		return d.Round(time.Microsecond).String()
	}
	return d.Round(100 * time.Microsecond).String()
}

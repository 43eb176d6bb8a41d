// Package ofx turns OFX/QFX bank and credit card statements into baskets of merchants.
package ofx

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/aclindsa/ofxgo"
	"github.com/Veraticus/cooccur/internal/model"
)

var (
	severityRegex = regexp.MustCompile(`(?i)<SEVERITY>(Info|Warn|Error)</SEVERITY>`)
	tagFixRegex   = regexp.MustCompile(`(?m)^(\s*<[A-Z][A-Z0-9._]*[A-Z0-9])$`)
)

// Parser groups statement lines into one basket per account and posting day.
type Parser struct{}

// NewParser creates a new OFX parser.
func NewParser() *Parser {
	return &Parser{}
}

// line is a single statement entry before grouping.
type line struct {
	posted   time.Time
	account  string
	merchant string
}

// preprocessOFX fixes common formatting issues in OFX files.
func (p *Parser) preprocessOFX(content string) string {
	content = strings.TrimLeft(content, " \t\r\n")

	// SEVERITY must be upper case.
	content = severityRegex.ReplaceAllStringFunc(content, strings.ToUpper)

	// SGML exports sometimes drop the closing bracket of a bare opening tag.
	return tagFixRegex.ReplaceAllString(content, "$1>")
}

// ParseFile parses an OFX/QFX document and returns its baskets, ordered by
// posting day then account.
func (p *Parser) ParseFile(ctx context.Context, reader io.Reader) ([]model.Transaction, error) {
	content, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read OFX file: %w", err)
	}

	resp, err := ofxgo.ParseResponse(strings.NewReader(p.preprocessOFX(string(content))))
	if err != nil {
		return nil, fmt.Errorf("failed to parse OFX file: %w", err)
	}

	var lines []line
	var bankStmts, ccStmts int

	for _, msg := range resp.Bank {
		if stmt, ok := msg.(*ofxgo.StatementResponse); ok {
			bankStmts++
			lines = append(lines, p.statementLines(string(stmt.BankAcctFrom.AcctID), stmt.BankTranList)...)
		}
	}

	for _, msg := range resp.CreditCard {
		if stmt, ok := msg.(*ofxgo.CCStatementResponse); ok {
			ccStmts++
			lines = append(lines, p.statementLines(string(stmt.CCAcctFrom.AcctID), stmt.BankTranList)...)
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	baskets := groupBaskets(lines)

	slog.Info("Parsed OFX file",
		"statement_lines", len(lines),
		"baskets", len(baskets),
		"bank_statements", bankStmts,
		"cc_statements", ccStmts)

	return baskets, nil
}

func (p *Parser) statementLines(account string, list *ofxgo.TransactionList) []line {
	if list == nil {
		return nil
	}

	lines := make([]line, 0, len(list.Transactions))
	for _, tx := range list.Transactions {
		merchant := p.extractMerchantName(tx)
		if merchant == "" {
			slog.Debug("Skipping statement line without merchant", "fitid", string(tx.FiTID), "account", account)
			continue
		}
		lines = append(lines, line{
			account:  account,
			posted:   tx.DtPosted.Time,
			merchant: merchant,
		})
	}
	return lines
}

func groupBaskets(lines []line) []model.Transaction {
	type basketKey struct {
		day     string
		account string
	}

	items := make(map[basketKey][]string)
	var keys []basketKey
	for _, l := range lines {
		k := basketKey{day: l.posted.UTC().Format("2006-01-02"), account: l.account}
		if _, seen := items[k]; !seen {
			keys = append(keys, k)
		}
		items[k] = append(items[k], l.merchant)
	}

	sort.Slice(keys, func(i, j int) bool {
		if keys[i].day != keys[j].day {
			return keys[i].day < keys[j].day
		}
		return keys[i].account < keys[j].account
	})

	baskets := make([]model.Transaction, 0, len(keys))
	for _, k := range keys {
		baskets = append(baskets, model.NewTransaction(k.account+"/"+k.day, items[k]...))
	}
	return baskets
}

// extractMerchantName tries to get a clean merchant name from OFX data.
func (p *Parser) extractMerchantName(tx ofxgo.Transaction) string {
	// PAYEE is the cleanest source when present.
	if tx.Payee != nil && tx.Payee.Name != "" {
		return strings.TrimSpace(string(tx.Payee.Name))
	}

	name := string(tx.Name)

	if tx.Memo != "" && isGenericDescription(name) {
		name = string(tx.Memo)
	}

	name = strings.TrimSpace(name)

	prefixes := []string{
		"POS PURCHASE ",
		"PURCHASE AUTHORIZED ON ",
		"DEBIT CARD PURCHASE ",
		"ACH DEBIT ",
		"CHECK CARD ",
		"VISA PURCHASE ",
		"MC PURCHASE ",
		"DEBIT PURCHASE ",
	}

	for _, prefix := range prefixes {
		if strings.HasPrefix(strings.ToUpper(name), prefix) {
			name = name[len(prefix):]
			break
		}
	}

	// Leading "MM/DD " date stamps.
	if len(name) > 5 && name[2] == '/' && name[5] == ' ' {
		name = strings.TrimSpace(name[6:])
	}

	return name
}

// isGenericDescription checks if a transaction name is too generic.
func isGenericDescription(name string) bool {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "DEBIT", "CREDIT", "PURCHASE", "PAYMENT", "POS TRANSACTION", "CARD PURCHASE", "":
		return true
	}
	return false
}

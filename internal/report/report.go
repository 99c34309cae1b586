// Package report renders read-only views over the cooperative's query
// surface: summary statistics, member listings and above-threshold account
// listings. It holds no business rules of its own.
package report

import (
	"fmt"
	"io"
	"sort"

	"github.com/shopspring/decimal"

	"coopops/internal/coop"
)

// Summary aggregates the cooperative-wide balance statistics.
type Summary struct {
	CooperativeName string          `json:"cooperative_name"`
	TaxID           string          `json:"tax_id"`
	MemberCount     int             `json:"member_count"`
	AccountCount    int             `json:"account_count"`
	TotalBalance    decimal.Decimal `json:"total_balance"`
	AverageBalance  decimal.Decimal `json:"average_balance"`
	MaxBalance      decimal.Decimal `json:"max_balance"`
	MinBalance      decimal.Decimal `json:"min_balance"`
}

// Summarize computes the statistics block over all registered accounts.
// With no accounts, the average, max and min are zero.
func Summarize(c *coop.Cooperative) Summary {
	s := Summary{
		CooperativeName: c.Name(),
		TaxID:           c.TaxID(),
		MemberCount:     c.MemberCount(),
	}
	accounts := c.Accounts()
	s.AccountCount = len(accounts)
	for i, account := range accounts {
		balance := account.Balance()
		s.TotalBalance = s.TotalBalance.Add(balance)
		if i == 0 {
			s.MaxBalance = balance
			s.MinBalance = balance
			continue
		}
		if balance.GreaterThan(s.MaxBalance) {
			s.MaxBalance = balance
		}
		if balance.LessThan(s.MinBalance) {
			s.MinBalance = balance
		}
	}
	if s.AccountCount > 0 {
		s.AverageBalance = s.TotalBalance.Div(decimal.NewFromInt(int64(s.AccountCount)))
	}
	return s
}

// MemberNames returns registered member names sorted alphabetically.
func MemberNames(c *coop.Cooperative) []string {
	members := c.Members()
	names := make([]string, 0, len(members))
	for _, member := range members {
		names = append(names, member.FullName())
	}
	sort.Strings(names)
	return names
}

// AccountLine is one row of the above-threshold listing.
type AccountLine struct {
	Number  string          `json:"number"`
	Balance decimal.Decimal `json:"balance"`
	Owner   string          `json:"owner"`
}

// AccountsAbove lists accounts with balance over threshold, highest first,
// with each owner resolved through the member registry.
func AccountsAbove(c *coop.Cooperative, threshold decimal.Decimal) []AccountLine {
	accounts := c.AccountsAboveBalance(threshold)
	lines := make([]AccountLine, 0, len(accounts))
	for _, account := range accounts {
		owner := "owner not found"
		if member, ok := c.OwnerOf(account.Number()); ok {
			owner = member.FullName()
		}
		lines = append(lines, AccountLine{
			Number:  account.Number(),
			Balance: account.Balance(),
			Owner:   owner,
		})
	}
	return lines
}

// Render writes the full cooperative report to w: statistics, the member
// roster, and the accounts above threshold with their owners.
func Render(w io.Writer, c *coop.Cooperative, threshold decimal.Decimal) {
	s := Summarize(c)
	fmt.Fprintf(w, "=== COOPERATIVE REPORT: %s (tax id %s) ===\n", s.CooperativeName, s.TaxID)
	fmt.Fprintf(w, "Members: %d\n", s.MemberCount)
	fmt.Fprintf(w, "Accounts: %d\n", s.AccountCount)
	fmt.Fprintf(w, "Total balance: %s\n", s.TotalBalance)
	fmt.Fprintf(w, "Average balance: %s\n", s.AverageBalance)
	fmt.Fprintf(w, "Max balance: %s\n", s.MaxBalance)
	fmt.Fprintf(w, "Min balance: %s\n", s.MinBalance)

	fmt.Fprintln(w, "\nRegistered members:")
	for _, name := range MemberNames(c) {
		fmt.Fprintf(w, "  - %s\n", name)
	}

	fmt.Fprintf(w, "\nAccounts with balance over %s:\n", threshold)
	for _, line := range AccountsAbove(c, threshold) {
		fmt.Fprintf(w, "  - %s: %s (owner: %s)\n", line.Number, line.Balance, line.Owner)
	}
}

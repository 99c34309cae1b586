package coop

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"coopops/internal/logging"
)

// Cooperative is the aggregate root. It owns the authoritative, append-only
// registries of members and accounts: an ordered slice for enumeration plus a
// keyed index for O(1) lookup, per entity. An RWMutex keeps the registries
// safe for concurrent readers with serialized writers; it does not make a
// register-member-then-register-account sequence transactional.
type Cooperative struct {
	name  string
	taxID string

	mu               sync.RWMutex
	members          []*Member
	accounts         []Account
	membersByID      map[string]*Member
	accountsByNumber map[string]Account
}

// New creates a cooperative with its name and tax id. There are no deletion
// operations; registries only grow.
func New(name, taxID string) (*Cooperative, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: cooperative name must not be empty", ErrInvalidArgument)
	}
	if strings.TrimSpace(taxID) == "" {
		return nil, fmt.Errorf("%w: cooperative tax id must not be empty", ErrInvalidArgument)
	}
	logging.L().Info("cooperative created", zap.String("name", name), zap.String("tax_id", taxID))
	return &Cooperative{
		name:             name,
		taxID:            taxID,
		membersByID:      make(map[string]*Member),
		accountsByNumber: make(map[string]Account),
	}, nil
}

func (c *Cooperative) Name() string  { return c.name }
func (c *Cooperative) TaxID() string { return c.taxID }

// RegisterMember adds a member to both the ordered list and the id index,
// rejecting an id number that is already present.
func (c *Cooperative) RegisterMember(member *Member) error {
	if member == nil {
		return fmt.Errorf("%w: member must not be nil", ErrInvalidArgument)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.membersByID[member.IDNumber()]; exists {
		return fmt.Errorf("%w: id number %s", ErrDuplicateMember, member.IDNumber())
	}
	c.members = append(c.members, member)
	c.membersByID[member.IDNumber()] = member
	logging.L().Info("member registered",
		zap.String("name", member.FullName()),
		zap.String("id_number", member.IDNumber()))
	return nil
}

// RegisterAccount adds an account to the cooperative-wide registry. This is a
// separate uniqueness domain from Member.AddAccount: callers perform both
// registrations and handle both failure kinds.
func (c *Cooperative) RegisterAccount(account Account) error {
	if account == nil {
		return fmt.Errorf("%w: account must not be nil", ErrInvalidArgument)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.accountsByNumber[account.Number()]; exists {
		return fmt.Errorf("%w: number %s", ErrDuplicateAccount, account.Number())
	}
	c.accounts = append(c.accounts, account)
	c.accountsByNumber[account.Number()] = account
	logging.L().Info("account registered", zap.String("number", account.Number()))
	return nil
}

// FindMemberByID looks a member up by id number. Absence is an absent result,
// not an error.
func (c *Cooperative) FindMemberByID(idNumber string) (*Member, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	member, ok := c.membersByID[idNumber]
	return member, ok
}

// FindAccountByNumber looks an account up by number.
func (c *Cooperative) FindAccountByNumber(number string) (Account, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	account, ok := c.accountsByNumber[number]
	return account, ok
}

// Members returns registered members in registration order.
func (c *Cooperative) Members() []*Member {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]*Member, len(c.members))
	copy(out, c.members)
	return out
}

// Accounts returns registered accounts in registration order.
func (c *Cooperative) Accounts() []Account {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]Account, len(c.accounts))
	copy(out, c.accounts)
	return out
}

func (c *Cooperative) MemberCount() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.members)
}

func (c *Cooperative) AccountCount() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.accounts)
}

// AccountsAboveBalance returns accounts with balance strictly greater than
// threshold, ordered by balance descending; ties keep registration order.
func (c *Cooperative) AccountsAboveBalance(threshold decimal.Decimal) []Account {
	var matched []Account
	for _, account := range c.Accounts() {
		if account.Balance().GreaterThan(threshold) {
			matched = append(matched, account)
		}
	}
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].Balance().GreaterThan(matched[j].Balance())
	})
	return matched
}

// TotalBalance sums the balances of every registered account.
func (c *Cooperative) TotalBalance() decimal.Decimal {
	total := decimal.Zero
	for _, account := range c.Accounts() {
		total = total.Add(account.Balance())
	}
	return total
}

// ApplyInterestToSavings runs one interest step on every savings account,
// leaving other variants untouched, and returns the number affected.
func (c *Cooperative) ApplyInterestToSavings() int {
	affected := 0
	for _, account := range c.Accounts() {
		savings, ok := account.(*SavingsAccount)
		if !ok {
			continue
		}
		prior := savings.Balance()
		savings.ApplyInterest()
		affected++
		logging.L().Info("interest applied",
			zap.String("account", savings.Number()),
			zap.String("rate", savings.InterestRate().String()),
			zap.String("prior_balance", prior.String()),
			zap.String("new_balance", savings.Balance().String()))
	}
	return affected
}

// OwnerOf resolves which member holds the given account number. The
// cooperative registry holds accounts for lookup; ownership itself lives on
// the member, so this scans members.
func (c *Cooperative) OwnerOf(accountNumber string) (*Member, bool) {
	for _, member := range c.Members() {
		if member.HoldsAccount(accountNumber) {
			return member, true
		}
	}
	return nil, false
}

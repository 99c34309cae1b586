package coop

import (
	"fmt"
	"strings"
	"sync"

	"github.com/shopspring/decimal"
)

// Member is a cooperative participant owning a collection of accounts.
// Identity is the id number. The member-scope duplicate check is independent
// from the cooperative-wide one: an account may pass here and still be
// rejected at registration if another member took the number first.
type Member struct {
	fullName string
	idNumber string

	mu       sync.Mutex
	accounts []Account
}

// NewMember creates a member with a non-empty name and id number.
func NewMember(fullName, idNumber string) (*Member, error) {
	if strings.TrimSpace(fullName) == "" {
		return nil, fmt.Errorf("%w: member name must not be empty", ErrInvalidArgument)
	}
	if strings.TrimSpace(idNumber) == "" {
		return nil, fmt.Errorf("%w: member id number must not be empty", ErrInvalidArgument)
	}
	return &Member{fullName: fullName, idNumber: idNumber}, nil
}

func (m *Member) FullName() string { return m.fullName }
func (m *Member) IDNumber() string { return m.idNumber }

// AddAccount attaches an account to this member, rejecting a number the
// member already holds. Only this member's accounts are scanned.
func (m *Member) AddAccount(account Account) error {
	if account == nil {
		return fmt.Errorf("%w: account must not be nil", ErrInvalidArgument)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, owned := range m.accounts {
		if owned.Number() == account.Number() {
			return fmt.Errorf("%w: member %s already holds account %s",
				ErrDuplicateAccount, m.idNumber, account.Number())
		}
	}
	m.accounts = append(m.accounts, account)
	return nil
}

// Accounts returns the owned accounts in attachment order.
func (m *Member) Accounts() []Account {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Account, len(m.accounts))
	copy(out, m.accounts)
	return out
}

// AccountCount reports how many accounts the member holds.
func (m *Member) AccountCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.accounts)
}

// HoldsAccount reports whether the member owns the given account number.
func (m *Member) HoldsAccount(number string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, owned := range m.accounts {
		if owned.Number() == number {
			return true
		}
	}
	return false
}

// TotalBalance sums the balances of all owned accounts. Pure query.
func (m *Member) TotalBalance() decimal.Decimal {
	total := decimal.Zero
	for _, account := range m.Accounts() {
		total = total.Add(account.Balance())
	}
	return total
}

// Equal reports whether other is the same member, by id number.
func (m *Member) Equal(other *Member) bool {
	return other != nil && m.idNumber == other.idNumber
}

func (m *Member) String() string {
	return fmt.Sprintf("member %s (id %s, %d accounts)", m.fullName, m.idNumber, m.AccountCount())
}

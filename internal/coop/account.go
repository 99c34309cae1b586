// Package coop implements the cooperative's account and transaction engine:
// the account variants with their balance rules, the single-use transaction
// commands that mutate them, and the member/cooperative registries that
// enforce identity uniqueness.
package coop

import (
	"fmt"
	"strings"
	"sync"

	"github.com/shopspring/decimal"
)

var (
	// managementFee is the flat fee deducted by ApplyFee when covered.
	managementFee = decimal.NewFromInt(5000)

	// savingsMinimumBalance is the floor a savings withdrawal must respect.
	savingsMinimumBalance = decimal.NewFromInt(50000)
)

// Account is the capability set shared by every account variant. Balances are
// mutated only through Deposit, Withdraw and ApplyFee, and stay non-negative
// after any successful operation. Identity is the account number: two accounts
// are the same account iff their numbers match.
type Account interface {
	Number() string
	Balance() decimal.Decimal
	Deposit(amount decimal.Decimal) error
	Withdraw(amount decimal.Decimal) error
	// ApplyFee deducts the flat management fee when the balance covers it and
	// reports whether it was charged. It never drives the balance negative.
	ApplyFee() bool
}

// BaseAccount is the plain account variant. A mutex serializes mutations so a
// single account is safe under concurrent deposits and withdrawals; cross-
// account sequences are not transactional.
type BaseAccount struct {
	mu      sync.Mutex
	number  string
	balance decimal.Decimal
}

// NewBaseAccount creates an account with the given number and initial balance.
func NewBaseAccount(number string, initialBalance decimal.Decimal) (*BaseAccount, error) {
	if err := validateAccountFields(number, initialBalance); err != nil {
		return nil, err
	}
	return &BaseAccount{number: number, balance: initialBalance}, nil
}

func validateAccountFields(number string, initialBalance decimal.Decimal) error {
	if strings.TrimSpace(number) == "" {
		return fmt.Errorf("%w: account number must not be empty", ErrInvalidArgument)
	}
	if initialBalance.IsNegative() {
		return fmt.Errorf("%w: initial balance %s is negative", ErrInvalidArgument, initialBalance)
	}
	return nil
}

func (a *BaseAccount) Number() string {
	return a.number
}

func (a *BaseAccount) Balance() decimal.Decimal {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.balance
}

// Deposit increases the balance by amount. Any positive amount succeeds.
func (a *BaseAccount) Deposit(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return fmt.Errorf("%w: deposit of %s", ErrInvalidAmount, amount)
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	a.balance = a.balance.Add(amount)
	return nil
}

// Withdraw decreases the balance by amount, rejecting amounts the balance
// cannot cover.
func (a *BaseAccount) Withdraw(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return fmt.Errorf("%w: withdrawal of %s", ErrInvalidAmount, amount)
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.withdrawLocked(amount)
}

// withdrawLocked holds the base sufficiency rule. Callers hold a.mu.
func (a *BaseAccount) withdrawLocked(amount decimal.Decimal) error {
	if a.balance.LessThan(amount) {
		return fmt.Errorf("%w: balance %s, requested %s", ErrInsufficientFunds, a.balance, amount)
	}
	a.balance = a.balance.Sub(amount)
	return nil
}

func (a *BaseAccount) ApplyFee() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.balance.LessThan(managementFee) {
		return false
	}
	a.balance = a.balance.Sub(managementFee)
	return true
}

// Equal reports whether other designates the same account, by number.
// Balance and variant do not participate in identity.
func (a *BaseAccount) Equal(other Account) bool {
	return other != nil && a.number == other.Number()
}

func (a *BaseAccount) String() string {
	return fmt.Sprintf("account %s (balance %s)", a.number, a.Balance())
}

// SavingsAccount accrues interest and enforces a minimum residual balance on
// withdrawals. It shares the base deposit and fee rules.
type SavingsAccount struct {
	BaseAccount
	interestRate decimal.Decimal
}

// NewSavingsAccount creates a savings account. The interest rate is a fraction
// in [0, 1] and is immutable.
func NewSavingsAccount(number string, initialBalance, interestRate decimal.Decimal) (*SavingsAccount, error) {
	if err := validateAccountFields(number, initialBalance); err != nil {
		return nil, err
	}
	if interestRate.IsNegative() || interestRate.GreaterThan(decimal.NewFromInt(1)) {
		return nil, fmt.Errorf("%w: interest rate %s outside [0, 1]", ErrInvalidArgument, interestRate)
	}
	s := &SavingsAccount{interestRate: interestRate}
	s.number = number
	s.balance = initialBalance
	return s, nil
}

func (s *SavingsAccount) InterestRate() decimal.Decimal {
	return s.interestRate
}

// Withdraw enforces the minimum-balance floor before the base sufficiency
// rule runs, so the stricter rule dominates. On rejection the balance is
// unchanged.
func (s *SavingsAccount) Withdraw(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return fmt.Errorf("%w: withdrawal of %s", ErrInvalidAmount, amount)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.balance.Sub(amount).LessThan(savingsMinimumBalance) {
		return fmt.Errorf("%w: minimum %s, balance %s, requested %s",
			ErrBelowMinimumBalance, savingsMinimumBalance, s.balance, amount)
	}
	return s.withdrawLocked(amount)
}

// ApplyInterest compounds one interest step: balance *= (1 + rate). Calling it
// twice compounds twice; accrual is time-step based, not idempotent. Returns
// the interest credited.
func (s *SavingsAccount) ApplyInterest() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	interest := s.balance.Mul(s.interestRate)
	s.balance = s.balance.Add(interest)
	return interest
}

func (s *SavingsAccount) String() string {
	return fmt.Sprintf("savings account %s (balance %s, rate %s)", s.number, s.Balance(), s.interestRate)
}

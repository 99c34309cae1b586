package coop

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"coopops/internal/logging"
)

var transactionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "coopops_transactions_total",
	Help: "Transaction executions by type and outcome",
}, []string{"type", "status"})

// Transaction is a single-use command against one account. It is validated at
// construction and applies its effect when executed. Execution is not
// idempotent: calling Execute twice applies the effect twice, and re-execution
// is an explicit caller choice.
type Transaction interface {
	ID() string
	Type() string
	Amount() decimal.Decimal
	Account() Account
	Execute() error
}

// transactionBase carries the fields shared by both command variants.
type transactionBase struct {
	id         string
	account    Account
	amount     decimal.Decimal
	executions int
}

func newTransactionBase(account Account, amount decimal.Decimal, kind string) (transactionBase, error) {
	if account == nil {
		return transactionBase{}, fmt.Errorf("%w: %s needs an account", ErrInvalidArgument, kind)
	}
	if !amount.IsPositive() {
		return transactionBase{}, fmt.Errorf("%w: %s of %s", ErrInvalidAmount, kind, amount)
	}
	return transactionBase{id: uuid.NewString(), account: account, amount: amount}, nil
}

func (t *transactionBase) ID() string              { return t.id }
func (t *transactionBase) Amount() decimal.Decimal { return t.amount }
func (t *transactionBase) Account() Account        { return t.account }

// Executions reports how many times the command has been applied. Bookkeeping
// only; it does not prevent re-execution.
func (t *transactionBase) Executions() int { return t.executions }

// Deposit increases an account's balance by a positive amount.
type Deposit struct {
	transactionBase
}

// NewDeposit validates and builds a deposit command. No command is produced
// for a nil account or a non-positive amount.
func NewDeposit(account Account, amount decimal.Decimal) (*Deposit, error) {
	base, err := newTransactionBase(account, amount, "deposit")
	if err != nil {
		return nil, err
	}
	return &Deposit{transactionBase: base}, nil
}

func (d *Deposit) Type() string { return "deposit" }

// Execute delegates to the account's deposit primitive. An account failure is
// wrapped with the transaction context, keeping the original cause in the
// chain; there is no partial effect.
func (d *Deposit) Execute() error {
	prior := d.account.Balance()
	if err := d.account.Deposit(d.amount); err != nil {
		transactionsTotal.WithLabelValues("deposit", "rejected").Inc()
		logging.L().Warn("deposit rejected",
			zap.String("transaction_id", d.id),
			zap.String("account", d.account.Number()),
			zap.String("amount", d.amount.String()),
			zap.Error(err))
		return fmt.Errorf("deposit %s on account %s: %w", d.id, d.account.Number(), err)
	}
	d.executions++
	transactionsTotal.WithLabelValues("deposit", "ok").Inc()
	logging.L().Info("deposit executed",
		zap.String("transaction_id", d.id),
		zap.String("account", d.account.Number()),
		zap.String("amount", d.amount.String()),
		zap.String("prior_balance", prior.String()),
		zap.String("new_balance", d.account.Balance().String()))
	return nil
}

// Withdrawal decreases an account's balance by a positive amount, subject to
// the account's own rules.
type Withdrawal struct {
	transactionBase
}

// NewWithdrawal validates and builds a withdrawal command.
func NewWithdrawal(account Account, amount decimal.Decimal) (*Withdrawal, error) {
	base, err := newTransactionBase(account, amount, "withdrawal")
	if err != nil {
		return nil, err
	}
	return &Withdrawal{transactionBase: base}, nil
}

func (w *Withdrawal) Type() string { return "withdrawal" }

// Execute re-checks balance sufficiency at the command level before delegating
// to the account, so the caller gets a message carrying the current balance
// and requested amount. The account's own rejections (minimum-balance rule
// included) propagate unchanged.
func (w *Withdrawal) Execute() error {
	prior := w.account.Balance()
	if prior.LessThan(w.amount) {
		err := fmt.Errorf("%w: balance %s, requested %s", ErrInsufficientFunds, prior, w.amount)
		transactionsTotal.WithLabelValues("withdrawal", "rejected").Inc()
		logging.L().Warn("withdrawal rejected",
			zap.String("transaction_id", w.id),
			zap.String("account", w.account.Number()),
			zap.String("amount", w.amount.String()),
			zap.Error(err))
		return err
	}
	if err := w.account.Withdraw(w.amount); err != nil {
		transactionsTotal.WithLabelValues("withdrawal", "rejected").Inc()
		logging.L().Warn("withdrawal rejected",
			zap.String("transaction_id", w.id),
			zap.String("account", w.account.Number()),
			zap.String("amount", w.amount.String()),
			zap.Error(err))
		return err
	}
	w.executions++
	transactionsTotal.WithLabelValues("withdrawal", "ok").Inc()
	logging.L().Info("withdrawal executed",
		zap.String("transaction_id", w.id),
		zap.String("account", w.account.Number()),
		zap.String("amount", w.amount.String()),
		zap.String("prior_balance", prior.String()),
		zap.String("new_balance", w.account.Balance().String()))
	return nil
}

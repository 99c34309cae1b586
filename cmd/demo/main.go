// Command demo seeds a cooperative with sample members and savings accounts,
// runs a couple of withdrawals and an interest sweep, probes the duplicate
// checks, and prints the full report.
package main

import (
	"log"
	"os"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"coopops/internal/coop"
	"coopops/internal/logging"
	"coopops/internal/report"
)

const reportThreshold = 500000

func main() {
	logger, err := logging.NewLoggerFromEnv()
	if err != nil {
		log.Fatalf("Unable to build logger: %v", err)
	}
	defer logger.Sync()
	logging.SetGlobal(logger)

	cooperative, err := coop.New("Cooperativa Central", "900123456-7")
	if err != nil {
		logger.Fatal("cooperative setup failed", zap.Error(err))
	}

	seedAccounts(cooperative, logger)
	runWithdrawals(cooperative, logger)

	affected := cooperative.ApplyInterestToSavings()
	logger.Info("interest sweep finished", zap.Int("accounts_affected", affected))

	probeDuplicateAccount(cooperative, logger)

	report.Render(os.Stdout, cooperative, decimal.NewFromInt(reportThreshold))
}

func seedAccounts(cooperative *coop.Cooperative, logger *logging.Logger) {
	seeds := []struct {
		name     string
		idNumber string
		rate     float64
		number   string
		deposit  int64
	}{
		{"Ana Gómez", "1001", 0.02, "AH-1001-1", 600000},
		{"Carlos Pérez", "1002", 0.03, "AH-1002-1", 200000},
		{"María López", "1003", 0.015, "AH-1003-1", 800000},
		{"Carlos Pérez", "1002", 0.03, "AH-1002-2", 400000},
	}

	for _, seed := range seeds {
		member, ok := cooperative.FindMemberByID(seed.idNumber)
		if !ok {
			var err error
			member, err = coop.NewMember(seed.name, seed.idNumber)
			if err != nil {
				logger.Warn("skipping member", zap.String("name", seed.name), zap.Error(err))
				continue
			}
			if err := cooperative.RegisterMember(member); err != nil {
				logger.Warn("skipping member", zap.String("name", seed.name), zap.Error(err))
				continue
			}
		}

		account, err := coop.NewSavingsAccount(seed.number,
			decimal.NewFromInt(seed.deposit), decimal.NewFromFloat(seed.rate))
		if err != nil {
			logger.Warn("skipping account", zap.String("number", seed.number), zap.Error(err))
			continue
		}
		if err := member.AddAccount(account); err != nil {
			logger.Warn("skipping account", zap.String("number", seed.number), zap.Error(err))
			continue
		}
		if err := cooperative.RegisterAccount(account); err != nil {
			logger.Warn("skipping account", zap.String("number", seed.number), zap.Error(err))
		}
	}
}

func runWithdrawals(cooperative *coop.Cooperative, logger *logging.Logger) {
	withdrawals := []struct {
		number string
		amount int64
	}{
		{"AH-1002-1", 50000},
		{"AH-1001-1", 100000},
	}

	for _, req := range withdrawals {
		account, ok := cooperative.FindAccountByNumber(req.number)
		if !ok {
			logger.Warn("account not found", zap.String("number", req.number))
			continue
		}
		tx, err := coop.NewWithdrawal(account, decimal.NewFromInt(req.amount))
		if err != nil {
			logger.Warn("withdrawal not built", zap.String("number", req.number), zap.Error(err))
			continue
		}
		if err := tx.Execute(); err != nil {
			logger.Warn("withdrawal failed", zap.String("number", req.number), zap.Error(err))
		}
	}
}

// probeDuplicateAccount verifies the member-scope duplicate check holds on the
// seeded data: adding a second AH-1002-1 to Carlos must be rejected.
func probeDuplicateAccount(cooperative *coop.Cooperative, logger *logging.Logger) {
	member, ok := cooperative.FindMemberByID("1002")
	if !ok {
		return
	}
	duplicate, err := coop.NewSavingsAccount("AH-1002-1", decimal.Zero, decimal.NewFromFloat(0.01))
	if err != nil {
		logger.Warn("probe account not built", zap.Error(err))
		return
	}
	if err := member.AddAccount(duplicate); err != nil {
		logger.Info("duplicate account prevented", zap.Error(err))
		return
	}
	logger.Warn("duplicate account was accepted", zap.String("number", duplicate.Number()))
}

// Package service holds the business managers of the bank, one sub-package each:
//
//   - account: opening and reading accounts
//   - card: issuing cards
//   - client: registering clients
//   - transfer: moving money between accounts
//   - loan: granting loans and the loan catalog
//
// Every manager validates a request in a fixed order and mutates state only
// after all rules pass, inside one repository.UnitOfWork.
package service

import (
	"errors"
	"log/slog"

	"github.com/homebanking/corebank/pkg/domain"
)

// LogFailure logs a failed operation. Business rejections are warnings; anything else is an error.
func LogFailure(logger *slog.Logger, op string, err error) {
	var rejection *domain.Error
	if errors.As(err, &rejection) {
		logger.Warn(op+" rejected", "reason", rejection.Message)
		return
	}
	logger.Error(op+" failed", "error", err)
}

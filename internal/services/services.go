// Package services implements the account, transaction and transfer
// operations on top of the gorm repositories. Every operation receives the
// authenticated caller and checks ownership before touching a row.
package services

import (
	"context"
	"errors"

	"github.com/williamsgomess/seubarriga-api/internal/apperr"
	"github.com/williamsgomess/seubarriga-api/internal/store"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"
)

var (
	tracer              = otel.Tracer("seubarriga.services")
	meter               = otel.Meter("seubarriga.services")
	transferOpsTotal, _ = meter.Int64Counter("ledger.transfer.operations",
		metric.WithDescription("Transfer operations by kind and outcome"),
	)
)

type Services struct {
	Accounts     *AccountService
	Transactions *TransactionService
	Transfers    *TransferService
	Balance      *BalanceService
	Users        *UserService
}

func New(db *gorm.DB) *Services {
	return &Services{
		Accounts:     NewAccountService(db),
		Transactions: NewTransactionService(db),
		Transfers:    NewTransferService(db),
		Balance:      NewBalanceService(db),
		Users:        NewUserService(db),
	}
}

// lookup turns a repository miss into a not-found error and anything else
// into a storage error.
func lookup(err error, notFoundMsg string) error {
	if errors.Is(err, store.ErrNotFound) {
		return apperr.NotFound(notFoundMsg)
	}
	return apperr.Storage(err)
}

func endSpan(span trace.Span, err error) {
	if err != nil && apperr.KindOf(err) == apperr.KindStorage {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

// recordTransferOp counts a transfer operation under its error kind, or "ok".
func recordTransferOp(ctx context.Context, op string, err error) {
	result := "ok"
	if err != nil {
		result = apperr.KindOf(err).String()
	}
	transferOpsTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("operation", op),
		attribute.String("result", result),
	))
}

package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/williamsgomess/seubarriga-api/internal/access"
	"github.com/williamsgomess/seubarriga-api/internal/apperr"
	"github.com/williamsgomess/seubarriga-api/internal/logger"
	"github.com/williamsgomess/seubarriga-api/internal/models"
	"github.com/williamsgomess/seubarriga-api/internal/store"
	"github.com/williamsgomess/seubarriga-api/internal/validation"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const MsgTransferNotFound = "Transfer not found"

type TransferRequest struct {
	Description string
	Date        *time.Time
	Amount      *decimal.Decimal
	AccOriID    *uint64
	AccDestID   *uint64
}

type TransferPatch struct {
	Description *string
	Date        *time.Time
	Amount      *decimal.Decimal
	AccOriID    *uint64
	AccDestID   *uint64
}

// TransferService keeps every transfer paired with exactly two transactions:
// an outcome on the origin account and an income on the destination account,
// both carrying the transfer id. Each mutation runs in one DB transaction.
type TransferService struct {
	db           *gorm.DB
	accounts     *store.AccountRepository
	transactions *store.TransactionRepository
	transfers    *store.TransferRepository
}

func NewTransferService(db *gorm.DB) *TransferService {
	return &TransferService{
		db:           db,
		accounts:     store.NewAccountRepository(db),
		transactions: store.NewTransactionRepository(db),
		transfers:    store.NewTransferRepository(db),
	}
}

func (s *TransferService) List(ctx context.Context, caller access.Caller) ([]models.Transfer, error) {
	transfers, err := s.transfers.List(ctx, store.TransferFilter{UserID: caller.UserID})
	if err != nil {
		return nil, apperr.Storage(err)
	}
	return transfers, nil
}

func (s *TransferService) Get(ctx context.Context, caller access.Caller, id uint64) (*models.Transfer, error) {
	return s.owned(ctx, s.transfers, caller, id)
}

func (s *TransferService) Create(ctx context.Context, caller access.Caller, req TransferRequest) (t *models.Transfer, err error) {
	ctx, span := tracer.Start(ctx, "TransferService.Create")
	defer func() {
		recordTransferOp(ctx, "create", err)
		endSpan(span, err)
	}()

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		candidate := validation.Transfer{
			Description: req.Description,
			Amount:      req.Amount,
			Date:        req.Date,
			AccOriID:    req.AccOriID,
			AccDestID:   req.AccDestID,
		}
		if err := validation.ValidateTransfer(ctx, candidate, caller.UserID, s.accounts.WithTx(tx).Owns); err != nil {
			return err
		}

		t = &models.Transfer{
			Description: strings.TrimSpace(req.Description),
			Date:        *req.Date,
			Amount:      models.NewMoney(*req.Amount).Abs(),
			UserID:      caller.UserID,
			AccOriID:    *req.AccOriID,
			AccDestID:   *req.AccDestID,
		}
		if err := s.transfers.WithTx(tx).Create(ctx, t); err != nil {
			return err
		}

		outcome, income := legs(t)
		transactions := s.transactions.WithTx(tx)
		if err := transactions.Create(ctx, &outcome); err != nil {
			return err
		}
		return transactions.Create(ctx, &income)
	})
	if err != nil {
		return nil, apperr.Storage(err)
	}

	span.SetAttributes(attribute.Int64("transfer.id", int64(t.ID)))
	logger.Log.Info("transfer created",
		zap.Uint64("transfer_id", t.ID),
		zap.Uint64("user_id", caller.UserID),
		zap.String("amount", t.Amount.String()),
	)
	return t, nil
}

// Update rewrites the transfer and its two transactions in place. Fields
// missing from patch keep their stored value.
func (s *TransferService) Update(ctx context.Context, caller access.Caller, id uint64, patch TransferPatch) (t *models.Transfer, err error) {
	ctx, span := tracer.Start(ctx, "TransferService.Update")
	span.SetAttributes(attribute.Int64("transfer.id", int64(id)))
	defer func() {
		recordTransferOp(ctx, "update", err)
		endSpan(span, err)
	}()

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		transfers := s.transfers.WithTx(tx)
		current, err := s.owned(ctx, transfers, caller, id)
		if err != nil {
			return err
		}

		merged := mergeTransfer(current, patch)
		candidate := validation.Transfer{
			Description: merged.Description,
			Amount:      &merged.Amount.Decimal,
			Date:        &merged.Date,
			AccOriID:    &merged.AccOriID,
			AccDestID:   &merged.AccDestID,
		}
		if err := validation.ValidateTransfer(ctx, candidate, caller.UserID, s.accounts.WithTx(tx).Owns); err != nil {
			return err
		}
		merged.Amount = merged.Amount.Abs()

		if err := transfers.Save(ctx, &merged); err != nil {
			return err
		}

		transactions := s.transactions.WithTx(tx)
		linked, err := transactions.ByTransfer(ctx, id)
		if err != nil {
			return err
		}
		storedOut, storedIn, err := splitLegs(id, linked)
		if err != nil {
			return err
		}

		outcome, income := legs(&merged)
		outcome.ID, outcome.CreatedAt = storedOut.ID, storedOut.CreatedAt
		income.ID, income.CreatedAt = storedIn.ID, storedIn.CreatedAt
		if err := transactions.Save(ctx, &outcome); err != nil {
			return err
		}
		if err := transactions.Save(ctx, &income); err != nil {
			return err
		}

		t = &merged
		return nil
	})
	if err != nil {
		return nil, apperr.Storage(err)
	}
	return t, nil
}

// Remove deletes the transfer together with its transactions.
func (s *TransferService) Remove(ctx context.Context, caller access.Caller, id uint64) (err error) {
	ctx, span := tracer.Start(ctx, "TransferService.Remove")
	span.SetAttributes(attribute.Int64("transfer.id", int64(id)))
	defer func() {
		recordTransferOp(ctx, "remove", err)
		endSpan(span, err)
	}()

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		transfers := s.transfers.WithTx(tx)
		if _, err := s.owned(ctx, transfers, caller, id); err != nil {
			return err
		}

		removed, err := s.transactions.WithTx(tx).DeleteByTransfer(ctx, id)
		if err != nil {
			return err
		}
		if removed != 2 {
			logger.Log.Warn("transfer had an unexpected number of transactions",
				zap.Uint64("transfer_id", id),
				zap.Int64("transactions", removed),
			)
		}
		return transfers.Delete(ctx, id)
	})
	if err != nil {
		return apperr.Storage(err)
	}
	return nil
}

func (s *TransferService) owned(ctx context.Context, transfers *store.TransferRepository, caller access.Caller, id uint64) (*models.Transfer, error) {
	t, err := transfers.Get(ctx, id)
	if err != nil {
		return nil, lookup(err, MsgTransferNotFound)
	}
	if err := access.EnsureOwner(t.UserID, caller); err != nil {
		return nil, err
	}
	return t, nil
}

// legs builds the outcome and income transactions that mirror t.
func legs(t *models.Transfer) (outcome, income models.Transaction) {
	transferID := t.ID
	outcome = models.Transaction{
		Description: fmt.Sprintf("Transfer to acc #%d", t.AccDestID),
		Date:        t.Date,
		Amount:      validation.NormalizeAmount(t.Amount.Decimal, models.TypeOutcome),
		Type:        models.TypeOutcome,
		AccID:       t.AccOriID,
		TransferID:  &transferID,
	}
	income = models.Transaction{
		Description: fmt.Sprintf("Transfer from acc #%d", t.AccOriID),
		Date:        t.Date,
		Amount:      validation.NormalizeAmount(t.Amount.Decimal, models.TypeIncome),
		Type:        models.TypeIncome,
		AccID:       t.AccDestID,
		TransferID:  &transferID,
	}
	return outcome, income
}

// splitLegs returns the stored outcome and income of a transfer, failing
// unless there is exactly one of each.
func splitLegs(transferID uint64, linked []models.Transaction) (outcome, income models.Transaction, err error) {
	var outs, ins int
	for _, t := range linked {
		switch t.Type {
		case models.TypeOutcome:
			outcome = t
			outs++
		case models.TypeIncome:
			income = t
			ins++
		}
	}
	if len(linked) != 2 || outs != 1 || ins != 1 {
		return outcome, income, fmt.Errorf("transfer %d is linked to %d transactions (%d outcome, %d income)", transferID, len(linked), outs, ins)
	}
	return outcome, income, nil
}

func mergeTransfer(t *models.Transfer, p TransferPatch) models.Transfer {
	merged := *t
	if p.Description != nil {
		merged.Description = strings.TrimSpace(*p.Description)
	}
	if p.Date != nil {
		merged.Date = *p.Date
	}
	if p.Amount != nil {
		merged.Amount = models.NewMoney(*p.Amount)
	}
	if p.AccOriID != nil {
		merged.AccOriID = *p.AccOriID
	}
	if p.AccDestID != nil {
		merged.AccDestID = *p.AccDestID
	}
	return merged
}

package services

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/williamsgomess/seubarriga-api/internal/access"
	"github.com/williamsgomess/seubarriga-api/internal/apperr"
	"github.com/williamsgomess/seubarriga-api/internal/models"
	"github.com/williamsgomess/seubarriga-api/internal/store"
	"github.com/williamsgomess/seubarriga-api/internal/validation"
	"gorm.io/gorm"
)

const (
	MsgTransactionNotFound   = "Transaction not found"
	msgTransactionInTransfer = "Transaction #%d belongs to transfer #%d"
)

// TransactionRequest is a new standalone ledger entry. Nil pointers are
// missing fields.
type TransactionRequest struct {
	Description string
	Date        *time.Time
	Amount      *decimal.Decimal
	Type        string
	AccID       *uint64
}

// TransactionPatch holds the fields to change; nil fields keep their value.
type TransactionPatch struct {
	Description *string
	Date        *time.Time
	Amount      *decimal.Decimal
	Type        *string
	AccID       *uint64
}

type TransactionService struct {
	db           *gorm.DB
	accounts     *store.AccountRepository
	transactions *store.TransactionRepository
}

func NewTransactionService(db *gorm.DB) *TransactionService {
	return &TransactionService{
		db:           db,
		accounts:     store.NewAccountRepository(db),
		transactions: store.NewTransactionRepository(db),
	}
}

// List returns the caller's transactions. The filter's UserID is always
// replaced by the caller.
func (s *TransactionService) List(ctx context.Context, caller access.Caller, f store.TransactionFilter) ([]models.Transaction, error) {
	f.UserID = caller.UserID
	transactions, err := s.transactions.List(ctx, f)
	if err != nil {
		return nil, apperr.Storage(err)
	}
	return transactions, nil
}

func (s *TransactionService) Get(ctx context.Context, caller access.Caller, id uint64) (*models.Transaction, error) {
	return s.owned(ctx, s.transactions, caller, id)
}

func (s *TransactionService) Create(ctx context.Context, caller access.Caller, req TransactionRequest) (*models.Transaction, error) {
	candidate := validation.Transaction{
		Description: req.Description,
		Amount:      req.Amount,
		Date:        req.Date,
		AccID:       req.AccID,
		Type:        req.Type,
	}
	if err := validation.ValidateTransaction(ctx, candidate, caller.UserID, s.accounts.Owns); err != nil {
		return nil, err
	}

	t := &models.Transaction{
		Description: strings.TrimSpace(req.Description),
		Date:        *req.Date,
		Amount:      validation.NormalizeAmount(*req.Amount, req.Type),
		Type:        req.Type,
		AccID:       *req.AccID,
	}
	if err := s.transactions.Create(ctx, t); err != nil {
		return nil, apperr.Storage(err)
	}
	return t, nil
}

func (s *TransactionService) Update(ctx context.Context, caller access.Caller, id uint64, patch TransactionPatch) (*models.Transaction, error) {
	var t *models.Transaction
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		transactions := s.transactions.WithTx(tx)

		var err error
		t, err = s.standalone(ctx, transactions, caller, id)
		if err != nil {
			return err
		}

		merged := mergeTransaction(t, patch)
		candidate := validation.Transaction{
			Description: merged.Description,
			Amount:      &merged.Amount.Decimal,
			Date:        &merged.Date,
			AccID:       &merged.AccID,
			Type:        merged.Type,
		}
		if err := validation.ValidateTransaction(ctx, candidate, caller.UserID, s.accounts.WithTx(tx).Owns); err != nil {
			return err
		}
		merged.Amount = validation.NormalizeAmount(merged.Amount.Decimal, merged.Type)

		if err := transactions.Save(ctx, &merged); err != nil {
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

// Remove deletes a standalone transaction owned by the caller.
func (s *TransactionService) Remove(ctx context.Context, caller access.Caller, id uint64) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		transactions := s.transactions.WithTx(tx)
		if _, err := s.standalone(ctx, transactions, caller, id); err != nil {
			return err
		}
		return transactions.Delete(ctx, id)
	})
	if err != nil {
		return apperr.Storage(err)
	}
	return nil
}

func (s *TransactionService) owned(ctx context.Context, transactions *store.TransactionRepository, caller access.Caller, id uint64) (*models.Transaction, error) {
	t, ownerID, err := transactions.Get(ctx, id)
	if err != nil {
		return nil, lookup(err, MsgTransactionNotFound)
	}
	if err := access.EnsureOwner(ownerID, caller); err != nil {
		return nil, err
	}
	return t, nil
}

// standalone loads an owned transaction and refuses the ones a transfer
// generated; those only change through their transfer.
func (s *TransactionService) standalone(ctx context.Context, transactions *store.TransactionRepository, caller access.Caller, id uint64) (*models.Transaction, error) {
	t, err := s.owned(ctx, transactions, caller, id)
	if err != nil {
		return nil, err
	}
	if t.TransferID != nil {
		return nil, apperr.Validationf(msgTransactionInTransfer, t.ID, *t.TransferID)
	}
	return t, nil
}

func mergeTransaction(t *models.Transaction, p TransactionPatch) models.Transaction {
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
	if p.Type != nil {
		merged.Type = *p.Type
	}
	if p.AccID != nil {
		merged.AccID = *p.AccID
	}
	return merged
}

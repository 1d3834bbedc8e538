// Package validation holds the field and business rules for ledger entries
// and transfers. Rules run in a fixed order and the first failure wins.
package validation

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/williamsgomess/seubarriga-api/internal/apperr"
	"github.com/williamsgomess/seubarriga-api/internal/models"
)

const (
	MsgDescriptionRequired = "Description is a required attribute"
	MsgAmountRequired      = "Amount is a required attribute"
	MsgAmountPositive      = "Amount must be greater than zero"
	MsgDateRequired        = "Date is a required attribute"
	MsgAmountTooLarge      = "Amount is too large"
	MsgAccountRequired     = "Account is required"
	MsgOriginRequired      = "Origin account is a required attribute"
	MsgDestinationRequired = "Destination account is a required attribute"
	MsgInvalidType         = "Invalid type"
	MsgSameAccount         = "Cannot transfer to the same account"
	msgAccountNotOwned     = "Account #%d does not belong to user"
)

// maxAmount bounds the magnitude of a stored amount, which lives in a
// numeric(15,2) column.
var maxAmount = decimal.New(1, 13)

// AccountOwnership reports whether accountID exists and belongs to userID.
type AccountOwnership func(ctx context.Context, accountID, userID uint64) (bool, error)

// Transaction is a candidate ledger entry. Nil pointers are missing fields.
type Transaction struct {
	Description string
	Amount      *decimal.Decimal
	Date        *time.Time
	AccID       *uint64
	Type        string
}

type Transfer struct {
	Description string
	Amount      *decimal.Decimal
	Date        *time.Time
	AccOriID    *uint64
	AccDestID   *uint64
}

// NormalizeAmount returns |amount| for income and -|amount| for outcome.
func NormalizeAmount(amount decimal.Decimal, txType string) models.Money {
	abs := models.NewMoney(amount).Abs()
	if txType == models.TypeOutcome {
		return abs.Neg()
	}
	return abs
}

func ValidType(txType string) bool {
	return txType == models.TypeIncome || txType == models.TypeOutcome
}

func AccountNotOwned(accountID uint64) *apperr.Error {
	return apperr.Validationf(msgAccountNotOwned, accountID)
}

func ValidateTransaction(ctx context.Context, t Transaction, userID uint64, owns AccountOwnership) error {
	if strings.TrimSpace(t.Description) == "" {
		return apperr.Validation(MsgDescriptionRequired)
	}
	if t.Amount == nil {
		return apperr.Validation(MsgAmountRequired)
	}
	if !withinRange(*t.Amount) {
		return apperr.Validation(MsgAmountTooLarge)
	}
	if t.Date == nil || t.Date.IsZero() {
		return apperr.Validation(MsgDateRequired)
	}
	if t.AccID == nil || *t.AccID == 0 {
		return apperr.Validation(MsgAccountRequired)
	}
	if err := checkOwner(ctx, *t.AccID, userID, owns); err != nil {
		return err
	}
	if !ValidType(t.Type) {
		return apperr.Validation(MsgInvalidType)
	}
	return nil
}

func ValidateTransfer(ctx context.Context, t Transfer, userID uint64, owns AccountOwnership) error {
	if strings.TrimSpace(t.Description) == "" {
		return apperr.Validation(MsgDescriptionRequired)
	}
	if t.Amount == nil {
		return apperr.Validation(MsgAmountRequired)
	}
	// Compared after rounding so sub-cent amounts cannot store a 0.00 transfer.
	if models.NewMoney(*t.Amount).IsZero() {
		return apperr.Validation(MsgAmountPositive)
	}
	if !withinRange(*t.Amount) {
		return apperr.Validation(MsgAmountTooLarge)
	}
	if t.Date == nil || t.Date.IsZero() {
		return apperr.Validation(MsgDateRequired)
	}
	if t.AccOriID == nil || *t.AccOriID == 0 {
		return apperr.Validation(MsgOriginRequired)
	}
	if err := checkOwner(ctx, *t.AccOriID, userID, owns); err != nil {
		return err
	}
	if t.AccDestID == nil || *t.AccDestID == 0 {
		return apperr.Validation(MsgDestinationRequired)
	}
	if err := checkOwner(ctx, *t.AccDestID, userID, owns); err != nil {
		return err
	}
	if *t.AccOriID == *t.AccDestID {
		return apperr.Validation(MsgSameAccount)
	}
	return nil
}

func withinRange(amount decimal.Decimal) bool {
	return models.NewMoney(amount).Abs().LessThan(maxAmount)
}

func checkOwner(ctx context.Context, accountID, userID uint64, owns AccountOwnership) error {
	ok, err := owns(ctx, accountID, userID)
	if err != nil {
		return apperr.Storage(err)
	}
	if !ok {
		return AccountNotOwned(accountID)
	}
	return nil
}

package services

import (
	"context"
	"time"

	"github.com/williamsgomess/seubarriga-api/internal/access"
	"github.com/williamsgomess/seubarriga-api/internal/apperr"
	"github.com/williamsgomess/seubarriga-api/internal/models"
	"github.com/williamsgomess/seubarriga-api/internal/store"
	"gorm.io/gorm"
)

// BalanceService sums transaction amounts per account. No running balance is
// stored anywhere; the ledger rows are the only source.
type BalanceService struct {
	transactions *store.TransactionRepository
	now          func() time.Time
}

func NewBalanceService(db *gorm.DB) *BalanceService {
	return &BalanceService{
		transactions: store.NewTransactionRepository(db),
		now:          func() time.Time { return time.Now().UTC() },
	}
}

// ByAccount returns the caller's balances counting transactions dated up to
// now. Future-dated entries are left out.
func (s *BalanceService) ByAccount(ctx context.Context, caller access.Caller) ([]models.Balance, error) {
	balances, err := s.transactions.Balances(ctx, caller.UserID, s.now())
	if err != nil {
		return nil, apperr.Storage(err)
	}
	return balances, nil
}

package store

import (
	"context"
	"fmt"
	"time"

	"github.com/williamsgomess/seubarriga-api/internal/models"
	"gorm.io/gorm"
)

// TransactionFilter narrows transaction listings. UserID is required and
// restricts results to the user's accounts; the other fields are optional.
type TransactionFilter struct {
	UserID     uint64
	AccID      uint64
	TransferID *uint64
	Type       string
}

type TransactionRepository struct {
	db *gorm.DB
}

func NewTransactionRepository(db *gorm.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

func (r *TransactionRepository) WithTx(tx *gorm.DB) *TransactionRepository {
	return &TransactionRepository{db: tx}
}

func (r *TransactionRepository) Create(ctx context.Context, t *models.Transaction) error {
	if err := r.db.WithContext(ctx).Create(t).Error; err != nil {
		return fmt.Errorf("create transaction: %w", err)
	}
	return nil
}

// Get returns the transaction together with the id of the user owning its
// account.
func (r *TransactionRepository) Get(ctx context.Context, id uint64) (*models.Transaction, uint64, error) {
	var t models.Transaction
	if err := r.db.WithContext(ctx).First(&t, id).Error; err != nil {
		return nil, 0, notFound(err)
	}
	var acc models.Account
	if err := r.db.WithContext(ctx).Select("id", "user_id").First(&acc, t.AccID).Error; err != nil {
		return nil, 0, fmt.Errorf("load account %d of transaction %d: %w", t.AccID, id, notFound(err))
	}
	return &t, acc.UserID, nil
}

func (r *TransactionRepository) List(ctx context.Context, f TransactionFilter) ([]models.Transaction, error) {
	q := r.db.WithContext(ctx).
		Select("transactions.*").
		Joins("JOIN accounts ON accounts.id = transactions.acc_id").
		Where("accounts.user_id = ?", f.UserID)
	if f.AccID != 0 {
		q = q.Where("transactions.acc_id = ?", f.AccID)
	}
	if f.TransferID != nil {
		q = q.Where("transactions.transfer_id = ?", *f.TransferID)
	}
	if f.Type != "" {
		q = q.Where("transactions.type = ?", f.Type)
	}

	transactions := make([]models.Transaction, 0)
	if err := q.Order("transactions.id").Find(&transactions).Error; err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	return transactions, nil
}

// ByTransfer returns the rows generated by a transfer, outcome first.
func (r *TransactionRepository) ByTransfer(ctx context.Context, transferID uint64) ([]models.Transaction, error) {
	transactions := make([]models.Transaction, 0, 2)
	err := r.db.WithContext(ctx).
		Where("transfer_id = ?", transferID).
		Order("amount").Order("id").
		Find(&transactions).Error
	if err != nil {
		return nil, fmt.Errorf("list transactions of transfer %d: %w", transferID, err)
	}
	return transactions, nil
}

func (r *TransactionRepository) Save(ctx context.Context, t *models.Transaction) error {
	err := r.db.WithContext(ctx).Model(t).Select(
		"description", "date", "amount", "type", "acc_id", "transfer_id",
	).Updates(t).Error
	if err != nil {
		return fmt.Errorf("update transaction %d: %w", t.ID, err)
	}
	return nil
}

func (r *TransactionRepository) Delete(ctx context.Context, id uint64) error {
	if err := r.db.WithContext(ctx).Delete(&models.Transaction{}, id).Error; err != nil {
		return fmt.Errorf("delete transaction %d: %w", id, err)
	}
	return nil
}

// DeleteByTransfer removes every row generated by a transfer and returns how
// many were deleted.
func (r *TransactionRepository) DeleteByTransfer(ctx context.Context, transferID uint64) (int64, error) {
	res := r.db.WithContext(ctx).Where("transfer_id = ?", transferID).Delete(&models.Transaction{})
	if res.Error != nil {
		return 0, fmt.Errorf("delete transactions of transfer %d: %w", transferID, res.Error)
	}
	return res.RowsAffected, nil
}

// Balances sums transaction amounts dated up to until for each of the user's
// accounts. Accounts without transactions report zero.
func (r *TransactionRepository) Balances(ctx context.Context, userID uint64, until time.Time) ([]models.Balance, error) {
	balances := make([]models.Balance, 0)
	err := r.db.WithContext(ctx).
		Table("accounts").
		Select("accounts.id AS acc_id, accounts.name AS name, COALESCE(SUM(transactions.amount), 0) AS sum").
		Joins("LEFT JOIN transactions ON transactions.acc_id = accounts.id AND transactions.date <= ?", until).
		Where("accounts.user_id = ?", userID).
		Group("accounts.id, accounts.name").
		Order("accounts.id").
		Scan(&balances).Error
	if err != nil {
		return nil, fmt.Errorf("sum balances: %w", err)
	}
	return balances, nil
}

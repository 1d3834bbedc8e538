package store

import (
	"context"
	"fmt"

	"github.com/williamsgomess/seubarriga-api/internal/models"
	"gorm.io/gorm"
)

// AccountFilter narrows account lookups. Zero fields are ignored.
type AccountFilter struct {
	ID     uint64
	UserID uint64
	Name   string
}

func (f AccountFilter) apply(q *gorm.DB) *gorm.DB {
	if f.ID != 0 {
		q = q.Where("id = ?", f.ID)
	}
	if f.UserID != 0 {
		q = q.Where("user_id = ?", f.UserID)
	}
	if f.Name != "" {
		q = q.Where("name = ?", f.Name)
	}
	return q
}

type AccountRepository struct {
	db *gorm.DB
}

func NewAccountRepository(db *gorm.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

// WithTx returns a repository bound to an open transaction.
func (r *AccountRepository) WithTx(tx *gorm.DB) *AccountRepository {
	return &AccountRepository{db: tx}
}

func (r *AccountRepository) Create(ctx context.Context, acc *models.Account) error {
	if err := r.db.WithContext(ctx).Create(acc).Error; err != nil {
		return fmt.Errorf("create account: %w", err)
	}
	return nil
}

// Find returns the first account matching f, or ErrNotFound.
func (r *AccountRepository) Find(ctx context.Context, f AccountFilter) (*models.Account, error) {
	var acc models.Account
	err := f.apply(r.db.WithContext(ctx)).Order("id").First(&acc).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &acc, nil
}

func (r *AccountRepository) List(ctx context.Context, f AccountFilter) ([]models.Account, error) {
	accounts := make([]models.Account, 0)
	if err := f.apply(r.db.WithContext(ctx)).Order("id").Find(&accounts).Error; err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	return accounts, nil
}

func (r *AccountRepository) UpdateName(ctx context.Context, id uint64, name string) error {
	err := r.db.WithContext(ctx).Model(&models.Account{}).Where("id = ?", id).Update("name", name).Error
	if err != nil {
		return fmt.Errorf("update account %d: %w", id, err)
	}
	return nil
}

func (r *AccountRepository) Delete(ctx context.Context, id uint64) error {
	if err := r.db.WithContext(ctx).Delete(&models.Account{}, id).Error; err != nil {
		return fmt.Errorf("delete account %d: %w", id, err)
	}
	return nil
}

// Owns reports whether accountID exists and belongs to userID.
func (r *AccountRepository) Owns(ctx context.Context, accountID, userID uint64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Account{}).
		Where("id = ? AND user_id = ?", accountID, userID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("check account owner: %w", err)
	}
	return count > 0, nil
}

func (r *AccountRepository) HasTransactions(ctx context.Context, accountID uint64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Transaction{}).
		Where("acc_id = ?", accountID).
		Limit(1).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("count account transactions: %w", err)
	}
	return count > 0, nil
}

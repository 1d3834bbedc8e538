package store

import (
	"context"
	"fmt"

	"github.com/williamsgomess/seubarriga-api/internal/models"
	"gorm.io/gorm"
)

type TransferFilter struct {
	UserID uint64
}

type TransferRepository struct {
	db *gorm.DB
}

func NewTransferRepository(db *gorm.DB) *TransferRepository {
	return &TransferRepository{db: db}
}

func (r *TransferRepository) WithTx(tx *gorm.DB) *TransferRepository {
	return &TransferRepository{db: tx}
}

func (r *TransferRepository) Create(ctx context.Context, t *models.Transfer) error {
	if err := r.db.WithContext(ctx).Create(t).Error; err != nil {
		return fmt.Errorf("create transfer: %w", err)
	}
	return nil
}

func (r *TransferRepository) Get(ctx context.Context, id uint64) (*models.Transfer, error) {
	var t models.Transfer
	if err := r.db.WithContext(ctx).First(&t, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &t, nil
}

// List returns transfers in insertion order.
func (r *TransferRepository) List(ctx context.Context, f TransferFilter) ([]models.Transfer, error) {
	transfers := make([]models.Transfer, 0)
	err := r.db.WithContext(ctx).
		Where("user_id = ?", f.UserID).
		Order("id").
		Find(&transfers).Error
	if err != nil {
		return nil, fmt.Errorf("list transfers: %w", err)
	}
	return transfers, nil
}

func (r *TransferRepository) Save(ctx context.Context, t *models.Transfer) error {
	err := r.db.WithContext(ctx).Model(t).Select(
		"description", "date", "amount", "acc_ori_id", "acc_dest_id",
	).Updates(t).Error
	if err != nil {
		return fmt.Errorf("update transfer %d: %w", t.ID, err)
	}
	return nil
}

func (r *TransferRepository) Delete(ctx context.Context, id uint64) error {
	if err := r.db.WithContext(ctx).Delete(&models.Transfer{}, id).Error; err != nil {
		return fmt.Errorf("delete transfer %d: %w", id, err)
	}
	return nil
}

package services

import (
	"context"
	"errors"
	"strings"

	"github.com/williamsgomess/seubarriga-api/internal/access"
	"github.com/williamsgomess/seubarriga-api/internal/apperr"
	"github.com/williamsgomess/seubarriga-api/internal/models"
	"github.com/williamsgomess/seubarriga-api/internal/store"
	"gorm.io/gorm"
)

const (
	MsgAccountNameRequired = "Name is a required attribute"
	MsgAccountNameTaken    = "An account with this name already exists"
	MsgAccountHasEntries   = "Account has associated transactions"
	MsgAccountNotFound     = "Account not found"
)

type CreateAccountRequest struct {
	Name string
}

type UpdateAccountRequest struct {
	Name *string
}

type AccountService struct {
	db       *gorm.DB
	accounts *store.AccountRepository
}

func NewAccountService(db *gorm.DB) *AccountService {
	return &AccountService{db: db, accounts: store.NewAccountRepository(db)}
}

func (s *AccountService) Create(ctx context.Context, caller access.Caller, req CreateAccountRequest) (*models.Account, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperr.Validation(MsgAccountNameRequired)
	}
	if err := s.ensureNameFree(ctx, s.accounts, caller.UserID, name, 0); err != nil {
		return nil, err
	}

	acc := &models.Account{Name: name, UserID: caller.UserID}
	if err := s.accounts.Create(ctx, acc); err != nil {
		if store.IsUniqueViolation(err) {
			return nil, apperr.Validation(MsgAccountNameTaken)
		}
		return nil, apperr.Storage(err)
	}
	return acc, nil
}

// List returns the caller's accounts. A non-empty name narrows the result to
// the account with that exact name.
func (s *AccountService) List(ctx context.Context, caller access.Caller, name string) ([]models.Account, error) {
	accounts, err := s.accounts.List(ctx, store.AccountFilter{
		UserID: caller.UserID,
		Name:   strings.TrimSpace(name),
	})
	if err != nil {
		return nil, apperr.Storage(err)
	}
	return accounts, nil
}

func (s *AccountService) Get(ctx context.Context, caller access.Caller, id uint64) (*models.Account, error) {
	return s.owned(ctx, s.accounts, caller, id)
}

func (s *AccountService) Update(ctx context.Context, caller access.Caller, id uint64, req UpdateAccountRequest) (*models.Account, error) {
	var acc *models.Account
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		accounts := s.accounts.WithTx(tx)

		var err error
		acc, err = s.owned(ctx, accounts, caller, id)
		if err != nil {
			return err
		}
		if req.Name == nil {
			return nil
		}

		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return apperr.Validation(MsgAccountNameRequired)
		}
		if name == acc.Name {
			return nil
		}
		if err := s.ensureNameFree(ctx, accounts, caller.UserID, name, id); err != nil {
			return err
		}
		if err := accounts.UpdateName(ctx, id, name); err != nil {
			if store.IsUniqueViolation(err) {
				return apperr.Validation(MsgAccountNameTaken)
			}
			return err
		}
		acc.Name = name
		return nil
	})
	if err != nil {
		return nil, apperr.Storage(err)
	}
	return acc, nil
}

// Remove deletes the account unless a transaction still references it.
func (s *AccountService) Remove(ctx context.Context, caller access.Caller, id uint64) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		accounts := s.accounts.WithTx(tx)
		if _, err := s.owned(ctx, accounts, caller, id); err != nil {
			return err
		}

		used, err := accounts.HasTransactions(ctx, id)
		if err != nil {
			return err
		}
		if used {
			return apperr.Validation(MsgAccountHasEntries)
		}
		return accounts.Delete(ctx, id)
	})
	if err != nil {
		return apperr.Storage(err)
	}
	return nil
}

func (s *AccountService) owned(ctx context.Context, accounts *store.AccountRepository, caller access.Caller, id uint64) (*models.Account, error) {
	acc, err := accounts.Find(ctx, store.AccountFilter{ID: id})
	if err != nil {
		return nil, lookup(err, MsgAccountNotFound)
	}
	if err := access.EnsureOwner(acc.UserID, caller); err != nil {
		return nil, err
	}
	return acc, nil
}

func (s *AccountService) ensureNameFree(ctx context.Context, accounts *store.AccountRepository, userID uint64, name string, selfID uint64) error {
	existing, err := accounts.Find(ctx, store.AccountFilter{UserID: userID, Name: name})
	switch {
	case errors.Is(err, store.ErrNotFound):
		return nil
	case err != nil:
		return apperr.Storage(err)
	case existing.ID != selfID:
		return apperr.Validation(MsgAccountNameTaken)
	}
	return nil
}

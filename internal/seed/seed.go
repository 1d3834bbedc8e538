package seed

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/shopspring/decimal"
	"github.com/williamsgomess/seubarriga-api/internal/access"
	"github.com/williamsgomess/seubarriga-api/internal/logger"
	"github.com/williamsgomess/seubarriga-api/internal/models"
	"github.com/williamsgomess/seubarriga-api/internal/services"
	"gorm.io/gorm"
)

const (
	seedPassword = "password123"
	firstID      = 10000
)

var testUsers = []struct {
	Name  string
	Email string
}{
	{"User #1", "user1@test.com"},
	{"User #2", "user2@test.com"},
}

// Run inserts two users with two accounts each, using fixed ids from 10000,
// and records one transfer between the first user's accounts. It is skipped
// when the users already exist.
func Run(ctx context.Context, db *gorm.DB) error {
	var count int64
	emails := []string{testUsers[0].Email, testUsers[1].Email}
	if err := db.WithContext(ctx).Model(&models.User{}).Where("email IN ?", emails).Count(&count).Error; err != nil {
		return err
	}
	if count >= int64(len(testUsers)) {
		logger.Log.Info("seed already applied, skipping")
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(seedPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	hashed := string(hash)

	err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i, u := range testUsers {
			user := models.User{ID: uint64(firstID + i), Name: u.Name, Email: u.Email, Password: hashed}
			if err := tx.Create(&user).Error; err != nil {
				return err
			}
			for j := 0; j < 2; j++ {
				acc := models.Account{
					ID:     uint64(firstID + 2*i + j),
					Name:   fmt.Sprintf("Acc %s #%d", u.Name, j+1),
					UserID: user.ID,
				}
				if err := tx.Create(&acc).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	ori, dest := uint64(firstID), uint64(firstID+1)
	amount := decimal.NewFromInt(100)
	date := time.Now().UTC()
	_, err = services.NewTransferService(db).Create(ctx, access.Caller{UserID: firstID}, services.TransferRequest{
		Description: "Transfer #1",
		Date:        &date,
		Amount:      &amount,
		AccOriID:    &ori,
		AccDestID:   &dest,
	})
	if err != nil {
		return err
	}

	logger.Sugar().Infof("seeded %d test users with password %q", len(testUsers), seedPassword)
	return nil
}

//go:build integration

package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"github.com/williamsgomess/seubarriga-api/internal/access"
	"github.com/williamsgomess/seubarriga-api/internal/models"
	"github.com/williamsgomess/seubarriga-api/internal/store"
	"gorm.io/gorm"
)

func setupPostgres(t *testing.T) *gorm.DB {
	t.Helper()
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("seubarriga"),
		tcpostgres.WithUsername("test"),
		tcpostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, container.Terminate(ctx)) })

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := store.Open(dsn)
	require.NoError(t, err)
	require.NoError(t, store.Migrate(db))
	return db
}

func TestIntegration_Postgres_TransferLifecycle(t *testing.T) {
	db := setupPostgres(t)
	ctx := context.Background()
	svc := New(db)

	user := models.User{Name: "Pg", Email: "pg@test.com", Password: "x"}
	require.NoError(t, db.Create(&user).Error)
	caller := access.Caller{UserID: user.ID}

	ori, err := svc.Accounts.Create(ctx, caller, CreateAccountRequest{Name: "Origin"})
	require.NoError(t, err)
	dest, err := svc.Accounts.Create(ctx, caller, CreateAccountRequest{Name: "Destination"})
	require.NoError(t, err)

	tr, err := svc.Transfers.Create(ctx, caller, TransferRequest{
		Description: "Regular transfer",
		Date:        ptr(day),
		Amount:      amount(100),
		AccOriID:    &ori.ID,
		AccDestID:   &dest.ID,
	})
	require.NoError(t, err)

	legs, err := svc.Transactions.List(ctx, caller, store.TransactionFilter{TransferID: &tr.ID})
	require.NoError(t, err)
	require.Len(t, legs, 2)
	assert.Equal(t, "-100.00", legs[0].Amount.String())
	assert.Equal(t, fmt.Sprintf("Transfer to acc #%d", dest.ID), legs[0].Description)
	assert.Equal(t, "100.00", legs[1].Amount.String())

	_, err = svc.Transfers.Update(ctx, caller, tr.ID, TransferPatch{Amount: amount(30)})
	require.NoError(t, err)

	balances, err := svc.Balance.ByAccount(ctx, caller)
	require.NoError(t, err)
	require.Len(t, balances, 2)
	assert.Equal(t, "-30.00", balances[0].Sum.String())
	assert.Equal(t, "30.00", balances[1].Sum.String())

	require.NoError(t, svc.Transfers.Remove(ctx, caller, tr.ID))
	legs, err = svc.Transactions.List(ctx, caller, store.TransactionFilter{TransferID: &tr.ID})
	require.NoError(t, err)
	assert.Empty(t, legs)
}

func TestIntegration_Postgres_UniqueViolation(t *testing.T) {
	db := setupPostgres(t)
	ctx := context.Background()
	repo := store.NewAccountRepository(db)

	user := models.User{Name: "Pg", Email: "pg@test.com", Password: "x"}
	require.NoError(t, db.Create(&user).Error)

	require.NoError(t, repo.Create(ctx, &models.Account{Name: "Main", UserID: user.ID}))
	err := repo.Create(ctx, &models.Account{Name: "Main", UserID: user.ID})
	require.Error(t, err)
	assert.True(t, store.IsUniqueViolation(err))
}

package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/williamsgomess/seubarriga-api/internal/models"
	"github.com/williamsgomess/seubarriga-api/internal/store"
	"github.com/williamsgomess/seubarriga-api/internal/store/storetest"
)

var (
	past   = time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	future = time.Date(2999, 1, 1, 0, 0, 0, 0, time.UTC)
)

func TestAccountRepository(t *testing.T) {
	db := storetest.Open(t)
	ctx := context.Background()
	repo := store.NewAccountRepository(db)

	alice := storetest.User(t, db, "Alice")
	bob := storetest.User(t, db, "Bob")

	acc := &models.Account{Name: "Wallet", UserID: alice.ID}
	require.NoError(t, repo.Create(ctx, acc))
	require.NotZero(t, acc.ID)

	t.Run("find by name", func(t *testing.T) {
		got, err := repo.Find(ctx, store.AccountFilter{UserID: alice.ID, Name: "Wallet"})
		require.NoError(t, err)
		assert.Equal(t, acc.ID, got.ID)
	})

	t.Run("find miss", func(t *testing.T) {
		_, err := repo.Find(ctx, store.AccountFilter{UserID: bob.ID, Name: "Wallet"})
		assert.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("owns", func(t *testing.T) {
		ok, err := repo.Owns(ctx, acc.ID, alice.ID)
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = repo.Owns(ctx, acc.ID, bob.ID)
		require.NoError(t, err)
		assert.False(t, ok)

		ok, err = repo.Owns(ctx, 424242, alice.ID)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("duplicate name for the same user", func(t *testing.T) {
		err := repo.Create(ctx, &models.Account{Name: "Wallet", UserID: alice.ID})
		require.Error(t, err)
		assert.True(t, store.IsUniqueViolation(err))
	})

	t.Run("same name for another user", func(t *testing.T) {
		require.NoError(t, repo.Create(ctx, &models.Account{Name: "Wallet", UserID: bob.ID}))
	})

	t.Run("list is scoped to the user", func(t *testing.T) {
		accounts, err := repo.List(ctx, store.AccountFilter{UserID: alice.ID})
		require.NoError(t, err)
		require.Len(t, accounts, 1)
		assert.Equal(t, "Wallet", accounts[0].Name)
	})

	t.Run("update name", func(t *testing.T) {
		require.NoError(t, repo.UpdateName(ctx, acc.ID, "Pocket"))
		got, err := repo.Find(ctx, store.AccountFilter{ID: acc.ID})
		require.NoError(t, err)
		assert.Equal(t, "Pocket", got.Name)
	})

	t.Run("has transactions", func(t *testing.T) {
		used, err := repo.HasTransactions(ctx, acc.ID)
		require.NoError(t, err)
		assert.False(t, used)

		require.NoError(t, db.Create(&models.Transaction{
			Description: "Coffee", Date: past, Amount: storetest.Money(-3),
			Type: models.TypeOutcome, AccID: acc.ID,
		}).Error)

		used, err = repo.HasTransactions(ctx, acc.ID)
		require.NoError(t, err)
		assert.True(t, used)
	})
}

func TestTransactionRepository_ListFilters(t *testing.T) {
	db := storetest.Open(t)
	ctx := context.Background()
	repo := store.NewTransactionRepository(db)

	alice := storetest.User(t, db, "Alice")
	bob := storetest.User(t, db, "Bob")
	a1 := storetest.Account(t, db, alice.ID, "A1")
	a2 := storetest.Account(t, db, alice.ID, "A2")
	b1 := storetest.Account(t, db, bob.ID, "B1")

	transfer := models.Transfer{
		Description: "Move", Date: past, Amount: storetest.Money(10),
		UserID: alice.ID, AccOriID: a1.ID, AccDestID: a2.ID,
	}
	require.NoError(t, db.Create(&transfer).Error)

	rows := []models.Transaction{
		{Description: "Salary", Date: past, Amount: storetest.Money(500), Type: models.TypeIncome, AccID: a1.ID},
		{Description: "To A2", Date: past, Amount: storetest.Money(-10), Type: models.TypeOutcome, AccID: a1.ID, TransferID: &transfer.ID},
		{Description: "From A1", Date: past, Amount: storetest.Money(10), Type: models.TypeIncome, AccID: a2.ID, TransferID: &transfer.ID},
		{Description: "Bob's", Date: past, Amount: storetest.Money(1), Type: models.TypeIncome, AccID: b1.ID},
	}
	for i := range rows {
		require.NoError(t, repo.Create(ctx, &rows[i]))
	}

	tests := []struct {
		name   string
		filter store.TransactionFilter
		want   []string
	}{
		{"all of the user", store.TransactionFilter{UserID: alice.ID}, []string{"Salary", "To A2", "From A1"}},
		{"by account", store.TransactionFilter{UserID: alice.ID, AccID: a2.ID}, []string{"From A1"}},
		{"by transfer", store.TransactionFilter{UserID: alice.ID, TransferID: &transfer.ID}, []string{"To A2", "From A1"}},
		{"by type", store.TransactionFilter{UserID: alice.ID, Type: models.TypeIncome}, []string{"Salary", "From A1"}},
		{"other user's account", store.TransactionFilter{UserID: alice.ID, AccID: b1.ID}, []string{}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := repo.List(ctx, tc.filter)
			require.NoError(t, err)

			descriptions := make([]string, 0, len(got))
			for _, tr := range got {
				descriptions = append(descriptions, tr.Description)
			}
			assert.Equal(t, tc.want, descriptions)
		})
	}

	t.Run("get reports the owner", func(t *testing.T) {
		got, ownerID, err := repo.Get(ctx, rows[3].ID)
		require.NoError(t, err)
		assert.Equal(t, bob.ID, ownerID)
		assert.Equal(t, "Bob's", got.Description)
	})

	t.Run("get miss", func(t *testing.T) {
		_, _, err := repo.Get(ctx, 999999)
		assert.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("by transfer puts the outcome first", func(t *testing.T) {
		linked, err := repo.ByTransfer(ctx, transfer.ID)
		require.NoError(t, err)
		require.Len(t, linked, 2)
		assert.Equal(t, models.TypeOutcome, linked[0].Type)
		assert.Equal(t, models.TypeIncome, linked[1].Type)
	})

	t.Run("delete by transfer", func(t *testing.T) {
		n, err := repo.DeleteByTransfer(ctx, transfer.ID)
		require.NoError(t, err)
		assert.EqualValues(t, 2, n)
		assert.Empty(t, storetest.Transactions(t, db, transfer.ID))
	})
}

func TestTransactionRepository_Balances(t *testing.T) {
	db := storetest.Open(t)
	ctx := context.Background()
	repo := store.NewTransactionRepository(db)

	alice := storetest.User(t, db, "Alice")
	a1 := storetest.Account(t, db, alice.ID, "A1")
	a2 := storetest.Account(t, db, alice.ID, "A2")
	empty := storetest.Account(t, db, alice.ID, "Empty")

	for _, tr := range []models.Transaction{
		{Description: "in", Date: past, Amount: storetest.Money(100), Type: models.TypeIncome, AccID: a1.ID},
		{Description: "out", Date: past, Amount: storetest.Money(-30), Type: models.TypeOutcome, AccID: a1.ID},
		{Description: "later", Date: future, Amount: storetest.Money(1000), Type: models.TypeIncome, AccID: a1.ID},
		{Description: "in", Date: past, Amount: storetest.Money(5), Type: models.TypeIncome, AccID: a2.ID},
	} {
		require.NoError(t, repo.Create(ctx, &tr))
	}

	balances, err := repo.Balances(ctx, alice.ID, past.Add(24*time.Hour))
	require.NoError(t, err)
	require.Len(t, balances, 3)

	assert.Equal(t, a1.ID, balances[0].AccID)
	assert.Equal(t, "70.00", balances[0].Sum.String())
	assert.Equal(t, a2.ID, balances[1].AccID)
	assert.Equal(t, "5.00", balances[1].Sum.String())
	assert.Equal(t, empty.ID, balances[2].AccID)
	assert.Equal(t, "0.00", balances[2].Sum.String())
}

func TestUserRepository_FindByEmail(t *testing.T) {
	db := storetest.Open(t)
	ctx := context.Background()
	repo := store.NewUserRepository(db)

	u := &models.User{Name: "Carol", Email: "carol@test.com", Password: "hash"}
	require.NoError(t, repo.Create(ctx, u))

	got, err := repo.FindByEmail(ctx, "carol@test.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	_, err = repo.FindByEmail(ctx, "nobody@test.com")
	assert.ErrorIs(t, err, store.ErrNotFound)

	err = repo.Create(ctx, &models.User{Name: "Carol 2", Email: "carol@test.com", Password: "hash"})
	assert.True(t, store.IsUniqueViolation(err))
}

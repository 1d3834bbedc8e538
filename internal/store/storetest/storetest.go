// Package storetest opens throwaway in-memory databases for tests.
package storetest

import (
	"fmt"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/williamsgomess/seubarriga-api/internal/models"
	"github.com/williamsgomess/seubarriga-api/internal/store"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var seq atomic.Int64

// Open returns a migrated in-memory SQLite database private to t.
func Open(t testing.TB) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared&_pragma=foreign_keys(1)", name, seq.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Discard,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// One connection keeps the in-memory database alive and serializes access.
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, store.Migrate(db))
	return db
}

// User inserts a user. The password is stored as given.
func User(t testing.TB, db *gorm.DB, name string) models.User {
	t.Helper()
	u := models.User{
		Name:     name,
		Email:    strings.ToLower(strings.ReplaceAll(name, " ", "")) + "@test.com",
		Password: "x",
	}
	require.NoError(t, db.Create(&u).Error)
	return u
}

func Account(t testing.TB, db *gorm.DB, userID uint64, name string) models.Account {
	t.Helper()
	acc := models.Account{Name: name, UserID: userID}
	require.NoError(t, db.Create(&acc).Error)
	return acc
}

// Transactions returns every row linked to transferID, outcome first.
func Transactions(t testing.TB, db *gorm.DB, transferID uint64) []models.Transaction {
	t.Helper()
	var rows []models.Transaction
	require.NoError(t, db.Where("transfer_id = ?", transferID).Order("amount").Find(&rows).Error)
	return rows
}

func Count(t testing.TB, db *gorm.DB, model any) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(model).Count(&n).Error)
	return n
}

// Money returns v whole units as a stored amount.
func Money(v int64) models.Money {
	return models.NewMoney(decimal.NewFromInt(v))
}

package services

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/williamsgomess/seubarriga-api/internal/access"
	"github.com/williamsgomess/seubarriga-api/internal/models"
	"github.com/williamsgomess/seubarriga-api/internal/store/storetest"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var day = time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)

// fixture holds two users: alice with accounts a1, a2 and a3, bob with b1.
type fixture struct {
	db    *gorm.DB
	svc   *Services
	alice access.Caller
	bob   access.Caller
	a1    models.Account
	a2    models.Account
	a3    models.Account
	b1    models.Account
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db := storetest.Open(t)
	alice := storetest.User(t, db, "Alice")
	bob := storetest.User(t, db, "Bob")

	svc := New(db)
	svc.Users.cost = bcrypt.MinCost

	return &fixture{
		db:    db,
		svc:   svc,
		alice: access.Caller{UserID: alice.ID},
		bob:   access.Caller{UserID: bob.ID},
		a1:    storetest.Account(t, db, alice.ID, "A1"),
		a2:    storetest.Account(t, db, alice.ID, "A2"),
		a3:    storetest.Account(t, db, alice.ID, "A3"),
		b1:    storetest.Account(t, db, bob.ID, "B1"),
	}
}

func ptr[T any](v T) *T { return &v }

func amount(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

func amountOf(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

package routes_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/williamsgomess/seubarriga-api/internal/handlers"
	"github.com/williamsgomess/seubarriga-api/internal/routes"
	"github.com/williamsgomess/seubarriga-api/internal/seed"
	"github.com/williamsgomess/seubarriga-api/internal/services"
	"github.com/williamsgomess/seubarriga-api/internal/store/storetest"
	"gorm.io/gorm"
)

const secret = "test-secret"

// Seeded ids: user 10000 owns accounts 10000 and 10001, user 10001 owns
// 10002 and 10003.
const (
	user1     = 10000
	user2     = 10001
	acc1      = 10000
	acc2      = 10001
	otherAcc1 = 10002
)

type api struct {
	t      *testing.T
	db     *gorm.DB
	router *chi.Mux
}

func newAPI(t *testing.T) *api {
	t.Helper()

	db := storetest.Open(t)
	require.NoError(t, seed.Run(context.Background(), db))

	h := handlers.New(services.New(db), secret, time.Hour)
	return &api{t: t, db: db, router: routes.NewRoutes(h, secret)}
}

func token(t *testing.T, userID uint64) string {
	t.Helper()
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": userID,
		"exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

// do sends body as JSON with a bearer token for userID (none when zero) and
// decodes the response into out when it is non-nil.
func (a *api) do(method, path string, userID uint64, body any, out any) int {
	a.t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(a.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if userID != 0 {
		req.Header.Set("Authorization", "Bearer "+token(a.t, userID))
	}

	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)

	if out != nil && rec.Body.Len() > 0 {
		require.NoError(a.t, json.Unmarshal(rec.Body.Bytes(), out), rec.Body.String())
	}
	return rec.Code
}

type transferJSON struct {
	ID          uint64 `json:"id"`
	Description string `json:"description"`
	Amount      string `json:"amount"`
	UserID      uint64 `json:"user_id"`
	AccOriID    uint64 `json:"acc_ori_id"`
	AccDestID   uint64 `json:"acc_dest_id"`
}

type transactionJSON struct {
	ID          uint64  `json:"id"`
	Description string  `json:"description"`
	Amount      string  `json:"amount"`
	Type        string  `json:"type"`
	AccID       uint64  `json:"acc_id"`
	TransferID  *uint64 `json:"transfer_id"`
}

type errorJSON struct {
	Error string `json:"error"`
}

func transferBody(ori, dest uint64, amount any) map[string]any {
	return map[string]any{
		"description": "Regular transfer",
		"date":        time.Now().UTC().Format(time.RFC3339),
		"acc_ori_id":  ori,
		"acc_dest_id": dest,
		"amount":      amount,
	}
}

func TestTransfers_CreateExpandsIntoTwoTransactions(t *testing.T) {
	a := newAPI(t)

	var created transferJSON
	code := a.do(http.MethodPost, "/v1/transfers", user1, transferBody(acc1, acc2, 100), &created)
	require.Equal(t, http.StatusCreated, code)
	assert.Equal(t, "100.00", created.Amount)
	assert.Equal(t, uint64(user1), created.UserID)

	var legs []transactionJSON
	code = a.do(http.MethodGet, fmt.Sprintf("/v1/transactions?transfer_id=%d", created.ID), user1, nil, &legs)
	require.Equal(t, http.StatusOK, code)
	require.Len(t, legs, 2)

	byType := map[string]transactionJSON{}
	for _, l := range legs {
		require.NotNil(t, l.TransferID)
		assert.Equal(t, created.ID, *l.TransferID)
		byType[l.Type] = l
	}
	assert.Equal(t, uint64(acc1), byType["O"].AccID)
	assert.Equal(t, "-100.00", byType["O"].Amount)
	assert.Equal(t, uint64(acc2), byType["I"].AccID)
	assert.Equal(t, "100.00", byType["I"].Amount)
}

func TestTransfers_UserIDInBodyIsIgnored(t *testing.T) {
	a := newAPI(t)

	body := transferBody(acc1, acc2, 10)
	body["user_id"] = user2

	var created transferJSON
	require.Equal(t, http.StatusCreated, a.do(http.MethodPost, "/v1/transfers", user1, body, &created))
	assert.Equal(t, uint64(user1), created.UserID)
}

func TestTransfers_ValidationErrors(t *testing.T) {
	a := newAPI(t)

	tests := []struct {
		name string
		body map[string]any
		want string
	}{
		{"same account", transferBody(acc1, acc1, 100), "Cannot transfer to the same account"},
		{"foreign destination", transferBody(acc1, otherAcc1, 100), fmt.Sprintf("Account #%d does not belong to user", otherAcc1)},
		{"foreign origin", transferBody(otherAcc1, acc1, 100), fmt.Sprintf("Account #%d does not belong to user", otherAcc1)},
		{"missing description", func() map[string]any {
			b := transferBody(acc1, acc2, 100)
			delete(b, "description")
			return b
		}(), "Description is a required attribute"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var resp errorJSON
			code := a.do(http.MethodPost, "/v1/transfers", user1, tc.body, &resp)
			assert.Equal(t, http.StatusBadRequest, code)
			assert.Equal(t, tc.want, resp.Error)
		})
	}

	var list []transferJSON
	require.Equal(t, http.StatusOK, a.do(http.MethodGet, "/v1/transfers", user1, nil, &list))
	assert.Len(t, list, 1, "only the seeded transfer exists")
}

func TestTransfers_UpdateAndDelete(t *testing.T) {
	a := newAPI(t)

	var created transferJSON
	require.Equal(t, http.StatusCreated, a.do(http.MethodPost, "/v1/transfers", user1, transferBody(acc1, acc2, 100), &created))
	path := fmt.Sprintf("/v1/transfers/%d", created.ID)

	var updated transferJSON
	code := a.do(http.MethodPut, path, user1, map[string]any{"amount": "75.5"}, &updated)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "75.50", updated.Amount)

	var legs []transactionJSON
	a.do(http.MethodGet, fmt.Sprintf("/v1/transactions?transfer_id=%d", created.ID), user1, nil, &legs)
	require.Len(t, legs, 2)
	for _, l := range legs {
		if l.Type == "O" {
			assert.Equal(t, "-75.50", l.Amount)
		} else {
			assert.Equal(t, "75.50", l.Amount)
		}
	}

	var denied errorJSON
	assert.Equal(t, http.StatusForbidden, a.do(http.MethodDelete, path, user2, nil, &denied))
	assert.Equal(t, "Resource does not belong to user", denied.Error)

	assert.Equal(t, http.StatusNoContent, a.do(http.MethodDelete, path, user1, nil, nil))
	assert.Equal(t, http.StatusNotFound, a.do(http.MethodGet, path, user1, nil, nil))

	legs = nil
	a.do(http.MethodGet, fmt.Sprintf("/v1/transactions?transfer_id=%d", created.ID), user1, nil, &legs)
	assert.Empty(t, legs)
}

func TestTransactions_CRUD(t *testing.T) {
	a := newAPI(t)

	var created transactionJSON
	code := a.do(http.MethodPost, "/v1/transactions", user1, map[string]any{
		"description": "Lunch",
		"date":        time.Now().UTC().Format(time.RFC3339),
		"amount":      25,
		"type":        "O",
		"acc_id":      acc1,
	}, &created)
	require.Equal(t, http.StatusCreated, code)
	assert.Equal(t, "-25.00", created.Amount)
	assert.Nil(t, created.TransferID)

	path := fmt.Sprintf("/v1/transactions/%d", created.ID)

	assert.Equal(t, http.StatusForbidden, a.do(http.MethodGet, path, user2, nil, nil))
	assert.Equal(t, http.StatusForbidden, a.do(http.MethodDelete, path, user2, nil, nil))

	var updated transactionJSON
	require.Equal(t, http.StatusOK, a.do(http.MethodPut, path, user1, map[string]any{"type": "I"}, &updated))
	assert.Equal(t, "25.00", updated.Amount)

	assert.Equal(t, http.StatusNoContent, a.do(http.MethodDelete, path, user1, nil, nil))
	assert.Equal(t, http.StatusNotFound, a.do(http.MethodGet, path, user1, nil, nil))

	var resp errorJSON
	code = a.do(http.MethodPost, "/v1/transactions", user1, map[string]any{
		"description": "Bad",
		"date":        time.Now().UTC().Format(time.RFC3339),
		"amount":      1,
		"type":        "X",
		"acc_id":      acc1,
	}, &resp)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Invalid type", resp.Error)
}

func TestAccounts_CRUD(t *testing.T) {
	a := newAPI(t)

	var acc struct {
		ID     uint64 `json:"id"`
		Name   string `json:"name"`
		UserID uint64 `json:"user_id"`
	}
	require.Equal(t, http.StatusCreated, a.do(http.MethodPost, "/v1/accounts", user1, map[string]any{"name": "Travel"}, &acc))
	assert.Equal(t, uint64(user1), acc.UserID)

	var resp errorJSON
	assert.Equal(t, http.StatusBadRequest, a.do(http.MethodPost, "/v1/accounts", user1, map[string]any{"name": "Travel"}, &resp))
	assert.Equal(t, "An account with this name already exists", resp.Error)

	path := fmt.Sprintf("/v1/accounts/%d", acc.ID)
	require.Equal(t, http.StatusOK, a.do(http.MethodPut, path, user1, map[string]any{"name": "Trips"}, &acc))
	assert.Equal(t, "Trips", acc.Name)

	var named []map[string]any
	require.Equal(t, http.StatusOK, a.do(http.MethodGet, "/v1/accounts?name=Trips", user1, nil, &named))
	require.Len(t, named, 1)
	assert.EqualValues(t, acc.ID, named[0]["id"])
	require.Equal(t, http.StatusOK, a.do(http.MethodGet, "/v1/accounts?name=Trips", user2, nil, &named))
	assert.Empty(t, named)

	resp = errorJSON{}
	assert.Equal(t, http.StatusBadRequest, a.do(http.MethodDelete, fmt.Sprintf("/v1/accounts/%d", acc1), user1, nil, &resp))
	assert.Equal(t, "Account has associated transactions", resp.Error)

	assert.Equal(t, http.StatusForbidden, a.do(http.MethodDelete, path, user2, nil, nil))
	assert.Equal(t, http.StatusNoContent, a.do(http.MethodDelete, path, user1, nil, nil))

	var accounts []map[string]any
	require.Equal(t, http.StatusOK, a.do(http.MethodGet, "/v1/accounts", user2, nil, &accounts))
	assert.Len(t, accounts, 2)
}

func TestBalance(t *testing.T) {
	a := newAPI(t)

	var balances []struct {
		ID  uint64 `json:"id"`
		Sum string `json:"sum"`
	}
	require.Equal(t, http.StatusOK, a.do(http.MethodGet, "/v1/balance", user1, nil, &balances))
	require.Len(t, balances, 2)
	assert.Equal(t, "-100.00", balances[0].Sum)
	assert.Equal(t, "100.00", balances[1].Sum)
}

func TestAuth(t *testing.T) {
	a := newAPI(t)

	t.Run("missing token", func(t *testing.T) {
		assert.Equal(t, http.StatusUnauthorized, a.do(http.MethodGet, "/v1/accounts", 0, nil, nil))
	})

	t.Run("bad id", func(t *testing.T) {
		assert.Equal(t, http.StatusBadRequest, a.do(http.MethodGet, "/v1/accounts/abc", user1, nil, nil))
	})

	t.Run("login with seeded user", func(t *testing.T) {
		var login struct {
			Token string `json:"token"`
		}
		code := a.do(http.MethodPost, "/auth/login", 0, map[string]string{
			"email": "user1@test.com", "password": "password123",
		}, &login)
		require.Equal(t, http.StatusOK, code)
		require.NotEmpty(t, login.Token)

		req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
		req.Header.Set("Authorization", "Bearer "+login.Token)
		rec := httptest.NewRecorder()
		a.router.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)

		var me map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &me))
		assert.Equal(t, "user1@test.com", me["email"])
		assert.NotContains(t, me, "password")
	})

	t.Run("wrong password", func(t *testing.T) {
		code := a.do(http.MethodPost, "/auth/login", 0, map[string]string{
			"email": "user1@test.com", "password": "nope",
		}, nil)
		assert.Equal(t, http.StatusUnauthorized, code)
	})

	t.Run("users are listed for the caller only", func(t *testing.T) {
		var users []map[string]any
		require.Equal(t, http.StatusOK, a.do(http.MethodGet, "/v1/users", user2, nil, &users))
		require.Len(t, users, 1)
		assert.EqualValues(t, user2, users[0]["id"])
		assert.NotContains(t, users[0], "password")
	})

	t.Run("signup", func(t *testing.T) {
		var user map[string]any
		code := a.do(http.MethodPost, "/auth/signup", 0, map[string]string{
			"name": "New", "email": "new@test.com", "password": "pw",
		}, &user)
		require.Equal(t, http.StatusCreated, code)
		assert.Equal(t, "new@test.com", user["email"])
	})
}

func TestOperationalEndpoints(t *testing.T) {
	a := newAPI(t)

	var health map[string]string
	require.Equal(t, http.StatusOK, a.do(http.MethodGet, "/health", 0, nil, &health))
	assert.Equal(t, "ok", health["status"])

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_goroutines")

	var doc struct {
		Swagger string                    `json:"swagger"`
		Paths   map[string]map[string]any `json:"paths"`
	}
	require.Equal(t, http.StatusOK, a.do(http.MethodGet, "/swagger/doc.json", 0, nil, &doc))
	assert.Equal(t, "2.0", doc.Swagger)
	assert.Contains(t, doc.Paths["/v1/transfers"], "post")
	assert.Contains(t, doc.Paths["/v1/transfers/{id}"], "delete")
}

package routes

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"usercenter/internal/config"
	"usercenter/internal/models"
	"usercenter/internal/repositories/cache"
	"usercenter/internal/repositories/memory"
	"usercenter/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "routes-secret"

type envelope struct {
	Data  json.RawMessage `json:"data"`
	Meta  map[string]any  `json:"meta"`
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func setup(t *testing.T) (*fiber.App, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	ctx := context.Background()
	require.NoError(t, store.Accounts().Create(ctx, &models.Account{
		UserID:             1,
		Balance:            decimal.NewFromInt(500),
		VerificationStatus: models.VerificationPassed,
		PayoutName:         "Chen Jie",
		PayoutAccount:      "chenjie@example.com",
	}))
	require.NoError(t, store.Accounts().Create(ctx, &models.Account{
		UserID:             2,
		Balance:            decimal.NewFromInt(500),
		VerificationStatus: models.VerificationSubmitted,
	}))

	app := fiber.New()
	err := SetupRoutes(app, Dependencies{
		Config: &config.Config{
			JWTSecret:     secret,
			MinWithdrawal: "100",
			LockTimeout:   time.Second,
			WithdrawRate:  100,
		},
		Store: store,
		Cache: cache.NewNoop(),
	})
	require.NoError(t, err)
	return app, store
}

func do(t *testing.T, app *fiber.App, method, path string, userID uint, body string) (int, envelope) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if userID != 0 {
		token, err := utils.GenerateToken(&models.UserClaims{
			UserID:      userID,
			Role:        "user",
			Permissions: models.GetDefaultPermissions("user"),
		}, secret, time.Hour)
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var env envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return resp.StatusCode, env
}

func TestWithdrawEndpoint(t *testing.T) {
	tests := []struct {
		name       string
		userID     uint
		body       string
		wantStatus int
		wantCode   string
	}{
		{name: "string amount", userID: 1, body: `{"amount":"150.00"}`, wantStatus: fiber.StatusOK},
		{name: "numeric amount", userID: 1, body: `{"amount":150}`, wantStatus: fiber.StatusOK},
		{name: "below minimum", userID: 1, body: `{"amount":"50"}`, wantStatus: fiber.StatusBadRequest, wantCode: "VALIDATION_ERROR"},
		{name: "malformed body", userID: 1, body: `{"amount":`, wantStatus: fiber.StatusBadRequest, wantCode: "VALIDATION_ERROR"},
		{name: "not verified", userID: 2, body: `{"amount":"150"}`, wantStatus: fiber.StatusForbidden, wantCode: "NOT_VERIFIED"},
		{name: "insufficient funds", userID: 1, body: `{"amount":"600"}`, wantStatus: fiber.StatusUnprocessableEntity, wantCode: "INSUFFICIENT_FUNDS"},
		{name: "no token", userID: 0, body: `{"amount":"150"}`, wantStatus: fiber.StatusUnauthorized, wantCode: "UNAUTHORIZED"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, store := setup(t)

			status, env := do(t, app, "POST", "/api/wallet/withdraw", tt.userID, tt.body)

			assert.Equal(t, tt.wantStatus, status)
			if tt.wantCode != "" {
				require.NotNil(t, env.Error)
				assert.Equal(t, tt.wantCode, env.Error.Code)
				return
			}
			var data struct {
				RequestID string `json:"request_id"`
			}
			require.NoError(t, json.Unmarshal(env.Data, &data))
			assert.NotEmpty(t, data.RequestID)
			account, _ := store.Snapshot(tt.userID)
			assert.True(t, decimal.NewFromInt(350).Equal(account.Balance))
		})
	}
}

func TestDuplicateWithdrawIsConflict(t *testing.T) {
	app, _ := setup(t)

	status, _ := do(t, app, "POST", "/api/wallet/withdraw", 1, `{"amount":"150"}`)
	require.Equal(t, fiber.StatusOK, status)

	status, env := do(t, app, "POST", "/api/wallet/withdraw", 1, `{"amount":"150"}`)
	assert.Equal(t, fiber.StatusConflict, status)
	require.NotNil(t, env.Error)
	assert.Equal(t, "DUPLICATE_PENDING", env.Error.Code)
}

func TestBalanceAndHistory(t *testing.T) {
	app, _ := setup(t)

	status, _ := do(t, app, "POST", "/api/wallet/withdraw", 1, `{"amount":"150.50"}`)
	require.Equal(t, fiber.StatusOK, status)

	status, env := do(t, app, "GET", "/api/wallet/balance", 1, "")
	require.Equal(t, fiber.StatusOK, status)
	var balance struct {
		Balance string `json:"balance"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &balance))
	assert.Equal(t, "349.50", balance.Balance)

	status, env = do(t, app, "GET", "/api/wallet/withdrawals?page=1&page_size=5", 1, "")
	require.Equal(t, fiber.StatusOK, status)
	var items []map[string]string
	require.NoError(t, json.Unmarshal(env.Data, &items))
	require.Len(t, items, 1)
	assert.Equal(t, "150.50", items[0]["amount"])
	assert.Equal(t, "pending", items[0]["status"])
	assert.Equal(t, "chenjie@example.com", items[0]["payout_account"])
	assert.EqualValues(t, 1, env.Meta["total_items"])
	assert.EqualValues(t, 5, env.Meta["per_page"])
}

func TestHistoryWithHugePage(t *testing.T) {
	app, _ := setup(t)

	status, _ := do(t, app, "POST", "/api/wallet/withdraw", 1, `{"amount":"150"}`)
	require.Equal(t, fiber.StatusOK, status)

	status, env := do(t, app, "GET", "/api/wallet/withdrawals?page=9223372036854775807", 1, "")
	require.Equal(t, fiber.StatusOK, status)
	var items []map[string]string
	require.NoError(t, json.Unmarshal(env.Data, &items))
	assert.Empty(t, items)
	assert.EqualValues(t, 1, env.Meta["total_items"])
}

func TestCertificationEndpoints(t *testing.T) {
	app, _ := setup(t)
	body := `{"real_name":"Zhao Min","id_card_number":"110101199003074514","payout_name":"Zhao Min","payout_account":"zhaomin@example.com"}`

	status, env := do(t, app, "POST", "/api/certification", 2, body)
	require.Equal(t, fiber.StatusOK, status)
	var cert map[string]string
	require.NoError(t, json.Unmarshal(env.Data, &cert))
	assert.Equal(t, "submitted", cert["status"])
	assert.Equal(t, "**************4514", cert["id_card_number"])

	status, env = do(t, app, "POST", "/api/certification", 1, body)
	assert.Equal(t, fiber.StatusConflict, status)
	require.NotNil(t, env.Error)
	assert.Equal(t, "ALREADY_VERIFIED", env.Error.Code)

	status, env = do(t, app, "POST", "/api/certification", 2, `{"real_name":"Zhao Min"}`)
	assert.Equal(t, fiber.StatusBadRequest, status)
	require.NotNil(t, env.Error)
	assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)

	status, env = do(t, app, "GET", "/api/certification", 3, "")
	assert.Equal(t, fiber.StatusNotFound, status)
	require.NotNil(t, env.Error)
	assert.Equal(t, "ACCOUNT_NOT_FOUND", env.Error.Code)
}

func TestHealth(t *testing.T) {
	app, _ := setup(t)

	req := httptest.NewRequest("GET", "/health", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestSetupRoutesRejectsBadMinimum(t *testing.T) {
	err := SetupRoutes(fiber.New(), Dependencies{
		Config: &config.Config{MinWithdrawal: "lots"},
		Store:  memory.NewStore(),
		Cache:  cache.NewNoop(),
	})
	assert.Error(t, err)
}

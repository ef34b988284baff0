// Command account_seed creates a verified account with a balance and prints
// a bearer token for it, for local runs against a Postgres store.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"

	"usercenter/internal/config"
	"usercenter/internal/models"
	"usercenter/internal/repositories"
	"usercenter/internal/utils"

	"github.com/shopspring/decimal"
)

func main() {
	userID := flag.Uint("user", 1, "user id of the account")
	balance := flag.String("balance", "1000.00", "starting balance")
	payout := flag.String("payout", "seed@example.com", "payout account")
	flag.Parse()

	cfg := config.Load()

	amount, err := decimal.NewFromString(*balance)
	if err != nil || amount.IsNegative() {
		log.Fatalf("Invalid balance %q", *balance)
	}

	db, err := repositories.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer repositories.CloseDB(db)

	store := repositories.NewStore(db)
	account := &models.Account{
		UserID:             uint(*userID),
		Balance:            amount.Round(2),
		VerificationStatus: models.VerificationPassed,
		RealName:           "Seed User",
		PayoutName:         "Seed User",
		PayoutAccount:      *payout,
	}

	err = store.Accounts().Create(context.Background(), account)
	switch {
	case errors.Is(err, repositories.ErrAccountExists):
		log.Printf("Account for user %d already exists", account.UserID)
	case err != nil:
		log.Fatalf("Failed to create account: %v", err)
	default:
		log.Printf("Account created for user %d with balance %s", account.UserID, account.Balance.StringFixed(2))
	}

	token, err := utils.GenerateToken(&models.UserClaims{
		UserID:      account.UserID,
		Role:        "user",
		Permissions: models.GetDefaultPermissions("user"),
	}, cfg.JWTSecret, cfg.JWTTTL)
	if err != nil {
		log.Fatalf("Failed to issue token: %v", err)
	}
	fmt.Println(token)
}

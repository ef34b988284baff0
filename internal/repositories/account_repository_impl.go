package repositories

import (
	"context"

	"usercenter/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type accountRepository struct {
	db *gorm.DB
}

func NewAccountRepository(db *gorm.DB) AccountRepository {
	return &accountRepository{
		db: db,
	}
}

func (r *accountRepository) Create(ctx context.Context, account *models.Account) error {
	if err := r.db.WithContext(ctx).Create(account).Error; err != nil {
		return translateError("create account", err)
	}
	return nil
}

func (r *accountRepository) GetAccount(ctx context.Context, userID uint) (*models.Account, error) {
	var account models.Account
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&account).Error; err != nil {
		return nil, translateError("get account", err)
	}
	return &account, nil
}

func (r *accountRepository) ReadBalance(ctx context.Context, userID uint) (decimal.Decimal, error) {
	account, err := r.GetAccount(ctx, userID)
	if err != nil {
		return decimal.Zero, err
	}
	return account.Balance, nil
}

func (r *accountRepository) ReadVerificationStatus(ctx context.Context, userID uint) (models.VerificationStatus, error) {
	var account models.Account
	err := r.db.WithContext(ctx).
		Select("verification_status").
		Where("user_id = ?", userID).
		First(&account).Error
	if err != nil {
		return "", translateError("read verification status", err)
	}
	return account.VerificationStatus, nil
}

func (r *accountRepository) LockAccount(ctx context.Context, userID uint) (*models.Account, error) {
	var account models.Account
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ?", userID).
		First(&account).Error
	if err != nil {
		return nil, translateError("lock account", err)
	}
	return &account, nil
}

func (r *accountRepository) LockAndDebit(ctx context.Context, userID uint, amount decimal.Decimal) (decimal.Decimal, error) {
	if !amount.IsPositive() {
		return decimal.Zero, ErrInvalidAmount
	}

	account, err := r.LockAccount(ctx, userID)
	if err != nil {
		return decimal.Zero, err
	}
	if account.Balance.LessThan(amount) {
		return decimal.Zero, ErrInsufficientBalance
	}

	newBalance := account.Balance.Sub(amount)
	result := r.db.WithContext(ctx).
		Model(&models.Account{}).
		Where("id = ?", account.ID).
		Update("balance", newBalance)
	if result.Error != nil {
		return decimal.Zero, translateError("debit account", result.Error)
	}
	if result.RowsAffected == 0 {
		return decimal.Zero, ErrAccountNotFound
	}
	return newBalance, nil
}

func (r *accountRepository) SaveCertification(ctx context.Context, userID uint, cert models.Certification) error {
	updates := map[string]interface{}{
		"verification_status": cert.Status,
		"real_name":           cert.RealName,
		"id_card_number":      cert.IDCardNumber,
		"payout_name":         cert.PayoutName,
		"payout_account":      cert.PayoutAccount,
	}

	result := r.db.WithContext(ctx).
		Model(&models.Account{}).
		Where("user_id = ?", userID).
		Updates(updates)
	if result.Error != nil {
		return translateError("save certification", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrAccountNotFound
	}
	return nil
}

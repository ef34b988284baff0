package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// WithdrawalStatus is the review state of a withdrawal request.
type WithdrawalStatus string

const (
	WithdrawalPending  WithdrawalStatus = "pending"
	WithdrawalApproved WithdrawalStatus = "approved"
	WithdrawalRejected WithdrawalStatus = "rejected"
)

// WithdrawalRequest is the audit record of a settled debit awaiting payout.
// Only the pending state is ever written by this service; approval and
// rejection are recorded by the back-office.
type WithdrawalRequest struct {
	ID            uuid.UUID        `gorm:"type:uuid;primaryKey" json:"id"`
	UserID        uint             `gorm:"not null;index:idx_withdrawal_requests_user_created,priority:1" json:"user_id"`
	Amount        decimal.Decimal  `gorm:"type:numeric(20,2);not null" json:"amount"`
	PayoutName    string           `gorm:"not null;default:''" json:"payout_name"`
	PayoutAccount string           `gorm:"not null" json:"payout_account"`
	Status        WithdrawalStatus `gorm:"type:varchar(16);not null;default:'pending'" json:"status"`
	CreatedAt     time.Time        `gorm:"index:idx_withdrawal_requests_user_created,priority:2,sort:desc" json:"created_at"`
}

func (WithdrawalRequest) TableName() string {
	return "withdrawal_requests"
}

func (w *WithdrawalRequest) BeforeCreate(tx *gorm.DB) error {
	if w.ID == uuid.Nil {
		w.ID = uuid.New()
	}
	return nil
}

// WithdrawalPage is one page of a user's withdrawal history, newest first.
type WithdrawalPage struct {
	Items    []WithdrawalRequest `json:"items"`
	Total    int64               `json:"total"`
	Page     int                 `json:"page"`
	PageSize int                 `json:"page_size"`
}

package models

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// VerificationStatus is the state of a user's identity certification.
type VerificationStatus string

const (
	VerificationUnverified VerificationStatus = "unverified"
	VerificationSubmitted  VerificationStatus = "submitted"
	VerificationPassed     VerificationStatus = "passed"
	VerificationRejected   VerificationStatus = "rejected"
)

var ErrUnknownVerificationStatus = errors.New("unknown verification status")

// Valid reports whether s is one of the known statuses.
func (s VerificationStatus) Valid() bool {
	switch s {
	case VerificationUnverified, VerificationSubmitted, VerificationPassed, VerificationRejected:
		return true
	}
	return false
}

// Account is a user's spendable balance together with the certification
// and payout profile that gate withdrawals.
type Account struct {
	ID                 uint               `gorm:"primarykey" json:"-"`
	UserID             uint               `gorm:"uniqueIndex;not null" json:"user_id"`
	Balance            decimal.Decimal    `gorm:"type:numeric(20,2);not null;default:0;check:chk_accounts_balance_non_negative,balance >= 0" json:"balance"`
	VerificationStatus VerificationStatus `gorm:"type:varchar(16);not null;default:'unverified'" json:"verification_status"`
	RealName           string             `gorm:"default:''" json:"real_name"`
	IDCardNumber       string             `gorm:"default:''" json:"id_card_number"`
	PayoutName         string             `gorm:"default:''" json:"payout_name"`
	PayoutAccount      string             `gorm:"default:''" json:"payout_account"`
	CreatedAt          time.Time          `json:"created_at"`
	UpdatedAt          time.Time          `json:"updated_at"`
}

// BeforeCreate defaults an empty status to unverified and rejects anything
// outside the known set.
func (a *Account) BeforeCreate(tx *gorm.DB) error {
	if a.VerificationStatus == "" {
		a.VerificationStatus = VerificationUnverified
	}
	if !a.VerificationStatus.Valid() {
		return fmt.Errorf("%w %q", ErrUnknownVerificationStatus, a.VerificationStatus)
	}
	return nil
}

// Certification is the identity and payout profile a user submits for review.
type Certification struct {
	Status        VerificationStatus `json:"status"`
	RealName      string             `json:"real_name"`
	IDCardNumber  string             `json:"id_card_number"`
	PayoutName    string             `json:"payout_name"`
	PayoutAccount string             `json:"payout_account"`
}

// Certification projects the account onto its certification profile. A
// status written outside the known set reads as unverified.
func (a *Account) Certification() Certification {
	status := a.VerificationStatus
	if !status.Valid() {
		status = VerificationUnverified
	}
	return Certification{
		Status:        status,
		RealName:      a.RealName,
		IDCardNumber:  a.IDCardNumber,
		PayoutName:    a.PayoutName,
		PayoutAccount: a.PayoutAccount,
	}
}

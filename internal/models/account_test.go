package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerificationStatusValid(t *testing.T) {
	for _, s := range []VerificationStatus{VerificationUnverified, VerificationSubmitted, VerificationPassed, VerificationRejected} {
		assert.True(t, s.Valid(), s)
	}
	assert.False(t, VerificationStatus("PASS").Valid())
	assert.False(t, VerificationStatus("").Valid())
}

func TestAccountBeforeCreate(t *testing.T) {
	a := &Account{UserID: 1}
	require.NoError(t, a.BeforeCreate(nil))
	assert.Equal(t, VerificationUnverified, a.VerificationStatus)

	a = &Account{UserID: 1, VerificationStatus: "approved"}
	assert.ErrorIs(t, a.BeforeCreate(nil), ErrUnknownVerificationStatus)
}

func TestAccountCertification(t *testing.T) {
	a := &Account{VerificationStatus: VerificationPassed, PayoutAccount: "li@example.com"}
	assert.Equal(t, VerificationPassed, a.Certification().Status)
	assert.Equal(t, "li@example.com", a.Certification().PayoutAccount)

	a.VerificationStatus = "approved"
	assert.Equal(t, VerificationUnverified, a.Certification().Status)
}

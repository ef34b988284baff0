package verification

import (
	"context"
	"errors"
	"log"
	"strings"

	domainerrors "usercenter/internal/errors"
	"usercenter/internal/models"
	"usercenter/internal/repositories"
	"usercenter/internal/validation"
)

type service struct {
	store repositories.Store
}

// NewService creates a new verification service
func NewService(store repositories.Store) Service {
	if store == nil {
		panic("store is required")
	}
	return &service{store: store}
}

func (s *service) Verify(ctx context.Context, scope repositories.Store, userID uint) (models.VerificationStatus, error) {
	if scope == nil {
		scope = s.store
	}

	status, err := scope.Accounts().ReadVerificationStatus(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrAccountNotFound) {
			return models.VerificationUnverified, nil
		}
		log.Printf("Failed to read verification status for user %d: %v", userID, err)
		return "", domainerrors.ErrStorageFailure
	}
	if !status.Valid() {
		log.Printf("Unknown verification status %q for user %d", status, userID)
		return models.VerificationUnverified, nil
	}
	return status, nil
}

func (s *service) Profile(ctx context.Context, scope repositories.Store, userID uint) (models.Certification, error) {
	if scope == nil {
		scope = s.store
	}

	account, err := scope.Accounts().GetAccount(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrAccountNotFound) {
			return models.Certification{}, domainerrors.ErrAccountNotFound
		}
		log.Printf("Failed to get certification for user %d: %v", userID, err)
		return models.Certification{}, domainerrors.ErrStorageFailure
	}
	return account.Certification(), nil
}

func (s *service) Get(ctx context.Context, userID uint) (models.Certification, error) {
	return s.Profile(ctx, nil, userID)
}

func (s *service) Submit(ctx context.Context, userID uint, input CertificationInput) (models.Certification, error) {
	input = normalize(input)

	v := validation.New()
	v.Struct(input)
	if !v.Valid() {
		return models.Certification{}, domainerrors.ErrValidation.WithMessage(v.Error())
	}

	cert := models.Certification{
		Status:        models.VerificationSubmitted,
		RealName:      input.RealName,
		IDCardNumber:  input.IDCardNumber,
		PayoutName:    input.PayoutName,
		PayoutAccount: input.PayoutAccount,
	}

	err := s.store.ExecuteInTransaction(ctx, repositories.TxOptions{}, func(tx repositories.Store) error {
		account, err := tx.Accounts().LockAccount(ctx, userID)
		if err != nil {
			return err
		}
		// A passed profile is frozen.
		if account.VerificationStatus == models.VerificationPassed {
			return domainerrors.ErrAlreadyVerified
		}
		return tx.Accounts().SaveCertification(ctx, userID, cert)
	})
	if err != nil {
		if de, ok := domainerrors.As(err); ok {
			return models.Certification{}, de
		}
		if errors.Is(err, repositories.ErrAccountNotFound) {
			return models.Certification{}, domainerrors.ErrAccountNotFound
		}
		log.Printf("Failed to save certification for user %d: %v", userID, err)
		return models.Certification{}, domainerrors.ErrStorageFailure
	}

	log.Printf("Certification submitted for user %d", userID)
	return cert, nil
}

func normalize(input CertificationInput) CertificationInput {
	input.RealName = strings.TrimSpace(input.RealName)
	input.IDCardNumber = strings.TrimSpace(input.IDCardNumber)
	input.PayoutName = strings.TrimSpace(input.PayoutName)
	input.PayoutAccount = strings.TrimSpace(input.PayoutAccount)
	return input
}

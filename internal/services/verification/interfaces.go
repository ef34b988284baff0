package verification

import (
	"context"

	"usercenter/internal/models"
	"usercenter/internal/repositories"
)

// Service defines the identity verification gate
type Service interface {
	// Verify reads the verification status of userID through scope, which
	// may be bound to a transaction. A user without an account, or with a
	// status outside the known set, is reported as unverified.
	Verify(ctx context.Context, scope repositories.Store, userID uint) (models.VerificationStatus, error)

	// Profile reads the certification profile through scope.
	Profile(ctx context.Context, scope repositories.Store, userID uint) (models.Certification, error)

	Get(ctx context.Context, userID uint) (models.Certification, error)
	Submit(ctx context.Context, userID uint, input CertificationInput) (models.Certification, error)
}

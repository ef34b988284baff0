package handlers

import (
	"usercenter/internal/models"
	"usercenter/internal/services/verification"
	"usercenter/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

type CertificationHandler struct {
	verificationService verification.Service
}

func NewCertificationHandler(verificationService verification.Service) *CertificationHandler {
	return &CertificationHandler{
		verificationService: verificationService,
	}
}

func (h *CertificationHandler) Submit(c *fiber.Ctx) error {
	claims, err := extractUserClaims(c)
	if err != nil {
		return response.Unauthorized(c, "invalid claims")
	}

	var input verification.CertificationInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request format")
	}

	cert, err := h.verificationService.Submit(c.UserContext(), claims.UserID, input)
	if err != nil {
		return response.DomainError(c, err)
	}

	return response.Success(c, toCertificationView(cert))
}

func (h *CertificationHandler) Get(c *fiber.Ctx) error {
	claims, err := extractUserClaims(c)
	if err != nil {
		return response.Unauthorized(c, "invalid claims")
	}

	cert, err := h.verificationService.Get(c.UserContext(), claims.UserID)
	if err != nil {
		return response.DomainError(c, err)
	}

	return response.Success(c, toCertificationView(cert))
}

type certificationView struct {
	Status        models.VerificationStatus `json:"status"`
	RealName      string                    `json:"real_name"`
	IDCardNumber  string                    `json:"id_card_number"`
	PayoutName    string                    `json:"payout_name"`
	PayoutAccount string                    `json:"payout_account"`
}

// toCertificationView masks the id-card number down to its last four digits.
func toCertificationView(cert models.Certification) certificationView {
	return certificationView{
		Status:        cert.Status,
		RealName:      cert.RealName,
		IDCardNumber:  maskTail(cert.IDCardNumber, 4),
		PayoutName:    cert.PayoutName,
		PayoutAccount: cert.PayoutAccount,
	}
}

func maskTail(s string, keep int) string {
	if len(s) <= keep {
		return s
	}
	masked := make([]byte, len(s))
	for i := range masked {
		masked[i] = '*'
	}
	copy(masked[len(s)-keep:], s[len(s)-keep:])
	return string(masked)
}

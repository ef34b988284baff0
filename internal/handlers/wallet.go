package handlers

import (
	"encoding/json"

	"usercenter/internal/models"
	"usercenter/internal/services/ledger"
	"usercenter/internal/services/settlement"
	"usercenter/internal/utils"
	"usercenter/internal/utils/pagination"
	"usercenter/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

type WalletHandler struct {
	settlementService settlement.Service
	ledgerService     ledger.Service
}

func NewWalletHandler(settlementService settlement.Service, ledgerService ledger.Service) *WalletHandler {
	return &WalletHandler{
		settlementService: settlementService,
		ledgerService:     ledgerService,
	}
}

// extractUserClaims is a helper function to reduce duplication
func extractUserClaims(c *fiber.Ctx) (*models.UserClaims, error) {
	claims, err := utils.GetUserClaims(c)
	if err != nil || claims == nil {
		return nil, fiber.ErrUnauthorized
	}
	return claims, nil
}

type withdrawRequest struct {
	// Amount accepts "150.00" as well as 150.00.
	Amount json.Number `json:"amount"`
}

func (h *WalletHandler) Withdraw(c *fiber.Ctx) error {
	claims, err := extractUserClaims(c)
	if err != nil {
		return response.Unauthorized(c, "invalid claims")
	}

	var input withdrawRequest
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request format")
	}

	requestID, err := h.settlementService.Withdraw(c.UserContext(), claims.UserID, input.Amount.String())
	if err != nil {
		return response.DomainError(c, err)
	}

	return response.Success(c, fiber.Map{
		"request_id": requestID,
	})
}

func (h *WalletHandler) ListWithdrawals(c *fiber.Ctx) error {
	claims, err := extractUserClaims(c)
	if err != nil {
		return response.Unauthorized(c, "invalid claims")
	}

	p := pagination.ParseFromRequest(c)
	result, err := h.settlementService.ListWithdrawals(c.UserContext(), claims.UserID, p.Page, p.PageSize)
	if err != nil {
		return response.DomainError(c, err)
	}

	p.Total = result.Total
	return c.JSON(pagination.Response(p, toWithdrawalViews(result.Items)))
}

func (h *WalletHandler) GetBalance(c *fiber.Ctx) error {
	claims, err := extractUserClaims(c)
	if err != nil {
		return response.Unauthorized(c, "invalid claims")
	}

	balance, err := h.ledgerService.GetBalance(c.UserContext(), claims.UserID)
	if err != nil {
		return response.DomainError(c, err)
	}

	return response.Success(c, fiber.Map{
		"balance": balance.StringFixed(settlement.AmountScale),
	})
}

type withdrawalView struct {
	ID            string `json:"id"`
	PayoutName    string `json:"payout_name"`
	PayoutAccount string `json:"payout_account"`
	Amount        string `json:"amount"`
	Status        string `json:"status"`
	CreatedAt     string `json:"created_at"`
}

func toWithdrawalViews(items []models.WithdrawalRequest) []withdrawalView {
	views := make([]withdrawalView, 0, len(items))
	for _, w := range items {
		views = append(views, withdrawalView{
			ID:            w.ID.String(),
			PayoutName:    w.PayoutName,
			PayoutAccount: w.PayoutAccount,
			Amount:        w.Amount.StringFixed(settlement.AmountScale),
			Status:        string(w.Status),
			CreatedAt:     w.CreatedAt.UTC().Format("2006-01-02 15:04:05"),
		})
	}
	return views
}

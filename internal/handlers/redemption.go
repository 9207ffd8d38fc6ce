package handlers

import (
	domainErrors "github.com/inanin-user/crm-system-sub001/internal/errors"
	"github.com/inanin-user/crm-system-sub001/internal/models"
	"github.com/inanin-user/crm-system-sub001/internal/services/redemption"
	"github.com/inanin-user/crm-system-sub001/internal/utils/pagination"
	"github.com/inanin-user/crm-system-sub001/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

type RedemptionHandler struct {
	redemptionService redemption.Service
}

func NewRedemptionHandler(redemptionService redemption.Service) *RedemptionHandler {
	return &RedemptionHandler{
		redemptionService: redemptionService,
	}
}

// Redeem debits one ticket against a scanned code and appends the ledger
// record
func (h *RedemptionHandler) Redeem(c *fiber.Ctx) error {
	claims := c.Locals("claims").(*models.UserClaims)

	var input struct {
		QRCodeData string `json:"qrCodeData"`
	}
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "invalid request body")
	}

	txn, err := h.redemptionService.Redeem(c.Context(), claims.UserID, claims.Username, input.QRCodeData)
	if err != nil {
		switch err {
		case domainErrors.ErrMalformedPayload, domainErrors.ErrMissingField:
			return response.BadRequest(c, err.Error())
		case domainErrors.ErrQRCodeNotFound:
			return response.NotFound(c, err.Error())
		case domainErrors.ErrInsufficientQuota:
			return response.Conflict(c, err.Error())
		case domainErrors.ErrMemberNotFound:
			return response.NotFound(c, err.Error())
		}
		return response.ServerError(c, "redemption failed", err)
	}

	return response.Created(c, "redeemed", txn)
}

// MyTransactions lists the caller's redemption records, newest first
func (h *RedemptionHandler) MyTransactions(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	p := pagination.ParseFromRequest(c)

	records, total, err := h.redemptionService.MemberTransactions(c.Context(), userID, p.Limit, p.Offset)
	if err != nil {
		return response.ServerError(c, "failed to fetch transactions", err)
	}

	p.Total = total
	return response.Success(c, "transactions", pagination.Response(p, records))
}

// AllTransactions lists the full ledger for admins
func (h *RedemptionHandler) AllTransactions(c *fiber.Ctx) error {
	p := pagination.ParseFromRequest(c)

	records, total, err := h.redemptionService.AllTransactions(c.Context(), p.Limit, p.Offset)
	if err != nil {
		return response.ServerError(c, "failed to fetch transactions", err)
	}

	p.Total = total
	return response.Success(c, "transactions", pagination.Response(p, records))
}

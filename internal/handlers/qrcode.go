package handlers

import (
	"errors"

	domainErrors "github.com/inanin-user/crm-system-sub001/internal/errors"
	"github.com/inanin-user/crm-system-sub001/internal/models"
	"github.com/inanin-user/crm-system-sub001/internal/services/qrcode"
	"github.com/inanin-user/crm-system-sub001/internal/utils/pagination"
	"github.com/inanin-user/crm-system-sub001/internal/utils/response"
	"github.com/inanin-user/crm-system-sub001/internal/validation"

	"github.com/gofiber/fiber/v2"
)

type QRCodeHandler struct {
	qrService qrcode.Service
}

func NewQRCodeHandler(qrService qrcode.Service) *QRCodeHandler {
	return &QRCodeHandler{
		qrService: qrService,
	}
}

// Generate creates a registry entry with the next counter-assigned number
func (h *QRCodeHandler) Generate(c *fiber.Ctx) error {
	claims := c.Locals("claims").(*models.UserClaims)

	var input struct {
		RegionCode         string  `json:"regionCode"`
		ProductDescription string  `json:"productDescription"`
		Price              float64 `json:"price"`
	}
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "invalid request body")
	}

	v := validation.New()
	v.Required("regionCode", input.RegionCode)
	v.Required("productDescription", input.ProductDescription)
	v.Check(input.Price > 0, "price", "must be greater than zero")
	if !v.Valid() {
		return response.BadRequest(c, v.First())
	}

	qr, err := h.qrService.Generate(c.Context(), claims.Username, input.RegionCode, input.ProductDescription, input.Price)
	if err != nil {
		var domainErr *domainErrors.DomainError
		if errors.As(err, &domainErr) {
			return response.BadRequest(c, domainErr.Message)
		}
		return response.ServerError(c, "failed to generate QR code", err)
	}

	return response.Created(c, "QR code generated", qr)
}

// CurrentNumber returns the counter value without mutating it
func (h *QRCodeHandler) CurrentNumber(c *fiber.Ctx) error {
	current, err := h.qrService.CurrentNumber(c.Context())
	if err != nil {
		return response.ServerError(c, "failed to read current number", err)
	}
	return response.Success(c, "current number", current)
}

// Scan resolves a scanned payload to its display record. Read-only.
func (h *QRCodeHandler) Scan(c *fiber.Ctx) error {
	var input struct {
		QRCodeData string `json:"qrCodeData"`
	}
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "invalid request body")
	}

	result, err := h.qrService.ResolveScan(c.Context(), input.QRCodeData)
	if err != nil {
		return qrScanError(c, err)
	}
	return response.Success(c, "QR code resolved", result)
}

// Deactivate retires a registry entry without deleting it
func (h *QRCodeHandler) Deactivate(c *fiber.Ctx) error {
	number := c.Params("number")

	if err := h.qrService.Deactivate(c.Context(), number); err != nil {
		if err == domainErrors.ErrQRCodeNotFound {
			return response.NotFound(c, err.Error())
		}
		return response.ServerError(c, "failed to deactivate QR code", err)
	}
	return response.Success(c, "QR code deactivated", nil)
}

// List returns registry entries for the admin screen
func (h *QRCodeHandler) List(c *fiber.Ctx) error {
	p := pagination.ParseFromRequest(c)

	codes, total, err := h.qrService.List(c.Context(), p.Limit, p.Offset)
	if err != nil {
		return response.ServerError(c, "failed to list QR codes", err)
	}

	p.Total = total
	return response.Success(c, "QR codes", pagination.Response(p, codes))
}

// qrScanError maps scan resolution failures onto the envelope.
func qrScanError(c *fiber.Ctx, err error) error {
	switch err {
	case domainErrors.ErrMalformedPayload, domainErrors.ErrMissingField:
		return response.BadRequest(c, err.Error())
	case domainErrors.ErrQRCodeNotFound:
		return response.NotFound(c, err.Error())
	}
	return response.ServerError(c, "failed to resolve QR code", err)
}

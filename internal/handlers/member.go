package handlers

import (
	"errors"

	domainErrors "github.com/inanin-user/crm-system-sub001/internal/errors"
	"github.com/inanin-user/crm-system-sub001/internal/models"
	"github.com/inanin-user/crm-system-sub001/internal/services/member"
	"github.com/inanin-user/crm-system-sub001/internal/services/payment"
	"github.com/inanin-user/crm-system-sub001/internal/utils/pagination"
	"github.com/inanin-user/crm-system-sub001/internal/utils/response"
	"github.com/inanin-user/crm-system-sub001/internal/validation"

	"github.com/gofiber/fiber/v2"
)

type MemberHandler struct {
	memberService  member.Service
	paymentService payment.Service
}

func NewMemberHandler(memberService member.Service, paymentService payment.Service) *MemberHandler {
	return &MemberHandler{
		memberService:  memberService,
		paymentService: paymentService,
	}
}

// Register creates a new account. Member roles may carry an initial
// ticket grant.
func (h *MemberHandler) Register(c *fiber.Ctx) error {
	var input member.RegisterInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "invalid request body")
	}

	v := validation.New()
	v.Required("username", input.Username)
	v.Required("name", input.Name)
	v.Password("password", input.Password)
	if input.Role != "" {
		v.Check(input.Role == models.RoleTrainer || models.IsMemberRole(input.Role), "role", "unknown role")
	}
	v.Check(input.InitialTickets >= 0, "initialTickets", "must not be negative")
	if !v.Valid() {
		return response.BadRequest(c, v.First())
	}

	account, err := h.memberService.Register(c.Context(), input)
	if err != nil {
		if errors.Is(err, domainErrors.ErrUsernameTaken) {
			return response.Conflict(c, err.Error())
		}
		return response.ServerError(c, "registration failed", err)
	}

	return response.Created(c, "account created", account)
}

// Me returns the authenticated account's own profile and quota.
func (h *MemberHandler) Me(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	account, err := h.memberService.Get(c.Context(), userID)
	if err != nil {
		if errors.Is(err, domainErrors.ErrMemberNotFound) {
			return response.NotFound(c, err.Error())
		}
		return response.ServerError(c, "failed to load profile", err)
	}
	return response.Success(c, "profile", account)
}

// Get returns a single account by id for admins.
func (h *MemberHandler) Get(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "invalid member id")
	}

	account, err := h.memberService.Get(c.Context(), uint(id))
	if err != nil {
		if errors.Is(err, domainErrors.ErrMemberNotFound) {
			return response.NotFound(c, err.Error())
		}
		return response.ServerError(c, "failed to load member", err)
	}
	return response.Success(c, "member", account)
}

// Renew applies a paid ticket top-up to a member account.
func (h *MemberHandler) Renew(c *fiber.Ctx) error {
	claims := c.Locals("claims").(*models.UserClaims)

	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "invalid member id")
	}

	var input struct {
		Tickets       int                  `json:"tickets"`
		Amount        float64              `json:"amount"`
		PaymentMethod string               `json:"paymentMethod"`
		Card          *payment.CardDetails `json:"card"`
	}
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "invalid request body")
	}

	v := validation.New()
	v.Positive("tickets", input.Tickets)
	v.Check(input.Amount >= 0, "amount", "must not be negative")
	v.Check(input.PaymentMethod == models.PaymentMethodCash || input.PaymentMethod == models.PaymentMethodCard,
		"paymentMethod", "must be cash or card")
	if !v.Valid() {
		return response.BadRequest(c, v.First())
	}

	account, record, err := h.paymentService.ProcessRenewal(c.Context(), payment.RenewalRequest{
		MemberID:      uint(id),
		Tickets:       input.Tickets,
		Amount:        input.Amount,
		PaymentMethod: input.PaymentMethod,
		Card:          input.Card,
		RecordedBy:    claims.Username,
	})
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrMemberNotFound):
			return response.NotFound(c, err.Error())
		case errors.Is(err, domainErrors.ErrInvalidAmount), errors.Is(err, payment.ErrCardDetailsRequired):
			return response.BadRequest(c, err.Error())
		}
		return response.ServerError(c, "renewal failed", err)
	}

	return response.Success(c, "member renewed", fiber.Map{
		"account": account,
		"record":  record,
	})
}

// List returns member accounts for the admin screen.
func (h *MemberHandler) List(c *fiber.Ctx) error {
	p := pagination.ParseFromRequest(c)

	members, total, err := h.memberService.ListMembers(c.Context(), p.Limit, p.Offset)
	if err != nil {
		return response.ServerError(c, "failed to list members", err)
	}

	p.Total = total
	return response.Success(c, "members", pagination.Response(p, members))
}

// Deactivate disables an account without deleting its ledger history.
func (h *MemberHandler) Deactivate(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "invalid member id")
	}

	if err := h.memberService.Deactivate(c.Context(), uint(id)); err != nil {
		if errors.Is(err, domainErrors.ErrMemberNotFound) {
			return response.NotFound(c, err.Error())
		}
		return response.ServerError(c, "failed to deactivate member", err)
	}
	return response.Success(c, "member deactivated", nil)
}

package handlers

import (
	"errors"

	"github.com/inanin-user/crm-system-sub001/internal/models"
	"github.com/inanin-user/crm-system-sub001/internal/repositories"
	"github.com/inanin-user/crm-system-sub001/internal/utils/pagination"
	"github.com/inanin-user/crm-system-sub001/internal/utils/response"
	"github.com/inanin-user/crm-system-sub001/internal/validation"

	"github.com/gofiber/fiber/v2"
)

type TrainerHandler struct {
	trainers repositories.TrainerRepository
}

func NewTrainerHandler(trainers repositories.TrainerRepository) *TrainerHandler {
	return &TrainerHandler{
		trainers: trainers,
	}
}

// Profile returns the caller's trainer profile.
func (h *TrainerHandler) Profile(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	profile, err := h.trainers.GetByAccountID(c.Context(), userID)
	if err != nil {
		if errors.Is(err, repositories.ErrTrainerProfileNotFound) {
			return response.NotFound(c, "trainer profile not found")
		}
		return response.ServerError(c, "failed to load trainer profile", err)
	}
	return response.Success(c, "trainer profile", profile)
}

// UpdateProfile creates or replaces the caller's trainer profile.
func (h *TrainerHandler) UpdateProfile(c *fiber.Ctx) error {
	claims := c.Locals("claims").(*models.UserClaims)

	var input struct {
		DisplayName     string `json:"displayName"`
		Bio             string `json:"bio"`
		Specialties     string `json:"specialties"`
		YearsExperience int    `json:"yearsExperience"`
		Region          string `json:"region"`
	}
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "invalid request body")
	}

	v := validation.New()
	v.Required("displayName", input.DisplayName)
	v.Check(input.YearsExperience >= 0, "yearsExperience", "must not be negative")
	if input.Region != "" {
		v.Check(models.ValidRegionCode(input.Region), "region", "unknown region code")
	}
	if !v.Valid() {
		return response.BadRequest(c, v.First())
	}

	profile := &models.TrainerProfile{
		AccountID:       claims.UserID,
		DisplayName:     input.DisplayName,
		Bio:             input.Bio,
		Specialties:     input.Specialties,
		YearsExperience: input.YearsExperience,
		Region:          input.Region,
	}
	if err := h.trainers.Upsert(c.Context(), profile); err != nil {
		return response.ServerError(c, "failed to save trainer profile", err)
	}

	return response.Success(c, "trainer profile saved", profile)
}

// List returns trainer profiles for the admin screen.
func (h *TrainerHandler) List(c *fiber.Ctx) error {
	p := pagination.ParseFromRequest(c)

	profiles, total, err := h.trainers.List(c.Context(), p.Limit, p.Offset)
	if err != nil {
		return response.ServerError(c, "failed to list trainers", err)
	}

	p.Total = total
	return response.Success(c, "trainers", pagination.Response(p, profiles))
}

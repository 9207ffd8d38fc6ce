package handlers

import (
	"errors"
	"log"

	"github.com/inanin-user/crm-system-sub001/internal/models"
	"github.com/inanin-user/crm-system-sub001/internal/services/auth"
	"github.com/inanin-user/crm-system-sub001/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	authService auth.Service
}

func NewAuthHandler(authService auth.Service) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// Login handles user authentication and returns JWT tokens
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var input struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}

	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "invalid request body")
	}

	if input.Username == "" || input.Password == "" {
		return response.BadRequest(c, "username and password are required")
	}

	account, accessToken, refreshToken, err := h.authService.Login(c.Context(), input.Username, input.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			return response.Unauthorized(c, "invalid username or password")
		}
		if errors.Is(err, auth.ErrAccountDisabled) {
			return response.Forbidden(c, "account is deactivated")
		}
		return response.ServerError(c, "authentication failed", err)
	}

	return response.Success(c, "logged in", fiber.Map{
		"access_token":  accessToken,
		"refresh_token": refreshToken,
		"account": fiber.Map{
			"id":          account.ID,
			"username":    account.Username,
			"name":        account.Name,
			"role":        account.Role,
			"quota":       account.Quota,
			"permissions": models.GetDefaultPermissions(account.Role),
		},
	})
}

// RefreshToken rotates the token pair
func (h *AuthHandler) RefreshToken(c *fiber.Ctx) error {
	var input struct {
		RefreshToken string `json:"refresh_token"`
	}
	if err := c.BodyParser(&input); err != nil || input.RefreshToken == "" {
		return response.Unauthorized(c, "refresh token not provided")
	}

	accessToken, refreshToken, err := h.authService.RefreshTokens(c.Context(), input.RefreshToken)
	if err != nil {
		log.Printf("Token refresh failed: %v", err)
		return response.Unauthorized(c, "invalid refresh token")
	}

	return response.Success(c, "tokens refreshed", fiber.Map{
		"access_token":  accessToken,
		"refresh_token": refreshToken,
	})
}

// Logout bumps the token version so outstanding tokens stop validating
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	if err := h.authService.Logout(userID); err != nil {
		return response.ServerError(c, "logout failed", err)
	}
	return response.Success(c, "logged out", nil)
}

// ChangePassword rotates the account password
func (h *AuthHandler) ChangePassword(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var input struct {
		OldPassword string `json:"old_password"`
		NewPassword string `json:"new_password"`
	}
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "invalid request body")
	}

	if err := h.authService.ChangePassword(c.Context(), userID, input.OldPassword, input.NewPassword); err != nil {
		return response.BadRequest(c, err.Error())
	}
	return response.Success(c, "password changed", nil)
}

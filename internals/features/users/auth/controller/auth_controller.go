package controller

import (
	"estatehub_backend/internals/features/users/auth/service"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type AuthController struct {
	DB *gorm.DB
}

func NewAuthController(db *gorm.DB) *AuthController {
	return &AuthController{DB: db}
}

func (ac *AuthController) Register(c *fiber.Ctx) error      { return service.Register(ac.DB, c) }
func (ac *AuthController) Login(c *fiber.Ctx) error         { return service.Login(ac.DB, c) }
func (ac *AuthController) Me(c *fiber.Ctx) error            { return service.Me(ac.DB, c) }
func (ac *AuthController) Logout(c *fiber.Ctx) error        { return service.Logout(ac.DB, c) }
func (ac *AuthController) ResetPassword(c *fiber.Ctx) error { return service.ResetPassword(ac.DB, c) }
func (ac *AuthController) SwitchRole(c *fiber.Ctx) error    { return service.SwitchRole(ac.DB, c) }
func (ac *AuthController) SendOTP(c *fiber.Ctx) error       { return service.SendOTP(ac.DB, c) }
func (ac *AuthController) VerifyOTP(c *fiber.Ctx) error     { return service.VerifyOTPHandler(ac.DB, c) }

func (ac *AuthController) VerificationStatus(c *fiber.Ctx) error {
	return service.VerificationStatus(ac.DB, c)
}

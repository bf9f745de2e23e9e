// internals/features/users/auth/service/auth_service.go
package service

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"estatehub_backend/internals/configs"
	"estatehub_backend/internals/constants"
	"estatehub_backend/internals/features/users/auth/dto"
	authModel "estatehub_backend/internals/features/users/auth/model"
	roleService "estatehub_backend/internals/features/users/roles/service"
	userModel "estatehub_backend/internals/features/users/user/model"
	userService "estatehub_backend/internals/features/users/user/service"
	helper "estatehub_backend/internals/helpers"
	helpersAuth "estatehub_backend/internals/helpers/auth"
)

// Roles a user may pick for themselves at registration.
var selfAssignableRoles = map[string]bool{
	constants.RoleTenant:           true,
	constants.RoleBuyer:            true,
	constants.RoleOwner:            true,
	constants.RoleResidentialOwner: true,
	constants.RoleCommercialOwner:  true,
	constants.RoleAgent:            true,
	constants.RoleBuilder:          true,
}

func tokenFor(u userModel.UserModel) (string, error) {
	return helpersAuth.IssueToken(helpersAuth.TokenSubject{
		ID:           u.ID,
		Email:        u.EmailValue(),
		Phone:        u.PhoneValue(),
		ActiveRoleID: u.ActiveRoleID,
	})
}

func authResponse(c *fiber.Ctx, db *gorm.DB, u userModel.UserModel, status int) error {
	token, err := tokenFor(u)
	if err != nil {
		return helper.InternalError(c, "Failed to issue token", err)
	}
	resp, err := userService.BuildResponse(c.UserContext(), db, u)
	if err != nil {
		return helper.InternalError(c, "Failed to load user", err)
	}
	return c.Status(status).JSON(dto.AuthResponse{Token: token, User: resp})
}

// grantAndActivate grants roleName and makes it active when the user has no active role yet.
func grantAndActivate(c *fiber.Ctx, tx *gorm.DB, u *userModel.UserModel, roleName string) error {
	role, err := roleService.EnsureRole(c.UserContext(), tx, roleName, "")
	if err != nil {
		return err
	}
	if err := roleService.GrantRole(c.UserContext(), tx, u.ID, role.ID); err != nil {
		return err
	}
	if u.ActiveRoleID == nil {
		u.ActiveRoleID = &role.ID
		return tx.Model(u).Update("active_role_id", role.ID).Error
	}
	return nil
}

// ========================== REGISTER ==========================
// POST /api/auth/register
func Register(db *gorm.DB, c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := helper.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	roleName := strings.ToLower(strings.TrimSpace(req.Role))
	if roleName == "" {
		roleName = constants.RoleTenant
	}
	if !selfAssignableRoles[roleName] {
		return helper.JsonError(c, fiber.StatusBadRequest, "Role cannot be self-assigned")
	}

	hash, err := helpersAuth.HashPassword(req.Password)
	if err != nil {
		return helper.InternalError(c, "Failed to hash password", err)
	}

	user := userModel.UserModel{
		Email:        userModel.NormalizeEmail(req.Email),
		Phone:        userModel.NormalizePhone(req.Phone),
		Name:         strings.TrimSpace(req.Name),
		PasswordHash: &hash,
		IsActive:     true,
	}

	err = db.WithContext(c.UserContext()).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			if helper.IsUniqueViolation(err) {
				return fiber.NewError(fiber.StatusBadRequest, "Email or phone already registered")
			}
			return err
		}
		return grantAndActivate(c, tx, &user, roleName)
	})
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return authResponse(c, db, user, fiber.StatusCreated)
}

// ========================== LOGIN ==========================
// POST /api/auth/login
func Login(db *gorm.DB, c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := helper.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}
	email := userModel.NormalizeEmail(req.Email)
	phone := userModel.NormalizePhone(req.Phone)
	if email == nil && phone == nil {
		return helper.JsonValidationError(c, map[string][]string{"email": {"email or phone is required"}})
	}

	q := db.WithContext(c.UserContext())
	if email != nil {
		q = q.Where("email = ?", *email)
	} else {
		q = q.Where("phone = ?", *phone)
	}
	var user userModel.UserModel
	if err := q.First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusUnauthorized, "Invalid credentials")
		}
		return helper.InternalError(c, "Login failed", err)
	}
	if user.PasswordHash == nil || !helpersAuth.CheckPassword(*user.PasswordHash, req.Password) {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Invalid credentials")
	}
	if !user.IsActive {
		return helper.JsonError(c, fiber.StatusForbidden, "Account is deactivated")
	}

	loginAt := time.Now()
	if err := db.WithContext(c.UserContext()).Model(&user).Update("last_login_at", loginAt).Error; err != nil {
		return helper.InternalError(c, "Login failed", err)
	}
	user.LastLoginAt = &loginAt
	return authResponse(c, db, user, fiber.StatusOK)
}

// ========================== ME ==========================
// GET /api/auth/me
func Me(db *gorm.DB, c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	var user userModel.UserModel
	if err := db.WithContext(c.UserContext()).First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "User not found")
		}
		return helper.InternalError(c, "Failed to load user", err)
	}
	resp, err := userService.BuildResponse(c.UserContext(), db, user)
	if err != nil {
		return helper.InternalError(c, "Failed to load user", err)
	}
	return helper.JsonOK(c, resp)
}

// ========================== LOGOUT ==========================
// POST /api/auth/logout
func Logout(db *gorm.DB, c *fiber.Ctx) error {
	token, _ := c.Locals("access_token").(string)
	if token == "" {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	expiresAt := time.Now().Add(helpersAuth.AccessTokenTTL)
	if claims, _, err := helpersAuth.ParseToken(token); err == nil && claims.ExpiresAt != nil {
		expiresAt = claims.ExpiresAt.Time
	}
	entry := authModel.TokenBlacklist{TokenHash: authModel.HashToken(token), ExpiredAt: expiresAt}
	if err := db.WithContext(c.UserContext()).Create(&entry).Error; err != nil && !helper.IsUniqueViolation(err) {
		return helper.InternalError(c, "Logout failed", err)
	}
	return helper.JsonMessage(c, fiber.StatusOK, "Logged out")
}

// ========================== RESET PASSWORD ==========================
// POST /api/auth/reset-password
func ResetPassword(db *gorm.DB, c *fiber.Ctx) error {
	var req dto.ResetPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := helper.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}
	target, err := NewOtpTarget(req.Email, req.Phone)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	var user userModel.UserModel
	if err := target.scope(db.WithContext(c.UserContext())).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "User not found")
		}
		return helper.InternalError(c, "Failed to reset password", err)
	}

	if _, err := VerifyOTPFor(c.UserContext(), db, target, req.Code, authModel.PurposeResetPassword); err != nil {
		if errors.Is(err, ErrOtpWrongPurpose) {
			return helper.JsonError(c, fiber.StatusBadRequest, "OTP was not issued for password reset")
		}
		return otpErrorResponse(c, err)
	}

	hash, err := helpersAuth.HashPassword(req.NewPassword)
	if err != nil {
		return helper.InternalError(c, "Failed to hash password", err)
	}
	if err := db.WithContext(c.UserContext()).Model(&user).Update("password_hash", hash).Error; err != nil {
		return helper.InternalError(c, "Failed to reset password", err)
	}
	return helper.JsonMessage(c, fiber.StatusOK, "Password has been reset")
}

// ========================== VERIFICATION STATUS ==========================
// GET /api/auth/verification-status
func VerificationStatus(db *gorm.DB, c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	var user userModel.UserModel
	if err := db.WithContext(c.UserContext()).First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "User not found")
		}
		return helper.InternalError(c, "Failed to load verification status", err)
	}
	return helper.JsonOK(c, dto.VerificationStatusResponse{
		Email:         user.Email,
		Phone:         user.Phone,
		EmailVerified: user.EmailVerifiedAt != nil,
		PhoneVerified: user.PhoneVerifiedAt != nil,
		IsVerified:    user.EmailVerifiedAt != nil || user.PhoneVerifiedAt != nil,
	})
}

// ========================== SWITCH ROLE ==========================
// POST /api/auth/switch-role
// Selects among roles already granted; never grants a new one.
func SwitchRole(db *gorm.DB, c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	var req dto.SwitchRoleRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if req.RoleID == uuid.Nil {
		return helper.JsonValidationError(c, map[string][]string{"roleId": {"is required"}})
	}

	held, err := roleService.HoldsRoleID(c.UserContext(), db, userID, req.RoleID)
	if err != nil {
		return helper.InternalError(c, "Failed to switch role", err)
	}
	if !held {
		return helper.JsonError(c, fiber.StatusForbidden, "You do not hold this role")
	}

	var user userModel.UserModel
	if err := db.WithContext(c.UserContext()).First(&user, "id = ?", userID).Error; err != nil {
		return helper.InternalError(c, "Failed to switch role", err)
	}
	if err := db.WithContext(c.UserContext()).Model(&user).Update("active_role_id", req.RoleID).Error; err != nil {
		return helper.InternalError(c, "Failed to switch role", err)
	}
	user.ActiveRoleID = &req.RoleID
	return authResponse(c, db, user, fiber.StatusOK)
}

// ========================== OTP ==========================

// POST /api/auth/otp/send
func SendOTP(db *gorm.DB, c *fiber.Ctx) error {
	var req dto.SendOtpRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := helper.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}
	target, err := NewOtpTarget(req.Email, req.Phone)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	code, row, err := IssueOTP(c.UserContext(), db, target, req.Purpose)
	if err != nil {
		return helper.InternalError(c, "Failed to send OTP", err)
	}

	resp := dto.SendOtpResponse{
		Success:   true,
		Message:   "OTP sent",
		ExpiresAt: row.ExpiresAt.UTC().Format(time.RFC3339),
	}
	if configs.OtpExposeCode {
		resp.Code = code
	}
	return helper.JsonOK(c, resp)
}

// POST /api/auth/otp/verify
func VerifyOTPHandler(db *gorm.DB, c *fiber.Ctx) error {
	var req dto.VerifyOtpRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := helper.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}
	target, err := NewOtpTarget(req.Email, req.Phone)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	row, err := VerifyOTP(c.UserContext(), db, target, strings.TrimSpace(req.Code))
	if err != nil {
		return otpErrorResponse(c, err)
	}

	user, found, err := findUserByTarget(c, db, target)
	if err != nil {
		return helper.InternalError(c, "Failed to verify OTP", err)
	}

	if req.CreateAccount {
		user, err = upsertListingAccount(c, db, target, user, found, req)
		if err != nil {
			return helper.FromFiberError(c, err)
		}
		found = true
	} else if found {
		if err := markVerified(c, db, &user, target); err != nil {
			return helper.InternalError(c, "Failed to verify OTP", err)
		}
	}

	resp := dto.VerifyOtpResponse{Success: true, Verified: true, Message: "OTP verified"}
	if found && (req.CreateAccount || row.Purpose == authModel.PurposeLogin) {
		if !user.IsActive {
			return helper.JsonError(c, fiber.StatusForbidden, "Account is deactivated")
		}
		token, err := tokenFor(user)
		if err != nil {
			return helper.InternalError(c, "Failed to issue token", err)
		}
		ur, err := userService.BuildResponse(c.UserContext(), db, user)
		if err != nil {
			return helper.InternalError(c, "Failed to load user", err)
		}
		resp.Token = token
		resp.User = &ur
	}
	return helper.JsonOK(c, resp)
}

func otpErrorResponse(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, ErrOtpNotFound),
		errors.Is(err, ErrOtpTooManyAttempts),
		errors.Is(err, ErrOtpInvalid),
		errors.Is(err, ErrOtpWrongPurpose),
		errors.Is(err, ErrOtpNoIdentifier):
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	default:
		return helper.InternalError(c, "Failed to verify OTP", err)
	}
}

func findUserByTarget(c *fiber.Ctx, db *gorm.DB, target OtpTarget) (userModel.UserModel, bool, error) {
	var user userModel.UserModel
	err := target.scope(db.WithContext(c.UserContext())).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return user, false, nil
	}
	return user, err == nil, err
}

func markVerified(c *fiber.Ctx, db *gorm.DB, user *userModel.UserModel, target OtpTarget) error {
	at := time.Now()
	column := "phone_verified_at"
	if target.Email != nil {
		column = "email_verified_at"
		user.EmailVerifiedAt = &at
	} else {
		user.PhoneVerifiedAt = &at
	}
	return db.WithContext(c.UserContext()).Model(user).Update(column, at).Error
}

// upsertListingAccount finds or creates the account behind a verified identifier, grants the
// owner role for the segment and logs it in.
func upsertListingAccount(
	c *fiber.Ctx,
	db *gorm.DB,
	target OtpTarget,
	user userModel.UserModel,
	found bool,
	req dto.VerifyOtpRequest,
) (userModel.UserModel, error) {
	err := db.WithContext(c.UserContext()).Transaction(func(tx *gorm.DB) error {
		if !found {
			user = userModel.UserModel{
				Email:    target.Email,
				Phone:    target.Phone,
				Name:     strings.TrimSpace(req.Name),
				IsActive: true,
			}
			if err := tx.Create(&user).Error; err != nil {
				if helper.IsUniqueViolation(err) {
					return fiber.NewError(fiber.StatusBadRequest, "Account already exists")
				}
				return err
			}
		}
		if err := grantAndActivate(c, tx, &user, constants.OwnerRoleForSegment(req.Segment)); err != nil {
			return err
		}
		if err := markVerified(c, tx, &user, target); err != nil {
			return err
		}
		loginAt := time.Now()
		user.LastLoginAt = &loginAt
		return tx.Model(&user).Update("last_login_at", loginAt).Error
	})
	return user, err
}

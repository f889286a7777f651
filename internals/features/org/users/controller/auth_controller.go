package controller

import (
	"errors"
	"log"
	"time"

	googleAuthIDTokenVerifier "github.com/futurenda/google-auth-id-token-verifier"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"okr_backend/internals/configs"
	"okr_backend/internals/features/org/users/dto"
	"okr_backend/internals/features/org/users/model"
	"okr_backend/internals/features/org/users/service"
	helper "okr_backend/internals/helpers"
)

type AuthController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func NewAuthController(db *gorm.DB) *AuthController {
	return &AuthController{DB: db, Validate: validator.New()}
}

// POST /api/v1/auth/register
func (ctrl *AuthController) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	hash, err := service.HashPassword(req.Password)
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Password hashing failed")
	}

	user := model.UserModel{
		UserName: req.UserName,
		Email:    req.Email,
		Password: hash,
	}
	if err := ctrl.DB.Create(&user).Error; err != nil {
		return helper.DBError(c, err, "")
	}

	return helper.SuccessWithCode(c, fiber.StatusCreated, "Registered successfully", dto.ToUserResponse(user))
}

// POST /api/v1/auth/login
func (ctrl *AuthController) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	var user model.UserModel
	if err := ctrl.DB.Where("email = ?", req.Email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, fiber.StatusUnauthorized, "Wrong email or password")
		}
		return helper.DBError(c, err, "")
	}
	if !user.IsActive {
		return helper.Error(c, fiber.StatusForbidden, "Account is deactivated")
	}
	if !service.CheckPassword(user.Password, req.Password) {
		return helper.Error(c, fiber.StatusUnauthorized, "Wrong email or password")
	}

	return ctrl.issueTokens(c, user)
}

// POST /api/v1/auth/google
// Signs in (or provisions) a user from a verified Google ID token.
func (ctrl *AuthController) GoogleLogin(c *fiber.Ctx) error {
	var req dto.GoogleLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	v := googleAuthIDTokenVerifier.Verifier{}
	if err := v.VerifyIDToken(req.IDToken, []string{configs.GoogleClientID}); err != nil {
		return helper.Error(c, fiber.StatusUnauthorized, "Invalid Google token")
	}
	claimSet, err := googleAuthIDTokenVerifier.Decode(req.IDToken)
	if err != nil {
		return helper.Error(c, fiber.StatusUnauthorized, "Invalid Google token")
	}

	var user model.UserModel
	err = ctrl.DB.Where("google_id = ? OR email = ?", claimSet.Sub, claimSet.Email).First(&user).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		sub := claimSet.Sub
		user = model.UserModel{
			UserName: claimSet.Name,
			Email:    claimSet.Email,
			Password: "-", // google accounts have no local password
			GoogleID: &sub,
		}
		if err := ctrl.DB.Create(&user).Error; err != nil {
			return helper.DBError(c, err, "")
		}
	case err != nil:
		return helper.DBError(c, err, "")
	}

	if !user.IsActive {
		return helper.Error(c, fiber.StatusForbidden, "Account is deactivated")
	}
	return ctrl.issueTokens(c, user)
}

// POST /api/v1/auth/refresh
func (ctrl *AuthController) Refresh(c *fiber.Ctx) error {
	var req dto.RefreshRequest
	if err := c.BodyParser(&req); err != nil || req.RefreshToken == "" {
		// cookie fallback
		req.RefreshToken = c.Cookies("refresh_token")
	}
	if req.RefreshToken == "" {
		return helper.Error(c, fiber.StatusUnauthorized, "Missing refresh token")
	}

	userID, err := service.ParseRefreshToken(req.RefreshToken)
	if err != nil {
		return helper.Error(c, fiber.StatusUnauthorized, "Invalid refresh token")
	}

	var user model.UserModel
	if err := ctrl.DB.First(&user, "id = ?", userID).Error; err != nil {
		return helper.DBError(c, err, "User not found")
	}
	if !user.IsActive {
		return helper.Error(c, fiber.StatusForbidden, "Account is deactivated")
	}

	return ctrl.issueTokens(c, user)
}

// POST /api/v1/auth/logout
func (ctrl *AuthController) Logout(c *fiber.Ctx) error {
	tokenString := helper.GetRawAccessToken(c)
	if tokenString == "" {
		return helper.Error(c, fiber.StatusUnauthorized, "Unauthorized - missing token")
	}

	entry := model.TokenBlacklist{
		Token:     tokenString,
		ExpiredAt: time.Now().Add(service.AccessTokenTTL),
	}
	if err := ctrl.DB.Create(&entry).Error; err != nil {
		// already blacklisted counts as logged out
		log.Printf("[WARN] blacklist insert: %v", err)
	}

	c.ClearCookie("access_token", "refresh_token")
	return helper.Success(c, "Logged out successfully", nil)
}

func (ctrl *AuthController) issueTokens(c *fiber.Ctx, user model.UserModel) error {
	access, err := service.GenerateAccessToken(user)
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Token signing failed")
	}
	refresh, err := service.GenerateRefreshToken(user.ID)
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Token signing failed")
	}

	return helper.Success(c, "Login successful", dto.TokenPairResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		User:         dto.ToUserResponse(user),
	})
}

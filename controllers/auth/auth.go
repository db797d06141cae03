package controllers

import (
	"time"

	"lms/config"
	"lms/database"
	"lms/middleware"
	"lms/models"
	"lms/utils"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
)

// Limiter guards OTP and login attempts. It is constructed in main and
// injected here at startup.
var Limiter *middleware.RateLimitStore

// UseRateLimiter injects the process-wide rate limit store
func UseRateLimiter(s *middleware.RateLimitStore) {
	Limiter = s
}

func Signup(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedSignup").(*struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Mobile   string `json:"mobile"`
		Password string `json:"password"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	// Check for an existing account
	var existing models.User
	if err := database.Database.Db.Where("email = ? AND is_deleted = ?", reqData.Email, false).First(&existing).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Email already registered!", nil)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(reqData.Password), config.AppConfig.SaltRound)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to process password!", nil)
	}

	user := models.User{
		Name:     reqData.Name,
		Email:    reqData.Email,
		Mobile:   reqData.Mobile,
		Password: string(hashedPassword),
		Role:     middleware.RoleStudent.String(),
	}

	if err := database.Database.Db.Create(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create account!", nil)
	}

	go utils.SendWelcomeEmail(user.Email, user.Name)

	user.Password = ""
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Account created successfully!", user)
}

func Login(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedLogin").(*struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	if !Limiter.Allow("login:" + reqData.Email) {
		return middleware.JsonResponse(c, fiber.StatusTooManyRequests, false, "Too many login attempts. Please try again later!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("email = ? AND is_deleted = ?", reqData.Email, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid email or password!", nil)
	}

	// Temporary block after repeated failures
	if user.IsBlocked && user.BlockedUntil != nil && time.Now().Before(*user.BlockedUntil) {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Account temporarily blocked. Try again later!", nil)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(reqData.Password)); err != nil {
		now := time.Now()
		user.FailedLoginAttempts++
		user.LastFailedLogin = &now
		if user.FailedLoginAttempts >= 5 {
			blockedUntil := now.Add(15 * time.Minute)
			user.IsBlocked = true
			user.BlockedUntil = &blockedUntil
		}
		database.Database.Db.Save(&user)
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid email or password!", nil)
	}

	role, ok := middleware.ParseRole(user.Role)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Invalid user role!", nil)
	}

	// Reset failure tracking on success
	user.FailedLoginAttempts = 0
	user.IsBlocked = false
	user.BlockedUntil = nil
	user.LastLogin = time.Now()
	database.Database.Db.Save(&user)
	Limiter.Clear("login:" + reqData.Email)

	tracking := models.LoginTracking{
		UserID:    user.ID,
		IPAddress: c.IP(),
		Device:    c.Get("User-Agent"),
		LoginAt:   time.Now(),
	}
	database.Database.Db.Create(&tracking)

	token, err := middleware.GenerateJWT(user.ID, user.Name, role, user.Email, user.InstituteID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to generate token", nil)
	}

	user.Password = ""
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Login successful!", fiber.Map{
		"token": token,
		"user":  user,
	})
}

func SendOTP(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedSendOTP").(*struct {
		Mobile string `json:"mobile"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	if !Limiter.Allow("otp:" + reqData.Mobile) {
		return middleware.JsonResponse(c, fiber.StatusTooManyRequests, false, "Too many OTP requests. Please try again later!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("mobile = ? AND is_deleted = ?", reqData.Mobile, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "No account found for this mobile number!", nil)
	}

	code := utils.GenerateOTP()
	otp := models.OTP{
		UserID:    user.ID,
		Code:      code,
		Purpose:   "VERIFY_MOBILE",
		ExpiresAt: time.Now().Add(10 * time.Minute),
	}
	if err := database.Database.Db.Create(&otp).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to generate OTP!", nil)
	}

	if err := utils.SendOTPToMobile(user.Mobile, code); err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to send OTP!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "OTP sent successfully!", nil)
}

func VerifyOTP(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedVerifyOTP").(*struct {
		Mobile string `json:"mobile"`
		Code   string `json:"code"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("mobile = ? AND is_deleted = ?", reqData.Mobile, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "No account found for this mobile number!", nil)
	}

	var otp models.OTP
	if err := database.Database.Db.Where("user_id = ? AND code = ? AND is_used = ? AND is_deleted = ?", user.ID, reqData.Code, false, false).
		Order("created_at desc").First(&otp).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid OTP!", nil)
	}

	if time.Now().After(otp.ExpiresAt) {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "OTP has expired!", nil)
	}

	otp.IsUsed = true
	database.Database.Db.Save(&otp)

	user.IsMobileVerified = true
	database.Database.Db.Save(&user)
	Limiter.Clear("otp:" + reqData.Mobile)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Mobile verified successfully!", nil)
}

func ForgotPasswordSendOTP(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedForgotPassword").(*struct {
		Email string `json:"email"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	if !Limiter.Allow("forgot:" + reqData.Email) {
		return middleware.JsonResponse(c, fiber.StatusTooManyRequests, false, "Too many OTP requests. Please try again later!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("email = ? AND is_deleted = ?", reqData.Email, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "No account found for this email!", nil)
	}

	code := utils.GenerateOTP()
	otp := models.OTP{
		UserID:    user.ID,
		Code:      code,
		Purpose:   "FORGOT_PASSWORD",
		ExpiresAt: time.Now().Add(10 * time.Minute),
	}
	if err := database.Database.Db.Create(&otp).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to generate OTP!", nil)
	}

	go utils.SendOTPEmail(user.Email, code)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "OTP sent to your email!", nil)
}

func ResetPassword(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedResetPassword").(*struct {
		Email    string `json:"email"`
		Code     string `json:"code"`
		Password string `json:"password"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("email = ? AND is_deleted = ?", reqData.Email, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "No account found for this email!", nil)
	}

	var otp models.OTP
	if err := database.Database.Db.Where("user_id = ? AND code = ? AND purpose = ? AND is_used = ? AND is_deleted = ?",
		user.ID, reqData.Code, "FORGOT_PASSWORD", false, false).
		Order("created_at desc").First(&otp).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid OTP!", nil)
	}

	if time.Now().After(otp.ExpiresAt) {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "OTP has expired!", nil)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(reqData.Password), config.AppConfig.SaltRound)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to process password!", nil)
	}

	otp.IsUsed = true
	database.Database.Db.Save(&otp)

	user.Password = string(hashedPassword)
	if err := database.Database.Db.Save(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to reset password!", nil)
	}
	Limiter.Clear("forgot:" + reqData.Email)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Password reset successfully!", nil)
}

func ChangePassword(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedChangePassword").(*struct {
		CurrentPassword string `json:"current_password"`
		NewPassword     string `json:"new_password"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(reqData.CurrentPassword)); err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Current password is incorrect!", nil)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(reqData.NewPassword), config.AppConfig.SaltRound)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to process password!", nil)
	}

	user.Password = string(hashedPassword)
	if err := database.Database.Db.Save(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to change password!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Password changed successfully!", nil)
}

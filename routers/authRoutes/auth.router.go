package authRoutes

import (
	authControllers "lms/controllers/auth"
	"lms/middleware"
	authValidators "lms/validators/auth"

	"github.com/gofiber/fiber/v2"
)

func SetupAuthRoutes(app *fiber.App) {
	authGroup := app.Group("/auth")

	authGroup.Post("/signup", authValidators.Signup(), authControllers.Signup)
	authGroup.Post("/login", authValidators.Login(), authControllers.Login)
	authGroup.Post("/send/otp", authValidators.SendOTP(), authControllers.SendOTP)
	authGroup.Patch("/verify/otp", authValidators.VerifyOTP(), authControllers.VerifyOTP)
	authGroup.Post("/forgot/password", authValidators.ForgotPassword(), authControllers.ForgotPasswordSendOTP)
	authGroup.Patch("/reset/password", authValidators.ResetPassword(), authControllers.ResetPassword)
	authGroup.Put("/change/password", middleware.JWTMiddleware, authValidators.ChangePassword(), authControllers.ChangePassword)
}

package middleware

import "github.com/gofiber/fiber/v2"

// Role is the closed set of user roles. Handlers switch on it exhaustively
// instead of comparing role strings.
type Role int

const (
	RoleStudent Role = iota
	RoleInstituteAdmin
	RoleAdmin
)

// Role values as persisted on the users table and in JWT claims
const (
	roleStudentStr        = "STUDENT"
	roleInstituteAdminStr = "INSTITUTE_ADMIN"
	roleAdminStr          = "ADMIN"
)

func (r Role) String() string {
	switch r {
	case RoleStudent:
		return roleStudentStr
	case RoleInstituteAdmin:
		return roleInstituteAdminStr
	case RoleAdmin:
		return roleAdminStr
	}
	return ""
}

// ParseRole converts a stored role string into a Role. The second return
// value is false for anything outside the closed set.
func ParseRole(s string) (Role, bool) {
	switch s {
	case roleStudentStr:
		return RoleStudent, true
	case roleInstituteAdminStr:
		return RoleInstituteAdmin, true
	case roleAdminStr:
		return RoleAdmin, true
	}
	return 0, false
}

// RequireRoles returns a middleware that allows only the given roles. It runs
// after JWTMiddleware, which stores the parsed role in the request context.
func RequireRoles(roles ...Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, ok := c.Locals("role").(Role)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"status":  false,
				"message": "Unauthorized: role not found",
				"data":    nil,
			})
		}

		for _, allowed := range roles {
			if role == allowed {
				return c.Next()
			}
		}

		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"status":  false,
			"message": "You do not have permission to access this resource!",
			"data":    nil,
		})
	}
}

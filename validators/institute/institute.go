package instituteValidator

import (
	"lms/middleware"
	"regexp"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
)

func isValidEmail(email string) bool {
	re := regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	return re.MatchString(email)
}

func isValidMobile(mobile string) bool {
	re := regexp.MustCompile(`^\d{10}$`)
	return re.MatchString(mobile)
}

// instituteParam reads an optional institute scope from the route or query.
// Platform admins address any institute this way; institute admins are scoped
// by their token and never need it.
func instituteParam(c *fiber.Ctx) {
	raw := strings.TrimSpace(c.Params("institute_id"))
	if raw == "" {
		raw = strings.TrimSpace(c.Query("institute_id"))
	}
	if raw == "" {
		return
	}
	if id, err := strconv.Atoi(raw); err == nil && id > 0 {
		c.Locals("instituteIDParam", id)
	}
}

// CreateInstitute validates institute creation request
func CreateInstitute() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Name          string `json:"name"`
			Code          string `json:"code"`
			Address       string `json:"address"`
			City          string `json:"city"`
			State         string `json:"state"`
			ContactEmail  string `json:"contact_email"`
			ContactMobile string `json:"contact_mobile"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		reqData.Name = strings.TrimSpace(reqData.Name)
		reqData.Code = strings.ToUpper(strings.TrimSpace(reqData.Code))

		if reqData.Name == "" {
			errors["name"] = "Institute name is required!"
		} else if len(reqData.Name) < 3 {
			errors["name"] = "Institute name must be at least 3 characters long!"
		}

		if reqData.Code == "" {
			errors["code"] = "Institute code is required!"
		} else if matched, _ := regexp.MatchString(`^[A-Z0-9_-]{2,20}$`, reqData.Code); !matched {
			errors["code"] = "Institute code must be 2-20 letters, digits, hyphens or underscores!"
		}

		if reqData.ContactEmail != "" && !isValidEmail(reqData.ContactEmail) {
			errors["contact_email"] = "Invalid contact email!"
		}

		if reqData.ContactMobile != "" && !isValidMobile(reqData.ContactMobile) {
			errors["contact_mobile"] = "Invalid contact mobile number!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedInstitute", reqData)
		return c.Next()
	}
}

// UpdateInstitute validates institute update request
func UpdateInstitute() fiber.Handler {
	return func(c *fiber.Ctx) error {
		idStr := strings.TrimSpace(c.Params("institute_id"))
		instituteID, err := strconv.Atoi(idStr)
		if err != nil || instituteID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Institute ID!", nil)
		}

		reqData := new(struct {
			Name          *string `json:"name"`
			Address       *string `json:"address"`
			City          *string `json:"city"`
			State         *string `json:"state"`
			ContactEmail  *string `json:"contact_email"`
			ContactMobile *string `json:"contact_mobile"`
			IsActive      *bool   `json:"is_active"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.Name != nil && len(strings.TrimSpace(*reqData.Name)) < 3 {
			errors["name"] = "Institute name must be at least 3 characters long!"
		}

		if reqData.ContactEmail != nil && *reqData.ContactEmail != "" && !isValidEmail(*reqData.ContactEmail) {
			errors["contact_email"] = "Invalid contact email!"
		}

		if reqData.ContactMobile != nil && *reqData.ContactMobile != "" && !isValidMobile(*reqData.ContactMobile) {
			errors["contact_mobile"] = "Invalid contact mobile number!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("instituteIDParam", instituteID)
		c.Locals("validatedInstituteUpdate", reqData)
		return c.Next()
	}
}

// InstituteList validates institute listing request
func InstituteList() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Page  *int `json:"page"`
			Limit *int `json:"limit"`
		})

		if err := c.QueryParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid query parameters!", nil)
		}

		c.Locals("validatedInstituteList", reqData)
		return c.Next()
	}
}

// InstituteID validates a single institute request
func InstituteID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		idStr := strings.TrimSpace(c.Params("institute_id"))
		instituteID, err := strconv.Atoi(idStr)
		if err != nil || instituteID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Institute ID!", nil)
		}

		c.Locals("instituteIDParam", instituteID)
		return c.Next()
	}
}

// CreateStudent validates student creation by an institute admin
func CreateStudent() fiber.Handler {
	return func(c *fiber.Ctx) error {
		instituteParam(c)

		reqData := new(struct {
			Name     string `json:"name"`
			Email    string `json:"email"`
			Mobile   string `json:"mobile"`
			Password string `json:"password"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if len(strings.TrimSpace(reqData.Name)) < 3 {
			errors["name"] = "Name must be at least 3 characters long!"
		}

		if reqData.Email == "" || !isValidEmail(reqData.Email) {
			errors["email"] = "Invalid email!"
		}

		if reqData.Mobile != "" && !isValidMobile(reqData.Mobile) {
			errors["mobile"] = "Invalid mobile number!"
		}

		if len(strings.TrimSpace(reqData.Password)) < 8 {
			errors["password"] = "Password must be at least 8 characters long!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedStudent", reqData)
		return c.Next()
	}
}

// StudentList validates student listing request
func StudentList() fiber.Handler {
	return func(c *fiber.Ctx) error {
		instituteParam(c)

		reqData := new(struct {
			Page  *int `json:"page"`
			Limit *int `json:"limit"`
		})

		if err := c.QueryParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid query parameters!", nil)
		}

		c.Locals("validatedStudentList", reqData)
		return c.Next()
	}
}

// StudentProgress validates a student progress lookup
func StudentProgress() fiber.Handler {
	return func(c *fiber.Ctx) error {
		instituteParam(c)

		idStr := strings.TrimSpace(c.Params("student_id"))
		studentID, err := strconv.Atoi(idStr)
		if err != nil || studentID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Student ID!", nil)
		}

		c.Locals("studentID", studentID)
		return c.Next()
	}
}

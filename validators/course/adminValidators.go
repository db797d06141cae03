package courseValidator

import (
	"lms/middleware"
	courseModels "lms/models/course"
	"regexp"
	"strings"

	"github.com/gofiber/fiber/v2"
)

func isValidContentType(contentType string) bool {
	for _, valid := range courseModels.ValidContentTypes {
		if contentType == valid {
			return true
		}
	}
	return false
}

// ============ Course Validators ============

// CreateCourseAdmin validates admin course creation request
func CreateCourseAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Title       string `json:"title"`
			Description string `json:"description"`
			Author      string `json:"author"`
			Duration    int64  `json:"duration"`
			InstituteID uint   `json:"institute_id"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		reqData.Title = strings.TrimSpace(reqData.Title)
		reqData.Description = strings.TrimSpace(reqData.Description)
		reqData.Author = strings.TrimSpace(reqData.Author)

		if reqData.Title == "" {
			errors["title"] = "Title is required!"
		} else if len(reqData.Title) < 3 {
			errors["title"] = "Title must be at least 3 characters long!"
		}

		if reqData.Description == "" {
			errors["description"] = "Description is required!"
		} else if len(reqData.Description) < 5 {
			errors["description"] = "Description must be at least 5 characters long!"
		}

		if reqData.Author == "" {
			errors["author"] = "Author is required!"
		} else if matched, _ := regexp.MatchString(`[<>{}]`, reqData.Author); matched {
			errors["author"] = "Author name contains invalid characters!"
		}

		if reqData.Duration <= 0 {
			errors["duration"] = "Duration must be a positive number!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCourse", reqData)
		return c.Next()
	}
}

// UpdateCourseAdmin validates admin course update request
func UpdateCourseAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		courseID, ok := parseIDParam(c, "id")
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Course ID!", nil)
		}

		reqData := new(struct {
			Title       *string `json:"title"`
			Description *string `json:"description"`
			Author      *string `json:"author"`
			Duration    *int64  `json:"duration"`
			Status      *string `json:"status"`
			CourseImage *string `json:"course_image"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.Title != nil && len(strings.TrimSpace(*reqData.Title)) < 3 {
			errors["title"] = "Title must be at least 3 characters long!"
		}

		if reqData.Description != nil && len(strings.TrimSpace(*reqData.Description)) < 5 {
			errors["description"] = "Description must be at least 5 characters long!"
		}

		if reqData.Duration != nil && *reqData.Duration <= 0 {
			errors["duration"] = "Duration must be a positive number!"
		}

		if reqData.Status != nil {
			validStatuses := map[string]bool{"DRAFT": true, "ACTIVE": true, "INACTIVE": true}
			if !validStatuses[strings.ToUpper(strings.TrimSpace(*reqData.Status))] {
				errors["status"] = "Status must be DRAFT, ACTIVE, or INACTIVE!"
			}
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("courseID", courseID)
		c.Locals("validatedCourseUpdate", reqData)
		return c.Next()
	}
}

// ============ Section Validators ============

// CreateSection validates section creation request
func CreateSection() fiber.Handler {
	return func(c *fiber.Ctx) error {
		courseID, ok := parseIDParam(c, "id")
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Course ID!", nil)
		}

		reqData := new(struct {
			Title       string `json:"title"`
			Description string `json:"description"`
			OrderIndex  int    `json:"order_index"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		reqData.Title = strings.TrimSpace(reqData.Title)
		reqData.Description = strings.TrimSpace(reqData.Description)

		if reqData.Title == "" {
			errors["title"] = "Section title is required!"
		} else if len(reqData.Title) < 3 {
			errors["title"] = "Section title must be at least 3 characters long!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("courseID", courseID)
		c.Locals("validatedSection", reqData)
		return c.Next()
	}
}

// UpdateSection validates section update request
func UpdateSection() fiber.Handler {
	return func(c *fiber.Ctx) error {
		sectionID, ok := parseIDParam(c, "section_id")
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Section ID!", nil)
		}

		reqData := new(struct {
			Title       *string `json:"title"`
			Description *string `json:"description"`
			OrderIndex  *int    `json:"order_index"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.Title != nil && len(strings.TrimSpace(*reqData.Title)) < 3 {
			errors["title"] = "Section title must be at least 3 characters long!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("sectionID", sectionID)
		c.Locals("validatedSectionUpdate", reqData)
		return c.Next()
	}
}

// SectionID validates a single section request
func SectionID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		sectionID, ok := parseIDParam(c, "section_id")
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Section ID!", nil)
		}

		c.Locals("sectionID", sectionID)
		return c.Next()
	}
}

// ============ Content Validators ============

// CreateContentAdmin validates content creation request
func CreateContentAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		courseID, ok := parseIDParam(c, "id")
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Course ID!", nil)
		}

		reqData := new(struct {
			SectionID   uint   `json:"section_id"`
			Title       string `json:"title"`
			Description string `json:"description"`
			ContentType string `json:"content_type"`
			ContentURL  string `json:"content_url"`
			ContentText string `json:"content_text"`
			IsFree      bool   `json:"is_free"`
			OrderIndex  int    `json:"order_index"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		reqData.Title = strings.TrimSpace(reqData.Title)
		reqData.ContentType = strings.ToUpper(strings.TrimSpace(reqData.ContentType))

		if reqData.SectionID == 0 {
			errors["section_id"] = "Section ID is required!"
		}

		if reqData.Title == "" {
			errors["title"] = "Content title is required!"
		} else if len(reqData.Title) < 3 {
			errors["title"] = "Content title must be at least 3 characters long!"
		}

		if reqData.ContentType == "" {
			errors["content_type"] = "Content type is required!"
		} else if !isValidContentType(reqData.ContentType) {
			errors["content_type"] = "Content type must be TEXT, PDF, DOC, IMAGE, VIDEO, YOUTUBE, or AUDIO!"
		}

		// The primary payload depends on the content type
		switch reqData.ContentType {
		case courseModels.ContentTypeText:
			if strings.TrimSpace(reqData.ContentText) == "" {
				errors["content_text"] = "Content text is required for TEXT type!"
			}
		case "":
		default:
			if strings.TrimSpace(reqData.ContentURL) == "" {
				errors["content_url"] = "Content URL is required for " + reqData.ContentType + " type!"
			}
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("courseID", courseID)
		c.Locals("validatedContent", reqData)
		return c.Next()
	}
}

// UpdateContentAdmin validates content update request
func UpdateContentAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		contentID, ok := parseIDParam(c, "content_id")
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Content ID!", nil)
		}

		reqData := new(struct {
			Title       *string `json:"title"`
			Description *string `json:"description"`
			ContentType *string `json:"content_type"`
			ContentURL  *string `json:"content_url"`
			ContentText *string `json:"content_text"`
			IsFree      *bool   `json:"is_free"`
			OrderIndex  *int    `json:"order_index"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.Title != nil && len(strings.TrimSpace(*reqData.Title)) < 3 {
			errors["title"] = "Content title must be at least 3 characters long!"
		}

		if reqData.ContentType != nil {
			normalized := strings.ToUpper(strings.TrimSpace(*reqData.ContentType))
			if !isValidContentType(normalized) {
				errors["content_type"] = "Content type must be TEXT, PDF, DOC, IMAGE, VIDEO, YOUTUBE, or AUDIO!"
			} else {
				reqData.ContentType = &normalized
			}
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("contentID", contentID)
		c.Locals("validatedContentUpdate", reqData)
		return c.Next()
	}
}

// ContentID validates a single content request
func ContentID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		contentID, ok := parseIDParam(c, "content_id")
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Content ID!", nil)
		}

		c.Locals("contentID", contentID)
		return c.Next()
	}
}

// ============ Material Validators ============

// CreateMaterial validates study material creation request
func CreateMaterial() fiber.Handler {
	return func(c *fiber.Ctx) error {
		courseID, ok := parseIDParam(c, "id")
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Course ID!", nil)
		}

		reqData := new(struct {
			Title       string `json:"title"`
			Description string `json:"description"`
			FileURL     string `json:"file_url"`
			FileType    string `json:"file_type"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		reqData.Title = strings.TrimSpace(reqData.Title)
		reqData.FileURL = strings.TrimSpace(reqData.FileURL)

		if reqData.Title == "" {
			errors["title"] = "Material title is required!"
		} else if len(reqData.Title) < 3 {
			errors["title"] = "Material title must be at least 3 characters long!"
		}

		if reqData.FileURL == "" {
			errors["file_url"] = "File URL is required!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("courseID", courseID)
		c.Locals("validatedMaterial", reqData)
		return c.Next()
	}
}

// MaterialID validates a single material request
func MaterialID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		materialID, ok := parseIDParam(c, "material_id")
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Material ID!", nil)
		}

		c.Locals("materialID", materialID)
		return c.Next()
	}
}

// ============ Certificate Validators ============

// ReviewCertificate validates certificate review request
func ReviewCertificate() fiber.Handler {
	return func(c *fiber.Ctx) error {
		requestID, ok := parseIDParam(c, "request_id")
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Request ID!", nil)
		}

		reqData := new(struct {
			Approve bool   `json:"approve"`
			Reason  string `json:"reason"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if !reqData.Approve && strings.TrimSpace(reqData.Reason) == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Rejection reason is required!", nil)
		}

		c.Locals("requestID", requestID)
		c.Locals("validatedCertificateReview", reqData)
		return c.Next()
	}
}
